// Package ledger is the pure settlement engine: share allocation, balance
// calculation, debt simplification, recurring charge debt and budget
// utilization. Every function is a side-effect-free computation over the
// snapshot it is handed; persistence and presentation live elsewhere.
//
// All monetary values are int64 counts of the smallest currency unit. No
// monetary value is ever represented as a float.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareParticipant carries the per-participant data Allocate needs.
// Weight drives weighted splits (must be positive where used); Percent
// drives percentage splits (participants' percents must sum to exactly 100).
type ShareParticipant struct {
	ID      uuid.UUID
	Weight  decimal.Decimal
	Percent decimal.Decimal
}

// Share is one participant's allocated portion of an expense.
type Share struct {
	ParticipantID uuid.UUID
	Amount        int64
}

// Expense is the minimal expense shape the engine reads. CategoryID is
// uuid.Nil for uncategorized expenses; PeriodKey is empty for untagged ones.
type Expense struct {
	Amount     int64
	PayerID    uuid.UUID
	Shares     []Share
	CategoryID uuid.UUID
	PeriodKey  string
	OccurredAt time.Time
}

// Settlement is a recorded payment from FromID to ToID.
type Settlement struct {
	FromID uuid.UUID
	ToID   uuid.UUID
	Amount int64
}

// Balance is a participant's net position. Net is positive when the group
// owes the participant money and negative when the participant owes the
// group. Across a group, Net always sums to zero.
type Balance struct {
	ParticipantID uuid.UUID
	TotalPaid     int64
	TotalOwed     int64
	// NetSettlements is settlements paid minus settlements received.
	// Paying off a debt raises the payer's net toward zero.
	NetSettlements int64
	Net            int64
}

// Suggestion is a proposed transfer. Executing every suggestion returned by
// Simplify zeroes all balances.
type Suggestion struct {
	FromID uuid.UUID
	ToID   uuid.UUID
	Amount int64
}

// ChargeDebtRecord is one participant's recurring-charge arrears.
type ChargeDebtRecord struct {
	ParticipantID   uuid.UUID
	RequiredPeriods int
	UnpaidPeriods   int
	DebtAmount      int64
}

// CategoryBudget is the planned spend for one category.
type CategoryBudget struct {
	CategoryID uuid.UUID
	Amount     int64
}

// BudgetStatus is a category's budget utilization for a period.
type BudgetStatus struct {
	CategoryID         uuid.UUID
	BudgetAmount       int64
	SpentAmount        int64
	RemainingAmount    int64
	UtilizationPercent decimal.Decimal
	OverBudget         bool
}

// PeriodBounds are the inclusive date bounds of one accounting period, as
// resolved by the period calendar.
type PeriodBounds struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the bounds, inclusive on both ends.
func (b PeriodBounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}
