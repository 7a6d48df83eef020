package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseShare is the portion of an expense one participant owes, in minor
// currency units. For any expense the share amounts sum exactly to the
// expense amount.
type ExpenseShare struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Amount        int64     `json:"amount"`
}

// Expense is a cost paid by one participant and split across several.
// Expenses are immutable: edits are modeled as delete and recreate.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	Description string    `json:"description"`
	// Amount is the total cost in minor currency units.
	Amount     int64      `json:"amount"`
	PayerID    uuid.UUID  `json:"payerId"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
	// PeriodKey tags the expense for period-based accounting (recurring
	// charge coverage). Opaque to everything except the period calendar.
	PeriodKey  *string        `json:"periodKey,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
	Shares     []ExpenseShare `json:"shares"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type ExpenseFilters struct {
	CategoryID *uuid.UUID
	PeriodKey  *string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedExpenses struct {
	Data       []*Expense `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

type ExpenseRepository interface {
	// Create persists the expense and its shares atomically.
	Create(expense *Expense) (*Expense, error)
	GetByID(id uuid.UUID) (*Expense, error)
	ListByGroup(groupID uuid.UUID, filters *ExpenseFilters) (*PaginatedExpenses, error)
	// AllByGroup returns every expense of the group with shares loaded,
	// ordered by occurred_at then id. Used for ledger snapshots.
	AllByGroup(groupID uuid.UUID) ([]*Expense, error)
	Delete(id uuid.UUID) error
}
