package service

import (
	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/util"
)

// ChargeDebtEntry is one participant's recurring-charge arrears with the
// display name joined in.
type ChargeDebtEntry struct {
	ParticipantID   uuid.UUID `json:"participantId"`
	DisplayName     string    `json:"displayName"`
	RequiredPeriods int       `json:"requiredPeriods"`
	UnpaidPeriods   int       `json:"unpaidPeriods"`
	DebtAmount      int64     `json:"debtAmount"`
}

// ChargeDebtReport is the group's recurring-charge arrears over a period
// range.
type ChargeDebtReport struct {
	ChargePerPeriod int64             `json:"chargePerPeriod"`
	PeriodKeys      []string          `json:"periodKeys"`
	Records         []ChargeDebtEntry `json:"records"`
}

// ChargeService computes recurring charge debt (e.g. monthly maintenance
// fees) over a range of periods.
type ChargeService struct {
	groupRepo       domain.GroupRepository
	participantRepo domain.ParticipantRepository
	expenseRepo     domain.ExpenseRepository
}

// NewChargeService creates a new ChargeService
func NewChargeService(
	groupRepo domain.GroupRepository,
	participantRepo domain.ParticipantRepository,
	expenseRepo domain.ExpenseRepository,
) *ChargeService {
	return &ChargeService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
	}
}

// ComputeDebts reports each participant's unpaid periods and debt across
// the inclusive month range. The group must have a recurring charge
// configured.
func (s *ChargeService) ComputeDebts(groupID uuid.UUID, fromYear, fromMonth, toYear, toMonth int) (*ChargeDebtReport, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group.ChargePerPeriod == nil {
		return nil, domain.ErrChargeNotConfigured
	}

	members, err := s.participantRepo.ListByGroup(groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.AllByGroup(groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	required := util.MonthKeysBetween(fromYear, fromMonth, toYear, toMonth)
	records := ledger.ComputeChargeDebt(ids, *group.ChargePerPeriod, required, toLedgerExpenses(expenses))

	entries := make([]ChargeDebtEntry, len(records))
	for i, r := range records {
		entries[i] = ChargeDebtEntry{
			ParticipantID:   r.ParticipantID,
			DisplayName:     members[i].DisplayName,
			RequiredPeriods: r.RequiredPeriods,
			UnpaidPeriods:   r.UnpaidPeriods,
			DebtAmount:      r.DebtAmount,
		}
	}

	return &ChargeDebtReport{
		ChargePerPeriod: *group.ChargePerPeriod,
		PeriodKeys:      required,
		Records:         entries,
	}, nil
}
