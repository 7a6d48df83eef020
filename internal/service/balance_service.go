package service

import (
	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
)

// BalanceEntry is one participant's net position with the display name
// joined in for presentation.
type BalanceEntry struct {
	ParticipantID  uuid.UUID `json:"participantId"`
	DisplayName    string    `json:"displayName"`
	TotalPaid      int64     `json:"totalPaid"`
	TotalOwed      int64     `json:"totalOwed"`
	NetSettlements int64     `json:"netSettlements"`
	Net            int64     `json:"net"`
}

// SuggestionEntry is one proposed transfer with display names joined in.
type SuggestionEntry struct {
	FromID   uuid.UUID `json:"fromId"`
	FromName string    `json:"fromName"`
	ToID     uuid.UUID `json:"toId"`
	ToName   string    `json:"toName"`
	Amount   int64     `json:"amount"`
}

// BalanceService computes balance snapshots and settlement suggestions for
// a group by feeding one consistent repository snapshot to the ledger
// engine.
type BalanceService struct {
	participantRepo domain.ParticipantRepository
	expenseRepo     domain.ExpenseRepository
	settlementRepo  domain.SettlementRepository
	groupRepo       domain.GroupRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	participantRepo domain.ParticipantRepository,
	expenseRepo domain.ExpenseRepository,
	settlementRepo domain.SettlementRepository,
	groupRepo domain.GroupRepository,
) *BalanceService {
	return &BalanceService{
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		settlementRepo:  settlementRepo,
		groupRepo:       groupRepo,
	}
}

// GetBalances returns the group's balance snapshot in stable participant
// order.
func (s *BalanceService) GetBalances(groupID uuid.UUID) ([]BalanceEntry, error) {
	members, balances, err := s.snapshot(groupID)
	if err != nil {
		return nil, err
	}

	entries := make([]BalanceEntry, len(balances))
	for i, b := range balances {
		entries[i] = BalanceEntry{
			ParticipantID:  b.ParticipantID,
			DisplayName:    members[i].DisplayName,
			TotalPaid:      b.TotalPaid,
			TotalOwed:      b.TotalOwed,
			NetSettlements: b.NetSettlements,
			Net:            b.Net,
		}
	}
	return entries, nil
}

// GetSuggestions returns the simplified settlement plan: executing every
// suggested transfer zeroes all balances.
func (s *BalanceService) GetSuggestions(groupID uuid.UUID) ([]SuggestionEntry, error) {
	members, balances, err := s.snapshot(groupID)
	if err != nil {
		return nil, err
	}

	suggestions, err := ledger.Simplify(balances)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.ID] = m.DisplayName
	}

	entries := make([]SuggestionEntry, len(suggestions))
	for i, sg := range suggestions {
		entries[i] = SuggestionEntry{
			FromID:   sg.FromID,
			FromName: names[sg.FromID],
			ToID:     sg.ToID,
			ToName:   names[sg.ToID],
			Amount:   sg.Amount,
		}
	}
	return entries, nil
}

// snapshot reads the group's participants, expenses and settlements and
// runs the balance calculation over them.
func (s *BalanceService) snapshot(groupID uuid.UUID) ([]*domain.Participant, []ledger.Balance, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, nil, err
	}

	members, err := s.participantRepo.ListByGroup(groupID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.expenseRepo.AllByGroup(groupID)
	if err != nil {
		return nil, nil, err
	}
	settlements, err := s.settlementRepo.ListByGroup(groupID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	balances, err := ledger.ComputeBalances(ids, toLedgerExpenses(expenses), toLedgerSettlements(settlements))
	if err != nil {
		return nil, nil, err
	}
	return members, balances, nil
}

// toLedgerExpenses converts persisted expenses to the engine's shape.
func toLedgerExpenses(expenses []*domain.Expense) []ledger.Expense {
	out := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		le := ledger.Expense{
			Amount:     e.Amount,
			PayerID:    e.PayerID,
			OccurredAt: e.OccurredAt,
			Shares:     make([]ledger.Share, len(e.Shares)),
		}
		if e.CategoryID != nil {
			le.CategoryID = *e.CategoryID
		}
		if e.PeriodKey != nil {
			le.PeriodKey = *e.PeriodKey
		}
		for j, share := range e.Shares {
			le.Shares[j] = ledger.Share{ParticipantID: share.ParticipantID, Amount: share.Amount}
		}
		out[i] = le
	}
	return out
}

func toLedgerSettlements(settlements []*domain.Settlement) []ledger.Settlement {
	out := make([]ledger.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = ledger.Settlement{FromID: s.FromID, ToID: s.ToID, Amount: s.Amount}
	}
	return out
}
