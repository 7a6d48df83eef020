package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/util"
)

// SplitType selects the split policy on expense creation.
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypeWeighted   SplitType = "weighted"
	SplitTypePercentage SplitType = "percentage"
	SplitTypeManual     SplitType = "manual"
)

// CreateExpenseInput carries everything needed to record an expense.
// ParticipantIDs limits the split to a subset of the group; empty means
// every participant. ManualAmounts is only read for manual splits.
type CreateExpenseInput struct {
	Description    string
	Amount         int64
	PayerID        uuid.UUID
	CategoryID     *uuid.UUID
	PeriodKey      *string
	OccurredAt     time.Time
	SplitType      SplitType
	ParticipantIDs []uuid.UUID
	ManualAmounts  map[uuid.UUID]int64
}

// ExpenseService handles expense business logic. Creation runs the share
// allocator so the persisted shares always sum exactly to the total.
type ExpenseService struct {
	expenseRepo     domain.ExpenseRepository
	participantRepo domain.ParticipantRepository
	categoryRepo    domain.CategoryRepository
	groupRepo       domain.GroupRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	participantRepo domain.ParticipantRepository,
	categoryRepo domain.CategoryRepository,
	groupRepo domain.GroupRepository,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:     expenseRepo,
		participantRepo: participantRepo,
		categoryRepo:    categoryRepo,
		groupRepo:       groupRepo,
	}
}

// CreateExpense validates the input, allocates shares under the requested
// split policy, and persists the expense with its shares.
func (s *ExpenseService) CreateExpense(groupID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description too long", domain.ErrInvalidInput)
	}

	members, err := s.participantRepo.ListByGroup(groupID)
	if err != nil {
		return nil, err
	}

	payerInGroup := false
	for _, m := range members {
		if m.ID == input.PayerID {
			payerInGroup = true
			break
		}
	}
	if !payerInGroup {
		return nil, domain.ErrParticipantNotFound
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.GroupID != groupID {
			return nil, domain.ErrCategoryNotFound
		}
	}

	eligible, err := selectEligible(members, input.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	policy, err := splitPolicy(input)
	if err != nil {
		return nil, err
	}

	shares, err := ledger.Allocate(input.Amount, eligible, policy)
	if err != nil {
		return nil, err
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = util.DateOf(time.Now())
	}

	expense := &domain.Expense{
		GroupID:     groupID,
		Description: input.Description,
		Amount:      input.Amount,
		PayerID:     input.PayerID,
		CategoryID:  input.CategoryID,
		PeriodKey:   input.PeriodKey,
		OccurredAt:  occurredAt,
		Shares:      make([]domain.ExpenseShare, len(shares)),
	}
	for i, share := range shares {
		expense.Shares[i] = domain.ExpenseShare{
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
		}
	}

	return s.expenseRepo.Create(expense)
}

// GetExpense retrieves an expense with its shares
func (s *ExpenseService) GetExpense(id uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// ListExpenses retrieves a filtered, paginated page of a group's expenses
func (s *ExpenseService) ListExpenses(groupID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListByGroup(groupID, filters)
}

// DeleteExpense removes an expense. Expenses are immutable, so edits are
// a delete followed by a fresh create.
func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	return s.expenseRepo.Delete(id)
}

// selectEligible narrows the group members to the requested split subset,
// preserving the stable group order. Every requested ID must be a member.
func selectEligible(members []*domain.Participant, requested []uuid.UUID) ([]ledger.ShareParticipant, error) {
	included := make(map[uuid.UUID]bool, len(requested))
	for _, id := range requested {
		included[id] = true
	}

	eligible := []ledger.ShareParticipant{}
	matched := 0
	for _, m := range members {
		if len(requested) > 0 {
			if !included[m.ID] {
				continue
			}
			matched++
		}
		sp := ledger.ShareParticipant{ID: m.ID, Weight: m.Weight}
		if m.PercentShare != nil {
			sp.Percent = *m.PercentShare
		}
		eligible = append(eligible, sp)
	}
	if len(requested) > 0 && matched != len(included) {
		return nil, domain.ErrParticipantNotFound
	}
	return eligible, nil
}

func splitPolicy(input CreateExpenseInput) (ledger.SplitPolicy, error) {
	switch input.SplitType {
	case SplitTypeEqual, "":
		return ledger.EqualSplit{}, nil
	case SplitTypeWeighted:
		return ledger.WeightedSplit{}, nil
	case SplitTypePercentage:
		return ledger.PercentageSplit{}, nil
	case SplitTypeManual:
		if len(input.ManualAmounts) == 0 {
			return nil, fmt.Errorf("%w: manual split requires amounts", domain.ErrInvalidInput)
		}
		return ledger.ManualSplit{Amounts: input.ManualAmounts}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", domain.ErrInvalidInput, input.SplitType)
	}
}
