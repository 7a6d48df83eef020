package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/util"
)

// BudgetInput is a single category budget to set.
type BudgetInput struct {
	CategoryID uuid.UUID
	Amount     int64
}

// BudgetStatusEntry is one category's budget utilization with the category
// name joined in.
type BudgetStatusEntry struct {
	CategoryID         uuid.UUID       `json:"categoryId"`
	CategoryName       string          `json:"categoryName"`
	BudgetAmount       int64           `json:"budgetAmount"`
	SpentAmount        int64           `json:"spentAmount"`
	RemainingAmount    int64           `json:"remainingAmount"`
	UtilizationPercent decimal.Decimal `json:"utilizationPercent"`
	OverBudget         bool            `json:"overBudget"`
}

// PeriodBudgetSummary is the full budget picture for one period.
type PeriodBudgetSummary struct {
	PeriodKey      string              `json:"periodKey"`
	TotalBudget    int64               `json:"totalBudget"`
	TotalSpent     int64               `json:"totalSpent"`
	TotalRemaining int64               `json:"totalRemaining"`
	Categories     []BudgetStatusEntry `json:"categories"`
}

// BudgetService handles category budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
	expenseRepo  domain.ExpenseRepository
	groupRepo    domain.GroupRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo domain.BudgetRepository,
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	groupRepo domain.GroupRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		groupRepo:    groupRepo,
	}
}

// SetBudget sets (or updates) a single category budget for a period
func (s *BudgetService) SetBudget(groupID, categoryID uuid.UUID, periodKey string, amount int64) (*domain.Budget, error) {
	if err := s.validateBudget(groupID, categoryID, periodKey, amount); err != nil {
		return nil, err
	}

	return s.budgetRepo.Upsert(&domain.Budget{
		GroupID:    groupID,
		CategoryID: categoryID,
		PeriodKey:  periodKey,
		Amount:     amount,
	})
}

// SetBudgets sets multiple category budgets for a period in one batch.
// All inputs are validated before anything is written.
func (s *BudgetService) SetBudgets(groupID uuid.UUID, periodKey string, inputs []BudgetInput) (*PeriodBudgetSummary, error) {
	budgets := make([]*domain.Budget, len(inputs))
	for i, input := range inputs {
		if err := s.validateBudget(groupID, input.CategoryID, periodKey, input.Amount); err != nil {
			return nil, err
		}
		budgets[i] = &domain.Budget{
			GroupID:    groupID,
			CategoryID: input.CategoryID,
			PeriodKey:  periodKey,
			Amount:     input.Amount,
		}
	}

	if err := s.budgetRepo.UpsertBatch(budgets); err != nil {
		return nil, err
	}
	return s.GetPeriodStatus(groupID, periodKey)
}

// DeleteBudget removes one category budget for a period
func (s *BudgetService) DeleteBudget(groupID, categoryID uuid.UUID, periodKey string) error {
	if _, _, err := util.ParseMonthKey(periodKey); err != nil {
		return domain.ErrInvalidPeriodKey
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return err
	}
	return s.budgetRepo.Delete(groupID, categoryID, periodKey)
}

// GetPeriodStatus reports budget utilization for every budgeted category in
// the period: spend inside the period bounds against the planned amount.
func (s *BudgetService) GetPeriodStatus(groupID uuid.UUID, periodKey string) (*PeriodBudgetSummary, error) {
	year, month, err := util.ParseMonthKey(periodKey)
	if err != nil {
		return nil, domain.ErrInvalidPeriodKey
	}
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.GetByPeriod(groupID, periodKey)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.AllByGroup(groupID)
	if err != nil {
		return nil, err
	}

	categoryBudgets := make([]ledger.CategoryBudget, len(budgets))
	names := make(map[uuid.UUID]string, len(budgets))
	for i, b := range budgets {
		categoryBudgets[i] = ledger.CategoryBudget{CategoryID: b.CategoryID, Amount: b.Amount}
		names[b.CategoryID] = b.CategoryName
	}

	statuses := ledger.ComputeBudgetStatus(categoryBudgets, toLedgerExpenses(expenses), util.MonthBounds(year, month))

	summary := &PeriodBudgetSummary{
		PeriodKey:  periodKey,
		Categories: make([]BudgetStatusEntry, len(statuses)),
	}
	for i, status := range statuses {
		summary.TotalBudget += status.BudgetAmount
		summary.TotalSpent += status.SpentAmount
		summary.TotalRemaining += status.RemainingAmount
		summary.Categories[i] = BudgetStatusEntry{
			CategoryID:         status.CategoryID,
			CategoryName:       names[status.CategoryID],
			BudgetAmount:       status.BudgetAmount,
			SpentAmount:        status.SpentAmount,
			RemainingAmount:    status.RemainingAmount,
			UtilizationPercent: status.UtilizationPercent,
			OverBudget:         status.OverBudget,
		}
	}
	return summary, nil
}

func (s *BudgetService) validateBudget(groupID, categoryID uuid.UUID, periodKey string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}
	if _, _, err := util.ParseMonthKey(periodKey); err != nil {
		return domain.ErrInvalidPeriodKey
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category.GroupID != groupID {
		return domain.ErrCategoryNotFound
	}
	return nil
}
