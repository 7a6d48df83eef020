package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/testutil"
)

type budgetFixture struct {
	svc          *BudgetService
	groupRepo    *testutil.MockGroupRepository
	categoryRepo *testutil.MockCategoryRepository
	expenseRepo  *testutil.MockExpenseRepository
	budgetRepo   *testutil.MockBudgetRepository
	group        *domain.Group
	food         *domain.Category
	utilities    *domain.Category
}

func newBudgetFixture(t *testing.T) *budgetFixture {
	t.Helper()

	groupRepo := testutil.NewMockGroupRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository(categoryRepo)

	group := groupRepo.AddGroup(&domain.Group{Name: "Household", Currency: "EUR"})

	return &budgetFixture{
		svc:          NewBudgetService(budgetRepo, categoryRepo, expenseRepo, groupRepo),
		groupRepo:    groupRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		budgetRepo:   budgetRepo,
		group:        group,
		food:         categoryRepo.AddCategory(&domain.Category{GroupID: group.ID, Name: "Food"}),
		utilities:    categoryRepo.AddCategory(&domain.Category{GroupID: group.ID, Name: "Utilities"}),
	}
}

func (f *budgetFixture) addCategorizedExpense(t *testing.T, category *domain.Category, amount int64, occurredAt time.Time) {
	t.Helper()

	payer := uuid.New()
	_, err := f.expenseRepo.Create(&domain.Expense{
		GroupID:    f.group.ID,
		Amount:     amount,
		PayerID:    payer,
		CategoryID: &category.ID,
		OccurredAt: occurredAt,
		Shares:     []domain.ExpenseShare{{ParticipantID: payer, Amount: amount}},
	})
	require.NoError(t, err)
}

func TestBudgetService_SetBudget(t *testing.T) {
	f := newBudgetFixture(t)

	budget, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", 10000)

	require.NoError(t, err)
	assert.Equal(t, int64(10000), budget.Amount)
	assert.Equal(t, "2026-09", budget.PeriodKey)

	// Setting again replaces the amount.
	updated, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", 12000)
	require.NoError(t, err)
	assert.Equal(t, budget.ID, updated.ID)
	assert.Equal(t, int64(12000), updated.Amount)
}

func TestBudgetService_SetBudget_Validation(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.SetBudget(f.group.ID, f.food.ID, "September 2026", 10000)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodKey)

	_, err = f.svc.SetBudget(f.group.ID, uuid.New(), "2026-09", 10000)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	other := f.groupRepo.AddGroup(&domain.Group{Name: "Other", Currency: "EUR"})
	foreign := f.categoryRepo.AddCategory(&domain.Category{GroupID: other.ID, Name: "Food"})
	_, err = f.svc.SetBudget(f.group.ID, foreign.ID, "2026-09", 10000)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestBudgetService_GetPeriodStatus(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", 10000)
	require.NoError(t, err)
	_, err = f.svc.SetBudget(f.group.ID, f.utilities.ID, "2026-09", 5000)
	require.NoError(t, err)

	september := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	f.addCategorizedExpense(t, f.food, 7000, september)
	f.addCategorizedExpense(t, f.utilities, 7500, september)
	// Outside the period, must not count.
	f.addCategorizedExpense(t, f.food, 9999, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	summary, err := f.svc.GetPeriodStatus(f.group.ID, "2026-09")

	require.NoError(t, err)
	assert.Equal(t, int64(15000), summary.TotalBudget)
	assert.Equal(t, int64(14500), summary.TotalSpent)
	assert.Equal(t, int64(500), summary.TotalRemaining)
	require.Len(t, summary.Categories, 2)

	food := summary.Categories[0]
	assert.Equal(t, "Food", food.CategoryName)
	assert.Equal(t, int64(7000), food.SpentAmount)
	assert.Equal(t, int64(3000), food.RemainingAmount)
	assert.Equal(t, "70", food.UtilizationPercent.String())
	assert.False(t, food.OverBudget)

	utilities := summary.Categories[1]
	assert.Equal(t, "Utilities", utilities.CategoryName)
	assert.Equal(t, int64(-2500), utilities.RemainingAmount)
	assert.Equal(t, "150", utilities.UtilizationPercent.String())
	assert.True(t, utilities.OverBudget)
}

// An expense dated on the month's last day counts toward that month, since
// the period bounds are inclusive and stored dates are day-granular.
func TestBudgetService_GetPeriodStatus_LastDayOfMonth(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", 10000)
	require.NoError(t, err)

	f.addCategorizedExpense(t, f.food, 5000, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))

	summary, err := f.svc.GetPeriodStatus(f.group.ID, "2026-09")

	require.NoError(t, err)
	assert.Equal(t, int64(5000), summary.TotalSpent)
	require.Len(t, summary.Categories, 1)
	assert.Equal(t, int64(5000), summary.Categories[0].SpentAmount)
}

func TestBudgetService_GetPeriodStatus_InvalidPeriodKey(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.GetPeriodStatus(f.group.ID, "2026-13")

	assert.ErrorIs(t, err, domain.ErrInvalidPeriodKey)
}

func TestBudgetService_SetBudgets_Batch(t *testing.T) {
	f := newBudgetFixture(t)

	summary, err := f.svc.SetBudgets(f.group.ID, "2026-09", []BudgetInput{
		{CategoryID: f.food.ID, Amount: 10000},
		{CategoryID: f.utilities.ID, Amount: 5000},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15000), summary.TotalBudget)
	assert.Len(t, summary.Categories, 2)
}

func TestBudgetService_SetBudgets_AllOrNothing(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.SetBudgets(f.group.ID, "2026-09", []BudgetInput{
		{CategoryID: f.food.ID, Amount: 10000},
		{CategoryID: uuid.New(), Amount: 5000},
	})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.Empty(t, f.budgetRepo.Budgets)
}

func TestBudgetService_DeleteBudget(t *testing.T) {
	f := newBudgetFixture(t)

	_, err := f.svc.SetBudget(f.group.ID, f.food.ID, "2026-09", 10000)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteBudget(f.group.ID, f.food.ID, "2026-09"))

	summary, err := f.svc.GetPeriodStatus(f.group.ID, "2026-09")
	require.NoError(t, err)
	assert.Empty(t, summary.Categories)
}
