package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/testutil"
	"github.com/tallyhq/tally-backend/internal/util"
)

type expenseFixture struct {
	svc          *ExpenseService
	groupRepo    *testutil.MockGroupRepository
	partRepo     *testutil.MockParticipantRepository
	categoryRepo *testutil.MockCategoryRepository
	expenseRepo  *testutil.MockExpenseRepository
	group        *domain.Group
	alice        *domain.Participant
	bob          *domain.Participant
	carol        *domain.Participant
}

// newExpenseFixture seeds a three-person group. Alice joined first, then
// Bob, then Carol, so splits resolve remainders in that order.
func newExpenseFixture(t *testing.T) *expenseFixture {
	t.Helper()

	groupRepo := testutil.NewMockGroupRepository()
	partRepo := testutil.NewMockParticipantRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()

	group := groupRepo.AddGroup(&domain.Group{Name: "Flat 12", Currency: "EUR"})

	f := &expenseFixture{
		svc:          NewExpenseService(expenseRepo, partRepo, categoryRepo, groupRepo),
		groupRepo:    groupRepo,
		partRepo:     partRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		group:        group,
	}
	f.alice = partRepo.AddParticipant(&domain.Participant{
		GroupID:     group.ID,
		DisplayName: "Alice",
		Weight:      decimal.NewFromInt(3),
		JoinedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	f.bob = partRepo.AddParticipant(&domain.Participant{
		GroupID:     group.ID,
		DisplayName: "Bob",
		Weight:      decimal.NewFromInt(2),
		JoinedAt:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	f.carol = partRepo.AddParticipant(&domain.Participant{
		GroupID:     group.ID,
		DisplayName: "Carol",
		Weight:      decimal.NewFromInt(2),
		JoinedAt:    time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	})
	return f
}

func shareAmounts(expense *domain.Expense) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(expense.Shares))
	for _, s := range expense.Shares {
		out[s.ParticipantID] = s.Amount
	}
	return out
}

// When no date is given the expense is stamped with today's date at midnight
// UTC. A wall-clock time would push a last-day-of-month expense outside its
// month's inclusive bounds and out of budget accounting.
func TestExpenseService_CreateExpense_DefaultDateIsDayGranular(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Groceries",
		Amount:      100,
		PayerID:     f.alice.ID,
		SplitType:   SplitTypeEqual,
	})

	require.NoError(t, err)
	assert.Equal(t, time.UTC, expense.OccurredAt.Location())
	h, m, s := expense.OccurredAt.Clock()
	assert.Zero(t, h)
	assert.Zero(t, m)
	assert.Zero(t, s)
	assert.Equal(t, util.MonthKey(time.Now()), util.MonthKey(expense.OccurredAt))
}

func TestExpenseService_CreateExpense_EqualSplit(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Groceries",
		Amount:      100,
		PayerID:     f.alice.ID,
		SplitType:   SplitTypeEqual,
	})

	require.NoError(t, err)
	require.Len(t, expense.Shares, 3)
	// Remainder goes to the earliest-joined participants.
	assert.Equal(t, f.alice.ID, expense.Shares[0].ParticipantID)
	assert.Equal(t, int64(34), expense.Shares[0].Amount)
	assert.Equal(t, int64(33), expense.Shares[1].Amount)
	assert.Equal(t, int64(33), expense.Shares[2].Amount)
}

func TestExpenseService_CreateExpense_DefaultsToEqualSplit(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Taxi",
		Amount:      900,
		PayerID:     f.bob.ID,
	})

	require.NoError(t, err)
	for _, s := range expense.Shares {
		assert.Equal(t, int64(300), s.Amount)
	}
}

func TestExpenseService_CreateExpense_WeightedSplit(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Rent",
		Amount:      1000,
		PayerID:     f.alice.ID,
		SplitType:   SplitTypeWeighted,
	})

	require.NoError(t, err)
	amounts := shareAmounts(expense)
	assert.Equal(t, int64(428), amounts[f.alice.ID])
	assert.Equal(t, int64(286), amounts[f.bob.ID])
	assert.Equal(t, int64(286), amounts[f.carol.ID])
}

func TestExpenseService_CreateExpense_PercentageSplit(t *testing.T) {
	f := newExpenseFixture(t)

	fifty := decimal.NewFromInt(50)
	thirty := decimal.NewFromInt(30)
	twenty := decimal.NewFromInt(20)
	f.alice.PercentShare = &fifty
	f.bob.PercentShare = &thirty
	f.carol.PercentShare = &twenty

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Internet",
		Amount:      1001,
		PayerID:     f.carol.ID,
		SplitType:   SplitTypePercentage,
	})

	require.NoError(t, err)
	amounts := shareAmounts(expense)
	assert.Equal(t, int64(501), amounts[f.alice.ID])
	assert.Equal(t, int64(300), amounts[f.bob.ID])
	assert.Equal(t, int64(200), amounts[f.carol.ID])
}

func TestExpenseService_CreateExpense_ManualSplit(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Dinner",
		Amount:      5000,
		PayerID:     f.alice.ID,
		SplitType:   SplitTypeManual,
		ManualAmounts: map[uuid.UUID]int64{
			f.alice.ID: 2000,
			f.bob.ID:   1800,
			f.carol.ID: 1200,
		},
	})

	require.NoError(t, err)
	amounts := shareAmounts(expense)
	assert.Equal(t, int64(2000), amounts[f.alice.ID])
	assert.Equal(t, int64(1800), amounts[f.bob.ID])
	assert.Equal(t, int64(1200), amounts[f.carol.ID])
}

func TestExpenseService_CreateExpense_ManualSplitMismatch(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Dinner",
		Amount:      5000,
		PayerID:     f.alice.ID,
		SplitType:   SplitTypeManual,
		ManualAmounts: map[uuid.UUID]int64{
			f.alice.ID: 2000,
			f.bob.ID:   1800,
			f.carol.ID: 1100,
		},
	})

	assert.ErrorIs(t, err, ledger.ErrShareMismatch)
}

func TestExpenseService_CreateExpense_SubsetSplit(t *testing.T) {
	f := newExpenseFixture(t)

	expense, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description:    "Concert tickets",
		Amount:         700,
		PayerID:        f.bob.ID,
		SplitType:      SplitTypeEqual,
		ParticipantIDs: []uuid.UUID{f.bob.ID, f.carol.ID},
	})

	require.NoError(t, err)
	require.Len(t, expense.Shares, 2)
	amounts := shareAmounts(expense)
	assert.Equal(t, int64(350), amounts[f.bob.ID])
	assert.Equal(t, int64(350), amounts[f.carol.ID])
}

func TestExpenseService_CreateExpense_UnknownSubsetParticipant(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description:    "Concert tickets",
		Amount:         700,
		PayerID:        f.bob.ID,
		ParticipantIDs: []uuid.UUID{f.bob.ID, uuid.New()},
	})

	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestExpenseService_CreateExpense_PayerNotInGroup(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Groceries",
		Amount:      100,
		PayerID:     uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestExpenseService_CreateExpense_NegativeAmount(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Refund gone wrong",
		Amount:      -50,
		PayerID:     f.alice.ID,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestExpenseService_CreateExpense_CategoryFromOtherGroup(t *testing.T) {
	f := newExpenseFixture(t)

	other := f.groupRepo.AddGroup(&domain.Group{Name: "Other", Currency: "EUR"})
	foreign := f.categoryRepo.AddCategory(&domain.Category{GroupID: other.ID, Name: "Food"})

	_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
		Description: "Groceries",
		Amount:      100,
		PayerID:     f.alice.ID,
		CategoryID:  &foreign.ID,
	})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestExpenseService_CreateExpense_GroupNotFound(t *testing.T) {
	f := newExpenseFixture(t)

	_, err := f.svc.CreateExpense(uuid.New(), CreateExpenseInput{
		Description: "Groceries",
		Amount:      100,
		PayerID:     f.alice.ID,
	})

	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestExpenseService_ListExpenses_Pagination(t *testing.T) {
	f := newExpenseFixture(t)

	for i := 0; i < 5; i++ {
		_, err := f.svc.CreateExpense(f.group.ID, CreateExpenseInput{
			Description: "Coffee",
			Amount:      300,
			PayerID:     f.alice.ID,
		})
		require.NoError(t, err)
	}

	page, err := f.svc.ListExpenses(f.group.ID, &domain.ExpenseFilters{Page: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, int32(3), page.TotalPages)
}
