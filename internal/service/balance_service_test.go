package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/testutil"
)

type balanceFixture struct {
	svc            *BalanceService
	settlementSvc  *SettlementService
	groupRepo      *testutil.MockGroupRepository
	partRepo       *testutil.MockParticipantRepository
	expenseRepo    *testutil.MockExpenseRepository
	settlementRepo *testutil.MockSettlementRepository
	group          *domain.Group
	alice          *domain.Participant
	bob            *domain.Participant
	carol          *domain.Participant
}

func newBalanceFixture(t *testing.T) *balanceFixture {
	t.Helper()

	groupRepo := testutil.NewMockGroupRepository()
	partRepo := testutil.NewMockParticipantRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	settlementRepo := testutil.NewMockSettlementRepository()

	group := groupRepo.AddGroup(&domain.Group{Name: "Ski trip", Currency: "EUR"})

	f := &balanceFixture{
		svc:            NewBalanceService(partRepo, expenseRepo, settlementRepo, groupRepo),
		settlementSvc:  NewSettlementService(settlementRepo, partRepo, groupRepo),
		groupRepo:      groupRepo,
		partRepo:       partRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		group:          group,
	}
	one := decimal.NewFromInt(1)
	f.alice = partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Alice", Weight: one})
	f.bob = partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Bob", Weight: one})
	f.carol = partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Carol", Weight: one})
	return f
}

// seedExpenses records Alice paying 90.00 and Bob paying 3.00, both split
// equally. Nets: Alice +59.00, Bob -28.00, Carol -31.00.
func (f *balanceFixture) seedExpenses(t *testing.T) {
	t.Helper()

	_, err := f.expenseRepo.Create(&domain.Expense{
		GroupID:    f.group.ID,
		Amount:     9000,
		PayerID:    f.alice.ID,
		OccurredAt: time.Now(),
		Shares: []domain.ExpenseShare{
			{ParticipantID: f.alice.ID, Amount: 3000},
			{ParticipantID: f.bob.ID, Amount: 3000},
			{ParticipantID: f.carol.ID, Amount: 3000},
		},
	})
	require.NoError(t, err)

	_, err = f.expenseRepo.Create(&domain.Expense{
		GroupID:    f.group.ID,
		Amount:     300,
		PayerID:    f.bob.ID,
		OccurredAt: time.Now(),
		Shares: []domain.ExpenseShare{
			{ParticipantID: f.alice.ID, Amount: 100},
			{ParticipantID: f.bob.ID, Amount: 100},
			{ParticipantID: f.carol.ID, Amount: 100},
		},
	})
	require.NoError(t, err)
}

func TestBalanceService_GetBalances(t *testing.T) {
	f := newBalanceFixture(t)
	f.seedExpenses(t)

	balances, err := f.svc.GetBalances(f.group.ID)

	require.NoError(t, err)
	require.Len(t, balances, 3)

	assert.Equal(t, "Alice", balances[0].DisplayName)
	assert.Equal(t, int64(9000), balances[0].TotalPaid)
	assert.Equal(t, int64(3100), balances[0].TotalOwed)
	assert.Equal(t, int64(5900), balances[0].Net)

	assert.Equal(t, "Bob", balances[1].DisplayName)
	assert.Equal(t, int64(-2800), balances[1].Net)

	assert.Equal(t, "Carol", balances[2].DisplayName)
	assert.Equal(t, int64(-3100), balances[2].Net)
}

func TestBalanceService_GetBalances_EmptyGroup(t *testing.T) {
	f := newBalanceFixture(t)

	balances, err := f.svc.GetBalances(f.group.ID)

	require.NoError(t, err)
	require.Len(t, balances, 3)
	for _, b := range balances {
		assert.Equal(t, int64(0), b.Net)
	}
}

func TestBalanceService_GetBalances_SettlementReducesDebt(t *testing.T) {
	f := newBalanceFixture(t)
	f.seedExpenses(t)

	_, err := f.settlementSvc.RecordSettlement(f.group.ID, f.carol.ID, f.alice.ID, 3100, time.Now(), nil)
	require.NoError(t, err)

	balances, err := f.svc.GetBalances(f.group.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2800), balances[0].Net)
	assert.Equal(t, int64(-2800), balances[1].Net)
	assert.Equal(t, int64(0), balances[2].Net)
	assert.Equal(t, int64(-3100), balances[0].NetSettlements)
	assert.Equal(t, int64(3100), balances[2].NetSettlements)
}

func TestBalanceService_GetSuggestions(t *testing.T) {
	f := newBalanceFixture(t)
	f.seedExpenses(t)

	suggestions, err := f.svc.GetSuggestions(f.group.ID)

	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Largest debtor first: Carol owes more than Bob.
	assert.Equal(t, "Carol", suggestions[0].FromName)
	assert.Equal(t, "Alice", suggestions[0].ToName)
	assert.Equal(t, int64(3100), suggestions[0].Amount)

	assert.Equal(t, "Bob", suggestions[1].FromName)
	assert.Equal(t, "Alice", suggestions[1].ToName)
	assert.Equal(t, int64(2800), suggestions[1].Amount)
}

func TestBalanceService_GetSuggestions_ExecutingPlanZeroesBalances(t *testing.T) {
	f := newBalanceFixture(t)
	f.seedExpenses(t)

	suggestions, err := f.svc.GetSuggestions(f.group.ID)
	require.NoError(t, err)

	for _, s := range suggestions {
		_, err := f.settlementSvc.RecordSettlement(f.group.ID, s.FromID, s.ToID, s.Amount, time.Now(), nil)
		require.NoError(t, err)
	}

	balances, err := f.svc.GetBalances(f.group.ID)
	require.NoError(t, err)
	for _, b := range balances {
		assert.Equal(t, int64(0), b.Net)
	}

	suggestions, err = f.svc.GetSuggestions(f.group.ID)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestBalanceService_GetBalances_GroupNotFound(t *testing.T) {
	f := newBalanceFixture(t)

	_, err := f.svc.GetBalances(uuid.New())

	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}
