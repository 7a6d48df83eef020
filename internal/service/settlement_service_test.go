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

func settlementFixture(t *testing.T) (*SettlementService, *domain.Group, *domain.Participant, *domain.Participant) {
	t.Helper()

	groupRepo := testutil.NewMockGroupRepository()
	partRepo := testutil.NewMockParticipantRepository()
	settlementRepo := testutil.NewMockSettlementRepository()

	group := groupRepo.AddGroup(&domain.Group{Name: "Roadtrip", Currency: "EUR"})
	one := decimal.NewFromInt(1)
	alice := partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Alice", Weight: one})
	bob := partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Bob", Weight: one})

	return NewSettlementService(settlementRepo, partRepo, groupRepo), group, alice, bob
}

func TestSettlementService_RecordSettlement(t *testing.T) {
	svc, group, alice, bob := settlementFixture(t)

	note := "cash"
	settlement, err := svc.RecordSettlement(group.ID, bob.ID, alice.ID, 2500, time.Now(), &note)

	require.NoError(t, err)
	assert.Equal(t, bob.ID, settlement.FromID)
	assert.Equal(t, alice.ID, settlement.ToID)
	assert.Equal(t, int64(2500), settlement.Amount)
	require.NotNil(t, settlement.Note)
	assert.Equal(t, "cash", *settlement.Note)
}

func TestSettlementService_RecordSettlement_Validation(t *testing.T) {
	svc, group, alice, bob := settlementFixture(t)

	_, err := svc.RecordSettlement(group.ID, bob.ID, alice.ID, 0, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.RecordSettlement(group.ID, bob.ID, alice.ID, -100, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.RecordSettlement(group.ID, bob.ID, bob.ID, 100, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrSelfSettlement)

	_, err = svc.RecordSettlement(group.ID, uuid.New(), alice.ID, 100, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = svc.RecordSettlement(uuid.New(), bob.ID, alice.ID, 100, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestSettlementService_RecordSettlement_ParticipantFromOtherGroup(t *testing.T) {
	groupRepo := testutil.NewMockGroupRepository()
	partRepo := testutil.NewMockParticipantRepository()
	svc := NewSettlementService(testutil.NewMockSettlementRepository(), partRepo, groupRepo)

	group := groupRepo.AddGroup(&domain.Group{Name: "Roadtrip", Currency: "EUR"})
	other := groupRepo.AddGroup(&domain.Group{Name: "Other", Currency: "EUR"})

	one := decimal.NewFromInt(1)
	alice := partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Alice", Weight: one})
	outsider := partRepo.AddParticipant(&domain.Participant{GroupID: other.ID, DisplayName: "Mallory", Weight: one})

	// The outsider's ID resolves but belongs to another group.
	_, err := svc.RecordSettlement(group.ID, outsider.ID, alice.ID, 100, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestSettlementService_ListAndDelete(t *testing.T) {
	svc, group, alice, bob := settlementFixture(t)

	settlement, err := svc.RecordSettlement(group.ID, bob.ID, alice.ID, 2500, time.Now(), nil)
	require.NoError(t, err)

	settlements, err := svc.ListSettlements(group.ID)
	require.NoError(t, err)
	assert.Len(t, settlements, 1)

	require.NoError(t, svc.DeleteSettlement(settlement.ID))

	settlements, err = svc.ListSettlements(group.ID)
	require.NoError(t, err)
	assert.Empty(t, settlements)
}
