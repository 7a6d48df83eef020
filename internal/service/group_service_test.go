package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/testutil"
)

func TestGroupService_CreateGroup(t *testing.T) {
	svc := NewGroupService(testutil.NewMockGroupRepository())

	charge := int64(10000)
	group, err := svc.CreateGroup("Sunrise Building", "USD", &charge)

	require.NoError(t, err)
	assert.Equal(t, "Sunrise Building", group.Name)
	assert.Equal(t, "USD", group.Currency)
	require.NotNil(t, group.ChargePerPeriod)
	assert.Equal(t, int64(10000), *group.ChargePerPeriod)
}

func TestGroupService_CreateGroup_Defaults(t *testing.T) {
	svc := NewGroupService(testutil.NewMockGroupRepository())

	group, err := svc.CreateGroup("Trip", "", nil)

	require.NoError(t, err)
	assert.Equal(t, "EUR", group.Currency)
	assert.Nil(t, group.ChargePerPeriod)
}

func TestGroupService_CreateGroup_Validation(t *testing.T) {
	svc := NewGroupService(testutil.NewMockGroupRepository())

	_, err := svc.CreateGroup("", "EUR", nil)
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateGroup(strings.Repeat("x", domain.MaxGroupNameLength+1), "EUR", nil)
	assert.ErrorIs(t, err, domain.ErrNameTooLong)

	negative := int64(-1)
	_, err = svc.CreateGroup("Flat", "EUR", &negative)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGroupService_UpdateGroup(t *testing.T) {
	repo := testutil.NewMockGroupRepository()
	svc := NewGroupService(repo)

	group, err := svc.CreateGroup("Flat 12", "EUR", nil)
	require.NoError(t, err)

	charge := int64(5000)
	updated, err := svc.UpdateGroup(group.ID, "Flat 12b", "", &charge)

	require.NoError(t, err)
	assert.Equal(t, "Flat 12b", updated.Name)
	// Currency unchanged when empty.
	assert.Equal(t, "EUR", updated.Currency)
	require.NotNil(t, updated.ChargePerPeriod)
	assert.Equal(t, int64(5000), *updated.ChargePerPeriod)
}

func TestGroupService_UpdateGroup_NotFound(t *testing.T) {
	svc := NewGroupService(testutil.NewMockGroupRepository())

	_, err := svc.UpdateGroup(uuid.New(), "Name", "EUR", nil)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestGroupService_DeleteGroup(t *testing.T) {
	repo := testutil.NewMockGroupRepository()
	svc := NewGroupService(repo)

	group, err := svc.CreateGroup("Flat 12", "EUR", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(group.ID))

	_, err = svc.GetGroup(group.ID)
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}
