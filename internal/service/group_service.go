package service

import (
	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// GroupService handles group business logic
type GroupService struct {
	groupRepo domain.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo domain.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup creates a group. Currency defaults to EUR when empty;
// chargePerPeriod is the optional recurring obligation in minor units.
func (s *GroupService) CreateGroup(name, currency string, chargePerPeriod *int64) (*domain.Group, error) {
	if err := validateGroupInput(name, chargePerPeriod); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = "EUR"
	}

	return s.groupRepo.Create(&domain.Group{
		Name:            name,
		Currency:        currency,
		ChargePerPeriod: chargePerPeriod,
	})
}

// GetGroup retrieves a group by ID
func (s *GroupService) GetGroup(id uuid.UUID) (*domain.Group, error) {
	return s.groupRepo.GetByID(id)
}

// UpdateGroup updates a group's name, currency and recurring charge
func (s *GroupService) UpdateGroup(id uuid.UUID, name, currency string, chargePerPeriod *int64) (*domain.Group, error) {
	if err := validateGroupInput(name, chargePerPeriod); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	group.Name = name
	if currency != "" {
		group.Currency = currency
	}
	group.ChargePerPeriod = chargePerPeriod
	return s.groupRepo.Update(group)
}

// DeleteGroup removes a group and everything in it
func (s *GroupService) DeleteGroup(id uuid.UUID) error {
	return s.groupRepo.Delete(id)
}

func validateGroupInput(name string, chargePerPeriod *int64) error {
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxGroupNameLength {
		return domain.ErrNameTooLong
	}
	if chargePerPeriod != nil && *chargePerPeriod < 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}
