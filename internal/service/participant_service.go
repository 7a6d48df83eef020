package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// ParticipantService handles participant business logic
type ParticipantService struct {
	participantRepo domain.ParticipantRepository
	groupRepo       domain.GroupRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(participantRepo domain.ParticipantRepository, groupRepo domain.GroupRepository) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		groupRepo:       groupRepo,
	}
}

// AddParticipant adds a participant to a group. Weight defaults to 1 when
// nil; percentShare stays unset unless provided.
func (s *ParticipantService) AddParticipant(groupID uuid.UUID, displayName string, weight *decimal.Decimal, percentShare *decimal.Decimal) (*domain.Participant, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	if err := validateParticipantInput(displayName, weight, percentShare); err != nil {
		return nil, err
	}

	w := decimal.NewFromInt(1)
	if weight != nil {
		w = *weight
	}

	return s.participantRepo.Create(&domain.Participant{
		GroupID:      groupID,
		DisplayName:  displayName,
		Weight:       w,
		PercentShare: percentShare,
	})
}

// GetParticipant retrieves a participant by ID
func (s *ParticipantService) GetParticipant(id uuid.UUID) (*domain.Participant, error) {
	return s.participantRepo.GetByID(id)
}

// ListParticipants retrieves a group's participants in stable order
func (s *ParticipantService) ListParticipants(groupID uuid.UUID) ([]*domain.Participant, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.participantRepo.ListByGroup(groupID)
}

// UpdateParticipant updates a participant's display name, weight and
// percent share
func (s *ParticipantService) UpdateParticipant(id uuid.UUID, displayName string, weight *decimal.Decimal, percentShare *decimal.Decimal) (*domain.Participant, error) {
	if err := validateParticipantInput(displayName, weight, percentShare); err != nil {
		return nil, err
	}

	participant, err := s.participantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	participant.DisplayName = displayName
	if weight != nil {
		participant.Weight = *weight
	}
	participant.PercentShare = percentShare
	return s.participantRepo.Update(participant)
}

// RemoveParticipant deletes a participant unless expenses or settlements
// still reference them
func (s *ParticipantService) RemoveParticipant(id uuid.UUID) error {
	inUse, err := s.participantRepo.HasActivity(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrParticipantInUse
	}
	return s.participantRepo.Delete(id)
}

func validateParticipantInput(displayName string, weight, percentShare *decimal.Decimal) error {
	if displayName == "" {
		return domain.ErrNameRequired
	}
	if len(displayName) > domain.MaxParticipantNameLength {
		return domain.ErrNameTooLong
	}
	if weight != nil && weight.Sign() <= 0 {
		return domain.ErrInvalidWeight
	}
	if percentShare != nil {
		if percentShare.Sign() < 0 || percentShare.GreaterThan(decimal.NewFromInt(100)) {
			return domain.ErrInvalidPercent
		}
	}
	return nil
}
