package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/util"
)

// SettlementService handles settlement business logic
type SettlementService struct {
	settlementRepo  domain.SettlementRepository
	participantRepo domain.ParticipantRepository
	groupRepo       domain.GroupRepository
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	settlementRepo domain.SettlementRepository,
	participantRepo domain.ParticipantRepository,
	groupRepo domain.GroupRepository,
) *SettlementService {
	return &SettlementService{
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		groupRepo:       groupRepo,
	}
}

// RecordSettlement records a real-world payment from one participant to
// another. Both must belong to the group, the amount must be positive, and
// nobody settles with themselves.
func (s *SettlementService) RecordSettlement(groupID, fromID, toID uuid.UUID, amount int64, occurredAt time.Time, note *string) (*domain.Settlement, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if fromID == toID {
		return nil, domain.ErrSelfSettlement
	}

	for _, id := range []uuid.UUID{fromID, toID} {
		participant, err := s.participantRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if participant.GroupID != groupID {
			return nil, domain.ErrParticipantNotFound
		}
	}

	if occurredAt.IsZero() {
		occurredAt = util.DateOf(time.Now())
	}

	return s.settlementRepo.Create(&domain.Settlement{
		GroupID:    groupID,
		FromID:     fromID,
		ToID:       toID,
		Amount:     amount,
		OccurredAt: occurredAt,
		Note:       note,
	})
}

// ListSettlements retrieves all settlements for a group
func (s *SettlementService) ListSettlements(groupID uuid.UUID) ([]*domain.Settlement, error) {
	if _, err := s.groupRepo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListByGroup(groupID)
}

// DeleteSettlement removes a recorded settlement
func (s *SettlementService) DeleteSettlement(id uuid.UUID) error {
	return s.settlementRepo.Delete(id)
}
