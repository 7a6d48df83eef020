package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settlement records money that actually moved outside the ledger to reduce
// a debt: FromID paid ToID.
type Settlement struct {
	ID      uuid.UUID `json:"id"`
	GroupID uuid.UUID `json:"groupId"`
	FromID  uuid.UUID `json:"fromId"`
	ToID    uuid.UUID `json:"toId"`
	// Amount in minor currency units, always positive.
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
	Note       *string   `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SettlementRepository interface {
	Create(settlement *Settlement) (*Settlement, error)
	GetByID(id uuid.UUID) (*Settlement, error)
	ListByGroup(groupID uuid.UUID) ([]*Settlement, error)
	Delete(id uuid.UUID) error
}
