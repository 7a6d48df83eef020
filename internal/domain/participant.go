package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Participant is a member of a group.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	DisplayName string    `json:"displayName"`
	// Weight is used by weighted splits. Positive, defaults to 1.
	Weight decimal.Decimal `json:"weight"`
	// PercentShare is used by percentage splits (0-100). Nil when unset.
	PercentShare *decimal.Decimal `json:"percentShare,omitempty"`
	JoinedAt     time.Time        `json:"joinedAt"`
}

type ParticipantRepository interface {
	Create(participant *Participant) (*Participant, error)
	GetByID(id uuid.UUID) (*Participant, error)
	// ListByGroup returns participants ordered by joined_at then id. This
	// order is the stable input order for split remainder distribution and
	// settlement suggestion tie-breaks.
	ListByGroup(groupID uuid.UUID) ([]*Participant, error)
	Update(participant *Participant) (*Participant, error)
	Delete(id uuid.UUID) error
	// HasActivity reports whether the participant is referenced by any
	// expense, expense share, or settlement.
	HasActivity(id uuid.UUID) (bool, error)
}
