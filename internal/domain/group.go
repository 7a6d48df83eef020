package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is the scoping unit for a shared-cost ledger: a trip, a building,
// a household. All participants, expenses and settlements belong to exactly
// one group.
type Group struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	// ChargePerPeriod is the fixed recurring obligation per period in minor
	// units (e.g. monthly building maintenance). Nil when the group has no
	// recurring charge.
	ChargePerPeriod *int64    `json:"chargePerPeriod,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type GroupRepository interface {
	Create(group *Group) (*Group, error)
	GetByID(id uuid.UUID) (*Group, error)
	Update(group *Group) (*Group, error)
	Delete(id uuid.UUID) error
}
