package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category labels expenses for budget accounting.
type Category struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"groupId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	GetByName(groupID uuid.UUID, name string) (*Category, error)
	ListByGroup(groupID uuid.UUID) ([]*Category, error)
	Update(category *Category) (*Category, error)
	Delete(id uuid.UUID) error
	HasExpenses(id uuid.UUID) (bool, error)
}
