package domain

import (
	"time"

	"github.com/google/uuid"
)

// Budget is the planned spend for one category in one period, in minor
// currency units.
type Budget struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"groupId"`
	CategoryID uuid.UUID `json:"categoryId"`
	PeriodKey  string    `json:"periodKey"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BudgetWithCategory joins a budget against its category name for display.
type BudgetWithCategory struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       int64     `json:"amount"`
}

type BudgetRepository interface {
	Upsert(budget *Budget) (*Budget, error)
	UpsertBatch(budgets []*Budget) error
	// GetByPeriod returns the group's budgets for a period joined with
	// category names, ordered by category name.
	GetByPeriod(groupID uuid.UUID, periodKey string) ([]*BudgetWithCategory, error)
	Delete(groupID uuid.UUID, categoryID uuid.UUID, periodKey string) error
}
