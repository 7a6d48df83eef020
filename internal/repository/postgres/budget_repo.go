package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const upsertBudgetSQL = `
	INSERT INTO budgets (id, group_id, category_id, period_key, amount)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (group_id, category_id, period_key)
	DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
	RETURNING id, group_id, category_id, period_key, amount, created_at, updated_at`

// Upsert creates or replaces a category budget for a period
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, upsertBudgetSQL,
		uuid.New(), budget.GroupID, budget.CategoryID, budget.PeriodKey, budget.Amount,
	)
	return scanBudget(row)
}

// UpsertBatch upserts several budgets in one transaction
func (r *BudgetRepository) UpsertBatch(budgets []*domain.Budget) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, budget := range budgets {
		row := tx.QueryRow(ctx, upsertBudgetSQL,
			uuid.New(), budget.GroupID, budget.CategoryID, budget.PeriodKey, budget.Amount,
		)
		if _, err := scanBudget(row); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByPeriod retrieves a group's budgets for a period joined with category
// names, ordered by category name
func (r *BudgetRepository) GetByPeriod(groupID uuid.UUID, periodKey string) ([]*domain.BudgetWithCategory, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT b.category_id, c.name, b.amount
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.group_id = $1 AND b.period_key = $2
		ORDER BY c.name`,
		groupID, periodKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []*domain.BudgetWithCategory{}
	for rows.Next() {
		var b domain.BudgetWithCategory
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.Amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, &b)
	}
	return budgets, rows.Err()
}

// Delete removes one category budget for a period
func (r *BudgetRepository) Delete(groupID uuid.UUID, categoryID uuid.UUID, periodKey string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM budgets
		WHERE group_id = $1 AND category_id = $2 AND period_key = $3`,
		groupID, categoryID, periodKey,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.ID, &b.GroupID, &b.CategoryID, &b.PeriodKey, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
