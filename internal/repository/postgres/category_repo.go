package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	category.ID = uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, group_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, name, created_at, updated_at`,
		category.ID, category.GroupID, category.Name,
	)
	return scanCategory(row)
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, group_id, name, created_at, updated_at
		FROM categories
		WHERE id = $1`,
		id,
	)
	category, err := scanCategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	return category, err
}

// GetByName retrieves a category by name within a group
func (r *CategoryRepository) GetByName(groupID uuid.UUID, name string) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, group_id, name, created_at, updated_at
		FROM categories
		WHERE group_id = $1 AND name = $2`,
		groupID, name,
	)
	category, err := scanCategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	return category, err
}

// ListByGroup retrieves all categories for a group ordered by name
func (r *CategoryRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Category, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, name, created_at, updated_at
		FROM categories
		WHERE group_id = $1
		ORDER BY name`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update renames a category
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, group_id, name, created_at, updated_at`,
		category.ID, category.Name,
	)
	updated, err := scanCategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	return updated, err
}

// Delete removes a category
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// HasExpenses reports whether any expense references the category
func (r *CategoryRepository) HasExpenses(id uuid.UUID) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.GroupID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
