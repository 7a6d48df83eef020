package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// GroupRepository implements domain.GroupRepository using PostgreSQL
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create creates a new group
func (r *GroupRepository) Create(group *domain.Group) (*domain.Group, error) {
	ctx := context.Background()

	group.ID = uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO groups (id, name, currency, charge_per_period)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, currency, charge_per_period, created_at, updated_at`,
		group.ID, group.Name, group.Currency, group.ChargePerPeriod,
	)
	return scanGroup(row)
}

// GetByID retrieves a group by its ID
func (r *GroupRepository) GetByID(id uuid.UUID) (*domain.Group, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, currency, charge_per_period, created_at, updated_at
		FROM groups
		WHERE id = $1`,
		id,
	)
	group, err := scanGroup(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrGroupNotFound
	}
	return group, err
}

// Update updates a group's name, currency and recurring charge
func (r *GroupRepository) Update(group *domain.Group) (*domain.Group, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE groups
		SET name = $2, currency = $3, charge_per_period = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, name, currency, charge_per_period, created_at, updated_at`,
		group.ID, group.Name, group.Currency, group.ChargePerPeriod,
	)
	updated, err := scanGroup(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrGroupNotFound
	}
	return updated, err
}

// Delete removes a group and, via cascading constraints, everything in it
func (r *GroupRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	err := row.Scan(&g.ID, &g.Name, &g.Currency, &g.ChargePerPeriod, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
