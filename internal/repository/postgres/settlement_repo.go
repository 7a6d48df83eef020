package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// SettlementRepository implements domain.SettlementRepository using PostgreSQL
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// Create records a settlement payment
func (r *SettlementRepository) Create(settlement *domain.Settlement) (*domain.Settlement, error) {
	ctx := context.Background()

	settlement.ID = uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO settlements (id, group_id, from_id, to_id, amount, occurred_at, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, group_id, from_id, to_id, amount, occurred_at, note, created_at`,
		settlement.ID, settlement.GroupID, settlement.FromID, settlement.ToID,
		settlement.Amount, settlement.OccurredAt, settlement.Note,
	)
	return scanSettlement(row)
}

// GetByID retrieves a settlement by its ID
func (r *SettlementRepository) GetByID(id uuid.UUID) (*domain.Settlement, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, group_id, from_id, to_id, amount, occurred_at, note, created_at
		FROM settlements
		WHERE id = $1`,
		id,
	)
	settlement, err := scanSettlement(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSettlementNotFound
	}
	return settlement, err
}

// ListByGroup retrieves all settlements for a group, newest first
func (r *SettlementRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Settlement, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, from_id, to_id, amount, occurred_at, note, created_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY occurred_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settlements := []*domain.Settlement{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, s)
	}
	return settlements, rows.Err()
}

// Delete removes a settlement
func (r *SettlementRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}
	return nil
}

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(&s.ID, &s.GroupID, &s.FromID, &s.ToID, &s.Amount, &s.OccurredAt, &s.Note, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
