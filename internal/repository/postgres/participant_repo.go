package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// ParticipantRepository implements domain.ParticipantRepository using PostgreSQL
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Create creates a new participant
func (r *ParticipantRepository) Create(participant *domain.Participant) (*domain.Participant, error) {
	ctx := context.Background()

	participant.ID = uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO participants (id, group_id, display_name, weight, percent_share)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, display_name, weight, percent_share, joined_at`,
		participant.ID, participant.GroupID, participant.DisplayName,
		participant.Weight, participant.PercentShare,
	)
	return scanParticipant(row)
}

// GetByID retrieves a participant by its ID
func (r *ParticipantRepository) GetByID(id uuid.UUID) (*domain.Participant, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, group_id, display_name, weight, percent_share, joined_at
		FROM participants
		WHERE id = $1`,
		id,
	)
	participant, err := scanParticipant(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrParticipantNotFound
	}
	return participant, err
}

// ListByGroup retrieves a group's participants in stable input order
// (joined_at, then id). The split allocator and settlement simplifier rely
// on this order for deterministic tie-breaks.
func (r *ParticipantRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Participant, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, display_name, weight, percent_share, joined_at
		FROM participants
		WHERE group_id = $1
		ORDER BY joined_at, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []*domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// Update updates a participant's display name, weight and percent share
func (r *ParticipantRepository) Update(participant *domain.Participant) (*domain.Participant, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE participants
		SET display_name = $2, weight = $3, percent_share = $4
		WHERE id = $1
		RETURNING id, group_id, display_name, weight, percent_share, joined_at`,
		participant.ID, participant.DisplayName, participant.Weight, participant.PercentShare,
	)
	updated, err := scanParticipant(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrParticipantNotFound
	}
	return updated, err
}

// Delete removes a participant
func (r *ParticipantRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// HasActivity reports whether the participant is referenced by any expense,
// expense share, or settlement
func (r *ParticipantRepository) HasActivity(id uuid.UUID) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM expenses WHERE payer_id = $1)
		    OR EXISTS (SELECT 1 FROM expense_shares WHERE participant_id = $1)
		    OR EXISTS (SELECT 1 FROM settlements WHERE from_id = $1 OR to_id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(&p.ID, &p.GroupID, &p.DisplayName, &p.Weight, &p.PercentShare, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
