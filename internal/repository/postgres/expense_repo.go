package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create persists an expense together with its shares in one transaction
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	expense.ID = uuid.New()
	row := tx.QueryRow(ctx, `
		INSERT INTO expenses (id, group_id, description, amount, payer_id, category_id, period_key, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, group_id, description, amount, payer_id, category_id, period_key, occurred_at, created_at`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PayerID, expense.CategoryID, expense.PeriodKey, expense.OccurredAt,
	)
	created, err := scanExpense(row)
	if err != nil {
		return nil, err
	}

	for _, share := range expense.Shares {
		_, err := tx.Exec(ctx, `
			INSERT INTO expense_shares (expense_id, participant_id, amount)
			VALUES ($1, $2, $3)`,
			created.ID, share.ParticipantID, share.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("insert share: %w", err)
		}
	}
	created.Shares = expense.Shares

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an expense with its shares
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, group_id, description, amount, payer_id, category_id, period_key, occurred_at, created_at
		FROM expenses
		WHERE id = $1`,
		id,
	)
	expense, err := scanExpense(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}

	shares, err := r.sharesFor(ctx, []uuid.UUID{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.Shares = shares[expense.ID]
	return expense, nil
}

// ListByGroup retrieves a filtered, paginated page of a group's expenses
func (r *ExpenseRepository) ListByGroup(groupID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	ctx := context.Background()

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	where := "WHERE group_id = $1"
	args := []any{groupID}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filters.PeriodKey != nil {
		args = append(args, *filters.PeriodKey)
		where += fmt.Sprintf(" AND period_key = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		where += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		where += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM expenses "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT id, group_id, description, amount, payer_id, category_id, period_key, occurred_at, created_at
		FROM expenses
		%s
		ORDER BY occurred_at DESC, id
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	ids := []uuid.UUID{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shares, err := r.sharesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Shares = shares[e.ID]
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedExpenses{
		Data:       expenses,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// AllByGroup retrieves every expense of the group with shares loaded,
// ordered by occurred_at then id
func (r *ExpenseRepository) AllByGroup(groupID uuid.UUID) ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, description, amount, payer_id, category_id, period_key, occurred_at, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY occurred_at, id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	ids := []uuid.UUID{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shares, err := r.sharesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Shares = shares[e.ID]
	}
	return expenses, nil
}

// Delete removes an expense; its shares go with it via cascade
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// sharesFor loads the shares of the given expenses keyed by expense ID
func (r *ExpenseRepository) sharesFor(ctx context.Context, expenseIDs []uuid.UUID) (map[uuid.UUID][]domain.ExpenseShare, error) {
	shares := make(map[uuid.UUID][]domain.ExpenseShare, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return shares, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT expense_id, participant_id, amount
		FROM expense_shares
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, participant_id`,
		expenseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID uuid.UUID
		var share domain.ExpenseShare
		if err := rows.Scan(&expenseID, &share.ParticipantID, &share.Amount); err != nil {
			return nil, err
		}
		shares[expenseID] = append(shares[expenseID], share)
	}
	return shares, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.GroupID, &e.Description, &e.Amount, &e.PayerID,
		&e.CategoryID, &e.PeriodKey, &e.OccurredAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
