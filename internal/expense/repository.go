package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tripmate/api/internal/expense/split"
)

// Repository handles expense and split data persistence in Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// compile-time check that the repository satisfies the store boundary
var _ Store = (*Repository)(nil)

// CreateExpenseWithSplits inserts the expense row and its split rows inside a
// single transaction, so a failed split insert never strands a splitless
// expense.
func (r *Repository) CreateExpenseWithSplits(ctx context.Context, req *CreateExpenseRequest, shares []split.Share) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (trip_id, activity_id, description, amount, currency, paid_by, split_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, trip_id, activity_id, description, amount, currency, paid_by, split_type, created_at
	`

	e := &Expense{}
	err = tx.QueryRowContext(ctx, expenseQuery,
		req.TripID,
		req.ActivityID,
		req.Description,
		req.Amount,
		req.Currency,
		req.PaidBy,
		req.SplitType,
	).Scan(
		&e.ID,
		&e.TripID,
		&e.ActivityID,
		&e.Description,
		&e.Amount,
		&e.Currency,
		&e.PaidBy,
		&e.SplitType,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (expense_id, user_id, amount, is_settled, settled_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 THEN NOW() ELSE NULL END)
	`
	for _, share := range shares {
		if _, err := tx.ExecContext(ctx, splitQuery, e.ID, share.UserID, share.Amount, share.Settled); err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return e, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.activity_id, e.description, e.amount, e.currency, e.paid_by, e.split_type, e.created_at, u.display_name
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.id = $1
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.TripID,
		&e.ActivityID,
		&e.Description,
		&e.Amount,
		&e.Currency,
		&e.PaidBy,
		&e.SplitType,
		&e.CreatedAt,
		&e.PaidByName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// ListExpensesByTripID retrieves all expenses for a trip, newest first
func (r *Repository) ListExpensesByTripID(ctx context.Context, tripID string) ([]*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.activity_id, e.description, e.amount, e.currency, e.paid_by, e.split_type, e.created_at, u.display_name
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.TripID,
			&e.ActivityID,
			&e.Description,
			&e.Amount,
			&e.Currency,
			&e.PaidBy,
			&e.SplitType,
			&e.CreatedAt,
			&e.PaidByName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// GetSplitsByExpenseIDs retrieves all splits for a set of expenses
func (r *Repository) GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*ExpenseSplit, error) {
	if len(expenseIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, expense_id, user_id, amount, is_settled, settled_at
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*ExpenseSplit
	for rows.Next() {
		s := &ExpenseSplit{}
		if err := rows.Scan(
			&s.ID,
			&s.ExpenseID,
			&s.UserID,
			&s.Amount,
			&s.IsSettled,
			&s.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// DeleteExpense deletes an expense; its splits cascade at the database level
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}

// SettleSplit marks one split as settled. Settling an already-settled split
// rewrites the same state; there is no way back to unsettled.
func (r *Repository) SettleSplit(ctx context.Context, splitID string) (*ExpenseSplit, error) {
	query := `
		UPDATE expense_splits
		SET is_settled = TRUE, settled_at = COALESCE(settled_at, NOW())
		WHERE id = $1
		RETURNING id, expense_id, user_id, amount, is_settled, settled_at
	`

	s := &ExpenseSplit{}
	err := r.db.QueryRowContext(ctx, query, splitID).Scan(
		&s.ID,
		&s.ExpenseID,
		&s.UserID,
		&s.Amount,
		&s.IsSettled,
		&s.SettledAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to settle split: %w", err)
	}

	return s, nil
}
