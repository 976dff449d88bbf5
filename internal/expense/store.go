package expense

import (
	"context"

	"github.com/tripmate/api/internal/expense/split"
)

// Store is the persistence boundary for expenses and their splits. The
// Postgres Repository implements it in production; tests use an in-memory
// fake.
type Store interface {
	// CreateExpenseWithSplits inserts the expense and all its splits in one
	// transaction and returns the created expense.
	CreateExpenseWithSplits(ctx context.Context, req *CreateExpenseRequest, shares []split.Share) (*Expense, error)

	// GetExpenseByID returns one expense with its payer name, nil if absent
	GetExpenseByID(ctx context.Context, id string) (*Expense, error)

	// ListExpensesByTripID returns a trip's expenses newest first, with the
	// payer's display name denormalized onto each row
	ListExpensesByTripID(ctx context.Context, tripID string) ([]*Expense, error)

	// GetSplitsByExpenseIDs returns all splits belonging to the given
	// expenses. An empty ID set must return empty without querying.
	GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*ExpenseSplit, error)

	// DeleteExpense deletes an expense; splits go with it via cascade
	DeleteExpense(ctx context.Context, id string) error

	// SettleSplit marks a split settled and stamps settled_at, returning the
	// updated split, or nil if no such split exists
	SettleSplit(ctx context.Context, splitID string) (*ExpenseSplit, error)
}
