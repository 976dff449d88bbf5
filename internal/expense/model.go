package expense

import "time"

// Expense represents a single outlay recorded against a trip
type Expense struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	ActivityID  *string   `json:"activity_id,omitempty"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	PaidBy      string    `json:"paid_by"`
	SplitType   string    `json:"split_type"` // equal, custom, full
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PaidByName string `json:"paid_by_name,omitempty"`
}

// ExpenseSplit is one member's share of one expense. Settling is one-way:
// is_settled never transitions back to false.
type ExpenseSplit struct {
	ID        string     `json:"id"`
	ExpenseID string     `json:"expense_id"`
	UserID    string     `json:"user_id"`
	Amount    float64    `json:"amount"`
	IsSettled bool       `json:"is_settled"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// ExpenseWithSplits combines an expense with its nested splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*ExpenseSplit
}

// Member is one roster entry, supplied by the trip membership component
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// BalanceSummary is a derived, never-stored view: one signed net amount per
// member. Positive means the member is owed money, negative means they owe.
type BalanceSummary struct {
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	Balance  float64 `json:"balance"`
}
