package expense

import "time"

// CreateExpenseRequest represents the request to record an expense
type CreateExpenseRequest struct {
	TripID      string   `json:"trip_id" validate:"required"`
	ActivityID  *string  `json:"activity_id,omitempty"`
	Description string   `json:"description" validate:"required,min=1,max=255"`
	Amount      float64  `json:"amount" validate:"required,gt=0"`
	Currency    string   `json:"currency,omitempty"` // defaults to USD
	PaidBy      string   `json:"paid_by,omitempty"`  // defaults to the caller
	SplitType   string   `json:"split_type,omitempty"`
	SplitAmong  []string `json:"split_among" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	TripID      string           `json:"trip_id"`
	ActivityID  *string          `json:"activity_id,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	PaidBy      string           `json:"paid_by"`
	PaidByName  string           `json:"paid_by_name,omitempty"`
	SplitType   string           `json:"split_type"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expense_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	IsSettled bool    `json:"is_settled"`
	SettledAt *string `json:"settled_at,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		ActivityID:  e.ActivityID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		PaidBy:      e.PaidBy,
		PaidByName:  e.PaidByName,
		SplitType:   e.SplitType,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToResponse converts an ExpenseSplit model to a SplitResponse DTO
func (s *ExpenseSplit) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		Amount:    s.Amount,
		IsSettled: s.IsSettled,
	}
	if s.SettledAt != nil {
		t := s.SettledAt.UTC().Format(time.RFC3339)
		resp.SettledAt = &t
	}
	return resp
}

// ToResponse converts an ExpenseWithSplits to its DTO with nested splits
func (e *ExpenseWithSplits) ToResponse() *ExpenseResponse {
	resp := e.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		resp.Splits[i] = s.ToResponse()
	}
	return resp
}
