package split

import (
	"errors"
	"fmt"
)

// Type is the allocation strategy tag stored on an expense
type Type string

const (
	TypeEqual  Type = "equal"
	TypeCustom Type = "custom"
	TypeFull   Type = "full"
)

// Share is one member's allocated slice of an expense. The payer's own share
// is marked settled at creation time.
type Share struct {
	UserID  string  `json:"user_id"`
	Amount  float64 `json:"amount"`
	Settled bool    `json:"settled"`
}

// Strategy is the interface all allocation strategies implement
type Strategy interface {
	// Calculate computes the share for every member in splitAmong
	Calculate(totalAmount float64, paidBy string, splitAmong []string) ([]Share, error)

	// Type returns the tag identifier for this strategy
	Type() Type
}

// Factory creates split strategies based on the requested tag
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

var (
	ErrNoParticipants  = errors.New("at least one participant is required")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrUnsupportedType = errors.New("split type not implemented")
)

// Create returns the strategy for a tag. The custom and full tags exist in
// the schema but have no implementation yet.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeCustom, TypeFull:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string tag; empty defaults to equal
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	if t == "" {
		t = string(TypeEqual)
	}
	return f.Create(Type(t))
}
