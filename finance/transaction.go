// Package finance holds the transaction domain model and the client-side
// aggregation used for summaries and charts.
package finance

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

var (
	// ErrInvalidKind indicates an unknown transaction kind.
	ErrInvalidKind = errors.New("invalid transaction kind")
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrMissingCategory indicates an empty category.
	ErrMissingCategory = errors.New("category is required")
)

// Transaction is a single income or expense entry. Amount is in minor
// currency units and always positive; Kind determines the sign.
type Transaction struct {
	ID       string    `json:"id,omitempty"`
	Kind     Kind      `json:"kind"`
	Amount   int64     `json:"amount"`
	Category string    `json:"category"`
	Note     string    `json:"note,omitempty"`
	Date     time.Time `json:"date"`
}

// Validate checks the fields a transaction must carry before it is sent
// to the backend.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

// Signed returns the amount with the sign implied by the kind: positive
// for income, negative for expense.
func (t Transaction) Signed() int64 {
	if t.Kind == Expense {
		return -t.Amount
	}
	return t.Amount
}
