package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseDescriptionRequired = errors.New("description is required")
	ErrInvalidExpenseAmount       = errors.New("amount must be greater than 0")
)

// Expense gasto registrado contra el resultado del mes
type Expense struct {
	ID          uuid.UUID
	Description string
	Category    string
	Amount      decimal.Decimal
	SpentAt     time.Time
	CreatedAt   time.Time
}

// NewExpense crea un gasto validado. Sin fecha explícita se usa el
// momento del registro.
func NewExpense(description, category string, amount decimal.Decimal, spentAt *time.Time) (*Expense, error) {
	if description == "" {
		return nil, ErrExpenseDescriptionRequired
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidExpenseAmount
	}

	now := time.Now().UTC()
	at := now
	if spentAt != nil {
		at = *spentAt
	}

	return &Expense{
		ID:          uuid.New(),
		Description: description,
		Category:    category,
		Amount:      amount,
		SpentAt:     at,
		CreatedAt:   now,
	}, nil
}
