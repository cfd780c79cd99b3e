package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewMonthlyGoal_Validation(t *testing.T) {
	goal, err := NewMonthlyGoal(8, 2026, decimal.RequireFromString("15000.00"))
	require.NoError(t, err)
	require.Equal(t, 8, goal.Month)

	_, err = NewMonthlyGoal(0, 2026, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidMonth)

	_, err = NewMonthlyGoal(13, 2026, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidMonth)

	_, err = NewMonthlyGoal(1, 0, decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidYear)

	_, err = NewMonthlyGoal(1, 2026, decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, ErrInvalidGoalTarget)
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(12, 2026)
	require.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	// El límite superior es exclusivo y cruza el año
	require.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestNewExpense_Validation(t *testing.T) {
	expense, err := NewExpense("tela para cortinas", "insumos", decimal.RequireFromString("320.50"), nil)
	require.NoError(t, err)
	require.False(t, expense.SpentAt.IsZero())

	_, err = NewExpense("", "", decimal.RequireFromString("10.00"), nil)
	require.ErrorIs(t, err, ErrExpenseDescriptionRequired)

	_, err = NewExpense("algo", "", decimal.Zero, nil)
	require.ErrorIs(t, err, ErrInvalidExpenseAmount)
}
