package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"sales/src/finance/domain/entity"
	"sales/src/shared/domain/criteria"
)

var ErrGoalNotFound = errors.New("monthly goal not found")

// MonthlySummary agregados del mes calculados en la base
type MonthlySummary struct {
	DeliveredCount int
	Revenue        decimal.Decimal
	Expenses       decimal.Decimal
}

// FinanceRepository persistencia del módulo de finanzas. La agregación
// de ingresos corre en la base, no en memoria.
type FinanceRepository interface {
	// UpsertGoal fija la meta del mes, reemplazando la anterior si existe
	UpsertGoal(ctx context.Context, goal *entity.MonthlyGoal) error

	// FindGoal busca la meta de un mes
	FindGoal(ctx context.Context, month, year int) (*entity.MonthlyGoal, error)

	// SaveExpense registra un gasto
	SaveExpense(ctx context.Context, expense *entity.Expense) error

	// SearchExpenses lista gastos según criteria
	SearchExpenses(ctx context.Context, crit criteria.Criteria) ([]*entity.Expense, int, error)

	// Summarize agrega ventas entregadas y gastos en el rango [from, to)
	Summarize(ctx context.Context, from, to time.Time) (*MonthlySummary, error)
}
