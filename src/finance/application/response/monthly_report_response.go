package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyReportResponse resultado del mes contra la meta
type MonthlyReportResponse struct {
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	DeliveredCount int              `json:"delivered_count"`
	Revenue        decimal.Decimal  `json:"revenue"`
	Expenses       decimal.Decimal  `json:"expenses"`
	Net            decimal.Decimal  `json:"net"`
	Goal           *decimal.Decimal `json:"goal,omitempty"`
	GoalProgress   *decimal.Decimal `json:"goal_progress,omitempty"`
}

// ExpenseResponse gasto en la respuesta de listado
type ExpenseResponse struct {
	ExpenseID   uuid.UUID       `json:"expense_id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     time.Time       `json:"spent_at"`
}

// ListExpensesResponse respuesta paginada de gastos
type ListExpensesResponse struct {
	Items      []ExpenseResponse `json:"items"`
	TotalCount int               `json:"total_count"`
}
