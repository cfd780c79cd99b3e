package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetMonthlyGoalRequest DTO para fijar la meta mensual
type SetMonthlyGoalRequest struct {
	Month  int             `json:"month" binding:"required,gte=1,lte=12"`
	Year   int             `json:"year" binding:"required,gte=1"`
	Target decimal.Decimal `json:"target"`
}

// RecordExpenseRequest DTO para registrar un gasto
type RecordExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SpentAt     *time.Time      `json:"spent_at"`
}
