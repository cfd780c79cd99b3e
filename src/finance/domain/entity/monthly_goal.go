package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year must be greater than 0")
	ErrInvalidGoalTarget = errors.New("target must be greater than or equal to 0")
)

// MonthlyGoal meta de facturación para un mes calendario. Hay a lo sumo
// una meta por (mes, año); volver a fijarla la reemplaza.
type MonthlyGoal struct {
	ID     uuid.UUID
	Month  int
	Year   int
	Target decimal.Decimal
}

// NewMonthlyGoal crea una meta validada
func NewMonthlyGoal(month, year int, target decimal.Decimal) (*MonthlyGoal, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 1 {
		return nil, ErrInvalidYear
	}
	if target.IsNegative() {
		return nil, ErrInvalidGoalTarget
	}

	return &MonthlyGoal{
		ID:     uuid.New(),
		Month:  month,
		Year:   year,
		Target: target,
	}, nil
}

// MonthRange retorna el rango [from, to) del mes de la meta en UTC
func (g *MonthlyGoal) MonthRange() (time.Time, time.Time) {
	return MonthRange(g.Month, g.Year)
}

// MonthRange retorna el rango [from, to) de un mes calendario en UTC
func MonthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
