package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"sales/src/finance/application/response"
	"sales/src/finance/domain/entity"
	"sales/src/finance/domain/port"
)

// MonthlyReportUseCase caso de uso para el reporte mensual: ingresos de
// ventas entregadas contra la meta, netos de gastos
type MonthlyReportUseCase struct {
	repo port.FinanceRepository
}

// NewMonthlyReportUseCase crea una nueva instancia del caso de uso
func NewMonthlyReportUseCase(repo port.FinanceRepository) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{
		repo: repo,
	}
}

// Execute genera el reporte del mes
func (uc *MonthlyReportUseCase) Execute(ctx context.Context, month, year int) (*response.MonthlyReportResponse, error) {
	if month < 1 || month > 12 {
		return nil, entity.ErrInvalidMonth
	}
	if year < 1 {
		return nil, entity.ErrInvalidYear
	}

	from, to := entity.MonthRange(month, year)

	summary, err := uc.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &response.MonthlyReportResponse{
		Month:          month,
		Year:           year,
		DeliveredCount: summary.DeliveredCount,
		Revenue:        summary.Revenue,
		Expenses:       summary.Expenses,
		Net:            summary.Revenue.Sub(summary.Expenses),
	}

	// La meta es opcional: el reporte sale igual sin ella
	goal, err := uc.repo.FindGoal(ctx, month, year)
	if err != nil && !errors.Is(err, port.ErrGoalNotFound) {
		return nil, err
	}
	if goal != nil {
		report.Goal = &goal.Target
		if goal.Target.IsPositive() {
			progress := summary.Revenue.Div(goal.Target).Mul(decimal.NewFromInt(100)).Round(2)
			report.GoalProgress = &progress
		}
	}

	return report, nil
}
