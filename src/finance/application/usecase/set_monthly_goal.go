package usecase

import (
	"context"

	"go.uber.org/zap"

	"sales/src/finance/application/request"
	"sales/src/finance/domain/entity"
	"sales/src/finance/domain/port"
)

// SetMonthlyGoalUseCase caso de uso para fijar la meta del mes
type SetMonthlyGoalUseCase struct {
	repo   port.FinanceRepository
	logger *zap.Logger
}

// NewSetMonthlyGoalUseCase crea una nueva instancia del caso de uso
func NewSetMonthlyGoalUseCase(repo port.FinanceRepository, logger *zap.Logger) *SetMonthlyGoalUseCase {
	return &SetMonthlyGoalUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute ejecuta la fijación de la meta
func (uc *SetMonthlyGoalUseCase) Execute(ctx context.Context, req *request.SetMonthlyGoalRequest) (*entity.MonthlyGoal, error) {
	goal, err := entity.NewMonthlyGoal(req.Month, req.Year, req.Target)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpsertGoal(ctx, goal); err != nil {
		return nil, err
	}

	uc.logger.Info("monthly goal set",
		zap.Int("month", goal.Month),
		zap.Int("year", goal.Year),
		zap.String("target", goal.Target.StringFixed(2)),
	)

	return goal, nil
}
