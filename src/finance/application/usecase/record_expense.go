package usecase

import (
	"context"

	"go.uber.org/zap"

	"sales/src/finance/application/request"
	"sales/src/finance/domain/entity"
	"sales/src/finance/domain/port"
)

// RecordExpenseUseCase caso de uso para registrar un gasto
type RecordExpenseUseCase struct {
	repo   port.FinanceRepository
	logger *zap.Logger
}

// NewRecordExpenseUseCase crea una nueva instancia del caso de uso
func NewRecordExpenseUseCase(repo port.FinanceRepository, logger *zap.Logger) *RecordExpenseUseCase {
	return &RecordExpenseUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute ejecuta el registro del gasto
func (uc *RecordExpenseUseCase) Execute(ctx context.Context, req *request.RecordExpenseRequest) (*entity.Expense, error) {
	expense, err := entity.NewExpense(req.Description, req.Category, req.Amount, req.SpentAt)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveExpense(ctx, expense); err != nil {
		return nil, err
	}

	uc.logger.Info("expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("amount", expense.Amount.StringFixed(2)),
	)

	return expense, nil
}
