package usecase

import (
	"context"

	"sales/src/finance/application/response"
	"sales/src/finance/domain/port"
	"sales/src/shared/domain/criteria"
)

// ListExpensesUseCase caso de uso para listar gastos con criteria
type ListExpensesUseCase struct {
	repo port.FinanceRepository
}

// NewListExpensesUseCase crea una nueva instancia del caso de uso
func NewListExpensesUseCase(repo port.FinanceRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		repo: repo,
	}
}

// Execute ejecuta el listado
func (uc *ListExpensesUseCase) Execute(ctx context.Context, crit criteria.Criteria) (*response.ListExpensesResponse, error) {
	expenses, total, err := uc.repo.SearchExpenses(ctx, crit)
	if err != nil {
		return nil, err
	}

	items := make([]response.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		items = append(items, response.ExpenseResponse{
			ExpenseID:   expense.ID,
			Description: expense.Description,
			Category:    expense.Category,
			Amount:      expense.Amount,
			SpentAt:     expense.SpentAt,
		})
	}

	return &response.ListExpensesResponse{
		Items:      items,
		TotalCount: total,
	}, nil
}
