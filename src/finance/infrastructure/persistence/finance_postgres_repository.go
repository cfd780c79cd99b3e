package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sales/src/finance/domain/entity"
	"sales/src/finance/domain/port"
	"sales/src/shared/domain/criteria"
	sqlcriteria "sales/src/shared/infrastructure/criteria"
)

// FinancePostgresRepository implementa FinanceRepository usando PostgreSQL
type FinancePostgresRepository struct {
	db        *sql.DB
	converter *sqlcriteria.SQLCriteriaConverter
}

// NewFinancePostgresRepository crea una nueva instancia del repositorio
func NewFinancePostgresRepository(db *sql.DB) *FinancePostgresRepository {
	return &FinancePostgresRepository{
		db:        db,
		converter: sqlcriteria.NewSQLCriteriaConverter(),
	}
}

// UpsertGoal fija la meta del mes, reemplazando la anterior si existe
func (r *FinancePostgresRepository) UpsertGoal(ctx context.Context, goal *entity.MonthlyGoal) error {
	query := `
		INSERT INTO monthly_goals (id, month, year, target)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (month, year) DO UPDATE SET target = EXCLUDED.target
	`

	_, err := r.db.ExecContext(ctx, query, goal.ID, goal.Month, goal.Year, goal.Target)
	if err != nil {
		return fmt.Errorf("error saving monthly goal: %w", err)
	}
	return nil
}

// FindGoal busca la meta de un mes
func (r *FinancePostgresRepository) FindGoal(ctx context.Context, month, year int) (*entity.MonthlyGoal, error) {
	query := `
		SELECT id, month, year, target
		FROM monthly_goals
		WHERE month = $1 AND year = $2
	`

	goal := &entity.MonthlyGoal{}
	err := r.db.QueryRowContext(ctx, query, month, year).Scan(
		&goal.ID,
		&goal.Month,
		&goal.Year,
		&goal.Target,
	)
	if err == sql.ErrNoRows {
		return nil, port.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding monthly goal: %w", err)
	}

	return goal, nil
}

// SaveExpense registra un gasto
func (r *FinancePostgresRepository) SaveExpense(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO finance_expenses (id, description, category, amount, spent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Description,
		nullableString(expense.Category),
		expense.Amount,
		expense.SpentAt,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving expense: %w", err)
	}
	return nil
}

// SearchExpenses lista gastos según criteria
func (r *FinancePostgresRepository) SearchExpenses(ctx context.Context, crit criteria.Criteria) ([]*entity.Expense, int, error) {
	baseQuery := `
		SELECT id, description, category, amount, spent_at, created_at
		FROM finance_expenses
	`
	baseCount := `
		SELECT COUNT(*)
		FROM finance_expenses
	`

	selectSQL, args := r.converter.ToSelectSQL(baseQuery, crit)
	countSQL, countArgs := r.converter.ToCountSQL(baseCount, crit)

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting expenses: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*entity.Expense
	for rows.Next() {
		expense := &entity.Expense{}
		var category sql.NullString
		if err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&category,
			&expense.Amount,
			&expense.SpentAt,
			&expense.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning expense: %w", err)
		}
		expense.Category = category.String
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading expenses: %w", err)
	}

	return expenses, total, nil
}

// Summarize agrega ventas entregadas y gastos en el rango [from, to).
// El rango usa >= from AND < to para aprovechar los índices de fecha.
func (r *FinancePostgresRepository) Summarize(ctx context.Context, from, to time.Time) (*port.MonthlySummary, error) {
	querySales := `
		SELECT COUNT(*), COALESCE(SUM(value), 0)
		FROM sales
		WHERE status = 'DELIVERED'
			AND delivery_date >= $1
			AND delivery_date < $2
	`

	summary := &port.MonthlySummary{}
	err := r.db.QueryRowContext(ctx, querySales, from, to).Scan(
		&summary.DeliveredCount,
		&summary.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("error summarizing sales: %w", err)
	}

	queryExpenses := `
		SELECT COALESCE(SUM(amount), 0)
		FROM finance_expenses
		WHERE spent_at >= $1
			AND spent_at < $2
	`

	err = r.db.QueryRowContext(ctx, queryExpenses, from, to).Scan(&summary.Expenses)
	if err != nil {
		return nil, fmt.Errorf("error summarizing expenses: %w", err)
	}

	return summary, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
