package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/criteria"
	"sales/src/shared/domain/transaction"
	sqlcriteria "sales/src/shared/infrastructure/criteria"
)

// SalePostgresRepository implementa SaleRepository usando PostgreSQL
type SalePostgresRepository struct {
	db        *sql.DB
	converter *sqlcriteria.SQLCriteriaConverter
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) *SalePostgresRepository {
	return &SalePostgresRepository{
		db:        db,
		converter: sqlcriteria.NewSQLCriteriaConverter(),
	}
}

// Create persiste la venta con sus items y pagos dentro de la
// transacción del coordinador (DDD Aggregate)
func (r *SalePostgresRepository) Create(ctx context.Context, tx transaction.Tx, sale *entity.Sale) error {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}

	// 1. Insertar venta (aggregate root)
	querySale := `
		INSERT INTO sales (
			id, sequence, public_id, client_id, discount, value,
			status, requires_approval, delivery_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err = sqlTx.ExecContext(ctx, querySale,
		sale.ID,
		sale.Sequence,
		sale.PublicID,
		sale.ClientID,
		sale.Discount,
		sale.Value,
		sale.Status,
		sale.RequiresApproval,
		sale.DeliveryDate,
		sale.CreatedAt,
		sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving sale: %w", err)
	}

	// 2. Insertar items y pagos (entities dentro del aggregate)
	if err := r.insertChildren(ctx, sqlTx, sale); err != nil {
		return err
	}

	return nil
}

// Update actualiza la fila de la venta y reemplaza por completo sus
// items y pagos. El reemplazo total evita reconciliar diffs renglón por
// renglón.
func (r *SalePostgresRepository) Update(ctx context.Context, tx transaction.Tx, sale *entity.Sale) error {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}

	// 1. Actualizar venta (aggregate root)
	querySale := `
		UPDATE sales
		SET discount = $2, value = $3, status = $4,
		    requires_approval = $5, delivery_date = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := sqlTx.ExecContext(ctx, querySale,
		sale.ID,
		sale.Discount,
		sale.Value,
		sale.Status,
		sale.RequiresApproval,
		sale.DeliveryDate,
		sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating sale: %w", err)
	}
	if affected == 0 {
		return entity.ErrSaleNotFound
	}

	// 2. Reemplazar items y pagos
	if _, err := sqlTx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
		return fmt.Errorf("error replacing sale items: %w", err)
	}
	if _, err := sqlTx.ExecContext(ctx, `DELETE FROM sale_payments WHERE sale_id = $1`, sale.ID); err != nil {
		return fmt.Errorf("error replacing sale payments: %w", err)
	}

	if err := r.insertChildren(ctx, sqlTx, sale); err != nil {
		return err
	}

	return nil
}

func (r *SalePostgresRepository) insertChildren(ctx context.Context, sqlTx *sql.Tx, sale *entity.Sale) error {
	queryItem := `
		INSERT INTO sale_items (
			id, sale_id, product_id, custom_name, is_custom,
			requires_approval, quantity, unit_price, discount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	for i := range sale.Items {
		item := &sale.Items[i]
		_, err := sqlTx.ExecContext(ctx, queryItem,
			item.ID,
			sale.ID,
			item.ProductID,
			nullableString(item.CustomName),
			item.IsCustom,
			item.RequiresApproval,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
		)
		if err != nil {
			return fmt.Errorf("error saving sale item: %w", err)
		}
	}

	queryPayment := `
		INSERT INTO sale_payments (
			id, sale_id, method, amount, installments
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	for i := range sale.Payments {
		payment := &sale.Payments[i]
		_, err := sqlTx.ExecContext(ctx, queryPayment,
			payment.ID,
			sale.ID,
			payment.Method,
			payment.Amount,
			payment.Installments,
		)
		if err != nil {
			return fmt.Errorf("error saving sale payment: %w", err)
		}
	}

	return nil
}

// FindByID carga el aggregate completo (items + pagos)
func (r *SalePostgresRepository) FindByID(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	querySale := `
		SELECT id, sequence, public_id, client_id, discount, value,
		       status, requires_approval, delivery_date, created_at, updated_at
		FROM sales
		WHERE id = $1
	`

	sale := &entity.Sale{}
	err := r.db.QueryRowContext(ctx, querySale, saleID).Scan(
		&sale.ID,
		&sale.Sequence,
		&sale.PublicID,
		&sale.ClientID,
		&sale.Discount,
		&sale.Value,
		&sale.Status,
		&sale.RequiresApproval,
		&sale.DeliveryDate,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding sale: %w", err)
	}

	if err := r.loadChildren(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *SalePostgresRepository) loadChildren(ctx context.Context, sale *entity.Sale) error {
	queryItems := `
		SELECT id, product_id, custom_name, is_custom,
		       requires_approval, quantity, unit_price, discount
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, queryItems, sale.ID)
	if err != nil {
		return fmt.Errorf("error finding sale items: %w", err)
	}
	defer rows.Close()

	sale.Items = nil
	for rows.Next() {
		var item entity.SaleItem
		var productID uuid.NullUUID
		var customName sql.NullString
		if err := rows.Scan(
			&item.ID,
			&productID,
			&customName,
			&item.IsCustom,
			&item.RequiresApproval,
			&item.Quantity,
			&item.UnitPrice,
			&item.Discount,
		); err != nil {
			return fmt.Errorf("error scanning sale item: %w", err)
		}
		item.SaleID = sale.ID
		if productID.Valid {
			id := productID.UUID
			item.ProductID = &id
		}
		item.CustomName = customName.String
		sale.Items = append(sale.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading sale items: %w", err)
	}

	queryPayments := `
		SELECT id, method, amount, installments
		FROM sale_payments
		WHERE sale_id = $1
		ORDER BY id
	`

	payRows, err := r.db.QueryContext(ctx, queryPayments, sale.ID)
	if err != nil {
		return fmt.Errorf("error finding sale payments: %w", err)
	}
	defer payRows.Close()

	sale.Payments = nil
	for payRows.Next() {
		var payment entity.Payment
		if err := payRows.Scan(
			&payment.ID,
			&payment.Method,
			&payment.Amount,
			&payment.Installments,
		); err != nil {
			return fmt.Errorf("error scanning sale payment: %w", err)
		}
		payment.SaleID = sale.ID
		sale.Payments = append(sale.Payments, payment)
	}
	if err := payRows.Err(); err != nil {
		return fmt.Errorf("error reading sale payments: %w", err)
	}

	return nil
}

// Search retorna la página pedida y el total de coincidencias. Los
// filtros exactos pasan por Criteria; la búsqueda de texto libre
// (public_id o nombre del cliente) se arma aparte porque es una
// condición OR.
func (r *SalePostgresRepository) Search(ctx context.Context, query port.SaleQuery) ([]*entity.Sale, int, error) {
	builder := criteria.NewCriteriaBuilder()
	if query.Status != "" {
		builder.WithFilter("s.status", criteria.OpEqual, string(query.Status))
	}
	if query.ClientID != nil {
		builder.WithFilter("s.client_id", criteria.OpEqual, *query.ClientID)
	}
	if query.From != nil {
		builder.WithFilter("s.created_at", criteria.OpGreaterThanOrEqual, *query.From)
	}
	if query.To != nil {
		// Rango semiabierto: "to" es una fecha, cubre el día completo
		builder.WithFilter("s.created_at", criteria.OpLessThan, query.To.AddDate(0, 0, 1))
	}
	builder.WithOrder("s.sequence", criteria.DESC)
	builder.WithPagination(query.PageSize, (query.Page-1)*query.PageSize)
	crit := builder.Build()

	baseQuery := `
		SELECT s.id, s.sequence, s.public_id, s.client_id, s.discount, s.value,
		       s.status, s.requires_approval, s.delivery_date, s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
	`
	baseCount := `
		SELECT COUNT(*)
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
	`

	selectSQL, args := r.converter.ToSelectSQL(baseQuery, crit)
	countSQL, countArgs := r.converter.ToCountSQL(baseCount, crit)

	if query.Search != "" {
		selectSQL, args = appendSearchClause(selectSQL, args, query.Search)
		countSQL, countArgs = appendSearchClause(countSQL, countArgs, query.Search)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sales: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale := &entity.Sale{}
		if err := rows.Scan(
			&sale.ID,
			&sale.Sequence,
			&sale.PublicID,
			&sale.ClientID,
			&sale.Discount,
			&sale.Value,
			&sale.Status,
			&sale.RequiresApproval,
			&sale.DeliveryDate,
			&sale.CreatedAt,
			&sale.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading sales: %w", err)
	}

	for _, sale := range sales {
		if err := r.loadChildren(ctx, sale); err != nil {
			return nil, 0, err
		}
	}

	return sales, total, nil
}

// appendSearchClause inyecta la condición OR de texto libre en el SQL ya
// armado por el conversor, antes de ORDER BY / LIMIT. Reusa un solo
// placeholder para ambas columnas.
func appendSearchClause(query string, args []interface{}, search string) (string, []interface{}) {
	placeholder := fmt.Sprintf("$%d", len(args)+1)
	clause := fmt.Sprintf("(s.public_id ILIKE %s OR c.name ILIKE %s)", placeholder, placeholder)

	tail := ""
	if idx := strings.Index(query, " ORDER BY "); idx >= 0 {
		tail = query[idx:]
		query = query[:idx]
	}

	if strings.Contains(query, " WHERE ") {
		query += " AND " + clause
	} else {
		query += " WHERE " + clause
	}

	return query + tail, append(args, "%"+search+"%")
}

func asSQLTx(tx transaction.Tx) (*sql.Tx, error) {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return sqlTx, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
