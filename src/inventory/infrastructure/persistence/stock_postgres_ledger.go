package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sales/src/inventory/domain/entity"
	"sales/src/shared/domain/transaction"
)

// StockPostgresLedger implementa StockLedger sobre PostgreSQL. Las
// mutaciones toman el row lock del producto (SELECT ... FOR UPDATE)
// dentro de la transacción compartida: la validación y el descuento
// ocurren en la misma unidad, sin ventana entre chequeo y escritura.
type StockPostgresLedger struct {
	db *sql.DB
}

// NewStockPostgresLedger crea una nueva instancia del ledger
func NewStockPostgresLedger(db *sql.DB) *StockPostgresLedger {
	return &StockPostgresLedger{
		db: db,
	}
}

// GetProducts retorna los productos pedidos; un resultado corto señala ids inexistentes
func (l *StockPostgresLedger) GetProducts(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, available_quantity, reserved_quantity, created_at
		FROM products
		WHERE id = ANY($1)
	`

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	rows, err := l.db.QueryContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p := &entity.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.AvailableQuantity, &p.ReservedQuantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Reserve mueve qty de available a reserved bajo row lock
func (l *StockPostgresLedger) Reserve(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	sqlTx, err := l.sqlTx(tx)
	if err != nil {
		return err
	}

	name, available, _, err := l.lockProduct(ctx, sqlTx, productID)
	if err != nil {
		return err
	}

	if available < qty {
		return &entity.InsufficientStockError{
			ProductID:   productID.String(),
			ProductName: name,
			Requested:   qty,
			Available:   available,
		}
	}

	query := `
		UPDATE products
		SET available_quantity = available_quantity - $2,
		    reserved_quantity = reserved_quantity + $2
		WHERE id = $1
	`
	if _, err := sqlTx.ExecContext(ctx, query, productID, qty); err != nil {
		return fmt.Errorf("error reserving stock for product %s: %w", productID, err)
	}

	return nil
}

// Release devuelve qty a available; reserved queda con piso en cero
func (l *StockPostgresLedger) Release(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	sqlTx, err := l.sqlTx(tx)
	if err != nil {
		return err
	}

	if _, _, _, err := l.lockProduct(ctx, sqlTx, productID); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET available_quantity = available_quantity + $2,
		    reserved_quantity = GREATEST(reserved_quantity - $2, 0)
		WHERE id = $1
	`
	if _, err := sqlTx.ExecContext(ctx, query, productID, qty); err != nil {
		return fmt.Errorf("error releasing stock for product %s: %w", productID, err)
	}

	return nil
}

// Consume descuenta reserved definitivamente; available no se toca
func (l *StockPostgresLedger) Consume(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	sqlTx, err := l.sqlTx(tx)
	if err != nil {
		return err
	}

	if _, _, _, err := l.lockProduct(ctx, sqlTx, productID); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET reserved_quantity = GREATEST(reserved_quantity - $2, 0)
		WHERE id = $1
	`
	if _, err := sqlTx.ExecContext(ctx, query, productID, qty); err != nil {
		return fmt.Errorf("error consuming stock for product %s: %w", productID, err)
	}

	return nil
}

// lockProduct toma el row lock del producto y retorna su estado actual
func (l *StockPostgresLedger) lockProduct(ctx context.Context, tx *sql.Tx, productID uuid.UUID) (string, int, int, error) {
	query := `
		SELECT name, available_quantity, reserved_quantity
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var name string
	var available, reserved int
	err := tx.QueryRowContext(ctx, query, productID).Scan(&name, &available, &reserved)
	if err == sql.ErrNoRows {
		return "", 0, 0, entity.ErrProductNotFound
	}
	if err != nil {
		return "", 0, 0, fmt.Errorf("error locking product %s: %w", productID, err)
	}

	return name, available, reserved, nil
}

// sqlTx valida que la transacción recibida sea la de esta implementación
func (l *StockPostgresLedger) sqlTx(tx transaction.Tx) (*sql.Tx, error) {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return nil, fmt.Errorf("stock ledger: unexpected transaction type %T", tx)
	}
	return sqlTx, nil
}
