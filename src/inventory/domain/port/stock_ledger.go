package port

import (
	"context"

	"github.com/google/uuid"

	"sales/src/inventory/domain/entity"
	"sales/src/shared/domain/transaction"
)

// StockLedger es el único dueño de los contadores available/reserved de
// cada producto. Las tres operaciones de mutación corren dentro de una
// transacción provista por el coordinador y con exclusividad por
// producto (row lock o equivalente), de modo que dos reservas
// concurrentes sobre el mismo producto nunca observen ambas stock
// suficiente cuando solo alcanza para una.
//
//   - Reserve: requiere available >= qty; mueve qty de available a reserved.
//     Falla con InsufficientStockError nombrando al producto.
//   - Release: devuelve qty a available y descuenta reserved con piso en
//     cero (tolera drift de fallas parciales previas).
//   - Consume: descuenta reserved con piso en cero; available no se toca
//     (la mercadería reservada salió definitivamente).
type StockLedger interface {
	// GetProducts retorna exactamente una fila por id válido; un
	// resultado corto señala al menos un id inexistente.
	GetProducts(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	Reserve(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error
	Release(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error
	Consume(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error
}
