package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sales/src/sales/domain/entity"
	"sales/src/shared/domain/transaction"
)

// SaleQuery filtros de búsqueda de ventas
type SaleQuery struct {
	Status   entity.SaleStatus
	ClientID *uuid.UUID
	// Search busca texto libre sobre public_id y nombre del cliente
	Search   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// SaleRepository define la persistencia del aggregate Sale. Create y
// Update corren dentro de la transacción del coordinador junto con los
// efectos de inventario; las lecturas no requieren transacción.
type SaleRepository interface {
	// Create persiste la venta con sus items y pagos
	Create(ctx context.Context, tx transaction.Tx, sale *entity.Sale) error

	// Update actualiza la fila de la venta y reemplaza por completo sus
	// items y pagos (cascade replace)
	Update(ctx context.Context, tx transaction.Tx, sale *entity.Sale) error

	// FindByID carga el aggregate completo (items + pagos)
	FindByID(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error)

	// Search retorna la página pedida y el total de coincidencias
	Search(ctx context.Context, query SaleQuery) ([]*entity.Sale, int, error)
}
