package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	inventoryPort "sales/src/inventory/domain/port"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
	"sales/src/shared/infrastructure/metrics"
)

// CancelSaleUseCase caso de uso para cancelar una venta pendiente.
// Devuelve las reservas al stock disponible y marca la venta como
// cancelada en una sola unidad atómica. Cancelar una venta ya cancelada
// es un no-op; una venta entregada no se puede cancelar.
type CancelSaleUseCase struct {
	saleRepo  port.SaleRepository
	ledger    inventoryPort.StockLedger
	txManager transaction.Manager
	publisher port.EventPublisher
	logger    *zap.Logger
}

// NewCancelSaleUseCase crea una nueva instancia del caso de uso
func NewCancelSaleUseCase(
	saleRepo port.SaleRepository,
	ledger inventoryPort.StockLedger,
	txManager transaction.Manager,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *CancelSaleUseCase {
	return &CancelSaleUseCase{
		saleRepo:  saleRepo,
		ledger:    ledger,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute ejecuta la cancelación de la venta
func (uc *CancelSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	// 1. Recuperar la venta
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// 2. Cancelación idempotente
	if sale.Status == entity.SaleStatusCancelled {
		return sale, nil
	}

	// 3. Transición de estado (rechaza entregadas)
	if err := sale.Cancel(); err != nil {
		return nil, err
	}

	// 4. Liberar reservas y persistir en una sola unidad atómica
	err = uc.txManager.WithTransaction(ctx, func(tx transaction.Tx) error {
		quantities := sale.CatalogQuantities()
		for _, productID := range orderedProductIDs(quantities) {
			if err := uc.ledger.Release(ctx, tx, productID, quantities[productID]); err != nil {
				return err
			}
		}
		return uc.saleRepo.Update(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesCancelled.Inc()
	uc.logger.Info("sale cancelled",
		zap.String("sale_id", sale.ID.String()),
		zap.String("public_id", sale.PublicID),
	)

	// 5. Notificar. El evento es best effort: la cancelación ya está hecha.
	if uc.publisher != nil {
		if err := uc.publisher.PublishSaleEvent(ctx, port.EventSaleCancelled, sale); err != nil {
			uc.logger.Warn("failed to publish cancellation event",
				zap.String("sale_id", sale.ID.String()),
				zap.Error(err),
			)
		}
	}

	return sale, nil
}
