package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	inventoryPort "sales/src/inventory/domain/port"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
	"sales/src/shared/infrastructure/metrics"
)

// ConfirmDeliveryUseCase caso de uso para confirmar la entrega de una
// venta pendiente. Consume las reservas de stock y marca la venta como
// entregada en una sola unidad atómica. Reconfirmar una venta ya
// entregada es un no-op.
type ConfirmDeliveryUseCase struct {
	saleRepo  port.SaleRepository
	ledger    inventoryPort.StockLedger
	txManager transaction.Manager
	publisher port.EventPublisher
	logger    *zap.Logger
}

// NewConfirmDeliveryUseCase crea una nueva instancia del caso de uso
func NewConfirmDeliveryUseCase(
	saleRepo port.SaleRepository,
	ledger inventoryPort.StockLedger,
	txManager transaction.Manager,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *ConfirmDeliveryUseCase {
	return &ConfirmDeliveryUseCase{
		saleRepo:  saleRepo,
		ledger:    ledger,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute ejecuta la confirmación de entrega
func (uc *ConfirmDeliveryUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	// 1. Recuperar la venta
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// 2. Reconfirmación idempotente
	if sale.Status == entity.SaleStatusDelivered {
		return sale, nil
	}

	// 3. Transición de estado (rechaza canceladas y aprobaciones pendientes)
	if err := sale.ConfirmDelivery(time.Now()); err != nil {
		return nil, err
	}

	// 4. Consumir reservas y persistir en una sola unidad atómica
	err = uc.txManager.WithTransaction(ctx, func(tx transaction.Tx) error {
		quantities := sale.CatalogQuantities()
		for _, productID := range orderedProductIDs(quantities) {
			if err := uc.ledger.Consume(ctx, tx, productID, quantities[productID]); err != nil {
				return err
			}
		}
		return uc.saleRepo.Update(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesDelivered.Inc()
	uc.logger.Info("sale delivered",
		zap.String("sale_id", sale.ID.String()),
		zap.String("public_id", sale.PublicID),
	)

	// 5. Notificar. El evento es best effort: la entrega ya está confirmada.
	if uc.publisher != nil {
		if err := uc.publisher.PublishSaleEvent(ctx, port.EventSaleDelivered, sale); err != nil {
			uc.logger.Warn("failed to publish delivery event",
				zap.String("sale_id", sale.ID.String()),
				zap.Error(err),
			)
		}
	}

	return sale, nil
}
