package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	inventoryEntity "sales/src/inventory/domain/entity"
	inventoryPort "sales/src/inventory/domain/port"
	"sales/src/sales/application/request"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
	"sales/src/shared/infrastructure/metrics"
)

// UpdateSaleUseCase caso de uso para editar una venta pendiente.
//
// La edición reemplaza ítems, pagos y descuento por completo. El ajuste
// de stock se hace por delta dentro de la misma transacción: primero se
// liberan las cantidades viejas y luego se reservan las nuevas, producto
// por producto bajo lock de fila. Si la nueva reserva no alcanza, la
// transacción revierte y la venta queda exactamente como estaba.
type UpdateSaleUseCase struct {
	builder   *SaleBuilder
	saleRepo  port.SaleRepository
	ledger    inventoryPort.StockLedger
	txManager transaction.Manager
	logger    *zap.Logger
}

// NewUpdateSaleUseCase crea una nueva instancia del caso de uso
func NewUpdateSaleUseCase(
	builder *SaleBuilder,
	saleRepo port.SaleRepository,
	ledger inventoryPort.StockLedger,
	txManager transaction.Manager,
	logger *zap.Logger,
) *UpdateSaleUseCase {
	return &UpdateSaleUseCase{
		builder:   builder,
		saleRepo:  saleRepo,
		ledger:    ledger,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute ejecuta la edición de la venta
func (uc *UpdateSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID, req *request.UpdateSaleRequest) (*entity.Sale, error) {
	// 1. Recuperar la venta y verificar que siga editable
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.CanEdit(); err != nil {
		return nil, err
	}

	// 2. Construir el nuevo contenido. El chequeo de disponibilidad se
	// deja para Reserve: la liberación previa en la misma transacción
	// puede habilitar cantidades que una pre-verificación rechazaría.
	items, err := uc.builder.BuildItems(ctx, req.Items, false)
	if err != nil {
		return nil, err
	}
	payments, err := uc.builder.BuildPayments(req.Payments)
	if err != nil {
		return nil, err
	}

	// 3. Capturar cantidades viejas antes de mutar el aggregate
	oldQuantities := sale.CatalogQuantities()

	// 4. Reemplazar contenido (recalcula total y reconcilia pagos)
	if err := sale.ReplaceContents(items, payments, req.Discount); err != nil {
		return nil, err
	}

	// 5. Ajustar stock y persistir en una sola unidad atómica
	err = uc.txManager.WithTransaction(ctx, func(tx transaction.Tx) error {
		for _, productID := range orderedProductIDs(oldQuantities) {
			if err := uc.ledger.Release(ctx, tx, productID, oldQuantities[productID]); err != nil {
				return err
			}
		}
		newQuantities := sale.CatalogQuantities()
		for _, productID := range orderedProductIDs(newQuantities) {
			if err := uc.ledger.Reserve(ctx, tx, productID, newQuantities[productID]); err != nil {
				return err
			}
		}
		return uc.saleRepo.Update(ctx, tx, sale)
	})
	if err != nil {
		if inventoryEntity.IsInsufficientStock(err) {
			metrics.StockReservationFailures.Inc()
		}
		return nil, err
	}

	uc.logger.Info("sale updated",
		zap.String("sale_id", sale.ID.String()),
		zap.String("public_id", sale.PublicID),
		zap.String("value", sale.Value.StringFixed(2)),
	)

	return sale, nil
}
