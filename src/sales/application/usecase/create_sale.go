package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	inventoryEntity "sales/src/inventory/domain/entity"
	inventoryPort "sales/src/inventory/domain/port"
	"sales/src/sales/application/request"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
	"sales/src/shared/infrastructure/metrics"
)

// CreateSaleUseCase caso de uso para crear una venta.
//
// Flujo: builder (validación completa, sin mutación) → secuenciador
// (número público, fuera de la transacción: los huecos son aceptables)
// → unidad atómica {persistir aggregate + reservar stock por producto}.
// Si cualquier reserva falla a mitad del recorrido, la transacción
// revierte también la venta persistida y las reservas anteriores: nunca
// queda una venta apuntando a stock sin reservar.
type CreateSaleUseCase struct {
	builder   *SaleBuilder
	sequencer port.SaleSequencer
	saleRepo  port.SaleRepository
	ledger    inventoryPort.StockLedger
	txManager transaction.Manager
	logger    *zap.Logger
}

// NewCreateSaleUseCase crea una nueva instancia del caso de uso
func NewCreateSaleUseCase(
	builder *SaleBuilder,
	sequencer port.SaleSequencer,
	saleRepo port.SaleRepository,
	ledger inventoryPort.StockLedger,
	txManager transaction.Manager,
	logger *zap.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		builder:   builder,
		sequencer: sequencer,
		saleRepo:  saleRepo,
		ledger:    ledger,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute ejecuta la creación de la venta
func (uc *CreateSaleUseCase) Execute(ctx context.Context, req *request.CreateSaleRequest) (*entity.Sale, error) {
	// 1. Validar y armar el aggregate
	sale, err := uc.builder.Build(ctx, req)
	if err != nil {
		if inventoryEntity.IsInsufficientStock(err) {
			metrics.StockReservationFailures.Inc()
		}
		return nil, err
	}

	// 2. Asignar número de venta. Sin número no hay venta: se aborta.
	sequence, publicID, err := uc.sequencer.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrSequencerUnavailable, err)
	}
	sale.Sequence = sequence
	sale.PublicID = publicID

	// 3. Persistir aggregate + reservar stock en una sola unidad atómica
	err = uc.txManager.WithTransaction(ctx, func(tx transaction.Tx) error {
		if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
			return fmt.Errorf("error persisting sale: %w", err)
		}

		quantities := sale.CatalogQuantities()
		for _, productID := range orderedProductIDs(quantities) {
			if err := uc.ledger.Reserve(ctx, tx, productID, quantities[productID]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if inventoryEntity.IsInsufficientStock(err) {
			metrics.StockReservationFailures.Inc()
		}
		return nil, err
	}

	metrics.SalesCreated.Inc()
	uc.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("public_id", sale.PublicID),
		zap.String("value", sale.Value.StringFixed(2)),
		zap.Bool("requires_approval", sale.RequiresApproval),
	)

	return sale, nil
}
