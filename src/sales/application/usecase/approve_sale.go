package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
)

// ApproveSaleUseCase caso de uso para aprobar los ítems personalizados
// de una venta pendiente. Hasta la aprobación la venta no puede ser
// entregada.
type ApproveSaleUseCase struct {
	saleRepo  port.SaleRepository
	txManager transaction.Manager
	logger    *zap.Logger
}

// NewApproveSaleUseCase crea una nueva instancia del caso de uso
func NewApproveSaleUseCase(
	saleRepo port.SaleRepository,
	txManager transaction.Manager,
	logger *zap.Logger,
) *ApproveSaleUseCase {
	return &ApproveSaleUseCase{
		saleRepo:  saleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute ejecuta la aprobación
func (uc *ApproveSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	// 1. Recuperar la venta
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// 2. Aprobar (rechaza ventas terminales y sin aprobación pendiente)
	if err := sale.Approve(); err != nil {
		return nil, err
	}

	// 3. Persistir
	err = uc.txManager.WithTransaction(ctx, func(tx transaction.Tx) error {
		return uc.saleRepo.Update(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("sale approved",
		zap.String("sale_id", sale.ID.String()),
		zap.String("public_id", sale.PublicID),
	)

	return sale, nil
}
