package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// GetSaleUseCase caso de uso para consultar una venta con el cliente
// hidratado
type GetSaleUseCase struct {
	saleRepo port.SaleRepository
	clients  port.ClientDirectory
}

// NewGetSaleUseCase crea una nueva instancia del caso de uso
func NewGetSaleUseCase(saleRepo port.SaleRepository, clients port.ClientDirectory) *GetSaleUseCase {
	return &GetSaleUseCase{
		saleRepo: saleRepo,
		clients:  clients,
	}
}

// Execute ejecuta la consulta
func (uc *GetSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*response.SaleResponse, error) {
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// El cliente puede haber sido eliminado después de la venta. La
	// respuesta igual sale, con el id solo.
	client, err := uc.clients.GetClient(ctx, sale.ClientID)
	if err != nil && !errors.Is(err, entity.ErrClientNotFound) {
		return nil, err
	}

	return response.NewSaleResponse(sale, client), nil
}
