package usecase

import (
	"context"
	"errors"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

const defaultPageSize = 20
const maxPageSize = 100

// ListSalesUseCase caso de uso para listar ventas con filtros y
// paginación. La hidratación de clientes pasa por el directorio con
// cache, una venta por cliente repetido no vuelve a la base.
type ListSalesUseCase struct {
	saleRepo port.SaleRepository
	clients  port.ClientDirectory
}

// NewListSalesUseCase crea una nueva instancia del caso de uso
func NewListSalesUseCase(saleRepo port.SaleRepository, clients port.ClientDirectory) *ListSalesUseCase {
	return &ListSalesUseCase{
		saleRepo: saleRepo,
		clients:  clients,
	}
}

// Execute ejecuta el listado
func (uc *ListSalesUseCase) Execute(ctx context.Context, query port.SaleQuery) (*response.ListSalesResponse, error) {
	// 1. Normalizar paginación
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	// 2. Buscar la página
	sales, total, err := uc.saleRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	// 3. Hidratar clientes
	items := make([]*response.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		client, err := uc.clients.GetClient(ctx, sale.ClientID)
		if err != nil && !errors.Is(err, entity.ErrClientNotFound) {
			return nil, err
		}
		items = append(items, response.NewSaleResponse(sale, client))
	}

	totalPages := (total + query.PageSize - 1) / query.PageSize

	return &response.ListSalesResponse{
		Items:      items,
		TotalCount: total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}
