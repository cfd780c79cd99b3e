package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	inventoryEntity "sales/src/inventory/domain/entity"
	inventoryPort "sales/src/inventory/domain/port"
	"sales/src/sales/application/request"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// SaleBuilder valida un pedido de venta y arma el aggregate listo para
// commit. No muta nada: el chequeo de stock es consultivo, la garantía
// real la da Reserve bajo el row lock dentro de la transacción.
//
// Orden de chequeos: existencia del cliente, resolución de productos,
// suficiencia de stock (solo en creación), totales y conciliación de
// pagos, derivación de requires_approval.
type SaleBuilder struct {
	clients port.ClientDirectory
	ledger  inventoryPort.StockLedger
}

// NewSaleBuilder crea una nueva instancia del builder
func NewSaleBuilder(clients port.ClientDirectory, ledger inventoryPort.StockLedger) *SaleBuilder {
	return &SaleBuilder{
		clients: clients,
		ledger:  ledger,
	}
}

// Build valida el pedido completo y retorna el aggregate armado
func (b *SaleBuilder) Build(ctx context.Context, req *request.CreateSaleRequest) (*entity.Sale, error) {
	// 1. Existencia del cliente
	if _, err := b.clients.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	// 2-3. Resolver productos y verificar stock
	items, err := b.BuildItems(ctx, req.Items, true)
	if err != nil {
		return nil, err
	}

	payments, err := b.BuildPayments(req.Payments)
	if err != nil {
		return nil, err
	}

	// 4-6. Totales, conciliación de pagos y requires_approval
	return entity.NewSale(req.ClientID, items, payments, req.Discount)
}

// BuildItems convierte los renglones del pedido en entities validadas.
// Con checkStock=true además exige disponibilidad suficiente por
// producto (cantidades agrupadas); en ediciones el chequeo se difiere a
// Reserve, que corre tras liberar la reserva vieja en la misma
// transacción.
func (b *SaleBuilder) BuildItems(ctx context.Context, reqs []request.SaleItemRequest, checkStock bool) ([]entity.SaleItem, error) {
	if len(reqs) == 0 {
		return nil, entity.ErrSaleMustHaveItems
	}

	items := make([]entity.SaleItem, 0, len(reqs))
	for _, itemReq := range reqs {
		var item *entity.SaleItem
		var err error

		if itemReq.ProductID != nil && *itemReq.ProductID != uuid.Nil {
			item, err = entity.NewCatalogItem(*itemReq.ProductID, itemReq.Quantity, itemReq.UnitPrice, itemReq.Discount)
		} else {
			item, err = entity.NewCustomItem(itemReq.CustomName, itemReq.Quantity, itemReq.UnitPrice, itemReq.Discount)
		}
		if err != nil {
			return nil, err
		}

		items = append(items, *item)
	}

	products, err := b.resolveProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	if checkStock {
		if err := checkAvailability(items, products); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// BuildPayments convierte los pagos del pedido en entities validadas
func (b *SaleBuilder) BuildPayments(reqs []request.SalePaymentRequest) ([]entity.Payment, error) {
	if len(reqs) == 0 {
		return nil, entity.ErrSaleMustHavePayments
	}

	payments := make([]entity.Payment, 0, len(reqs))
	for _, payReq := range reqs {
		payment, err := entity.NewPayment(entity.PaymentMethod(payReq.Method), payReq.Amount, payReq.Installments)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	return payments, nil
}

// resolveProducts carga los productos referenciados; un resultado corto
// del catálogo señala al menos un id inexistente
func (b *SaleBuilder) resolveProducts(ctx context.Context, items []entity.SaleItem) (map[uuid.UUID]*inventoryEntity.Product, error) {
	idSet := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range items {
		if items[i].ProductID != nil && !idSet[*items[i].ProductID] {
			idSet[*items[i].ProductID] = true
			ids = append(ids, *items[i].ProductID)
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	products, err := b.ledger.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving products: %w", err)
	}

	byID := make(map[uuid.UUID]*inventoryEntity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", inventoryEntity.ErrProductNotFound, id)
		}
	}

	return byID, nil
}

// checkAvailability exige available >= cantidad agrupada por producto
func checkAvailability(items []entity.SaleItem, products map[uuid.UUID]*inventoryEntity.Product) error {
	quantities := make(map[uuid.UUID]int)
	for i := range items {
		if items[i].ProductID != nil {
			quantities[*items[i].ProductID] += items[i].Quantity
		}
	}

	for productID, qty := range quantities {
		product := products[productID]
		if product.AvailableQuantity < qty {
			return &inventoryEntity.InsufficientStockError{
				ProductID:   productID.String(),
				ProductName: product.Name,
				Requested:   qty,
				Available:   product.AvailableQuantity,
			}
		}
	}

	return nil
}
