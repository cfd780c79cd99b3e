package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa un renglón del pedido de venta. Se indica
// product_id (item de catálogo) o custom_name (item a medida).
type SaleItemRequest struct {
	ProductID  *uuid.UUID      `json:"product_id"`
	CustomName string          `json:"custom_name"`
	Quantity   int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount"`
}

// SalePaymentRequest representa un pago del pedido de venta
type SalePaymentRequest struct {
	Method       string          `json:"method" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"` // Default: 1
}

// CreateSaleRequest pedido de creación de venta
type CreateSaleRequest struct {
	ClientID uuid.UUID            `json:"client_id" binding:"required"`
	Items    []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments []SalePaymentRequest `json:"payments" binding:"required,min=1,dive"`
	Discount decimal.Decimal      `json:"discount"` // Descuento global (default: 0)
}
