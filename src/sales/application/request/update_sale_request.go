package request

import "github.com/shopspring/decimal"

// UpdateSaleRequest edición completa de una venta: reemplaza items,
// pagos y descuento global. El cliente de la venta no cambia.
type UpdateSaleRequest struct {
	Items    []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments []SalePaymentRequest `json:"payments" binding:"required,min=1,dive"`
	Discount decimal.Decimal      `json:"discount"`
}
