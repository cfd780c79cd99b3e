package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem representa un renglón de una venta (Entity dentro del Aggregate).
// Referencia un producto del catálogo (ProductID) o describe un trabajo
// a medida (CustomName, IsCustom=true). Los items a medida no tienen
// efecto de inventario y nacen pendientes de aprobación.
type SaleItem struct {
	ID               uuid.UUID       `json:"id"`
	SaleID           uuid.UUID       `json:"sale_id"`
	ProductID        *uuid.UUID      `json:"product_id,omitempty"`
	CustomName       string          `json:"custom_name,omitempty"`
	IsCustom         bool            `json:"is_custom"`
	RequiresApproval bool            `json:"requires_approval"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount"`
}

// NewCatalogItem crea un renglón que referencia un producto del catálogo
func NewCatalogItem(productID uuid.UUID, quantity int, unitPrice, discount decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, ErrItemWithoutReference
	}
	if err := validateItemValues(quantity, unitPrice, discount); err != nil {
		return nil, err
	}

	pid := productID
	return &SaleItem{
		ID:        uuid.New(),
		ProductID: &pid,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  discount,
	}, nil
}

// NewCustomItem crea un renglón a medida, siempre sujeto a aprobación
func NewCustomItem(customName string, quantity int, unitPrice, discount decimal.Decimal) (*SaleItem, error) {
	if customName == "" {
		return nil, ErrItemWithoutReference
	}
	if err := validateItemValues(quantity, unitPrice, discount); err != nil {
		return nil, err
	}

	return &SaleItem{
		ID:               uuid.New(),
		CustomName:       customName,
		IsCustom:         true,
		RequiresApproval: true,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		Discount:         discount,
	}, nil
}

// Subtotal retorna quantity * unit_price - discount
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

func validateItemValues(quantity int, unitPrice, discount decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if unitPrice.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if discount.LessThan(decimal.Zero) {
		return ErrInvalidDiscount
	}
	return nil
}
