package entity

import (
	"errors"
	"fmt"
)

var (
	ErrProductNameRequired  = errors.New("product name is required")
	ErrInvalidStockQuantity = errors.New("stock quantity must be greater than or equal to 0")
	ErrProductNotFound      = errors.New("product not found")
)

// InsufficientStockError indica que un producto no tiene stock
// disponible suficiente para cubrir la cantidad pedida. Siempre nombra
// al producto que quedó corto.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// IsInsufficientStock indica si err es un rechazo por falta de stock
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
