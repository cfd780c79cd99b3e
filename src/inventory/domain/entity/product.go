package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product representa un producto del catálogo con su stock dividido en
// disponible y reservado. Solo el ledger de inventario lo muta.
type Product struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	AvailableQuantity int       `json:"available_quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewProduct crea un producto con stock inicial disponible
func NewProduct(name string, available int) (*Product, error) {
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if available < 0 {
		return nil, ErrInvalidStockQuantity
	}

	return &Product{
		ID:                uuid.New(),
		Name:              name,
		AvailableQuantity: available,
		ReservedQuantity:  0,
		CreatedAt:         time.Now(),
	}, nil
}

// OnHand retorna el stock total en poder (disponible + reservado)
func (p *Product) OnHand() int {
	return p.AvailableQuantity + p.ReservedQuantity
}
