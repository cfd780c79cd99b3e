package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	inventoryEntity "sales/src/inventory/domain/entity"
	"sales/src/shared/domain/transaction"
)

var errUnexpectedTx = errors.New("unexpected transaction type")

// SeedProduct registra un producto en el store
func (s *Store) SeedProduct(p *inventoryEntity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// GetProducts retorna los productos pedidos, omitiendo los inexistentes
func (s *Store) GetProducts(ctx context.Context, ids []uuid.UUID) ([]*inventoryEntity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*inventoryEntity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Reserve mueve cantidad de disponible a reservado. Falla si no alcanza
// el disponible.
func (s *Store) Reserve(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}

	p, ok := s.products[productID]
	if !ok {
		return inventoryEntity.ErrProductNotFound
	}
	if p.AvailableQuantity < qty {
		return &inventoryEntity.InsufficientStockError{
			ProductID:   p.ID.String(),
			ProductName: p.Name,
			Requested:   qty,
			Available:   p.AvailableQuantity,
		}
	}

	p.AvailableQuantity -= qty
	p.ReservedQuantity += qty
	return nil
}

// Release devuelve cantidad reservada al disponible. El reservado nunca
// baja de cero.
func (s *Store) Release(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}

	p, ok := s.products[productID]
	if !ok {
		return inventoryEntity.ErrProductNotFound
	}

	p.AvailableQuantity += qty
	p.ReservedQuantity -= qty
	if p.ReservedQuantity < 0 {
		p.ReservedQuantity = 0
	}
	return nil
}

// Consume descuenta cantidad reservada sin devolverla al disponible
func (s *Store) Consume(ctx context.Context, tx transaction.Tx, productID uuid.UUID, qty int) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}

	p, ok := s.products[productID]
	if !ok {
		return inventoryEntity.ErrProductNotFound
	}

	p.ReservedQuantity -= qty
	if p.ReservedQuantity < 0 {
		p.ReservedQuantity = 0
	}
	return nil
}
