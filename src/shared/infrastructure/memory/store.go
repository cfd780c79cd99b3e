package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	inventoryEntity "sales/src/inventory/domain/entity"
	salesEntity "sales/src/sales/domain/entity"
	"sales/src/shared/domain/transaction"
)

// Store implementa en memoria el coordinador transaccional, el ledger de
// stock, el repositorio de ventas y el directorio de clientes. Se usa en
// tests y en modo sin base de datos.
//
// La atomicidad se logra por compensación estructural: WithTransaction
// toma el lock global, saca una copia profunda del estado y la restaura
// si fn falla. Las escrituras solo son válidas dentro de WithTransaction
// y no toman el lock de nuevo.
type Store struct {
	mu       sync.Mutex
	products map[uuid.UUID]*inventoryEntity.Product
	sales    map[uuid.UUID]*salesEntity.Sale
	clients  map[uuid.UUID]*salesEntity.Client
}

// memTx token que identifica la transacción activa del store
type memTx struct {
	store *Store
}

// NewStore crea un store vacío
func NewStore() *Store {
	return &Store{
		products: make(map[uuid.UUID]*inventoryEntity.Product),
		sales:    make(map[uuid.UUID]*salesEntity.Sale),
		clients:  make(map[uuid.UUID]*salesEntity.Client),
	}
}

// WithTransaction ejecuta fn bajo el lock global con rollback por
// snapshot
func (s *Store) WithTransaction(ctx context.Context, fn func(tx transaction.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapProducts := s.cloneProducts()
	snapSales := s.cloneSales()

	if err := fn(&memTx{store: s}); err != nil {
		s.products = snapProducts
		s.sales = snapSales
		return err
	}

	return nil
}

func (s *Store) cloneProducts() map[uuid.UUID]*inventoryEntity.Product {
	out := make(map[uuid.UUID]*inventoryEntity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		out[id] = &cp
	}
	return out
}

func (s *Store) cloneSales() map[uuid.UUID]*salesEntity.Sale {
	out := make(map[uuid.UUID]*salesEntity.Sale, len(s.sales))
	for id, sale := range s.sales {
		out[id] = cloneSale(sale)
	}
	return out
}

func cloneSale(sale *salesEntity.Sale) *salesEntity.Sale {
	cp := *sale
	cp.Items = append([]salesEntity.SaleItem(nil), sale.Items...)
	for i := range cp.Items {
		if cp.Items[i].ProductID != nil {
			id := *cp.Items[i].ProductID
			cp.Items[i].ProductID = &id
		}
	}
	cp.Payments = append([]salesEntity.Payment(nil), sale.Payments...)
	if sale.DeliveryDate != nil {
		d := *sale.DeliveryDate
		cp.DeliveryDate = &d
	}
	return &cp
}

func (s *Store) checkTx(tx transaction.Tx) error {
	mt, ok := tx.(*memTx)
	if !ok || mt.store != s {
		return errUnexpectedTx
	}
	return nil
}
