package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	salesEntity "sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/domain/transaction"
)

// Create persiste la venta dentro de la transacción activa
func (s *Store) Create(ctx context.Context, tx transaction.Tx, sale *salesEntity.Sale) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}
	s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// Update reemplaza el aggregate completo dentro de la transacción activa
func (s *Store) Update(ctx context.Context, tx transaction.Tx, sale *salesEntity.Sale) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}
	if _, ok := s.sales[sale.ID]; !ok {
		return salesEntity.ErrSaleNotFound
	}
	s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// FindByID carga el aggregate completo
func (s *Store) FindByID(ctx context.Context, saleID uuid.UUID) (*salesEntity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[saleID]
	if !ok {
		return nil, salesEntity.ErrSaleNotFound
	}
	return cloneSale(sale), nil
}

// Search filtra, ordena por secuencia descendente y pagina
func (s *Store) Search(ctx context.Context, query port.SaleQuery) ([]*salesEntity.Sale, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*salesEntity.Sale
	for _, sale := range s.sales {
		if !s.matches(sale, query) {
			continue
		}
		matched = append(matched, sale)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Sequence > matched[j].Sequence
	})

	total := len(matched)

	start := (query.Page - 1) * query.PageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + query.PageSize
	if query.PageSize <= 0 || end > total {
		end = total
	}

	page := make([]*salesEntity.Sale, 0, end-start)
	for _, sale := range matched[start:end] {
		page = append(page, cloneSale(sale))
	}

	return page, total, nil
}

func (s *Store) matches(sale *salesEntity.Sale, query port.SaleQuery) bool {
	if query.Status != "" && sale.Status != query.Status {
		return false
	}
	if query.ClientID != nil && sale.ClientID != *query.ClientID {
		return false
	}
	if query.From != nil && sale.CreatedAt.Before(*query.From) {
		return false
	}
	if query.To != nil && !sale.CreatedAt.Before(query.To.AddDate(0, 0, 1)) {
		return false
	}
	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		clientName := ""
		if client, ok := s.clients[sale.ClientID]; ok {
			clientName = strings.ToLower(client.Name)
		}
		if !strings.Contains(strings.ToLower(sale.PublicID), needle) &&
			!strings.Contains(clientName, needle) {
			return false
		}
	}
	return true
}
