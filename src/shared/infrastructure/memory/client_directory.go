package memory

import (
	"context"

	"github.com/google/uuid"

	salesEntity "sales/src/sales/domain/entity"
)

// SeedClient registra un cliente en el store
func (s *Store) SeedClient(c *salesEntity.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.clients[c.ID] = &cp
}

// GetClient busca un cliente por id
func (s *Store) GetClient(ctx context.Context, clientID uuid.UUID) (*salesEntity.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[clientID]
	if !ok {
		return nil, salesEntity.ErrClientNotFound
	}
	cp := *client
	return &cp, nil
}
