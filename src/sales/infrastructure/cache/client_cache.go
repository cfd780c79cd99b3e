package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// ClientCache cache en memoria de clientes, decorando cualquier
// ClientDirectory con lectura read-through. Los listados hidratan el
// mismo cliente muchas veces; con el cache solo la primera toca la base.
// Un cliente inexistente no se cachea.
type ClientCache struct {
	next    port.ClientDirectory
	clients map[uuid.UUID]entity.Client
	mu      sync.RWMutex
}

// NewClientCache crea un nuevo cache de clientes
func NewClientCache(next port.ClientDirectory) *ClientCache {
	return &ClientCache{
		next:    next,
		clients: make(map[uuid.UUID]entity.Client),
	}
}

// GetClient busca primero en el cache y recién después en el directorio
func (c *ClientCache) GetClient(ctx context.Context, clientID uuid.UUID) (*entity.Client, error) {
	c.mu.RLock()
	client, ok := c.clients[clientID]
	c.mu.RUnlock()
	if ok {
		cp := client
		return &cp, nil
	}

	fetched, err := c.next.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.clients[clientID] = *fetched
	c.mu.Unlock()

	cp := *fetched
	return &cp, nil
}

// Invalidate saca un cliente del cache
func (c *ClientCache) Invalidate(clientID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, clientID)
}
