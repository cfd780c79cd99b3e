package sequencer

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisSequenceKey = "sales:sequence"

// RedisSequencer asigna números de venta con INCR de Redis. Sirve para
// corridas multi instancia sin pasar por la base. INCR es atómico y
// monotónico; igual que con la secuencia de PostgreSQL, un número
// entregado a una venta que después falla queda como hueco.
type RedisSequencer struct {
	client *redis.Client
	prefix string
}

// NewRedisSequencer crea una nueva instancia del secuenciador
func NewRedisSequencer(client *redis.Client, prefix string) *RedisSequencer {
	return &RedisSequencer{
		client: client,
		prefix: prefix,
	}
}

// Next retorna el próximo número de venta y su id público
func (s *RedisSequencer) Next(ctx context.Context) (int64, string, error) {
	sequence, err := s.client.Incr(ctx, redisSequenceKey).Result()
	if err != nil {
		return 0, "", fmt.Errorf("error fetching next sale number: %w", err)
	}

	return sequence, FormatPublicID(s.prefix, sequence), nil
}
