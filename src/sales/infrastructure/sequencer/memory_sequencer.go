package sequencer

import (
	"context"
	"sync/atomic"
)

// MemorySequencer asigna números de venta con un contador atómico. Se
// usa en tests y en modo sin base de datos.
type MemorySequencer struct {
	counter atomic.Int64
	prefix  string
}

// NewMemorySequencer crea una nueva instancia del secuenciador
func NewMemorySequencer(prefix string) *MemorySequencer {
	return &MemorySequencer{
		prefix: prefix,
	}
}

// Next retorna el próximo número de venta y su id público
func (s *MemorySequencer) Next(ctx context.Context) (int64, string, error) {
	sequence := s.counter.Add(1)
	return sequence, FormatPublicID(s.prefix, sequence), nil
}
