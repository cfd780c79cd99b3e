package port

import (
	"context"
	"errors"
)

// ErrSequencerUnavailable indica que el contador subyacente no pudo
// incrementarse; la creación de la venta debe abortarse por completo
var ErrSequencerUnavailable = errors.New("sale sequencer unavailable")

// SaleSequencer emite el número de venta y su código público legible.
// La secuencia es estrictamente creciente entre llamadores concurrentes
// y nunca se reutiliza aunque la creación posterior falle: los huecos
// son aceptables, los duplicados no.
type SaleSequencer interface {
	Next(ctx context.Context) (sequence int64, publicID string, err error)
}
