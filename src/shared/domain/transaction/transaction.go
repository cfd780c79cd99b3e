package transaction

import "context"

// Tx representa una transacción de almacenamiento en curso. Las
// implementaciones concretas (sql, memoria) definen el tipo real;
// los puertos solo lo transportan.
type Tx interface{}

// Manager envuelve un conjunto de escrituras multi-tabla en una unidad
// atómica: o se observan todas o ninguna. Si fn devuelve error, todo
// efecto aplicado dentro de la transacción se revierte antes de
// propagar el error.
type Manager interface {
	WithTransaction(ctx context.Context, fn func(tx Tx) error) error
}
