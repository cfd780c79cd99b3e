package port

import (
	"context"

	"github.com/google/uuid"

	"sales/src/sales/domain/entity"
)

// ClientDirectory lectura clave-valor de clientes. Retorna
// entity.ErrClientNotFound si el id no existe.
type ClientDirectory interface {
	GetClient(ctx context.Context, clientID uuid.UUID) (*entity.Client, error)
}
