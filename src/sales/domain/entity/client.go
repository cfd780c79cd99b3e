package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client registro liviano de cliente; el core solo lo consulta como
// lectura clave-valor para validar existencia e hidratar respuestas
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
