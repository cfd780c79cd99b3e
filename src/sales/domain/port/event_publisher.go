package port

import (
	"context"

	"sales/src/sales/domain/entity"
)

// Eventos del ciclo de vida publicados hacia el resto del sistema
const (
	EventSaleDelivered = "sales.sale.delivered"
	EventSaleCancelled = "sales.sale.cancelled"
)

// EventPublisher publica eventos de dominio. Es opcional: un publisher
// nil deshabilita la publicación y una falla al publicar nunca revierte
// la operación ya confirmada (solo se registra).
type EventPublisher interface {
	PublishSaleEvent(ctx context.Context, eventType string, sale *entity.Sale) error
}
