package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/google/uuid"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
)

const (
	// ExchangeName exchange topic donde se publican los eventos de ventas
	ExchangeName = "sales_events"
	// ExchangeType tipo del exchange
	ExchangeType = "topic"
)

// saleEvent envelope de los eventos publicados
type saleEvent struct {
	EventID       uuid.UUID   `json:"event_id"`
	EventType     string      `json:"event_type"`
	AggregateType string      `json:"aggregate_type"`
	AggregateID   uuid.UUID   `json:"aggregate_id"`
	OccurredAt    time.Time   `json:"occurred_at"`
	Payload       interface{} `json:"payload"`
}

// RabbitMQPublisher publica eventos de ventas en un exchange topic.
// El routing key es el tipo de evento (sales.sale.delivered,
// sales.sale.cancelled).
type RabbitMQPublisher struct {
	ch *amqp.Channel
}

// Setup conecta a RabbitMQ, abre un canal y declara el exchange. La
// conexión se reintenta para tolerar el arranque de los contenedores.
func Setup(url string) (*amqp.Connection, *RabbitMQPublisher, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, &RabbitMQPublisher{ch: ch}, nil
}

// PublishSaleEvent publica el evento con la venta completa como payload
func (p *RabbitMQPublisher) PublishSaleEvent(ctx context.Context, eventType string, sale *entity.Sale) error {
	event := saleEvent{
		EventID:       uuid.New(),
		EventType:     eventType,
		AggregateType: "sale",
		AggregateID:   sale.ID,
		OccurredAt:    time.Now().UTC(),
		Payload:       response.NewSaleResponse(sale, nil),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal sale event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName, // exchange
		eventType,    // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   event.EventID.String(),
			Timestamp:   event.OccurredAt,
			Body:        body,
		},
	)
}
