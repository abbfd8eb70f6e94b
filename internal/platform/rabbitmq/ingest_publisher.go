package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"rag-assistant/internal/model"
)

// IngestEventPublisher publishes ingestion audit events to a durable queue.
type IngestEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewIngestEventPublisher(conn *amqp.Connection, queueName string) *IngestEventPublisher {
	return &IngestEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *IngestEventPublisher) Publish(ctx context.Context, event model.IngestionEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ingest event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish ingest event failed: %w", err)
	}
	return nil
}
