package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"rag-assistant/internal/model"
	"rag-assistant/internal/repository"
)

// IngestAuditWorker consumes ingestion events from RabbitMQ and persists
// them as audit records. One consumer goroutine per process.
type IngestAuditWorker struct {
	conn      *amqp.Connection
	repo      *repository.IngestionRecordRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewIngestAuditWorker(conn *amqp.Connection, repo *repository.IngestionRecordRepository, queueName string) *IngestAuditWorker {
	return &IngestAuditWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *IngestAuditWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.IngestionEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode ingest event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				record := model.IngestionRecord{
					DocumentID:     event.DocumentID,
					DocumentName:   event.DocumentName,
					ChunkCount:     event.ChunkCount,
					BatchesWritten: event.BatchesWritten,
					Status:         event.Status,
					Error:          event.Error,
				}
				if err := w.repo.Create(&record); err != nil {
					log.Printf("worker persist ingest record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *IngestAuditWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
