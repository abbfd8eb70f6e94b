package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"rag-assistant/internal/chunker"
	"rag-assistant/internal/model"
)

const defaultBatchSize = 10

// IngestOptions bundle the chunking parameters and the embed/upsert batch
// size used for every document.
type IngestOptions struct {
	Chunker   chunker.Options
	BatchSize int
}

func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		Chunker:   chunker.DefaultOptions(),
		BatchSize: defaultBatchSize,
	}
}

// DocumentService owns the write path: chunk, embed, index, register.
type DocumentService struct {
	embedder  EmbeddingClient
	index     VectorIndex
	registry  DocumentRegistry
	auditLog  IngestionAuditLog
	publisher IngestEventPublisher
	opts      IngestOptions
}

func NewDocumentService(
	embedder EmbeddingClient,
	index VectorIndex,
	registry DocumentRegistry,
	auditLog IngestionAuditLog,
	publisher IngestEventPublisher,
	opts IngestOptions,
) *DocumentService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &DocumentService{
		embedder:  embedder,
		index:     index,
		registry:  registry,
		auditLog:  auditLog,
		publisher: publisher,
		opts:      opts,
	}
}

// IngestInput is the input for document ingestion.
type IngestInput struct {
	Name    string
	Content string
}

// IngestResult reports what was written for one document.
type IngestResult struct {
	DocumentID     string `json:"document_id"`
	Name           string `json:"name"`
	ChunkCount     int    `json:"chunk_count"`
	BatchesWritten int    `json:"batches_written"`
}

// ProcessDocument chunks the content, embeds each chunk, and writes the
// vectors to the index in sequential batches. Batches are committed
// individually: a failure partway through leaves earlier batches in the
// index and surfaces as an *IngestError carrying the committed count.
// Re-ingesting the same content writes a fresh set of vector ids.
func (s *DocumentService) ProcessDocument(ctx context.Context, input IngestInput) (*IngestResult, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyDocument
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Untitled"
	}

	chunks := chunker.Split(content, s.opts.Chunker)
	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}

	documentID := uuid.NewString()

	batchesWritten := 0
	for start := 0; start < len(chunks); start += s.opts.BatchSize {
		end := start + s.opts.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		embeddings, err := s.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, s.ingestFailed(ctx, documentID, name, len(chunks), batchesWritten, "embedding", err)
		}
		if len(embeddings) != len(batch) {
			err := fmt.Errorf("got %d embeddings for %d chunks", len(embeddings), len(batch))
			return nil, s.ingestFailed(ctx, documentID, name, len(chunks), batchesWritten, "embedding", err)
		}

		vectors := make([]model.IndexedVector, len(batch))
		for i := range batch {
			vectors[i] = model.IndexedVector{
				ID:     documentID + "-" + uuid.NewString(),
				Values: embeddings[i],
				Metadata: map[string]string{
					model.MetaDocumentID:   documentID,
					model.MetaDocumentName: name,
					model.MetaChunkIndex:   fmt.Sprintf("%d", start+i),
					model.MetaText:         batch[i],
				},
			}
		}
		if _, err := s.index.Upsert(ctx, vectors); err != nil {
			return nil, s.ingestFailed(ctx, documentID, name, len(chunks), batchesWritten, "store", err)
		}
		batchesWritten++
	}

	if err := s.registry.Create(&model.Document{
		ID:         documentID,
		Name:       name,
		ChunkCount: len(chunks),
	}); err != nil {
		// Vectors are already live; the registry row is bookkeeping.
		return nil, s.ingestFailed(ctx, documentID, name, len(chunks), batchesWritten, "store", err)
	}

	s.publishEvent(ctx, model.IngestionEvent{
		DocumentID:     documentID,
		DocumentName:   name,
		ChunkCount:     len(chunks),
		BatchesWritten: batchesWritten,
		Status:         model.IngestStatusCompleted,
	})

	return &IngestResult{
		DocumentID:     documentID,
		Name:           name,
		ChunkCount:     len(chunks),
		BatchesWritten: batchesWritten,
	}, nil
}

// ListDocuments returns the registry contents, newest first.
func (s *DocumentService) ListDocuments() ([]model.Document, error) {
	return s.registry.List()
}

// GetDocument returns the registry row for one document, or nil when the
// id is unknown.
func (s *DocumentService) GetDocument(documentID string) (*model.Document, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrEmptyDocument
	}
	return s.registry.GetByID(documentID)
}

// IngestionHistory returns the audit records for one document.
func (s *DocumentService) IngestionHistory(documentID string) ([]model.IngestionRecord, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrEmptyDocument
	}
	return s.auditLog.ListByDocumentID(documentID)
}

func (s *DocumentService) ingestFailed(ctx context.Context, documentID, name string, chunkCount, batchesWritten int, stage string, err error) error {
	s.publishEvent(ctx, model.IngestionEvent{
		DocumentID:     documentID,
		DocumentName:   name,
		ChunkCount:     chunkCount,
		BatchesWritten: batchesWritten,
		Status:         model.IngestStatusFailed,
		Error:          err.Error(),
	})
	return &IngestError{Stage: stage, BatchesWritten: batchesWritten, Err: err}
}

func (s *DocumentService) publishEvent(ctx context.Context, event model.IngestionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish ingest event failed: %v", err)
	}
}
