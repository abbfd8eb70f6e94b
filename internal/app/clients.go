package app

import (
	"context"

	"rag-assistant/internal/model"
)

// Collaborators the services depend on. Production implementations live in
// internal/ai, internal/platform/pinecone, internal/platform/rabbitmq,
// internal/cache and internal/repository; tests substitute fakes.

// EmbeddingClient turns text into fixed-dimension vectors. The dimension
// must match whatever populated the vector index.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionClient generates an answer from a system + user prompt pair.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// VectorIndex persists embeddings with metadata and answers similarity
// queries. Query results are not guaranteed to be ordered.
type VectorIndex interface {
	Upsert(ctx context.Context, vectors []model.IndexedVector) (int, error)
	Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]model.ScoredMatch, error)
}

// AnswerCache is a best-effort cache of detailed answers.
type AnswerCache interface {
	Get(ctx context.Context, question string) (*model.AnswerResult, bool, error)
	Set(ctx context.Context, question string, result *model.AnswerResult) error
}

// IngestEventPublisher emits one audit event per ingest attempt.
type IngestEventPublisher interface {
	Publish(ctx context.Context, event model.IngestionEvent) error
}

// DocumentRegistry records ingested documents for listing and provenance.
// GetByID returns (nil, nil) for an unknown id.
type DocumentRegistry interface {
	Create(doc *model.Document) error
	List() ([]model.Document, error)
	GetByID(id string) (*model.Document, error)
}

// IngestionAuditLog reads the persisted audit trail.
type IngestionAuditLog interface {
	ListByDocumentID(documentID string) ([]model.IngestionRecord, error)
}
