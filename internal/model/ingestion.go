package model

import "time"

const (
	IngestStatusCompleted = "completed"
	IngestStatusFailed    = "failed"
)

// IngestionEvent is published after every ingest attempt and consumed by
// the audit worker. BatchesWritten counts the batches persisted before a
// failure; on success it equals the total number of batches.
type IngestionEvent struct {
	DocumentID     string `json:"document_id"`
	DocumentName   string `json:"document_name"`
	ChunkCount     int    `json:"chunk_count"`
	BatchesWritten int    `json:"batches_written"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

// IngestionRecord is the persisted audit row for an ingest attempt.
type IngestionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DocumentID     string    `gorm:"size:36;not null;index" json:"document_id"`
	DocumentName   string    `gorm:"size:256;not null" json:"document_name"`
	ChunkCount     int       `gorm:"not null" json:"chunk_count"`
	BatchesWritten int       `gorm:"not null" json:"batches_written"`
	Status         string    `gorm:"size:16;not null" json:"status"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
