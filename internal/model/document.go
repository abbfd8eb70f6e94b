package model

import "time"

// Document is the registry row for an ingested document. The corpus is
// append-only: rows are created once per ingest and never updated.
type Document struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:256;not null" json:"name"`
	ChunkCount int       `gorm:"not null" json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}
