package model

// Metadata keys stored alongside every vector. Existing indexes were
// populated with exactly these keys; do not rename them.
const (
	MetaDocumentID   = "document_id"
	MetaDocumentName = "document_name"
	MetaChunkIndex   = "chunk_index"
	MetaText         = "text"
)

// IndexedVector is the unit persisted in the vector store: a unique id,
// the embedding, and string-valued metadata.
type IndexedVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

// ScoredMatch is one similarity-query result. Higher score = more relevant.
type ScoredMatch struct {
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

// RetrievalResult is the assembled context for a question: the concatenated
// chunk texts plus the source document names in first-seen order.
type RetrievalResult struct {
	Context string
	Sources []string
}
