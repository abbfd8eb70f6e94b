package repository

import (
	"fmt"

	"gorm.io/gorm"

	"rag-assistant/internal/model"
)

// IngestionRecordRepository persists the audit trail of ingest attempts.
type IngestionRecordRepository struct {
	db *gorm.DB
}

func NewIngestionRecordRepository(db *gorm.DB) *IngestionRecordRepository {
	return &IngestionRecordRepository{db: db}
}

func (r *IngestionRecordRepository) Create(record *model.IngestionRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create ingestion record failed: %w", err)
	}
	return nil
}

func (r *IngestionRecordRepository) ListByDocumentID(documentID string) ([]model.IngestionRecord, error) {
	var records []model.IngestionRecord
	if err := r.db.Where("document_id = ?", documentID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list ingestion records failed: %w", err)
	}
	return records, nil
}
