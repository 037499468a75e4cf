package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// HistoryRepository defines the interface for stage history data access.
// History rows are append-only; there is deliberately no update or delete.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.LeadStageHistory) error
	FindLatestByLead(ctx context.Context, leadID uuid.UUID) (*domain.LeadStageHistory, error)
	FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadStageHistory, error)
	FindAll(ctx context.Context) ([]*domain.LeadStageHistory, error)
}

// historyRepositoryImpl is the GORM implementation of HistoryRepository
type historyRepositoryImpl struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new instance of HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

// Create appends a new history entry
func (r *historyRepositoryImpl) Create(ctx context.Context, entry *domain.LeadStageHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// FindLatestByLead returns the most recent history row for a lead
func (r *historyRepositoryImpl) FindLatestByLead(ctx context.Context, leadID uuid.UUID) (*domain.LeadStageHistory, error) {
	var entry domain.LeadStageHistory
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByLead returns all history rows for a lead, newest first
func (r *historyRepositoryImpl) FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadStageHistory, error) {
	var entries []*domain.LeadStageHistory
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll returns every history row; used by the analytics scan
func (r *historyRepositoryImpl) FindAll(ctx context.Context) ([]*domain.LeadStageHistory, error) {
	var entries []*domain.LeadStageHistory
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
