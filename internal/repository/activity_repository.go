package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// ActivityRepository defines the interface for lead activity data access
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.LeadActivity) error
	FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create creates a new activity
func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.LeadActivity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return err
	}
	return nil
}

// FindByLead returns all activities for a lead, newest first
func (r *activityRepositoryImpl) FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error) {
	var activities []*domain.LeadActivity
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
