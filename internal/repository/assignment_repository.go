package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// AssignmentRepository defines the interface for lead assignment data access
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.LeadAssignment) error
	FindActiveByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadAssignment, error)
	DeactivateByLead(ctx context.Context, leadID uuid.UUID) error
}

// assignmentRepositoryImpl is the GORM implementation of AssignmentRepository
type assignmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new instance of AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// Create creates a new assignment row
func (r *assignmentRepositoryImpl) Create(ctx context.Context, assignment *domain.LeadAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return err
	}
	return nil
}

// FindActiveByLead returns the active assignment rows for a lead
func (r *assignmentRepositoryImpl) FindActiveByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadAssignment, error) {
	var assignments []*domain.LeadAssignment
	if err := r.db.WithContext(ctx).
		Where("lead_id = ? AND is_active = ?", leadID, true).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeactivateByLead marks every active assignment row for a lead inactive
func (r *assignmentRepositoryImpl) DeactivateByLead(ctx context.Context, leadID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&domain.LeadAssignment{}).
		Where("lead_id = ? AND is_active = ?", leadID, true).
		Update("is_active", false).Error; err != nil {
		return err
	}
	return nil
}
