package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// StageRepository defines the interface for pipeline stage data access
type StageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PipelineStage, error)
	FindByName(ctx context.Context, name string) (*domain.PipelineStage, error)
	FindActiveOrdered(ctx context.Context) ([]*domain.PipelineStage, error)
}

// stageRepositoryImpl is the GORM implementation of StageRepository
type stageRepositoryImpl struct {
	db *gorm.DB
}

// NewStageRepository creates a new instance of StageRepository
func NewStageRepository(db *gorm.DB) StageRepository {
	return &stageRepositoryImpl{db: db}
}

// FindByID finds a pipeline stage by its ID
func (r *stageRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.PipelineStage, error) {
	var stage domain.PipelineStage
	if err := r.db.WithContext(ctx).First(&stage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// FindByName finds a pipeline stage by its unique name
func (r *stageRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.PipelineStage, error) {
	var stage domain.PipelineStage
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&stage).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// FindActiveOrdered returns all active stages ordered by stage_order
func (r *stageRepositoryImpl) FindActiveOrdered(ctx context.Context) ([]*domain.PipelineStage, error) {
	var stages []*domain.PipelineStage
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("stage_order ASC").
		Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}
