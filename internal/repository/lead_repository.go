package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// LeadFilters holds optional filters for lead listing and overview queries
type LeadFilters struct {
	Status     string
	Source     string
	AssignedTo string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	FindWithFilters(ctx context.Context, filters LeadFilters) ([]*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	FindStale(ctx context.Context, cutoff time.Time, assignedTo string) ([]*domain.Lead, error)
	FindAll(ctx context.Context) ([]*domain.Lead, error)
	Count(ctx context.Context) (int64, error)
	CountStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// leadRepositoryImpl is the GORM implementation of LeadRepository
type leadRepositoryImpl struct {
	db *gorm.DB
}

// NewLeadRepository creates a new instance of LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepositoryImpl{db: db}
}

// Create creates a new lead
func (r *leadRepositoryImpl) Create(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a lead by its ID with the current stage joined
func (r *leadRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.db.WithContext(ctx).
		Preload("CurrentStage").
		First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// FindWithFilters returns leads matching the given filters
func (r *leadRepositoryImpl) FindWithFilters(ctx context.Context, filters LeadFilters) ([]*domain.Lead, error) {
	query := r.db.WithContext(ctx).Model(&domain.Lead{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Source != "" {
		query = query.Where("source = ?", filters.Source)
	}
	if filters.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filters.AssignedTo)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var leads []*domain.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Update saves all fields of a lead
func (r *leadRepositoryImpl) Update(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Save(lead).Error; err != nil {
		return err
	}
	return nil
}

// UpdateFields updates selected columns of a lead
func (r *leadRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindStale returns open leads whose last activity is older than cutoff or missing
func (r *leadRepositoryImpl) FindStale(ctx context.Context, cutoff time.Time, assignedTo string) ([]*domain.Lead, error) {
	query := r.db.WithContext(ctx).
		Where("status NOT IN ?", []domain.LeadStatus{domain.LeadStatusWon, domain.LeadStatusLost}).
		Where("last_activity_at < ? OR last_activity_at IS NULL", cutoff)

	if assignedTo != "" {
		query = query.Where("assigned_to = ?", assignedTo)
	}

	var leads []*domain.Lead
	if err := query.Order("last_activity_at ASC NULLS FIRST").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// FindAll returns every lead; used by the analytics scan
func (r *leadRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	if err := r.db.WithContext(ctx).Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Count returns the total number of leads
func (r *leadRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Lead{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountStale returns the number of open leads with no activity since cutoff
func (r *leadRepositoryImpl) CountStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("status NOT IN ?", []domain.LeadStatus{domain.LeadStatusWon, domain.LeadStatusLost}).
		Where("last_activity_at < ? OR last_activity_at IS NULL", cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
