package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lead-pipeline-api/internal/client"
	"lead-pipeline-api/internal/domain"
	"lead-pipeline-api/internal/repository"
)

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	CreateFunc          func(ctx context.Context, lead *domain.Lead) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	FindWithFiltersFunc func(ctx context.Context, filters repository.LeadFilters) ([]*domain.Lead, error)
	UpdateFunc          func(ctx context.Context, lead *domain.Lead) error
	UpdateFieldsFunc    func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	FindStaleFunc       func(ctx context.Context, cutoff time.Time, assignedTo string) ([]*domain.Lead, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.Lead, error)
	CountFunc           func(ctx context.Context) (int64, error)
	CountStaleFunc      func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, lead)
	}
	return nil
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockLeadRepository) FindWithFilters(ctx context.Context, filters repository.LeadFilters) ([]*domain.Lead, error) {
	if m.FindWithFiltersFunc != nil {
		return m.FindWithFiltersFunc(ctx, filters)
	}
	return nil, nil
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, lead)
	}
	return nil
}

func (m *MockLeadRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockLeadRepository) FindStale(ctx context.Context, cutoff time.Time, assignedTo string) ([]*domain.Lead, error) {
	if m.FindStaleFunc != nil {
		return m.FindStaleFunc(ctx, cutoff, assignedTo)
	}
	return nil, nil
}

func (m *MockLeadRepository) FindAll(ctx context.Context) ([]*domain.Lead, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockLeadRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockLeadRepository) CountStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.CountStaleFunc != nil {
		return m.CountStaleFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockStageRepository is a mock implementation of StageRepository
type MockStageRepository struct {
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.PipelineStage, error)
	FindByNameFunc        func(ctx context.Context, name string) (*domain.PipelineStage, error)
	FindActiveOrderedFunc func(ctx context.Context) ([]*domain.PipelineStage, error)
}

func (m *MockStageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PipelineStage, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStageRepository) FindByName(ctx context.Context, name string) (*domain.PipelineStage, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStageRepository) FindActiveOrdered(ctx context.Context) ([]*domain.PipelineStage, error) {
	if m.FindActiveOrderedFunc != nil {
		return m.FindActiveOrderedFunc(ctx)
	}
	return nil, nil
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	CreateFunc           func(ctx context.Context, entry *domain.LeadStageHistory) error
	FindLatestByLeadFunc func(ctx context.Context, leadID uuid.UUID) (*domain.LeadStageHistory, error)
	FindByLeadFunc       func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadStageHistory, error)
	FindAllFunc          func(ctx context.Context) ([]*domain.LeadStageHistory, error)
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.LeadStageHistory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepository) FindLatestByLead(ctx context.Context, leadID uuid.UUID) (*domain.LeadStageHistory, error) {
	if m.FindLatestByLeadFunc != nil {
		return m.FindLatestByLeadFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockHistoryRepository) FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadStageHistory, error) {
	if m.FindByLeadFunc != nil {
		return m.FindByLeadFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockHistoryRepository) FindAll(ctx context.Context) ([]*domain.LeadStageHistory, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc     func(ctx context.Context, activity *domain.LeadActivity) error
	FindByLeadFunc func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.LeadActivity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) FindByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error) {
	if m.FindByLeadFunc != nil {
		return m.FindByLeadFunc(ctx, leadID)
	}
	return nil, nil
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	CreateFunc           func(ctx context.Context, assignment *domain.LeadAssignment) error
	FindActiveByLeadFunc func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadAssignment, error)
	DeactivateByLeadFunc func(ctx context.Context, leadID uuid.UUID) error
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *domain.LeadAssignment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assignment)
	}
	return nil
}

func (m *MockAssignmentRepository) FindActiveByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadAssignment, error) {
	if m.FindActiveByLeadFunc != nil {
		return m.FindActiveByLeadFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockAssignmentRepository) DeactivateByLead(ctx context.Context, leadID uuid.UUID) error {
	if m.DeactivateByLeadFunc != nil {
		return m.DeactivateByLeadFunc(ctx, leadID)
	}
	return nil
}

// MockScoringClient is a mock implementation of ScoringClient
type MockScoringClient struct {
	ScoreLeadFunc func(ctx context.Context, req client.ScoreRequest) (*client.ScoreResult, error)
}

func (m *MockScoringClient) ScoreLead(ctx context.Context, req client.ScoreRequest) (*client.ScoreResult, error) {
	if m.ScoreLeadFunc != nil {
		return m.ScoreLeadFunc(ctx, req)
	}
	return nil, nil
}

// MockTxManager runs the callback against the provided repositories
// without a real transaction
type MockTxManager struct {
	Repos *repository.Repositories
	Err   error
}

func (m *MockTxManager) WithinTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(m.Repos)
}
