package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lead-pipeline-api/internal/dto"
	"lead-pipeline-api/internal/repository"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// MockLeadService is a mock implementation of LeadService
type MockLeadService struct {
	CaptureLeadFunc func(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLeadFunc     func(ctx context.Context, leadID uuid.UUID) (*dto.LeadResponse, error)
	ListLeadsFunc   func(ctx context.Context, filters repository.LeadFilters) ([]*dto.LeadResponse, error)
	UpdateLeadFunc  func(ctx context.Context, leadID uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	RescoreLeadFunc func(ctx context.Context, leadID uuid.UUID) (*dto.LeadScoreResponse, error)
}

func (m *MockLeadService) CaptureLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if m.CaptureLeadFunc != nil {
		return m.CaptureLeadFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockLeadService) GetLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadResponse, error) {
	if m.GetLeadFunc != nil {
		return m.GetLeadFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadService) ListLeads(ctx context.Context, filters repository.LeadFilters) ([]*dto.LeadResponse, error) {
	if m.ListLeadsFunc != nil {
		return m.ListLeadsFunc(ctx, filters)
	}
	return nil, nil
}

func (m *MockLeadService) UpdateLead(ctx context.Context, leadID uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	if m.UpdateLeadFunc != nil {
		return m.UpdateLeadFunc(ctx, leadID, req)
	}
	return nil, nil
}

func (m *MockLeadService) RescoreLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadScoreResponse, error) {
	if m.RescoreLeadFunc != nil {
		return m.RescoreLeadFunc(ctx, leadID)
	}
	return nil, nil
}

// MockPipelineService is a mock implementation of PipelineService
type MockPipelineService struct {
	ListStagesFunc      func(ctx context.Context) ([]*dto.StageResponse, error)
	MoveLeadToStageFunc func(ctx context.Context, leadID uuid.UUID, req *dto.MoveLeadRequest) (*dto.LeadResponse, error)
	LogActivityFunc     func(ctx context.Context, leadID uuid.UUID, req *dto.LogActivityRequest) (*dto.ActivityResponse, error)
	GetActivitiesFunc   func(ctx context.Context, leadID uuid.UUID) ([]*dto.ActivityResponse, error)
	AssignLeadFunc      func(ctx context.Context, leadID uuid.UUID, req *dto.AssignLeadRequest) (*dto.AssignmentResponse, error)
	GetHistoryFunc      func(ctx context.Context, leadID uuid.UUID) ([]*dto.HistoryResponse, error)
	GetOverviewFunc     func(ctx context.Context, filters dto.OverviewFilters) (*dto.PipelineOverviewResponse, error)
	GetStaleLeadsFunc   func(ctx context.Context, days int, assignedTo string) (*dto.StaleLeadsResponse, error)
	GetAnalyticsFunc    func(ctx context.Context) (*dto.PipelineAnalyticsResponse, error)
}

func (m *MockPipelineService) ListStages(ctx context.Context) ([]*dto.StageResponse, error) {
	if m.ListStagesFunc != nil {
		return m.ListStagesFunc(ctx)
	}
	return nil, nil
}

func (m *MockPipelineService) MoveLeadToStage(ctx context.Context, leadID uuid.UUID, req *dto.MoveLeadRequest) (*dto.LeadResponse, error) {
	if m.MoveLeadToStageFunc != nil {
		return m.MoveLeadToStageFunc(ctx, leadID, req)
	}
	return nil, nil
}

func (m *MockPipelineService) LogActivity(ctx context.Context, leadID uuid.UUID, req *dto.LogActivityRequest) (*dto.ActivityResponse, error) {
	if m.LogActivityFunc != nil {
		return m.LogActivityFunc(ctx, leadID, req)
	}
	return nil, nil
}

func (m *MockPipelineService) GetActivities(ctx context.Context, leadID uuid.UUID) ([]*dto.ActivityResponse, error) {
	if m.GetActivitiesFunc != nil {
		return m.GetActivitiesFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockPipelineService) AssignLead(ctx context.Context, leadID uuid.UUID, req *dto.AssignLeadRequest) (*dto.AssignmentResponse, error) {
	if m.AssignLeadFunc != nil {
		return m.AssignLeadFunc(ctx, leadID, req)
	}
	return nil, nil
}

func (m *MockPipelineService) GetHistory(ctx context.Context, leadID uuid.UUID) ([]*dto.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockPipelineService) GetOverview(ctx context.Context, filters dto.OverviewFilters) (*dto.PipelineOverviewResponse, error) {
	if m.GetOverviewFunc != nil {
		return m.GetOverviewFunc(ctx, filters)
	}
	return nil, nil
}

func (m *MockPipelineService) GetStaleLeads(ctx context.Context, days int, assignedTo string) (*dto.StaleLeadsResponse, error) {
	if m.GetStaleLeadsFunc != nil {
		return m.GetStaleLeadsFunc(ctx, days, assignedTo)
	}
	return nil, nil
}

func (m *MockPipelineService) GetAnalytics(ctx context.Context) (*dto.PipelineAnalyticsResponse, error) {
	if m.GetAnalyticsFunc != nil {
		return m.GetAnalyticsFunc(ctx)
	}
	return nil, nil
}
