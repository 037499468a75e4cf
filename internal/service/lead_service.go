package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/client"
	"lead-pipeline-api/internal/domain"
	"lead-pipeline-api/internal/dto"
	"lead-pipeline-api/internal/metrics"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/response"
)

const asyncScoreTimeout = 30 * time.Second

// LeadService defines the interface for lead business logic
type LeadService interface {
	CaptureLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadResponse, error)
	ListLeads(ctx context.Context, filters repository.LeadFilters) ([]*dto.LeadResponse, error)
	UpdateLead(ctx context.Context, leadID uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	RescoreLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadScoreResponse, error)
}

// leadServiceImpl is the implementation of LeadService
type leadServiceImpl struct {
	repos   *repository.Repositories
	tx      repository.TxManager
	scoring client.ScoringClient
	cache   *OverviewCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewLeadService creates a new instance of LeadService
func NewLeadService(
	repos *repository.Repositories,
	tx repository.TxManager,
	scoring client.ScoringClient,
	cache *OverviewCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) LeadService {
	return &leadServiceImpl{
		repos:   repos,
		tx:      tx,
		scoring: scoring,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// CaptureLead creates a new lead, places it in the entry stage and kicks off
// scoring in the background. Scoring failures never fail the capture.
func (s *leadServiceImpl) CaptureLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	var propertyJSON datatypes.JSON
	if req.PropertyAddress != nil {
		jsonBytes, err := json.Marshal(req.PropertyAddress)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal property address", err.Error())
		}
		propertyJSON = jsonBytes
	}

	lead := &domain.Lead{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Source:                req.Source,
		Status:                domain.LeadStatusNew,
		EstimatedMonthlyValue: req.EstimatedMonthlyValue,
		PropertyAddress:       propertyJSON,
		AssignedTo:            req.AssignedTo,
		NextFollowupAt:        req.NextFollowupAt,
	}

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		stages, err := repos.Stages.FindActiveOrdered(ctx)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to load pipeline stages", err.Error())
		}
		if len(stages) > 0 {
			lead.CurrentStageID = &stages[0].ID
		}

		if err := repos.Leads.Create(ctx, lead); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to create lead", err.Error())
		}

		if lead.CurrentStageID != nil {
			entry := &domain.LeadStageHistory{
				LeadID:    lead.ID,
				ToStageID: *lead.CurrentStageID,
				ChangedBy: "system",
				Reason:    "Lead captured",
			}
			if err := repos.History.Create(ctx, entry); err != nil {
				return response.NewAppError(response.ErrCodeInternal, "Failed to record stage history", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementLeadCreated()
	s.cache.Invalidate(ctx)

	s.logger.Info("Lead captured",
		zap.String("lead_id", lead.ID.String()),
		zap.String("source", lead.Source))

	if s.scoring != nil {
		go s.scoreInBackground(lead)
	}

	created, err := s.repos.Leads.FindByID(ctx, lead.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload lead", err.Error())
	}

	return toLeadResponse(created), nil
}

// GetLead retrieves a single lead with its current stage
func (s *leadServiceImpl) GetLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadResponse, error) {
	lead, err := s.repos.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
	}

	return toLeadResponse(lead), nil
}

// ListLeads retrieves leads matching the given filters
func (s *leadServiceImpl) ListLeads(ctx context.Context, filters repository.LeadFilters) ([]*dto.LeadResponse, error) {
	if filters.Status != "" && !domain.LeadStatus(filters.Status).IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid lead status filter", filters.Status)
	}

	leads, err := s.repos.Leads.FindWithFilters(ctx, filters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list leads", err.Error())
	}

	responses := make([]*dto.LeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = toLeadResponse(lead)
	}

	return responses, nil
}

// UpdateLead applies a partial update to a lead's contact fields
func (s *leadServiceImpl) UpdateLead(ctx context.Context, leadID uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := s.repos.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
	}

	if req.FirstName != nil {
		lead.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		lead.LastName = *req.LastName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.EstimatedMonthlyValue != nil {
		lead.EstimatedMonthlyValue = *req.EstimatedMonthlyValue
	}
	if req.PropertyAddress != nil {
		jsonBytes, err := json.Marshal(*req.PropertyAddress)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to marshal property address", err.Error())
		}
		lead.PropertyAddress = jsonBytes
	}
	if req.NextFollowupAt != nil {
		lead.NextFollowupAt = req.NextFollowupAt
	}

	if err := s.repos.Leads.Update(ctx, lead); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update lead", err.Error())
	}

	s.cache.Invalidate(ctx)

	return toLeadResponse(lead), nil
}

// RescoreLead calls the scoring service synchronously and persists the result
func (s *leadServiceImpl) RescoreLead(ctx context.Context, leadID uuid.UUID) (*dto.LeadScoreResponse, error) {
	if s.scoring == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Lead scoring is not configured", "")
	}

	lead, err := s.repos.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
	}

	result, err := s.scoring.ScoreLead(ctx, scoreRequestFor(lead))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Lead scoring failed", err.Error())
	}

	if err := s.applyScore(ctx, lead.ID, result); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save lead score", err.Error())
	}

	return &dto.LeadScoreResponse{
		LeadID:                lead.ID,
		Score:                 result.Score,
		EstimatedMonthlyValue: result.EstimatedMonthlyValue,
		Factors:               result.Factors,
		Explanation:           result.Explanation,
		RecommendedActions:    result.RecommendedActions,
	}, nil
}

// scoreInBackground scores a freshly captured lead outside the request cycle.
// Failures are logged and swallowed.
func (s *leadServiceImpl) scoreInBackground(lead *domain.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncScoreTimeout)
	defer cancel()

	result, err := s.scoring.ScoreLead(ctx, scoreRequestFor(lead))
	if err != nil {
		s.logger.Warn("Background lead scoring failed",
			zap.String("lead_id", lead.ID.String()),
			zap.Error(err))
		return
	}

	if err := s.applyScore(ctx, lead.ID, result); err != nil {
		s.logger.Warn("Failed to save background lead score",
			zap.String("lead_id", lead.ID.String()),
			zap.Error(err))
	}
}

func (s *leadServiceImpl) applyScore(ctx context.Context, leadID uuid.UUID, result *client.ScoreResult) error {
	fields := map[string]interface{}{
		"score": result.Score,
	}
	if result.Factors != nil {
		factorsJSON, err := json.Marshal(result.Factors)
		if err != nil {
			return err
		}
		fields["score_factors"] = datatypes.JSON(factorsJSON)
	}
	if result.EstimatedMonthlyValue > 0 {
		fields["estimated_monthly_value"] = result.EstimatedMonthlyValue
	}

	return s.repos.Leads.UpdateFields(ctx, leadID, fields)
}

func scoreRequestFor(lead *domain.Lead) client.ScoreRequest {
	var propertyAddress map[string]interface{}
	if len(lead.PropertyAddress) > 0 {
		_ = json.Unmarshal(lead.PropertyAddress, &propertyAddress)
	}

	return client.ScoreRequest{
		LeadID:                lead.ID,
		FirstName:             lead.FirstName,
		LastName:              lead.LastName,
		Source:                lead.Source,
		PropertyAddress:       propertyAddress,
		ContactAttempts:       lead.ContactAttempts,
		EstimatedMonthlyValue: lead.EstimatedMonthlyValue,
	}
}
