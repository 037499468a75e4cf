package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
	"lead-pipeline-api/internal/dto"
	"lead-pipeline-api/internal/metrics"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/response"
)

// DefaultStaleDays is the stale-lead window used when none is requested
const DefaultStaleDays = 7

// PipelineService defines the interface for pipeline business logic
type PipelineService interface {
	ListStages(ctx context.Context) ([]*dto.StageResponse, error)
	MoveLeadToStage(ctx context.Context, leadID uuid.UUID, req *dto.MoveLeadRequest) (*dto.LeadResponse, error)
	LogActivity(ctx context.Context, leadID uuid.UUID, req *dto.LogActivityRequest) (*dto.ActivityResponse, error)
	GetActivities(ctx context.Context, leadID uuid.UUID) ([]*dto.ActivityResponse, error)
	AssignLead(ctx context.Context, leadID uuid.UUID, req *dto.AssignLeadRequest) (*dto.AssignmentResponse, error)
	GetHistory(ctx context.Context, leadID uuid.UUID) ([]*dto.HistoryResponse, error)
	GetOverview(ctx context.Context, filters dto.OverviewFilters) (*dto.PipelineOverviewResponse, error)
	GetStaleLeads(ctx context.Context, days int, assignedTo string) (*dto.StaleLeadsResponse, error)
	GetAnalytics(ctx context.Context) (*dto.PipelineAnalyticsResponse, error)
}

// pipelineServiceImpl is the implementation of PipelineService
type pipelineServiceImpl struct {
	repos     *repository.Repositories
	tx        repository.TxManager
	cache     *OverviewCache
	staleDays int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewPipelineService creates a new instance of PipelineService. staleDays
// is the stale-lead window used when a request does not specify one;
// non-positive values fall back to DefaultStaleDays.
func NewPipelineService(
	repos *repository.Repositories,
	tx repository.TxManager,
	cache *OverviewCache,
	staleDays int,
	m *metrics.Metrics,
	logger *zap.Logger,
) PipelineService {
	if staleDays <= 0 {
		staleDays = DefaultStaleDays
	}
	return &pipelineServiceImpl{
		repos:     repos,
		tx:        tx,
		cache:     cache,
		staleDays: staleDays,
		metrics:   m,
		logger:    logger,
	}
}

// ListStages returns the active pipeline stages in board order
func (s *pipelineServiceImpl) ListStages(ctx context.Context) ([]*dto.StageResponse, error) {
	stages, err := s.repos.Stages.FindActiveOrdered(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list stages", err.Error())
	}

	responses := make([]*dto.StageResponse, len(stages))
	for i, stage := range stages {
		responses[i] = toStageResponse(stage)
	}

	return responses, nil
}

// MoveLeadToStage moves a lead to the target stage. The history append and
// the lead update happen in one transaction so the history never disagrees
// with the lead's current stage.
func (s *pipelineServiceImpl) MoveLeadToStage(ctx context.Context, leadID uuid.UUID, req *dto.MoveLeadRequest) (*dto.LeadResponse, error) {
	var stageName string

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		lead, err := repos.Leads.FindByID(ctx, leadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
		}

		stage, err := repos.Stages.FindByID(ctx, req.ToStageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Stage not found", "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to get stage", err.Error())
		}
		stageName = stage.Name

		now := time.Now().UTC()

		// Dwell time in the previous stage is measured from the last transition
		var durationHours *float64
		if lead.CurrentStageID != nil {
			last, err := repos.History.FindLatestByLead(ctx, leadID)
			if err == nil {
				hours := now.Sub(last.CreatedAt).Hours()
				durationHours = &hours
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeInternal, "Failed to read stage history", err.Error())
			}
		}

		entry := &domain.LeadStageHistory{
			LeadID:                       leadID,
			FromStageID:                  lead.CurrentStageID,
			ToStageID:                    stage.ID,
			ChangedBy:                    req.ChangedBy,
			Reason:                       req.Reason,
			DurationInPreviousStageHours: durationHours,
		}
		if err := repos.History.Create(ctx, entry); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to record stage history", err.Error())
		}

		lead.CurrentStageID = &stage.ID
		lead.Status = stage.DeriveStatus(lead.Status)
		lead.LastActivityAt = &now

		if err := repos.Leads.Update(ctx, lead); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to update lead", err.Error())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementStageMove(stageName)
	s.cache.Invalidate(ctx)

	s.logger.Info("Lead moved",
		zap.String("lead_id", leadID.String()),
		zap.String("to_stage", stageName))

	lead, err := s.repos.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload lead", err.Error())
	}

	return toLeadResponse(lead), nil
}

// LogActivity records an interaction against a lead and updates the lead's
// activity tracking fields. Contact activities (call, email, sms) also bump
// the contact counter and last contact date.
func (s *pipelineServiceImpl) LogActivity(ctx context.Context, leadID uuid.UUID, req *dto.LogActivityRequest) (*dto.ActivityResponse, error) {
	activityType := domain.ActivityType(req.ActivityType)
	if !activityType.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid activity type", req.ActivityType)
	}

	activity := &domain.LeadActivity{
		LeadID:          leadID,
		ActivityType:    activityType,
		Subject:         req.Subject,
		Description:     req.Description,
		Outcome:         req.Outcome,
		ScheduledAt:     req.ScheduledAt,
		CompletedAt:     req.CompletedAt,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       req.CreatedBy,
	}

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Leads.FindByID(ctx, leadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
		}

		if err := repos.Activities.Create(ctx, activity); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to create activity", err.Error())
		}

		now := time.Now().UTC()
		fields := map[string]interface{}{
			"last_activity_at": now,
		}
		if activityType.IsContact() {
			// incremented in SQL so concurrent contact logs don't lose updates
			fields["contact_attempts"] = gorm.Expr("contact_attempts + ?", 1)
			fields["last_contact_date"] = now
		}

		if err := repos.Leads.UpdateFields(ctx, leadID, fields); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to update lead", err.Error())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementActivityLogged(string(activityType))
	s.cache.Invalidate(ctx)

	return toActivityResponse(activity), nil
}

// GetActivities returns a lead's activities, newest first
func (s *pipelineServiceImpl) GetActivities(ctx context.Context, leadID uuid.UUID) ([]*dto.ActivityResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return nil, err
	}

	activities, err := s.repos.Activities.FindByLead(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list activities", err.Error())
	}

	responses := make([]*dto.ActivityResponse, len(activities))
	for i, activity := range activities {
		responses[i] = toActivityResponse(activity)
	}

	return responses, nil
}

// AssignLead transfers a lead to a new owner. Previous assignments are
// deactivated, a new active record is inserted and an audit note is logged,
// all in one transaction so at most one assignment stays active.
func (s *pipelineServiceImpl) AssignLead(ctx context.Context, leadID uuid.UUID, req *dto.AssignLeadRequest) (*dto.AssignmentResponse, error) {
	assignment := &domain.LeadAssignment{
		LeadID:           leadID,
		AssignedTo:       req.AssignedTo,
		AssignedBy:       req.AssignedBy,
		AssignmentReason: req.AssignmentReason,
		IsActive:         true,
	}

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		lead, err := repos.Leads.FindByID(ctx, leadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
		}

		if err := repos.Assignments.DeactivateByLead(ctx, leadID); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to deactivate previous assignments", err.Error())
		}

		if err := repos.Assignments.Create(ctx, assignment); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to create assignment", err.Error())
		}

		now := time.Now().UTC()
		fields := map[string]interface{}{
			"assigned_to":      req.AssignedTo,
			"last_activity_at": now,
		}
		if err := repos.Leads.UpdateFields(ctx, leadID, fields); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to update lead", err.Error())
		}

		note := &domain.LeadActivity{
			LeadID:       leadID,
			ActivityType: domain.ActivityTypeNote,
			Subject:      "Lead reassigned",
			Description:  "Lead assigned to " + req.AssignedTo,
			CreatedBy:    req.AssignedBy,
		}
		if lead.AssignedTo != "" && lead.AssignedTo != req.AssignedTo {
			note.Description = "Lead reassigned from " + lead.AssignedTo + " to " + req.AssignedTo
		}
		if err := repos.Activities.Create(ctx, note); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to record assignment note", err.Error())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementLeadAssigned()
	s.cache.Invalidate(ctx)

	s.logger.Info("Lead assigned",
		zap.String("lead_id", leadID.String()),
		zap.String("assigned_to", req.AssignedTo))

	return toAssignmentResponse(assignment), nil
}

// GetHistory returns a lead's stage transitions, newest first
func (s *pipelineServiceImpl) GetHistory(ctx context.Context, leadID uuid.UUID) ([]*dto.HistoryResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return nil, err
	}

	entries, err := s.repos.History.FindByLead(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list stage history", err.Error())
	}

	responses := make([]*dto.HistoryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toHistoryResponse(entry)
	}

	return responses, nil
}

// GetOverview aggregates every active stage plus pipeline totals. Results
// are cached per filter combination and invalidated on any pipeline write.
func (s *pipelineServiceImpl) GetOverview(ctx context.Context, filters dto.OverviewFilters) (*dto.PipelineOverviewResponse, error) {
	if cached := s.cache.Get(ctx, filters); cached != nil {
		s.metrics.IncrementOverviewCacheHit()
		return cached, nil
	}
	s.metrics.IncrementOverviewCacheMiss()

	stages, err := s.repos.Stages.FindActiveOrdered(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list stages", err.Error())
	}

	leads, err := s.repos.Leads.FindWithFilters(ctx, repository.LeadFilters{
		AssignedTo: filters.AssignedTo,
		DateFrom:   filters.DateFrom,
		DateTo:     filters.DateTo,
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list leads", err.Error())
	}

	overview := buildOverview(stages, leads)

	s.cache.Set(ctx, filters, overview)

	return overview, nil
}

// GetStaleLeads returns open leads with no activity inside the window
func (s *pipelineServiceImpl) GetStaleLeads(ctx context.Context, days int, assignedTo string) (*dto.StaleLeadsResponse, error) {
	if days <= 0 {
		days = s.staleDays
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	leads, err := s.repos.Leads.FindStale(ctx, cutoff, assignedTo)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list stale leads", err.Error())
	}

	responses := make([]*dto.LeadResponse, len(leads))
	for i, lead := range leads {
		responses[i] = toLeadResponse(lead)
	}

	return &dto.StaleLeadsResponse{
		Days:  days,
		Count: len(responses),
		Leads: responses,
	}, nil
}

// GetAnalytics computes average stage dwell times and per-source conversion
func (s *pipelineServiceImpl) GetAnalytics(ctx context.Context) (*dto.PipelineAnalyticsResponse, error) {
	stages, err := s.repos.Stages.FindActiveOrdered(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list stages", err.Error())
	}

	entries, err := s.repos.History.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to read stage history", err.Error())
	}

	leads, err := s.repos.Leads.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list leads", err.Error())
	}

	return &dto.PipelineAnalyticsResponse{
		StageDurations:   buildStageDurations(stages, entries),
		SourceConversion: buildSourceConversion(leads),
	}, nil
}

func (s *pipelineServiceImpl) ensureLeadExists(ctx context.Context, leadID uuid.UUID) error {
	if _, err := s.repos.Leads.FindByID(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Lead not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to get lead", err.Error())
	}
	return nil
}

// buildOverview groups leads by current stage and computes pipeline totals
func buildOverview(stages []*domain.PipelineStage, leads []*domain.Lead) *dto.PipelineOverviewResponse {
	type bucket struct {
		count      int
		totalValue float64
		scoreSum   float64
		scored     int
	}
	buckets := make(map[uuid.UUID]*bucket, len(stages))
	for _, stage := range stages {
		buckets[stage.ID] = &bucket{}
	}

	totals := dto.OverviewTotals{}
	for _, lead := range leads {
		totals.Total++
		switch lead.Status {
		case domain.LeadStatusWon:
			totals.Won++
		case domain.LeadStatusLost:
			totals.Lost++
		default:
			totals.Active++
		}

		if lead.CurrentStageID == nil {
			continue
		}
		b, ok := buckets[*lead.CurrentStageID]
		if !ok {
			continue
		}
		b.count++
		b.totalValue += lead.EstimatedMonthlyValue
		if lead.Score != nil {
			b.scoreSum += *lead.Score
			b.scored++
		}
	}

	if closed := totals.Won + totals.Lost; closed > 0 {
		totals.ConversionRate = float64(totals.Won) / float64(closed)
	}

	stageOverviews := make([]dto.StageOverview, len(stages))
	for i, stage := range stages {
		b := buckets[stage.ID]
		overview := dto.StageOverview{
			StageID:     stage.ID,
			Name:        stage.Name,
			DisplayName: stage.DisplayName,
			Color:       stage.Color,
			StageOrder:  stage.StageOrder,
			Count:       b.count,
			TotalValue:  b.totalValue,
		}
		if b.scored > 0 {
			avg := b.scoreSum / float64(b.scored)
			overview.AvgScore = &avg
		}
		stageOverviews[i] = overview
	}

	return &dto.PipelineOverviewResponse{
		Stages: stageOverviews,
		Totals: totals,
	}
}

// buildStageDurations averages recorded dwell times by destination stage
func buildStageDurations(stages []*domain.PipelineStage, entries []*domain.LeadStageHistory) []dto.StageDurationMetric {
	type bucket struct {
		transitions int
		hoursSum    float64
		measured    int
	}
	buckets := make(map[uuid.UUID]*bucket)
	for _, entry := range entries {
		b, ok := buckets[entry.ToStageID]
		if !ok {
			b = &bucket{}
			buckets[entry.ToStageID] = b
		}
		b.transitions++
		if entry.DurationInPreviousStageHours != nil {
			b.hoursSum += *entry.DurationInPreviousStageHours
			b.measured++
		}
	}

	metrics := make([]dto.StageDurationMetric, 0, len(buckets))
	for _, stage := range stages {
		b, ok := buckets[stage.ID]
		if !ok {
			continue
		}
		metric := dto.StageDurationMetric{
			StageID:     stage.ID,
			Name:        stage.Name,
			DisplayName: stage.DisplayName,
			Transitions: b.transitions,
		}
		if b.measured > 0 {
			metric.AvgHours = roundTwo(b.hoursSum / float64(b.measured))
		}
		metrics = append(metrics, metric)
	}

	return metrics
}

// buildSourceConversion computes won percentage of closed leads per source
func buildSourceConversion(leads []*domain.Lead) []dto.SourceConversionMetric {
	type bucket struct {
		total int
		won   int
		lost  int
	}
	buckets := make(map[string]*bucket)
	for _, lead := range leads {
		source := lead.Source
		if source == "" {
			source = "unknown"
		}
		b, ok := buckets[source]
		if !ok {
			b = &bucket{}
			buckets[source] = b
		}
		b.total++
		switch lead.Status {
		case domain.LeadStatusWon:
			b.won++
		case domain.LeadStatusLost:
			b.lost++
		}
	}

	sources := make([]string, 0, len(buckets))
	for source := range buckets {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	metrics := make([]dto.SourceConversionMetric, 0, len(sources))
	for _, source := range sources {
		b := buckets[source]
		metric := dto.SourceConversionMetric{
			Source: source,
			Total:  b.total,
			Won:    b.won,
			Lost:   b.lost,
		}
		if closed := b.won + b.lost; closed > 0 {
			metric.ConversionRate = roundTwo(float64(b.won) / float64(closed) * 100)
		}
		metrics = append(metrics, metric)
	}

	return metrics
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}
