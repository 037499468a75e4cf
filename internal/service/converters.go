package service

import (
	"encoding/json"

	"lead-pipeline-api/internal/domain"
	"lead-pipeline-api/internal/dto"
)

// toLeadResponse converts domain.Lead to dto.LeadResponse
func toLeadResponse(lead *domain.Lead) *dto.LeadResponse {
	var scoreFactors map[string]interface{}
	if len(lead.ScoreFactors) > 0 {
		_ = json.Unmarshal(lead.ScoreFactors, &scoreFactors)
	}

	var propertyAddress map[string]interface{}
	if len(lead.PropertyAddress) > 0 {
		_ = json.Unmarshal(lead.PropertyAddress, &propertyAddress)
	}

	resp := &dto.LeadResponse{
		ID:                    lead.ID,
		FirstName:             lead.FirstName,
		LastName:              lead.LastName,
		Email:                 lead.Email,
		Phone:                 lead.Phone,
		Source:                lead.Source,
		Status:                string(lead.Status),
		Score:                 lead.Score,
		ScoreFactors:          scoreFactors,
		EstimatedMonthlyValue: lead.EstimatedMonthlyValue,
		PropertyAddress:       propertyAddress,
		ContactAttempts:       lead.ContactAttempts,
		LastContactDate:       lead.LastContactDate,
		CurrentStageID:        lead.CurrentStageID,
		AssignedTo:            lead.AssignedTo,
		LastActivityAt:        lead.LastActivityAt,
		NextFollowupAt:        lead.NextFollowupAt,
		CreatedAt:             lead.CreatedAt,
		UpdatedAt:             lead.UpdatedAt,
	}

	if lead.CurrentStage != nil {
		resp.CurrentStage = toStageResponse(lead.CurrentStage)
	}

	return resp
}

// toStageResponse converts domain.PipelineStage to dto.StageResponse
func toStageResponse(stage *domain.PipelineStage) *dto.StageResponse {
	return &dto.StageResponse{
		ID:          stage.ID,
		Name:        stage.Name,
		DisplayName: stage.DisplayName,
		StageOrder:  stage.StageOrder,
		IsWon:       stage.IsWon,
		IsLost:      stage.IsLost,
		Color:       stage.Color,
	}
}

// toActivityResponse converts domain.LeadActivity to dto.ActivityResponse
func toActivityResponse(activity *domain.LeadActivity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:              activity.ID,
		LeadID:          activity.LeadID,
		ActivityType:    string(activity.ActivityType),
		Subject:         activity.Subject,
		Description:     activity.Description,
		Outcome:         activity.Outcome,
		ScheduledAt:     activity.ScheduledAt,
		CompletedAt:     activity.CompletedAt,
		DurationMinutes: activity.DurationMinutes,
		CreatedBy:       activity.CreatedBy,
		CreatedAt:       activity.CreatedAt,
	}
}

// toHistoryResponse converts domain.LeadStageHistory to dto.HistoryResponse
func toHistoryResponse(entry *domain.LeadStageHistory) *dto.HistoryResponse {
	return &dto.HistoryResponse{
		ID:                           entry.ID,
		LeadID:                       entry.LeadID,
		FromStageID:                  entry.FromStageID,
		ToStageID:                    entry.ToStageID,
		ChangedBy:                    entry.ChangedBy,
		Reason:                       entry.Reason,
		DurationInPreviousStageHours: entry.DurationInPreviousStageHours,
		CreatedAt:                    entry.CreatedAt,
	}
}

// toAssignmentResponse converts domain.LeadAssignment to dto.AssignmentResponse
func toAssignmentResponse(assignment *domain.LeadAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:               assignment.ID,
		LeadID:           assignment.LeadID,
		AssignedTo:       assignment.AssignedTo,
		AssignedBy:       assignment.AssignedBy,
		AssignmentReason: assignment.AssignmentReason,
		IsActive:         assignment.IsActive,
		CreatedAt:        assignment.CreatedAt,
	}
}
