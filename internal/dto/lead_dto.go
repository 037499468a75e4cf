package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeadRequest represents the request to capture a new lead
type CreateLeadRequest struct {
	FirstName             string                 `json:"first_name" binding:"required"`
	LastName              string                 `json:"last_name"`
	Email                 string                 `json:"email" binding:"omitempty,email"`
	Phone                 string                 `json:"phone"`
	Source                string                 `json:"source"`
	EstimatedMonthlyValue float64                `json:"estimated_monthly_value" binding:"omitempty,gte=0"`
	PropertyAddress       map[string]interface{} `json:"property_address,omitempty"`
	AssignedTo            string                 `json:"assigned_to"`
	NextFollowupAt        *time.Time             `json:"next_followup_at,omitempty"`
}

// UpdateLeadRequest represents a partial update of a lead
type UpdateLeadRequest struct {
	FirstName             *string                 `json:"first_name,omitempty"`
	LastName              *string                 `json:"last_name,omitempty"`
	Email                 *string                 `json:"email,omitempty" binding:"omitempty,email"`
	Phone                 *string                 `json:"phone,omitempty"`
	Source                *string                 `json:"source,omitempty"`
	EstimatedMonthlyValue *float64                `json:"estimated_monthly_value,omitempty" binding:"omitempty,gte=0"`
	PropertyAddress       *map[string]interface{} `json:"property_address,omitempty"`
	NextFollowupAt        *time.Time              `json:"next_followup_at,omitempty"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID                    uuid.UUID              `json:"id"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	Email                 string                 `json:"email"`
	Phone                 string                 `json:"phone"`
	Source                string                 `json:"source"`
	Status                string                 `json:"status"`
	Score                 *float64               `json:"score"`
	ScoreFactors          map[string]interface{} `json:"score_factors,omitempty"`
	EstimatedMonthlyValue float64                `json:"estimated_monthly_value"`
	PropertyAddress       map[string]interface{} `json:"property_address,omitempty"`
	ContactAttempts       int                    `json:"contact_attempts"`
	LastContactDate       *time.Time             `json:"last_contact_date"`
	CurrentStageID        *uuid.UUID             `json:"current_stage_id"`
	CurrentStage          *StageResponse         `json:"current_stage,omitempty"`
	AssignedTo            string                 `json:"assigned_to"`
	LastActivityAt        *time.Time             `json:"last_activity_at"`
	NextFollowupAt        *time.Time             `json:"next_followup_at"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// LeadScoreResponse represents the result of an external lead scoring call
type LeadScoreResponse struct {
	LeadID                uuid.UUID              `json:"lead_id"`
	Score                 float64                `json:"score"`
	EstimatedMonthlyValue float64                `json:"estimated_monthly_value"`
	Factors               map[string]interface{} `json:"factors,omitempty"`
	Explanation           string                 `json:"explanation,omitempty"`
	RecommendedActions    []string               `json:"recommended_actions,omitempty"`
}
