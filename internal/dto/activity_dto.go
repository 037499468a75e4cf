package dto

import (
	"time"

	"github.com/google/uuid"
)

// LogActivityRequest represents the request to log a lead interaction
type LogActivityRequest struct {
	ActivityType    string     `json:"activity_type" binding:"required"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description"`
	Outcome         string     `json:"outcome"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" binding:"omitempty,gte=0"`
	CreatedBy       string     `json:"created_by"`
}

// ActivityResponse represents a logged activity in API responses
type ActivityResponse struct {
	ID              uuid.UUID  `json:"id"`
	LeadID          uuid.UUID  `json:"lead_id"`
	ActivityType    string     `json:"activity_type"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description"`
	Outcome         string     `json:"outcome"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}
