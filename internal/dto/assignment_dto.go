package dto

import (
	"time"

	"github.com/google/uuid"
)

// AssignLeadRequest represents the request to assign a lead to an owner
type AssignLeadRequest struct {
	AssignedTo       string `json:"assigned_to" binding:"required"`
	AssignedBy       string `json:"assigned_by"`
	AssignmentReason string `json:"assignment_reason"`
}

// AssignmentResponse represents an assignment record in API responses
type AssignmentResponse struct {
	ID               uuid.UUID `json:"id"`
	LeadID           uuid.UUID `json:"lead_id"`
	AssignedTo       string    `json:"assigned_to"`
	AssignedBy       string    `json:"assigned_by"`
	AssignmentReason string    `json:"assignment_reason"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}
