package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LeadStatus represents the sales status of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// IsValid reports whether the status is one of the known values
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// IsClosed reports whether the lead has reached a terminal status
func (s LeadStatus) IsClosed() bool {
	return s == LeadStatusWon || s == LeadStatusLost
}

// Lead represents a prospective customer tracked prior to conversion
type Lead struct {
	BaseModel
	FirstName             string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string         `gorm:"type:varchar(100)" json:"last_name"`
	Email                 string         `gorm:"type:varchar(255);index:idx_leads_email" json:"email"`
	Phone                 string         `gorm:"type:varchar(50)" json:"phone"`
	Source                string         `gorm:"type:varchar(100);index:idx_leads_source" json:"source"`
	Status                LeadStatus     `gorm:"type:varchar(50);not null;default:'new';index:idx_leads_status" json:"status"`
	Score                 *float64       `json:"score"`
	ScoreFactors          datatypes.JSON `gorm:"type:jsonb" json:"score_factors,omitempty"`
	EstimatedMonthlyValue float64        `gorm:"not null;default:0" json:"estimated_monthly_value"`
	PropertyAddress       datatypes.JSON `gorm:"type:jsonb" json:"property_address,omitempty"`
	ContactAttempts       int            `gorm:"not null;default:0" json:"contact_attempts"`
	LastContactDate       *time.Time     `json:"last_contact_date"`
	CurrentStageID        *uuid.UUID     `gorm:"type:uuid;index:idx_leads_current_stage_id" json:"current_stage_id"`
	AssignedTo            string         `gorm:"type:varchar(255);index:idx_leads_assigned_to" json:"assigned_to"`
	LastActivityAt        *time.Time     `gorm:"index:idx_leads_last_activity_at" json:"last_activity_at"`
	NextFollowupAt        *time.Time     `json:"next_followup_at"`
	CurrentStage          *PipelineStage `gorm:"foreignKey:CurrentStageID" json:"current_stage,omitempty"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}
