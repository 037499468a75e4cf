package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType represents the kind of logged interaction
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeSMS     ActivityType = "sms"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeNote    ActivityType = "note"
)

// IsValid reports whether the activity type is one of the known values
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeSMS, ActivityTypeMeeting, ActivityTypeNote:
		return true
	}
	return false
}

// IsContact reports whether the activity counts as a contact attempt
func (t ActivityType) IsContact() bool {
	return t == ActivityTypeCall || t == ActivityTypeEmail || t == ActivityTypeSMS
}

// LeadActivity represents a logged interaction with a lead
type LeadActivity struct {
	BaseModel
	LeadID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_lead_activities_lead_id" json:"lead_id"`
	ActivityType    ActivityType `gorm:"type:varchar(50);not null;index:idx_lead_activities_type" json:"activity_type"`
	Subject         string       `gorm:"type:varchar(255)" json:"subject"`
	Description     string       `gorm:"type:text" json:"description"`
	Outcome         string       `gorm:"type:varchar(255)" json:"outcome"`
	ScheduledAt     *time.Time   `json:"scheduled_at"`
	CompletedAt     *time.Time   `json:"completed_at"`
	DurationMinutes *int         `json:"duration_minutes"`
	CreatedBy       string       `gorm:"type:varchar(255)" json:"created_by"`
	Lead            Lead         `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"lead,omitempty"`
}

// TableName specifies the table name for LeadActivity
func (LeadActivity) TableName() string {
	return "lead_activities"
}
