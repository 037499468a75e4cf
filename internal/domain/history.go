package domain

import "github.com/google/uuid"

// LeadStageHistory is one append-only audit record of a stage transition.
// FromStageID is nil when the row records a lead's first stage. Rows are
// never updated after insert; the latest row for a lead mirrors
// Lead.CurrentStageID.
type LeadStageHistory struct {
	BaseModel
	LeadID                       uuid.UUID      `gorm:"type:uuid;not null;index:idx_lead_stage_history_lead_id" json:"lead_id"`
	FromStageID                  *uuid.UUID     `gorm:"type:uuid" json:"from_stage_id"`
	ToStageID                    uuid.UUID      `gorm:"type:uuid;not null;index:idx_lead_stage_history_to_stage_id" json:"to_stage_id"`
	ChangedBy                    string         `gorm:"type:varchar(255)" json:"changed_by"`
	Reason                       string         `gorm:"type:text" json:"reason"`
	DurationInPreviousStageHours *float64       `json:"duration_in_previous_stage_hours"`
	Lead                         Lead           `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"lead,omitempty"`
	ToStage                      *PipelineStage `gorm:"foreignKey:ToStageID" json:"to_stage,omitempty"`
}

// TableName specifies the table name for LeadStageHistory
func (LeadStageHistory) TableName() string {
	return "lead_stage_history"
}
