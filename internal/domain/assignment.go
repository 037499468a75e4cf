package domain

import "github.com/google/uuid"

// LeadAssignment represents an ownership record for a lead.
// At most one row per lead may have IsActive set; the assignment
// swap runs in a transaction to keep that invariant.
type LeadAssignment struct {
	BaseModel
	LeadID           uuid.UUID `gorm:"type:uuid;not null;index:idx_lead_assignments_lead_id;index:idx_lead_assignments_lead_active,priority:1" json:"lead_id"`
	AssignedTo       string    `gorm:"type:varchar(255);not null" json:"assigned_to"`
	AssignedBy       string    `gorm:"type:varchar(255)" json:"assigned_by"`
	AssignmentReason string    `gorm:"type:text" json:"assignment_reason"`
	IsActive         bool      `gorm:"not null;default:true;index:idx_lead_assignments_lead_active,priority:2" json:"is_active"`
	Lead             Lead      `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE" json:"lead,omitempty"`
}

// TableName specifies the table name for LeadAssignment
func (LeadAssignment) TableName() string {
	return "lead_assignments"
}
