package domain

// PipelineStage represents a named step in the sales process,
// ordered for progression tracking. Seeded once at startup and
// treated as read-only reference data afterwards.
type PipelineStage struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:uq_pipeline_stages_name" json:"name"`
	DisplayName string `gorm:"type:varchar(255);not null" json:"display_name"`
	StageOrder  int    `gorm:"not null;index:idx_pipeline_stages_order" json:"stage_order"`
	IsWon       bool   `gorm:"not null;default:false" json:"is_won"`
	IsLost      bool   `gorm:"not null;default:false" json:"is_lost"`
	Color       string `gorm:"type:varchar(20)" json:"color"`
	IsActive    bool   `gorm:"not null;default:true;index:idx_pipeline_stages_is_active" json:"is_active"`
}

// TableName specifies the table name for PipelineStage
func (PipelineStage) TableName() string {
	return "pipeline_stages"
}

// DeriveStatus maps a stage onto the lead status it implies.
// Terminal flags win over stage order; early stages leave the
// status untouched, which is why the current status is threaded in.
func (s *PipelineStage) DeriveStatus(current LeadStatus) LeadStatus {
	switch {
	case s.IsWon:
		return LeadStatusWon
	case s.IsLost:
		return LeadStatusLost
	case s.StageOrder >= 3:
		return LeadStatusQualified
	case s.StageOrder >= 2:
		return LeadStatusContacted
	default:
		return current
	}
}
