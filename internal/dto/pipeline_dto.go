package dto

import (
	"time"

	"github.com/google/uuid"
)

// StageResponse represents a pipeline stage in API responses
type StageResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	StageOrder  int       `json:"stage_order"`
	IsWon       bool      `json:"is_won"`
	IsLost      bool      `json:"is_lost"`
	Color       string    `json:"color"`
}

// MoveLeadRequest represents the request to move a lead to another stage
type MoveLeadRequest struct {
	ToStageID uuid.UUID `json:"to_stage_id" binding:"required"`
	Reason    string    `json:"reason"`
	ChangedBy string    `json:"changed_by"`
}

// HistoryResponse represents one stage transition in API responses
type HistoryResponse struct {
	ID                           uuid.UUID  `json:"id"`
	LeadID                       uuid.UUID  `json:"lead_id"`
	FromStageID                  *uuid.UUID `json:"from_stage_id"`
	ToStageID                    uuid.UUID  `json:"to_stage_id"`
	ChangedBy                    string     `json:"changed_by"`
	Reason                       string     `json:"reason"`
	DurationInPreviousStageHours *float64   `json:"duration_in_previous_stage_hours"`
	CreatedAt                    time.Time  `json:"created_at"`
}

// OverviewFilters holds the optional pipeline overview filters
type OverviewFilters struct {
	AssignedTo string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// StageOverview aggregates the leads currently sitting in one stage
type StageOverview struct {
	StageID     uuid.UUID `json:"stage_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Color       string    `json:"color"`
	StageOrder  int       `json:"stage_order"`
	Count       int       `json:"count"`
	TotalValue  float64   `json:"total_value"`
	AvgScore    *float64  `json:"avg_score"`
}

// OverviewTotals holds the pipeline-wide metrics
type OverviewTotals struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Won            int     `json:"won"`
	Lost           int     `json:"lost"`
	ConversionRate float64 `json:"conversion_rate"`
}

// PipelineOverviewResponse is the full overview payload
type PipelineOverviewResponse struct {
	Stages []StageOverview `json:"stages"`
	Totals OverviewTotals  `json:"totals"`
}

// StaleLeadsResponse lists open leads with no recent activity
type StaleLeadsResponse struct {
	Days  int             `json:"days"`
	Count int             `json:"count"`
	Leads []*LeadResponse `json:"leads"`
}

// StageDurationMetric is the average dwell time observed entering a stage
type StageDurationMetric struct {
	StageID     uuid.UUID `json:"stage_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	AvgHours    float64   `json:"avg_hours"`
	Transitions int       `json:"transitions"`
}

// SourceConversionMetric is the won/lost ratio for one lead source
type SourceConversionMetric struct {
	Source         string  `json:"source"`
	Total          int     `json:"total"`
	Won            int     `json:"won"`
	Lost           int     `json:"lost"`
	ConversionRate float64 `json:"conversion_rate"`
}

// PipelineAnalyticsResponse is the analytics payload
type PipelineAnalyticsResponse struct {
	StageDurations   []StageDurationMetric    `json:"stage_durations"`
	SourceConversion []SourceConversionMetric `json:"source_conversion"`
}
