package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.PipelineStage{},
		&domain.Lead{},
		&domain.LeadStageHistory{},
		&domain.LeadActivity{},
		&domain.LeadAssignment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// defaultStages is the pipeline seeded on a fresh database. Orders are
// contiguous starting at 1; the status-derivation rule in the pipeline
// service assumes they stay that way.
var defaultStages = []domain.PipelineStage{
	{Name: "new_inquiry", DisplayName: "New Inquiry", StageOrder: 1, Color: "#94A3B8", IsActive: true},
	{Name: "contacted", DisplayName: "Contacted", StageOrder: 2, Color: "#60A5FA", IsActive: true},
	{Name: "estimate_scheduled", DisplayName: "Estimate Scheduled", StageOrder: 3, Color: "#FBBF24", IsActive: true},
	{Name: "estimate_sent", DisplayName: "Estimate Sent", StageOrder: 4, Color: "#F97316", IsActive: true},
	{Name: "closed_won", DisplayName: "Closed Won", StageOrder: 5, IsWon: true, Color: "#34D399", IsActive: true},
	{Name: "closed_lost", DisplayName: "Closed Lost", StageOrder: 6, IsLost: true, Color: "#F87171", IsActive: true},
}

// SeedStages inserts the default pipeline stages if the table is empty
func SeedStages(ctx context.Context, db *gorm.DB) error {
	for i := range defaultStages {
		stage := defaultStages[i]
		var existing domain.PipelineStage
		err := db.WithContext(ctx).Where("name = ?", stage.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check stage %s: %w", stage.Name, err)
		}
		if err := db.WithContext(ctx).Create(&stage).Error; err != nil {
			return fmt.Errorf("failed to seed stage %s: %w", stage.Name, err)
		}
	}
	return nil
}
