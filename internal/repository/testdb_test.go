package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the pipeline schema.
// Tables are created by hand because the production models rely on
// Postgres-only column defaults.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	statements := []string{
		`CREATE TABLE pipeline_stages (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			stage_order INTEGER NOT NULL,
			is_won BOOLEAN NOT NULL DEFAULT 0,
			is_lost BOOLEAN NOT NULL DEFAULT 0,
			color TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE leads (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			first_name TEXT NOT NULL,
			last_name TEXT,
			email TEXT,
			phone TEXT,
			source TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			score REAL,
			score_factors TEXT,
			estimated_monthly_value REAL NOT NULL DEFAULT 0,
			property_address TEXT,
			contact_attempts INTEGER NOT NULL DEFAULT 0,
			last_contact_date DATETIME,
			current_stage_id TEXT,
			assigned_to TEXT,
			last_activity_at DATETIME,
			next_followup_at DATETIME
		)`,
		`CREATE TABLE lead_stage_history (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			lead_id TEXT NOT NULL,
			from_stage_id TEXT,
			to_stage_id TEXT NOT NULL,
			changed_by TEXT,
			reason TEXT,
			duration_in_previous_stage_hours REAL
		)`,
		`CREATE TABLE lead_activities (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			lead_id TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			subject TEXT,
			description TEXT,
			outcome TEXT,
			scheduled_at DATETIME,
			completed_at DATETIME,
			duration_minutes INTEGER,
			created_by TEXT
		)`,
		`CREATE TABLE lead_assignments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			lead_id TEXT NOT NULL,
			assigned_to TEXT NOT NULL,
			assigned_by TEXT,
			assignment_reason TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}

	return db
}
