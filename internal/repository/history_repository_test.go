package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/domain"
)

func seedHistory(t *testing.T, db *gorm.DB, leadID, toStageID uuid.UUID, createdAt time.Time) *domain.LeadStageHistory {
	t.Helper()
	entry := &domain.LeadStageHistory{LeadID: leadID, ToStageID: toStageID}
	entry.ID = uuid.New()
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
	// Backdate after insert so the repository's clock is not involved
	if err := db.Model(entry).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate history: %v", err)
	}
	return entry
}

func TestHistoryRepository_FindLatestByLead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	leadID := uuid.New()
	now := time.Now().UTC()

	seedHistory(t, db, leadID, uuid.New(), now.Add(-48*time.Hour))
	latest := seedHistory(t, db, leadID, uuid.New(), now.Add(-time.Hour))
	seedHistory(t, db, uuid.New(), uuid.New(), now) // another lead

	got, err := repo.FindLatestByLead(ctx, leadID)
	if err != nil {
		t.Fatalf("FindLatestByLead() error = %v", err)
	}
	if got.ID != latest.ID {
		t.Errorf("FindLatestByLead() = %v, want most recent entry %v", got.ID, latest.ID)
	}
}

func TestHistoryRepository_FindLatestByLead_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)

	_, err := repo.FindLatestByLead(context.Background(), uuid.New())
	if err != gorm.ErrRecordNotFound {
		t.Errorf("FindLatestByLead() error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestHistoryRepository_FindByLead_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	leadID := uuid.New()
	now := time.Now().UTC()

	oldest := seedHistory(t, db, leadID, uuid.New(), now.Add(-72*time.Hour))
	middle := seedHistory(t, db, leadID, uuid.New(), now.Add(-24*time.Hour))
	newest := seedHistory(t, db, leadID, uuid.New(), now.Add(-time.Hour))

	got, err := repo.FindByLead(ctx, leadID)
	if err != nil {
		t.Fatalf("FindByLead() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("FindByLead() returned %d entries, want 3", len(got))
	}
	wantOrder := []uuid.UUID{newest.ID, middle.ID, oldest.ID}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("FindByLead()[%d] = %v, want %v", i, got[i].ID, want)
		}
	}
}
