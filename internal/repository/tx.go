package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles all repositories bound to one database handle.
// Within a transaction the bundle is rebuilt on the transaction handle,
// so every repository call inside the callback shares the transaction.
type Repositories struct {
	Leads       LeadRepository
	Stages      StageRepository
	History     HistoryRepository
	Activities  ActivityRepository
	Assignments AssignmentRepository
}

// NewRepositories creates a repository bundle on the given handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Leads:       NewLeadRepository(db),
		Stages:      NewStageRepository(db),
		History:     NewHistoryRepository(db),
		Activities:  NewActivityRepository(db),
		Assignments: NewAssignmentRepository(db),
	}
}

// TxManager runs a function within a database transaction
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// gormTxManager is the GORM implementation of TxManager
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager on the given database handle
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithinTransaction runs fn with repositories bound to a single
// transaction; the transaction commits when fn returns nil and rolls
// back when it returns an error.
func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
