package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// callbackRegisterer matches gorm's unexported callback type returned by
// processor.Before/After.
type callbackRegisterer interface {
	Register(string, func(*gorm.DB)) error
}

// RegisterMetricsCallbacks registers GORM callbacks for metrics collection
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	register := func(before, after callbackRegisterer, name, operation string) {
		before.Register("metrics:"+name+"_before", func(db *gorm.DB) {
			db.InstanceSet("query_start_time", time.Now())
		})
		after.Register("metrics:"+name+"_after", func(db *gorm.DB) {
			startTime, ok := db.InstanceGet("query_start_time")
			if !ok {
				return
			}
			duration := time.Since(startTime.(time.Time))
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, duration, db.Error)
		})
	}

	register(db.Callback().Query().Before("gorm:query"), db.Callback().Query().After("gorm:query"), "query", "select")
	register(db.Callback().Create().Before("gorm:create"), db.Callback().Create().After("gorm:create"), "create", "insert")
	register(db.Callback().Update().Before("gorm:update"), db.Callback().Update().After("gorm:update"), "update", "update")
	register(db.Callback().Delete().Before("gorm:delete"), db.Callback().Delete().After("gorm:delete"), "delete", "delete")
}

// StartDBStatsCollector starts periodic DB stats collection.
// Returns a channel that stops the collector when closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
