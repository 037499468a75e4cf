package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lead-pipeline-api/internal/metrics"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/service"
)

// MetricsJob periodically refreshes the business gauges from the database
type MetricsJob struct {
	leadRepo  repository.LeadRepository
	staleDays int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewMetricsJob creates a new MetricsJob instance. staleDays sets the
// stale-lead window for the gauge; non-positive values fall back to the
// service default.
func NewMetricsJob(leadRepo repository.LeadRepository, staleDays int, m *metrics.Metrics, logger *zap.Logger) *MetricsJob {
	if staleDays <= 0 {
		staleDays = service.DefaultStaleDays
	}
	return &MetricsJob{
		leadRepo:  leadRepo,
		staleDays: staleDays,
		metrics:   m,
		logger:    logger,
	}
}

// Run recomputes the lead and stale-lead gauges. Implements cron.Job.
func (j *MetricsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := j.leadRepo.Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count leads for metrics", zap.Error(err))
		return
	}
	j.metrics.SetLeadsTotal(total)

	cutoff := time.Now().UTC().AddDate(0, 0, -j.staleDays)
	stale, err := j.leadRepo.CountStale(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to count stale leads for metrics", zap.Error(err))
		return
	}
	j.metrics.SetStaleLeadsTotal(stale)

	j.logger.Debug("Business gauges refreshed",
		zap.Int64("leads_total", total),
		zap.Int64("stale_leads_total", stale))
}
