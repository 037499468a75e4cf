package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"lead-pipeline-api/internal/dto"
)

const overviewCacheGenKey = "pipeline:overview:gen"

// OverviewCache caches computed pipeline overviews in Redis.
// Invalidation bumps a generation counter instead of scanning keys,
// so stale entries simply expire with their TTL.
type OverviewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewOverviewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *OverviewCache {
	return &OverviewCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *OverviewCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func (c *OverviewCache) key(ctx context.Context, filters dto.OverviewFilters) string {
	gen, err := c.client.Get(ctx, overviewCacheGenKey).Int64()
	if err != nil && err != redis.Nil {
		c.logger.Warn("Failed to read overview cache generation", zap.Error(err))
	}
	from := ""
	if filters.DateFrom != nil {
		from = filters.DateFrom.UTC().Format(time.RFC3339)
	}
	to := ""
	if filters.DateTo != nil {
		to = filters.DateTo.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("pipeline:overview:%d:%s:%s:%s", gen, filters.AssignedTo, from, to)
}

// Get returns a cached overview for the given filters, or nil on miss.
func (c *OverviewCache) Get(ctx context.Context, filters dto.OverviewFilters) *dto.PipelineOverviewResponse {
	if !c.enabled() {
		return nil
	}

	data, err := c.client.Get(ctx, c.key(ctx, filters)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read overview cache", zap.Error(err))
		}
		return nil
	}

	var overview dto.PipelineOverviewResponse
	if err := json.Unmarshal(data, &overview); err != nil {
		c.logger.Warn("Failed to decode cached overview", zap.Error(err))
		return nil
	}

	return &overview
}

func (c *OverviewCache) Set(ctx context.Context, filters dto.OverviewFilters, overview *dto.PipelineOverviewResponse) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(overview)
	if err != nil {
		c.logger.Warn("Failed to encode overview for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.key(ctx, filters), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write overview cache", zap.Error(err))
	}
}

// Invalidate drops all cached overviews by advancing the generation counter.
func (c *OverviewCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	if err := c.client.Incr(ctx, overviewCacheGenKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate overview cache", zap.Error(err))
	}
}
