package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lead-pipeline-api/internal/metrics"
)

// ScoreRequest is the payload sent to the scoring service
type ScoreRequest struct {
	LeadID                uuid.UUID              `json:"lead_id"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	Source                string                 `json:"source"`
	PropertyAddress       map[string]interface{} `json:"property_address,omitempty"`
	ContactAttempts       int                    `json:"contact_attempts"`
	EstimatedMonthlyValue float64                `json:"estimated_monthly_value"`
}

// ScoreResult is the scoring service response
type ScoreResult struct {
	LeadID                uuid.UUID              `json:"lead_id"`
	Score                 float64                `json:"score"`
	EstimatedMonthlyValue float64                `json:"estimated_monthly_value"`
	Factors               map[string]interface{} `json:"factors"`
	Explanation           string                 `json:"explanation"`
	RecommendedActions    []string               `json:"recommended_actions"`
}

// ScoringClient defines the interface for the external AI scoring service
type ScoringClient interface {
	// ScoreLead submits a lead for scoring and returns the result
	ScoreLead(ctx context.Context, req ScoreRequest) (*ScoreResult, error)
}

// scoringClient implements ScoringClient over HTTP
type scoringClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewScoringClient creates a new scoring API client
func NewScoringClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) ScoringClient {
	return &scoringClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// ScoreLead submits a lead to the scoring service
func (c *scoringClient) ScoreLead(ctx context.Context, scoreReq ScoreRequest) (*ScoreResult, error) {
	url := fmt.Sprintf("%s/api/leads/score", c.baseURL)

	jsonBody, err := json.Marshal(scoreReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordExternalAPICall(url, http.MethodPost, 0, duration, err)
		}
		return nil, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, http.MethodPost, resp.StatusCode, duration, nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("scoring service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ScoreResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}

	c.logger.Debug("Lead scored",
		zap.String("lead_id", scoreReq.LeadID.String()),
		zap.Float64("score", result.Score),
		zap.Duration("duration", duration),
	)

	return &result, nil
}
