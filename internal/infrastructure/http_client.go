package infrastructure

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adlens/internal/domain"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"

	"golang.org/x/time/rate"
)

// HTTPClient implements PlatformClient and SinkClient over plain HTTP:
// it pulls metric-row exports from the ad platform and pushes signed
// report payloads to the agency's sink.
type HTTPClient struct {
	client      *http.Client
	exportURL   string
	sinkURL     string
	sinkSecret  string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

// NewHTTPClient creates a new HTTP client.
func NewHTTPClient(exportURL, sinkURL, sinkSecret string, timeout time.Duration, rps int, logger *logger.Logger, metrics *metrics.Metrics) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		exportURL:   exportURL,
		sinkURL:     sinkURL,
		sinkSecret:  sinkSecret,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 10),
	}
}

// FetchExport pulls the platform's metric-row export.
func (c *HTTPClient) FetchExport(ctx context.Context) (*domain.PlatformExport, error) {
	if c.exportURL == "" {
		return nil, fmt.Errorf("platform export URL not configured")
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("platform", "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.exportURL, nil)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("platform", "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("platform", "network_error")
		return nil, fmt.Errorf("failed to fetch platform export: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("platform", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("platform export returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("platform", "read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var export domain.PlatformExport
	if err := json.Unmarshal(body, &export); err != nil {
		c.metrics.RecordExternalAPIFailure("platform", "json_parse")
		return nil, fmt.Errorf("failed to parse platform export: %w", err)
	}

	c.metrics.RecordExternalAPICall("platform", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      c.exportURL,
		"duration": duration,
		"rows":     len(export.Export.Rows),
	}).Info("Successfully fetched platform export")

	return &export, nil
}

// ExportReports pushes classification reports to the sink, signed with
// HMAC-SHA256 when a sink secret is configured.
func (c *HTTPClient) ExportReports(ctx context.Context, reports []domain.ClassificationReport, date time.Time) error {
	if c.sinkURL == "" {
		return fmt.Errorf("sink URL not configured")
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "rate_limit")
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	envelope := map[string]any{
		"as_of":   date.Format("2006-01-02"),
		"reports": reports,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "json_marshal")
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.sinkURL, bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.sinkSecret != "" {
		req.Header.Set("X-Signature", c.generateHMACSignature(payload))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "network_error")
		return fmt.Errorf("failed to export reports: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall("sink", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	c.metrics.RecordExternalAPICall("sink", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      c.sinkURL,
		"duration": duration,
		"reports":  len(reports),
		"as_of":    date.Format("2006-01-02"),
	}).Info("Successfully exported reports")

	return nil
}

// generates HMAC-SHA256 signature for the payload
func (c *HTTPClient) generateHMACSignature(payload []byte) string {
	h := hmac.New(sha256.New, []byte(c.sinkSecret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
