// Package nash talks to the Nash logistics API and normalizes its job
// payloads into domain values.
package nash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"unihop/internal/config"
)

var (
	// ErrUpstream is returned when the Nash API is unreachable or answers
	// with a non-success status.
	ErrUpstream = errors.New("nash request failed")
)

// Client is an HTTP client for the Nash jobs API.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a Nash API client.
func NewClient(cfg config.NashConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		secret:  cfg.Secret,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// FetchJob retrieves the raw payload for a job by ID.
func (c *Client) FetchJob(ctx context.Context, jobID string) (*JobPayload, error) {
	url := c.baseURL + "/jobs/" + jobID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("invalid nash get request",
			zap.String("job_id", jobID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload JobPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	return &payload, nil
}
