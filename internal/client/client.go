// Package client is a typed HTTP client for the game JSON API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/syllablegame/backend/internal/models"
	"github.com/syllablegame/backend/pkg/retry"
	"go.uber.org/zap"
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsBadRequest reports whether err is a 400 response
func IsBadRequest(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest
}

// Config holds client configuration
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:8080
	BaseURL string
	// Timeout bounds a single HTTP attempt
	Timeout time.Duration
	// MaxAttempts bounds every call including the first attempt
	MaxAttempts int
	// BackoffStep is the linear backoff increment between attempts
	BackoffStep time.Duration
}

// DefaultConfig returns three attempts with a 300ms linear backoff.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		Timeout:     10 * time.Second,
		MaxAttempts: 3,
		BackoffStep: 300 * time.Millisecond,
	}
}

// Client calls the game API, retrying transient failures
type Client struct {
	baseURL    string
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     *zap.Logger
}

// New creates a new API client
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	c.retrier = retry.New(
		retry.WithMaxAttempts(cfg.MaxAttempts),
		retry.WithBackoff(retry.Linear(cfg.BackoffStep)),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			c.logger.Debug("api call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		}),
	)
	return c
}

// GetDifficulties calls GET /get_difficulties
func (c *Client) GetDifficulties(ctx context.Context) ([]string, error) {
	var difficulties []string
	if err := c.do(ctx, http.MethodGet, "/get_difficulties", nil, &difficulties); err != nil {
		return nil, err
	}
	return difficulties, nil
}

// GetCategories calls GET /get_categories
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/get_categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetWord calls GET /get_word; empty arguments are omitted from the query
func (c *Client) GetWord(ctx context.Context, difficulty, category string) (*models.WordResponse, error) {
	query := url.Values{}
	if difficulty != "" {
		query.Set("difficulty", difficulty)
	}
	if category != "" {
		query.Set("category", category)
	}

	path := "/get_word"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var word models.WordResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

// RecordProgress calls POST /record_progress
func (c *Client) RecordProgress(ctx context.Context, submission models.ProgressSubmission) error {
	var resp models.SuccessResponse
	if err := c.do(ctx, http.MethodPost, "/record_progress", submission, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("record progress: server reported failure")
	}
	return nil
}

// GetStatistics calls GET /get_statistics
func (c *Client) GetStatistics(ctx context.Context) (*models.StatisticsResponse, error) {
	var stats models.StatisticsResponse
	if err := c.do(ctx, http.MethodGet, "/get_statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do runs one call under the retry policy
//
// Network errors and non-2xx responses are retried, except 400 which fails at once.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		err := c.doSingleRequest(ctx, method, path, payload, result)
		if IsBadRequest(err) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

// doSingleRequest performs a single HTTP request
func (c *Client) doSingleRequest(ctx context.Context, method, path string, payload []byte, result any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			statusErr.Message = apiErr.Error
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
