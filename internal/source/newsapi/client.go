package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// StatusError is a provider-reported rejection: the provider answered but
// its status field was not "ok". Never retried.
type StatusError struct {
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return "provider error"
	}
	return e.Message
}

// Config holds provider client configuration.
type Config struct {
	BaseURL        string
	PageSize       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client calls the top-headlines endpoint. Transport failures are retried
// with exponential backoff; provider-reported errors are surfaced as
// *StatusError on the first attempt.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		pageSize:       cfg.PageSize,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "newsapi"),
	}
}

// TopHeadlines performs one fetch with the given query parameters. The
// API key and page size are attached here; callers build the query with
// QueryFor.
func (c *Client) TopHeadlines(ctx context.Context, query url.Values, apiKey string) ([]Record, error) {
	params := url.Values{}
	for k, vs := range query {
		params[k] = vs
	}
	params.Set("apiKey", apiKey)
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	reqURL := c.baseURL + "?" + params.Encode()

	var records []Record
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		records, err = c.doRequest(ctx, reqURL)
		if err == nil {
			return records, nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NewsRadar/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response (http %d): %w", resp.StatusCode, err)
	}

	if apiResp.Status != "ok" {
		return nil, &StatusError{Code: apiResp.Code, Message: apiResp.Message}
	}

	return apiResp.Articles, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
