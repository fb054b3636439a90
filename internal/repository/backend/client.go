package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/curaan-web/internal/models"
	"github.com/curaan-web/internal/repository"
)

// Ensure Client implements repository.TherapySearchRepository
var _ repository.TherapySearchRepository = (*Client)(nil)

const (
	therapySearchPath = "/api/therapy-search"
	healthPath        = "/api/health"
)

// Config holds the backend connection settings
type Config struct {
	BaseURL      string        // e.g. "http://localhost:5000"
	Timeout      time.Duration // Upper bound for a single backend call
	MaxBodyBytes int64         // Larger bodies are treated as malformed
}

// Client calls the external search backend over HTTP
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new backend client
func NewClient(cfg Config) *Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

// NewClientWithHTTP creates a backend client using the given http.Client
func NewClientWithHTTP(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// TherapySearch forwards the request and returns the backend's reply verbatim
func (c *Client) TherapySearch(ctx context.Context, req models.SearchRequest) (*models.BackendReply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+therapySearchPath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, classify(err)
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", repository.ErrBackendMalformed, c.cfg.MaxBodyBytes)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: status %d", repository.ErrBackendMalformed, resp.StatusCode)
	}

	return &models.BackendReply{
		Status: resp.StatusCode,
		Body:   body,
	}, nil
}

// Health calls the backend health endpoint
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: health status %d", repository.ErrBackendUnreachable, resp.StatusCode)
	}
	return nil
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", repository.ErrBackendTimeout, err)
	}
	return fmt.Errorf("%w: %v", repository.ErrBackendUnreachable, err)
}
