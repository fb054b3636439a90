// Package apiclient calls the therapy search endpoint over HTTP and
// normalizes every failure into *apperr.Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/envelope"
	"github.com/curaan-web/internal/models"
)

const (
	therapySearchPath = "/api/therapy-search"

	defaultMaxBodyBytes = 1 << 20
)

// Client calls a running web server's therapy search endpoint
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxBodyBytes int64
}

// New creates a client for the server at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// TherapySearch posts the request and decodes the envelope
func (c *Client) TherapySearch(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Something went wrong", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+therapySearchPath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Something went wrong", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Network error occurred", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Network error occurred", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, apperr.Internal("Invalid response from server")
	}

	return envelope.Decode(body)
}
