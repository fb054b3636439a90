package repository

import (
	"context"
	"errors"

	"github.com/curaan-web/internal/models"
)

var (
	// ErrBackendTimeout is returned when the backend does not answer within the configured timeout
	ErrBackendTimeout = errors.New("search backend timed out")
	// ErrBackendUnreachable is returned when no response could be obtained from the backend
	ErrBackendUnreachable = errors.New("search backend unreachable")
	// ErrBackendMalformed is returned when the backend body is not valid JSON or is too large
	ErrBackendMalformed = errors.New("search backend returned a malformed body")
)

// TherapySearchRepository defines access to the external search backend
type TherapySearchRepository interface {
	// TherapySearch forwards a request and returns the backend's status and body untouched
	TherapySearch(ctx context.Context, req models.SearchRequest) (*models.BackendReply, error)

	// Health checks that the backend answers its health endpoint
	Health(ctx context.Context) error
}
