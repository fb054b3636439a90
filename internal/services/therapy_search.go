package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/envelope"
	"github.com/curaan-web/internal/logger"
	"github.com/curaan-web/internal/models"
	"github.com/curaan-web/internal/repository"
	"github.com/curaan-web/internal/validator"
)

const (
	msgInternal = "Internal server error"
	msgTimeout  = "The guidance service is taking too long to respond. Please try again later."
)

// Limits bounds what a caller may ask of the backend
type Limits struct {
	DefaultResults int
	MaxResults     int
	MaxIssueLength int
}

// TherapySearchService validates therapy search requests and relays them to the backend
type TherapySearchService struct {
	backend  repository.TherapySearchRepository
	validate *validator.Validator
	limits   Limits
	logger   *logger.Logger
}

// NewTherapySearchService creates a new therapy search service
func NewTherapySearchService(
	backend repository.TherapySearchRepository,
	validate *validator.Validator,
	limits Limits,
	log *logger.Logger,
) *TherapySearchService {
	if limits.DefaultResults < 1 {
		limits.DefaultResults = 3
	}
	if limits.MaxResults < limits.DefaultResults {
		limits.MaxResults = limits.DefaultResults
	}
	return &TherapySearchService{
		backend:  backend,
		validate: validate,
		limits:   limits,
		logger:   log,
	}
}

// DefaultResults returns the result count used when a caller does not pick one
func (s *TherapySearchService) DefaultResults() int {
	return s.limits.DefaultResults
}

// Normalize turns a raw request body into a forwardable request.
// Errors are always *apperr.Error with kind validation_error.
func (s *TherapySearchService) Normalize(in models.TherapySearchInput) (models.SearchRequest, error) {
	var issue string
	if len(in.Issue) == 0 || json.Unmarshal(in.Issue, &issue) != nil {
		return models.SearchRequest{}, apperr.Validation(models.MsgIssueRequired)
	}

	k := s.limits.DefaultResults
	if raw := bytes.TrimSpace(in.K); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		// JSON has one number type, so 3.0 is the integer 3
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil || n != math.Trunc(n) || n < 1 || n > float64(s.limits.MaxResults) {
			return models.SearchRequest{}, s.invalidK()
		}
		k = int(n)
	}

	req := models.SearchRequest{Issue: strings.TrimSpace(issue), K: k}
	if err := s.check(req); err != nil {
		return models.SearchRequest{}, err
	}
	return req, nil
}

// Forward relays a normalized request to the backend. The backend's status
// and body come back untouched; every failure is an *apperr.Error.
func (s *TherapySearchService) Forward(ctx context.Context, req models.SearchRequest) (*models.BackendReply, error) {
	req.Issue = strings.TrimSpace(req.Issue)
	if err := s.check(req); err != nil {
		return nil, err
	}

	reply, err := s.backend.TherapySearch(ctx, req)
	if err != nil {
		s.logger.Error("therapy search backend call failed",
			slog.String("error", err.Error()),
			slog.Int("k", req.K),
		)
		if errors.Is(err, repository.ErrBackendTimeout) {
			return nil, apperr.Wrap(apperr.KindService, msgTimeout, err)
		}
		return nil, apperr.Wrap(apperr.KindInternal, msgInternal, err)
	}

	s.logger.Debug("therapy search relayed", slog.Int("status", reply.Status), slog.Int("k", req.K))
	return reply, nil
}

// TherapySearch forwards the request and decodes the relayed envelope
func (s *TherapySearchService) TherapySearch(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	reply, err := s.Forward(ctx, req)
	if err != nil {
		return nil, err
	}
	return envelope.Decode(reply.Body)
}

// BackendHealth reports whether the backend answers its health check
func (s *TherapySearchService) BackendHealth(ctx context.Context) error {
	return s.backend.Health(ctx)
}

func (s *TherapySearchService) check(req models.SearchRequest) error {
	if err := s.validate.Var(req.Issue, "required"); err != nil {
		return apperr.Validation(models.MsgIssueRequired)
	}
	if s.limits.MaxIssueLength > 0 {
		if err := s.validate.Var(req.Issue, fmt.Sprintf("max=%d", s.limits.MaxIssueLength)); err != nil {
			return apperr.Validation(fmt.Sprintf("Issue must be at most %d characters", s.limits.MaxIssueLength)).
				WithDetails(map[string]any{"field": "issue", "rule": validator.FailedTag(err)})
		}
	}
	if err := s.validate.Var(req.K, fmt.Sprintf("min=1,max=%d", s.limits.MaxResults)); err != nil {
		return s.invalidK()
	}
	return nil
}

func (s *TherapySearchService) invalidK() *apperr.Error {
	return apperr.Validation(fmt.Sprintf("k must be a positive integer no greater than %d", s.limits.MaxResults)).
		WithDetails(map[string]any{"field": "k"})
}
