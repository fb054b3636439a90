// Package composer drives a single client session against the therapy
// search endpoint: it accepts a concern, issues exactly one call per
// submission and keeps the outcome for rendering.
//
// A session moves Idle → Submitting → Success|Failed and back to Idle on
// Reset. Only one submission may be outstanding at a time.
package composer

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/models"
)

// DefaultResultCount is the number of verses requested when none is configured
const DefaultResultCount = 3

var (
	// ErrEmptyIssue is returned when the submitted text is empty or whitespace
	ErrEmptyIssue = errors.New("composer: issue is empty")
	// ErrBusy is returned when a submission is already outstanding
	ErrBusy = errors.New("composer: a submission is already in progress")
)

// Searcher issues one therapy search. Errors should be *apperr.Error;
// anything else is normalized to internal_error.
type Searcher interface {
	TherapySearch(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error)
}

// State is the position of a session in its lifecycle
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session state
type Snapshot struct {
	State  State
	Issue  string
	Result *models.SearchResult
	Err    *apperr.Error
}

// Option configures a Composer
type Option func(*Composer)

// WithResultCount overrides the number of verses requested
func WithResultCount(k int) Option {
	return func(c *Composer) {
		if k > 0 {
			c.resultCount = k
		}
	}
}

// Composer holds the state of one client session
type Composer struct {
	searcher    Searcher
	resultCount int

	mu     sync.Mutex
	state  State
	issue  string
	result *models.SearchResult
	err    *apperr.Error
}

// New creates a session in the Idle state
func New(searcher Searcher, opts ...Option) *Composer {
	c := &Composer{
		searcher:    searcher,
		resultCount: DefaultResultCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends issue to the searcher. Blank input is a no-op returning
// ErrEmptyIssue; a second Submit while one is outstanding returns ErrBusy.
// When ctx is cancelled before the call returns, the outcome is dropped, the
// session goes back to Idle and ctx.Err() is returned.
func (c *Composer) Submit(ctx context.Context, issue string) error {
	trimmed := strings.TrimSpace(issue)
	if trimmed == "" {
		return ErrEmptyIssue
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSubmitting
	c.issue = trimmed
	c.result = nil
	c.err = nil
	c.mu.Unlock()

	settled := false
	defer func() {
		if settled {
			return
		}
		// searcher panicked
		c.mu.Lock()
		c.state = StateFailed
		c.err = apperr.Internal("Something went wrong")
		c.mu.Unlock()
	}()

	result, err := c.searcher.TherapySearch(ctx, models.SearchRequest{Issue: trimmed, K: c.resultCount})

	c.mu.Lock()
	defer c.mu.Unlock()
	settled = true

	if ctxErr := ctx.Err(); ctxErr != nil {
		c.state = StateIdle
		c.issue = ""
		c.result = nil
		c.err = nil
		return ctxErr
	}

	if err == nil && result == nil {
		err = apperr.Internal("Empty response from server")
	}
	if err != nil {
		c.state = StateFailed
		c.err = apperr.From(err)
		return c.err
	}

	c.state = StateSuccess
	c.result = result
	return nil
}

// Reset discards the current issue, result and error. It is a no-op while a
// submission is outstanding.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return
	}
	c.state = StateIdle
	c.issue = ""
	c.result = nil
	c.err = nil
}

// Snapshot returns a copy of the current state
func (c *Composer) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:  c.state,
		Issue:  c.issue,
		Result: c.result,
		Err:    c.err,
	}
}
