package composer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	mu     sync.Mutex
	calls  []models.SearchRequest
	result *models.SearchResult
	err    error
	block  chan struct{}
}

func (s *stubSearcher) TherapySearch(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *stubSearcher) Calls() []models.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SearchRequest(nil), s.calls...)
}

func threeVerses() *models.SearchResult {
	return &models.SearchResult{
		SearchQuery: "I feel anxious",
		Results: []models.VerseMatch{
			{ID: "A", Score: 0.9},
			{ID: "B", Score: 0.8},
			{ID: "C", Score: 0.7},
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	searcher := &stubSearcher{result: threeVerses()}
	c := New(searcher)

	require.NoError(t, c.Submit(context.Background(), "  I feel anxious  "))

	calls := searcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.SearchRequest{Issue: "I feel anxious", K: 3}, calls[0])

	snap := c.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, "I feel anxious", snap.Issue)
	assert.Nil(t, snap.Err)
	assert.Equal(t, "A", snap.Result.Results[0].ID)
}

func TestSubmitResultCountOverride(t *testing.T) {
	searcher := &stubSearcher{result: threeVerses()}
	c := New(searcher, WithResultCount(7))

	require.NoError(t, c.Submit(context.Background(), "grief"))
	assert.Equal(t, 7, searcher.Calls()[0].K)
}

func TestSubmitBlankIsNoop(t *testing.T) {
	for _, issue := range []string{"", "   ", "\n\t"} {
		searcher := &stubSearcher{result: threeVerses()}
		c := New(searcher)
		before := c.Snapshot()

		err := c.Submit(context.Background(), issue)

		require.ErrorIs(t, err, ErrEmptyIssue)
		assert.Empty(t, searcher.Calls())
		assert.Equal(t, before, c.Snapshot())
	}
}

func TestSubmitFailure(t *testing.T) {
	t.Run("keeps app errors", func(t *testing.T) {
		searcher := &stubSearcher{err: apperr.Validation("Issue is required and must be a string")}
		c := New(searcher)

		err := c.Submit(context.Background(), "x")
		require.Error(t, err)

		snap := c.Snapshot()
		assert.Equal(t, StateFailed, snap.State)
		assert.Equal(t, apperr.KindValidation, snap.Err.Kind)
		assert.Equal(t, "Issue is required and must be a string", snap.Err.Message)
		assert.Nil(t, snap.Result)
	})

	t.Run("normalizes foreign errors", func(t *testing.T) {
		searcher := &stubSearcher{err: errors.New("dial tcp: connection refused")}
		c := New(searcher)

		require.Error(t, c.Submit(context.Background(), "x"))
		snap := c.Snapshot()
		assert.Equal(t, apperr.KindInternal, snap.Err.Kind)
		assert.NotContains(t, snap.Err.Message, "connection refused")
	})

	t.Run("nil result is a failure", func(t *testing.T) {
		c := New(&stubSearcher{})

		require.Error(t, c.Submit(context.Background(), "x"))
		assert.Equal(t, StateFailed, c.Snapshot().State)
	})
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	searcher := &stubSearcher{result: threeVerses(), block: make(chan struct{})}
	c := New(searcher)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "first") }()

	require.Eventually(t, func() bool { return len(searcher.Calls()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, StateSubmitting, c.Snapshot().State)

	require.ErrorIs(t, c.Submit(context.Background(), "second"), ErrBusy)

	c.Reset()
	assert.Equal(t, StateSubmitting, c.Snapshot().State, "reset must not interrupt an outstanding submission")

	close(searcher.block)
	require.NoError(t, <-done)
	assert.Len(t, searcher.Calls(), 1)
	assert.Equal(t, StateSuccess, c.Snapshot().State)
}

func TestSubmitCancelledDropsOutcome(t *testing.T) {
	searcher := &stubSearcher{result: threeVerses(), block: make(chan struct{})}
	c := New(searcher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Submit(ctx, "I feel lost") }()

	require.Eventually(t, func() bool { return len(searcher.Calls()) == 1 }, time.Second, time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Issue)
	assert.Nil(t, snap.Result)
	assert.Nil(t, snap.Err)
}

func TestSubmitPanicExitsLoadingState(t *testing.T) {
	c := New(panicSearcher{})

	assert.Panics(t, func() { _ = c.Submit(context.Background(), "x") })
	snap := c.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, apperr.KindInternal, snap.Err.Kind)
}

type panicSearcher struct{}

func (panicSearcher) TherapySearch(context.Context, models.SearchRequest) (*models.SearchResult, error) {
	panic("boom")
}

func TestResetClearsState(t *testing.T) {
	searcher := &stubSearcher{err: apperr.Service("AI service unavailable")}
	c := New(searcher)

	require.Error(t, c.Submit(context.Background(), "first concern"))
	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, Snapshot{State: StateIdle}, snap)

	searcher.mu.Lock()
	searcher.err = nil
	searcher.result = threeVerses()
	searcher.mu.Unlock()

	require.NoError(t, c.Submit(context.Background(), "second concern"))
	calls := searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "second concern", calls[1].Issue)

	snap = c.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, "second concern", snap.Issue)
	assert.Nil(t, snap.Err, "no error from the first submission leaks into the second")
}

func TestResubmitAfterSuccess(t *testing.T) {
	searcher := &stubSearcher{result: threeVerses()}
	c := New(searcher)

	require.NoError(t, c.Submit(context.Background(), "first"))
	require.NoError(t, c.Submit(context.Background(), "second"))
	assert.Equal(t, "second", c.Snapshot().Issue)
}
