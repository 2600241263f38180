// Package watch turns a one-shot "get current status" primitive into a
// blocking "wait until this batch is resolved" operation.
//
// A Watcher polls only the batch's outstanding jobs, merges each refresh
// into a private clone of the batch, and sleeps an adaptively growing
// interval between polls. It returns when every targeted job is terminal
// (Done), the deadline passes (TimedOut), or the context is cancelled
// (Cancelled). TimedOut and Cancelled are outcomes, not errors: the
// partially resolved batch is still returned.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ZachKeskinen/hyp3-sdk/backoff"
	"github.com/ZachKeskinen/hyp3-sdk/job"
)

// Refresher fetches fresh snapshots for the given job ids. Ids the
// service no longer reports are returned in missing rather than treated
// as an error; the watcher stops polling them.
type Refresher interface {
	RefreshJobs(ctx context.Context, ids []string) (updated []job.Job, missing []string, err error)
}

// Outcome is how a watch ended.
type Outcome string

const (
	// Done means every targeted job reached a terminal state (or went
	// missing; see Result.MissingJobs).
	Done Outcome = "DONE"
	// TimedOut means the deadline passed with jobs still outstanding.
	TimedOut Outcome = "TIMED_OUT"
	// Cancelled means the caller's context was cancelled mid-watch.
	Cancelled Outcome = "CANCELLED"
)

// Result is the outcome of one watch invocation. Batch is always the
// watcher's working copy in its most recent state, whatever the outcome.
type Result struct {
	Batch   *job.Batch
	Outcome Outcome

	// MissingJobs are ids the service stopped reporting during the watch.
	// They are terminal for this watch but carry no final status.
	MissingJobs []string

	// Polls is the number of successful refresh calls issued.
	Polls int
}

// DefaultFetchRetries bounds how often a failed refresh is retried before
// the watch escalates the failure.
const DefaultFetchRetries = 3

// Watcher polls a Refresher until a batch resolves. The zero value is not
// usable; Refresher is required, everything else has defaults. A Watcher
// holds no state across invocations and is safe to reuse concurrently.
type Watcher struct {
	Refresher Refresher

	// Strategy supplies the delay before each poll and each fetch retry.
	// Nil means backoff.DefaultStrategy. The attempt counter resets at the
	// start of every watch, never mid-loop.
	Strategy backoff.Strategy

	// Timeout bounds the whole watch. Zero means no deadline.
	Timeout time.Duration

	// FetchRetries bounds retries of a failed refresh within one poll.
	// Zero means DefaultFetchRetries; negative disables retries.
	FetchRetries int

	Logger *slog.Logger
}

// Watch blocks until the batch resolves, the deadline passes, or ctx is
// cancelled. It operates on a clone; the caller's batch is never mutated.
//
// A non-nil error is fatal: either the refresh failed beyond the retry
// budget (wrapping ErrFetchFailed) or the service reported a status
// regression (wrapping ErrStatusRegression). The Result is still
// meaningful alongside a fatal error.
func (w *Watcher) Watch(ctx context.Context, b *job.Batch) (Result, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	strategy := w.Strategy
	if strategy == nil {
		strategy = backoff.DefaultStrategy()
	}

	work := b.Clone()
	missing := make(map[string]bool)
	res := Result{Batch: work, Outcome: Done}

	var deadline time.Time
	if w.Timeout > 0 {
		deadline = time.Now().Add(w.Timeout)
	}

	for poll := 1; ; poll++ {
		outstanding := outstandingIDs(work, missing)
		if len(outstanding) == 0 {
			// Includes the empty batch and the all-terminal batch: zero
			// network calls in both cases.
			res.MissingJobs = sortedIDs(missing)
			return res, nil
		}

		updated, absent, err := w.refresh(ctx, outstanding, strategy, logger)
		if err != nil {
			res.MissingJobs = sortedIDs(missing)
			if ctx.Err() != nil {
				res.Outcome = Cancelled
				return res, nil
			}
			return res, err
		}
		res.Polls++

		if len(updated) > 0 {
			if err := work.Merge(updated...); err != nil {
				res.MissingJobs = sortedIDs(missing)
				return res, err
			}
		}
		for _, id := range absent {
			logger.Warn("job no longer reported by service", "job_id", id)
			missing[id] = true
		}

		outstanding = outstandingIDs(work, missing)
		if len(outstanding) == 0 {
			res.MissingJobs = sortedIDs(missing)
			return res, nil
		}

		delay := strategy.Delay(poll)
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				res.Outcome = TimedOut
				res.MissingJobs = sortedIDs(missing)
				return res, nil
			}
			if delay > remaining {
				delay = remaining
			}
		}

		logger.Debug("waiting before next poll",
			"poll", poll,
			"outstanding", len(outstanding),
			"delay", delay,
		)
		if !sleep(ctx, delay) {
			res.Outcome = Cancelled
			res.MissingJobs = sortedIDs(missing)
			return res, nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			res.Outcome = TimedOut
			res.MissingJobs = sortedIDs(missing)
			return res, nil
		}
	}
}

// refresh calls the Refresher, retrying transient failures up to the
// retry budget with the watch's backoff strategy.
func (w *Watcher) refresh(ctx context.Context, ids []string, strategy backoff.Strategy, logger *slog.Logger) ([]job.Job, []string, error) {
	retries := w.FetchRetries
	switch {
	case retries == 0:
		retries = DefaultFetchRetries
	case retries < 0:
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logger.Warn("refresh failed, retrying",
				"attempt", attempt,
				"error", lastErr,
			)
			if !sleep(ctx, strategy.Delay(attempt)) {
				return nil, nil, ctx.Err()
			}
		}
		updated, absent, err := w.Refresher.RefreshJobs(ctx, ids)
		if err == nil {
			return updated, absent, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, nil, fmt.Errorf("refresh failed after %d attempts: %w", retries+1, lastErr)
}

// sleep waits for d or until ctx is cancelled. It reports whether the
// full delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// outstandingIDs returns the ids still worth polling: not terminal and
// not missing. Terminal jobs are never re-queried; their status cannot
// regress.
func outstandingIDs(b *job.Batch, missing map[string]bool) []string {
	var out []string
	for _, j := range b.Jobs() {
		if !j.Complete() && !missing[j.ID] {
			out = append(out, j.ID)
		}
	}
	return out
}

func sortedIDs(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
