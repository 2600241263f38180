package client

import (
	"context"
	"time"

	"github.com/ZachKeskinen/hyp3-sdk/backoff"
	"github.com/ZachKeskinen/hyp3-sdk/job"
	"github.com/ZachKeskinen/hyp3-sdk/watch"
)

// WatchOption overrides the client's watch defaults for one invocation.
type WatchOption func(*watch.Watcher)

// WithWatchTimeout bounds the watch. Zero means no deadline.
func WithWatchTimeout(d time.Duration) WatchOption {
	return func(w *watch.Watcher) { w.Timeout = d }
}

// WithPollInterval sets the base and cap of the poll backoff with the
// default doubling multiplier and no jitter. Use WithWatchStrategy for
// full control.
func WithPollInterval(base, maxInterval time.Duration) WatchOption {
	return func(w *watch.Watcher) {
		w.Strategy = backoff.NewExponential(base, 2, maxInterval)
	}
}

// WithWatchStrategy replaces the poll backoff strategy entirely.
func WithWatchStrategy(s backoff.Strategy) WatchOption {
	return func(w *watch.Watcher) { w.Strategy = s }
}

// WithFetchRetries bounds refresh retries within the watch. Negative
// disables retries.
func WithFetchRetries(n int) WatchOption {
	return func(w *watch.Watcher) { w.FetchRetries = n }
}

// Watch blocks until every job in the batch is terminal, the timeout
// passes, or ctx is cancelled. The caller's batch is never mutated; the
// resolved copy is in the returned Result.
func (c *Client) Watch(ctx context.Context, b *job.Batch, opts ...WatchOption) (watch.Result, error) {
	w := &watch.Watcher{
		Refresher: c,
		Strategy: backoff.NewJitter(
			backoff.NewExponential(c.cfg.PollInitialInterval, c.cfg.PollMultiplier, c.cfg.PollMaxInterval),
			c.cfg.PollJitter,
		),
		Timeout:      c.cfg.WatchTimeout,
		FetchRetries: c.cfg.FetchRetries,
		Logger:       c.logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w.Watch(ctx, b)
}
