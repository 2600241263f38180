// Package backoff provides pluggable delay strategies for polling and
// retries. All strategies are safe for concurrent use (they are stateless).
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Strategy computes the delay before attempt n (1-indexed).
type Strategy interface {
	// Delay returns how long to wait before attempt n.
	Delay(attempt int) time.Duration
}

// ──────────────────────────────────────────────────
// Constant
// ──────────────────────────────────────────────────

// Constant always returns the same delay regardless of attempt number.
type Constant struct {
	Interval time.Duration
}

// NewConstant creates a constant backoff strategy.
func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

// Delay returns the fixed interval.
func (c *Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// ──────────────────────────────────────────────────
// Exponential
// ──────────────────────────────────────────────────

// Exponential grows the delay by a fixed multiplicative factor each
// attempt, then holds at Max once reached.
// Delay = min(Initial * Multiplier^(attempt-1), Max).
type Exponential struct {
	Initial    time.Duration
	Multiplier float64
	Max        time.Duration
}

// NewExponential creates an exponential backoff strategy. A multiplier
// below 1 falls back to 2.
func NewExponential(initial time.Duration, multiplier float64, maxDelay time.Duration) *Exponential {
	return &Exponential{Initial: initial, Multiplier: multiplier, Max: maxDelay}
}

// Delay returns Initial * Multiplier^(attempt-1), capped at Max.
func (e *Exponential) Delay(attempt int) time.Duration {
	m := e.Multiplier
	if m < 1 {
		m = 2
	}
	d := time.Duration(float64(e.Initial) * math.Pow(m, float64(attempt-1)))
	if e.Max > 0 && d > e.Max {
		return e.Max
	}
	return d
}

// ──────────────────────────────────────────────────
// Jitter
// ──────────────────────────────────────────────────

// Jitter perturbs another strategy's delay by a random fraction, spreading
// out polls when many clients watch in the same process.
// Delay = base ± base*Fraction*rand.
type Jitter struct {
	Strategy Strategy
	Fraction float64
}

// NewJitter wraps a strategy with proportional jitter. A fraction of zero
// passes delays through unchanged, which keeps tests deterministic.
func NewJitter(s Strategy, fraction float64) *Jitter {
	return &Jitter{Strategy: s, Fraction: fraction}
}

// Delay returns the wrapped delay perturbed by up to ±Fraction.
func (j *Jitter) Delay(attempt int) time.Duration {
	d := j.Strategy.Delay(attempt)
	if j.Fraction <= 0 || d <= 0 {
		return d
	}
	spread := float64(d) * j.Fraction
	return time.Duration(float64(d) + (rand.Float64()*2-1)*spread) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// ──────────────────────────────────────────────────
// Default
// ──────────────────────────────────────────────────

// DefaultStrategy returns the default poll backoff: exponential from 15s
// to a 60s cap, doubling each poll, with ±10% jitter.
func DefaultStrategy() Strategy {
	return NewJitter(NewExponential(15*time.Second, 2, time.Minute), 0.1)
}
