package backoff_test

import (
	"testing"
	"time"

	"github.com/ZachKeskinen/hyp3-sdk/backoff"
)

func TestConstant_ReturnsFixedDelay(t *testing.T) {
	c := backoff.NewConstant(5 * time.Second)
	for attempt := 1; attempt <= 10; attempt++ {
		if got := c.Delay(attempt); got != 5*time.Second {
			t.Errorf("Delay(%d) = %v, want %v", attempt, got, 5*time.Second)
		}
	}
}

func TestExponential_GrowsThenHoldsAtCap(t *testing.T) {
	e := backoff.NewExponential(time.Second, 2, 8*time.Second)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 8 * time.Second},
		{6, 8 * time.Second},
	}
	for _, tt := range tests {
		if got := e.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponential_CustomMultiplier(t *testing.T) {
	e := backoff.NewExponential(time.Second, 3, time.Minute)

	if got := e.Delay(1); got != time.Second {
		t.Errorf("Delay(1) = %v, want %v", got, time.Second)
	}
	if got := e.Delay(3); got != 9*time.Second {
		t.Errorf("Delay(3) = %v, want %v", got, 9*time.Second)
	}
}

func TestExponential_MultiplierBelowOneFallsBackToDoubling(t *testing.T) {
	e := backoff.NewExponential(time.Second, 0, time.Minute)

	if got := e.Delay(2); got != 2*time.Second {
		t.Errorf("Delay(2) = %v, want %v", got, 2*time.Second)
	}
}

func TestJitter_ZeroFractionPassesThrough(t *testing.T) {
	j := backoff.NewJitter(backoff.NewExponential(time.Second, 2, 8*time.Second), 0)

	for attempt := 1; attempt <= 6; attempt++ {
		want := backoff.NewExponential(time.Second, 2, 8*time.Second).Delay(attempt)
		if got := j.Delay(attempt); got != want {
			t.Errorf("Delay(%d) = %v, want %v (no jitter)", attempt, got, want)
		}
	}
}

func TestJitter_StaysWithinFraction(t *testing.T) {
	base := 10 * time.Second
	j := backoff.NewJitter(backoff.NewConstant(base), 0.5)

	lo := time.Duration(float64(base) * 0.5)
	hi := time.Duration(float64(base) * 1.5)
	for i := 0; i < 200; i++ {
		got := j.Delay(1)
		if got < lo || got > hi {
			t.Fatalf("Delay(1) = %v, want within [%v, %v]", got, lo, hi)
		}
	}
}

func TestDefaultStrategy_CapsAtOneMinute(t *testing.T) {
	s := backoff.DefaultStrategy()
	// With +/-10% jitter the capped delay stays within [54s, 66s].
	got := s.Delay(20)
	if got < 54*time.Second || got > 66*time.Second {
		t.Errorf("Delay(20) = %v, want near the 60s cap", got)
	}
}
