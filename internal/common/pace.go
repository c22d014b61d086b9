package common

import (
	"context"
	"fmt"
	"time"
)

// DefaultPageDelay is the pause between two starred-list pages.
const DefaultPageDelay = 300 * time.Millisecond

// FixedPacer sleeps a constant delay each time Wait is called.
type FixedPacer struct {
	delay time.Duration
}

// NewFixedPacer returns a pacer with the given delay. A non-positive delay
// makes Wait return immediately.
func NewFixedPacer(delay time.Duration) *FixedPacer {
	return &FixedPacer{delay: delay}
}

// Delay reports the configured delay.
func (p *FixedPacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks for the configured delay or until ctx is done.
func (p *FixedPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	select {
	case <-ctx.Done():
		timer.Stop()
		return fmt.Errorf("pacing aborted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
