// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"context"
	"time"
)

// Pacer spaces out successive provider queries. The delay policy is a
// collaborator so rate limiting stays testable without network calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// DefaultQueryDelay is the pause between provider queries. The loop is
// strictly sequential: provider quota safety is traded for latency.
const DefaultQueryDelay = 200 * time.Millisecond

type fixedDelayPacer struct {
	delay time.Duration
}

// NewFixedDelayPacer returns a Pacer that sleeps a fixed delay on every
// Wait, honoring context cancellation.
func NewFixedDelayPacer(delay time.Duration) Pacer {
	return &fixedDelayPacer{delay: delay}
}

func (p *fixedDelayPacer) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopPacer struct{}

// NopPacer returns a Pacer that never waits, for tests and offline use.
func NopPacer() Pacer {
	return nopPacer{}
}

func (nopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
