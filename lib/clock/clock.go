// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so the
// notification poller can be tested deterministically.
//
// Production code accepts a Clock and uses Real(); tests inject Fake()
// and drive it with Advance. Use WaitForTimers to block until the
// poller has registered its ticker before advancing, which removes the
// race between timer registration and time advancement.
package clock

import "time"

// Clock abstracts the time operations the client needs. Production
// code injects Real(); tests inject Fake() with deterministic control.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker delivering ticks on its C channel at
	// the given interval. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. Read ticks from C, call Stop when
// done. C has capacity 1, matching time.Ticker: if the consumer falls
// behind, ticks are dropped rather than queued.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. No more ticks are sent on C after Stop
// returns. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }
