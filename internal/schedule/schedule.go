// Package schedule provides cancellable periodic and one-shot tasks.
//
// Everything that used to run on an ad hoc interval (step advancement,
// download progress, simulated recognition delays) goes through a Scheduler
// so start, pause, stop and teardown behave the same way and tests can drive
// time by hand.
package schedule

import (
	"context"
	"sync"
	"time"
)

// CancelFunc stops a scheduled task. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler runs callbacks on a period or after a delay
type Scheduler interface {
	Every(period time.Duration, fn func()) CancelFunc
	After(delay time.Duration, fn func()) CancelFunc
}

// TickerScheduler runs tasks on real timers. All tasks stop when the
// root context is cancelled.
type TickerScheduler struct {
	ctx context.Context
	wg  sync.WaitGroup
}

// NewTickerScheduler creates a wall-clock scheduler bound to ctx
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	return &TickerScheduler{ctx: ctx}
}

// Every runs fn once per period until cancelled
func (s *TickerScheduler) Every(period time.Duration, fn func()) CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	ticker := time.NewTicker(period)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// a tick can race with cancel; drop it
				if ctx.Err() != nil {
					return
				}
				fn()
			case <-ctx.Done():
				return
			}
		}
	}()

	return CancelFunc(cancel)
}

// After runs fn once after delay unless cancelled first
func (s *TickerScheduler) After(delay time.Duration, fn func()) CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	timer := time.NewTimer(delay)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer timer.Stop()
		select {
		case <-timer.C:
			if ctx.Err() == nil {
				fn()
			}
		case <-ctx.Done():
		}
	}()

	return CancelFunc(cancel)
}

// Wait blocks until every task goroutine has returned. Call it after
// cancelling the root context during shutdown.
func (s *TickerScheduler) Wait() {
	s.wg.Wait()
}
