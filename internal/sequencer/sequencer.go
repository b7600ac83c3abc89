// Package sequencer steps through a fixed list of navigation instructions on a timer.
package sequencer

import (
	"errors"
	"sync"
	"time"

	"sakhigps/internal/schedule"
)

var (
	ErrNoSteps   = errors.New("sequencer needs at least one step")
	ErrBadPeriod = errors.New("sequencer period must be positive")
)

// State is a point-in-time view of a sequencer
type State struct {
	Index  int  `json:"index"`
	Total  int  `json:"total"`
	Active bool `json:"active"`
}

// Sequencer advances an index over N steps, wrapping modulo N, once per
// period while active. It is safe for concurrent use.
type Sequencer[T any] struct {
	mu        sync.Mutex
	steps     []T
	period    time.Duration
	sched     schedule.Scheduler
	index     int
	active    bool
	cancel    schedule.CancelFunc
	gen       uint64
	observers []func(State)
}

// New creates an inactive sequencer positioned on the first step
func New[T any](steps []T, period time.Duration, sched schedule.Scheduler) (*Sequencer[T], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if period <= 0 {
		return nil, ErrBadPeriod
	}
	return &Sequencer[T]{
		steps:  append([]T(nil), steps...),
		period: period,
		sched:  sched,
	}, nil
}

// OnAdvance registers fn to be called after every advance
func (s *Sequencer[T]) OnAdvance(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Start resets to the first step and begins advancing
func (s *Sequencer[T]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
	s.activateLocked()
}

// Pause stops advancing and keeps the current step
func (s *Sequencer[T]) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
}

// Resume continues advancing from the current step
func (s *Sequencer[T]) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activateLocked()
}

// Stop stops advancing and returns to the first step
func (s *Sequencer[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
	s.index = 0
}

// Close releases the timer. The sequencer keeps its position.
func (s *Sequencer[T]) Close() {
	s.Pause()
}

// Advance moves to the next step immediately, regardless of the active flag
func (s *Sequencer[T]) Advance() State {
	s.mu.Lock()
	st, observers := s.advanceLocked()
	s.mu.Unlock()

	notify(observers, st)
	return st
}

func (s *Sequencer[T]) advanceLocked() (State, []func(State)) {
	s.index = (s.index + 1) % len(s.steps)
	observers := make([]func(State), len(s.observers))
	copy(observers, s.observers)
	return s.stateLocked(), observers
}

func notify(observers []func(State), st State) {
	for _, fn := range observers {
		fn(st)
	}
}

// State returns the current position and active flag
func (s *Sequencer[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Current returns the step at the current index
func (s *Sequencer[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[s.index]
}

// Upcoming returns up to n steps after the current one, without wrapping
func (s *Sequencer[T]) Upcoming(n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.index + 1
	to := from + n
	if to > len(s.steps) {
		to = len(s.steps)
	}
	if from >= to {
		return nil
	}
	return append([]T(nil), s.steps[from:to]...)
}

// Steps returns a copy of the whole sequence
func (s *Sequencer[T]) Steps() []T {
	return append([]T(nil), s.steps...)
}

// Period returns the advance interval
func (s *Sequencer[T]) Period() time.Duration {
	return s.period
}

// Restore positions the sequencer without touching its timer.
// Out of range indexes are taken modulo N.
func (s *Sequencer[T]) Restore(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.steps)
	s.index = ((index % n) + n) % n
}

func (s *Sequencer[T]) activateLocked() {
	if s.active {
		return
	}
	s.active = true
	s.gen++
	gen := s.gen
	s.cancel = s.sched.Every(s.period, func() {
		s.tick(gen)
	})
}

// tick advances only if the timer that fired is still the current one.
// A tick racing Stop or Pause/Resume finds a stale generation and is dropped.
func (s *Sequencer[T]) tick(gen uint64) {
	s.mu.Lock()
	if !s.active || s.gen != gen {
		s.mu.Unlock()
		return
	}
	st, observers := s.advanceLocked()
	s.mu.Unlock()

	notify(observers, st)
}

func (s *Sequencer[T]) deactivateLocked() {
	s.active = false
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Sequencer[T]) stateLocked() State {
	return State{Index: s.index, Total: len(s.steps), Active: s.active}
}
