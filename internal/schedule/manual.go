package schedule

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler fires tasks only when Advance is called. Tests use it to
// step through timer-driven behaviour without sleeping.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  map[int]*manualTask
}

type manualTask struct {
	id     int
	due    time.Duration
	period time.Duration // zero for one-shot tasks
	fn     func()
}

// NewManualScheduler creates a scheduler whose clock starts at zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]*manualTask)}
}

// Every registers fn to run once per period of manual time
func (s *ManualScheduler) Every(period time.Duration, fn func()) CancelFunc {
	return s.add(period, period, fn)
}

// After registers fn to run once after delay of manual time
func (s *ManualScheduler) After(delay time.Duration, fn func()) CancelFunc {
	return s.add(delay, 0, fn)
}

func (s *ManualScheduler) add(delay, period time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.tasks[id] = &manualTask{id: id, due: s.now + delay, period: period, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.tasks, id)
	}
}

// Advance moves the clock forward by d and runs every task that falls due,
// in due order. Callbacks may schedule or cancel tasks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		task := s.nextDueLocked(target)
		if task == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = task.due
		if task.period > 0 {
			task.due += task.period
		} else {
			delete(s.tasks, task.id)
		}
		fn := task.fn
		s.mu.Unlock()

		fn()
	}
}

// Pending returns the number of live tasks
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Elapsed returns the manual time advanced so far
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range s.tasks {
		if t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})
	return due[0]
}
