package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sakhigps/internal/schedule"
)

var ErrSessionNotFound = errors.New("session not found")

const saveTimeout = 5 * time.Second

// Config holds the per-session timer periods and the idle TTL
type Config struct {
	NavPeriod    time.Duration
	VoicePeriod  time.Duration
	TTL          time.Duration
	ReapInterval time.Duration
}

// DefaultConfig uses an 8s navigation step and a 5s voice step.
func DefaultConfig() Config {
	return Config{
		NavPeriod:    8 * time.Second,
		VoicePeriod:  5 * time.Second,
		TTL:          2 * time.Hour,
		ReapInterval: time.Minute,
	}
}

// Manager creates, looks up and expires sessions
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	sched    schedule.Scheduler
	store    Store
	cfg      Config
	now      func() time.Time
}

// NewManager creates a manager. store may be nil, in which case sessions
// live only in memory.
func NewManager(sched schedule.Scheduler, store Store, cfg Config) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		sched:    sched,
		store:    store,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Create starts a new session with a fresh id
func (m *Manager) Create() (*Session, error) {
	s, err := newSession(uuid.NewString(), m.cfg, m.sched, m.now())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.persistOnDownload(s)

	log.Printf("Session %s created", s.ID)
	return s, nil
}

// Get returns the session for id, restoring it from the store when it is
// not in memory
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch(m.now())
		return s, nil
	}

	if m.store == nil || id == "" {
		return nil, ErrSessionNotFound
	}

	snap, found, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	s, err = newSession(id, m.cfg, m.sched, m.now())
	if err != nil {
		return nil, err
	}
	s.restore(snap)

	m.mu.Lock()
	// another request may have restored it meanwhile
	if existing, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		s.Close()
		return existing, nil
	}
	m.sessions[id] = s
	m.mu.Unlock()
	m.persistOnDownload(s)

	log.Printf("Session %s restored", id)
	return s, nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	s, err := m.Get(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		log.Printf("Failed to restore session %s: %v", id, err)
	}
	return m.Create()
}

// Save writes a snapshot of s to the store
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, s.ID, s.Snapshot()); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// Downloads finish on the scheduler after the request that started them has
// returned, so the snapshot is written again when one completes.
func (m *Manager) persistOnDownload(s *Session) {
	if m.store == nil {
		return
	}
	s.Offline.OnComplete(func(routeID int) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := m.Save(ctx, s); err != nil {
			log.Printf("Failed to save session after download of route %d: %v", routeID, err)
		}
	})
}

// Close saves and drops one session, cancelling its timers
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return m.Save(ctx, s)
}

// Forget drops a session and its stored snapshot, used on logout
func (m *Manager) Forget(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	if m.store == nil {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// Len returns the number of sessions held in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the TTL and returns how many
func (m *Manager) Reap(ctx context.Context) int {
	cutoff := m.now().Add(-m.cfg.TTL)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
		if err := m.Save(ctx, s); err != nil {
			log.Printf("Failed to save idle session: %v", err)
		}
	}
	if len(idle) > 0 {
		log.Printf("Reaped %d idle sessions", len(idle))
	}
	return len(idle)
}

// StartReaper runs Reap every ReapInterval until the returned func is called
func (m *Manager) StartReaper(ctx context.Context) schedule.CancelFunc {
	interval := m.cfg.ReapInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return m.sched.Every(interval, func() { m.Reap(ctx) })
}

// Shutdown saves and closes every session
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
		if err := m.Save(ctx, s); err != nil {
			log.Printf("Failed to save session on shutdown: %v", err)
		}
	}
}
