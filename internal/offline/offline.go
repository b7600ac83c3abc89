// Package offline tracks offline mode and simulated route downloads.
package offline

import (
	"errors"
	"sync"
	"time"

	"sakhigps/internal/models"
	"sakhigps/internal/schedule"
)

var ErrRouteNotFound = errors.New("offline route not found")

const (
	downloadTick = 200 * time.Millisecond
	downloadStep = 10
)

// Status is what the offline screen shows
type Status struct {
	Enabled     bool                  `json:"enabled"`
	Downloading int                   `json:"downloading"` // route id, zero when idle
	Progress    int                   `json:"progress"`
	StorageUsed int                   `json:"storage_used"`
	Routes      []models.OfflineRoute `json:"routes"`
}

// Manager owns the offline routes of a session
type Manager struct {
	mu          sync.Mutex
	sched       schedule.Scheduler
	enabled     bool
	routes      []models.OfflineRoute
	downloading int
	progress    int
	cancel      schedule.CancelFunc
	onComplete  []func(routeID int)
}

// NewManager creates a manager over seed routes
func NewManager(seed []models.OfflineRoute, sched schedule.Scheduler) *Manager {
	return &Manager{
		sched:  sched,
		routes: append([]models.OfflineRoute(nil), seed...),
	}
}

// Toggle flips offline mode and returns the new value
func (m *Manager) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = !m.enabled
	return m.enabled
}

// SetEnabled sets offline mode
func (m *Manager) SetEnabled(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = v
}

// Enabled reports whether offline mode is on
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Download starts caching a route. Progress grows by ten points per tick;
// at 100 the route is marked downloaded. Returns false if a download is
// already running.
func (m *Manager) Download(routeID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexLocked(routeID) < 0 {
		return false, ErrRouteNotFound
	}
	if m.downloading != 0 {
		return false, nil
	}

	m.downloading = routeID
	m.progress = 0
	m.cancel = m.sched.Every(downloadTick, m.tick)
	return true, nil
}

// OnComplete registers fn to run after a download finishes, outside the lock
func (m *Manager) OnComplete(fn func(routeID int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onComplete = append(m.onComplete, fn)
}

func (m *Manager) tick() {
	m.mu.Lock()
	if m.downloading == 0 {
		m.mu.Unlock()
		return
	}
	m.progress += downloadStep
	if m.progress < 100 {
		m.mu.Unlock()
		return
	}

	m.progress = 100
	routeID := m.downloading
	if i := m.indexLocked(routeID); i >= 0 {
		m.routes[i].Downloaded = true
		m.routes[i].LastUpdatedLabel = "Just now"
	}
	m.downloading = 0
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	hooks := make([]func(int), len(m.onComplete))
	copy(hooks, m.onComplete)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(routeID)
	}
}

// Close cancels a running download
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.downloading = 0
}

// Status returns a snapshot for rendering
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	downloaded := 0
	for _, r := range m.routes {
		if r.Downloaded {
			downloaded++
		}
	}

	return Status{
		Enabled:     m.enabled,
		Downloading: m.downloading,
		Progress:    m.progress,
		StorageUsed: 15 + 15*downloaded,
		Routes:      append([]models.OfflineRoute(nil), m.routes...),
	}
}

// DownloadedIDs returns the ids of cached routes, used for snapshots
func (m *Manager) DownloadedIDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int
	for _, r := range m.routes {
		if r.Downloaded {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// RestoreDownloaded marks the given routes as cached
func (m *Manager) RestoreDownloaded(ids []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if i := m.indexLocked(id); i >= 0 {
			m.routes[i].Downloaded = true
		}
	}
}

func (m *Manager) indexLocked(id int) int {
	for i, r := range m.routes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
