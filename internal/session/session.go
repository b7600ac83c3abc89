// Package session keeps all mutable state of one browser session in one place.
package session

import (
	"log"
	"sync"
	"time"

	"sakhigps/internal/alerts"
	"sakhigps/internal/catalog"
	"sakhigps/internal/contacts"
	"sakhigps/internal/models"
	"sakhigps/internal/offline"
	"sakhigps/internal/progress"
	"sakhigps/internal/schedule"
	"sakhigps/internal/sequencer"
	"sakhigps/internal/voice"
)

// Trip is the route the navigation screen is following
type Trip struct {
	RouteID     int    `json:"route_id"`
	RouteName   string `json:"route_name"`
	Destination string `json:"destination"`
}

// NavigationView is what the navigation screen and its API show
type NavigationView struct {
	Trip     Trip                    `json:"trip"`
	State    sequencer.State         `json:"state"`
	Current  models.NavigationStep   `json:"current"`
	Upcoming []models.NavigationStep `json:"upcoming"`
	Metrics  progress.Projection     `json:"metrics"`
}

// VoiceView is what the voice screen and its API show
type VoiceView struct {
	Console  voice.ConsoleState `json:"console"`
	State    sequencer.State    `json:"state"`
	Current  string             `json:"current"`
	Progress int                `json:"progress"`
}

// Session owns the sequencers, alerts, contacts, offline routes and mode
// toggles of one visitor
type Session struct {
	ID string

	Navigation *sequencer.Sequencer[models.NavigationStep]
	VoiceNav   *sequencer.Sequencer[string]
	Voice      *voice.Console
	Alerts     *alerts.Book
	Contacts   *contacts.Roster
	Offline    *offline.Manager

	projector progress.Projector

	mu        sync.Mutex
	voiceMode bool
	trip      Trip
	lastSeen  time.Time
}

func newSession(id string, cfg Config, sched schedule.Scheduler, now time.Time) (*Session, error) {
	navSteps := catalog.NavigationSteps()
	nav, err := sequencer.New(navSteps, cfg.NavPeriod, sched)
	if err != nil {
		return nil, err
	}
	voiceNav, err := sequencer.New(catalog.VoiceSteps(), cfg.VoicePeriod, sched)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         id,
		Navigation: nav,
		VoiceNav:   voiceNav,
		Voice:      voice.NewConsole(sched),
		Alerts:     alerts.NewBook(catalog.Alerts()),
		Contacts:   contacts.NewRoster(catalog.Contacts()),
		Offline:    offline.NewManager(catalog.OfflineRoutes(), sched),
		projector:  progress.NavigationProjector(len(navSteps)),
		lastSeen:   now,
	}

	nav.OnAdvance(func(st sequencer.State) {
		if st.Index == st.Total-1 {
			log.Printf("Session %s reached the last navigation step", id)
		}
	})
	return s, nil
}

// VoiceMode reports whether the dashboard voice mode toggle is on
func (s *Session) VoiceMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voiceMode
}

// ToggleVoiceMode flips the dashboard voice mode toggle
func (s *Session) ToggleVoiceMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voiceMode = !s.voiceMode
	return s.voiceMode
}

// SetTrip records the route being navigated. The sequencer is left alone.
func (s *Session) SetTrip(route models.RouteOption, destination string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip = Trip{RouteID: route.ID, RouteName: route.Name, Destination: destination}
}

// NavigationView returns the navigation screen state
func (s *Session) NavigationView() NavigationView {
	s.mu.Lock()
	trip := s.trip
	s.mu.Unlock()

	st := s.Navigation.State()
	return NavigationView{
		Trip:     trip,
		State:    st,
		Current:  s.Navigation.Current(),
		Upcoming: s.Navigation.Upcoming(2),
		Metrics:  s.projector.Project(st.Index),
	}
}

// VoiceView returns the voice screen state
func (s *Session) VoiceView() VoiceView {
	st := s.VoiceNav.State()
	return VoiceView{
		Console:  s.Voice.State(),
		State:    st,
		Current:  s.VoiceNav.Current(),
		Progress: (st.Index + 1) * 100 / st.Total,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close cancels every timer the session owns
func (s *Session) Close() {
	s.Navigation.Close()
	s.VoiceNav.Close()
	s.Voice.Close()
	s.Offline.Close()
}

// Snapshot is the part of a session that survives a restart
type Snapshot struct {
	Contacts      []models.ContactRecord `json:"contacts"`
	ContactSeq    int                    `json:"contact_seq"`
	ReadAlerts    []int                  `json:"read_alerts"`
	Downloaded    []int                  `json:"downloaded"`
	VoiceMode     bool                   `json:"voice_mode"`
	OfflineMode   bool                   `json:"offline_mode"`
	VoiceSettings models.VoiceSettings   `json:"voice_settings"`
	Trip          Trip                   `json:"trip"`
	NavIndex      int                    `json:"nav_index"`
}

// Snapshot captures the restorable state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	voiceMode, trip := s.voiceMode, s.trip
	s.mu.Unlock()

	return Snapshot{
		Contacts:      s.Contacts.List(),
		ContactSeq:    s.Contacts.NextID(),
		ReadAlerts:    s.Alerts.ReadIDs(),
		Downloaded:    s.Offline.DownloadedIDs(),
		VoiceMode:     voiceMode,
		OfflineMode:   s.Offline.Enabled(),
		VoiceSettings: s.Voice.Settings(),
		Trip:          trip,
		NavIndex:      s.Navigation.State().Index,
	}
}

// restore applies a snapshot to a freshly created session.
// Timers are not restarted; the visitor resumes them.
func (s *Session) restore(snap Snapshot) {
	if len(snap.Contacts) > 0 {
		s.Contacts = contacts.NewRosterWithNextID(snap.Contacts, snap.ContactSeq)
	}
	s.Alerts.RestoreRead(snap.ReadAlerts)
	s.Offline.RestoreDownloaded(snap.Downloaded)
	s.Offline.SetEnabled(snap.OfflineMode)
	if err := s.Voice.Apply(snap.VoiceSettings); err != nil {
		log.Printf("Session %s: ignoring stored voice settings: %v", s.ID, err)
	}
	s.Navigation.Restore(snap.NavIndex)

	s.mu.Lock()
	s.voiceMode = snap.VoiceMode
	s.trip = snap.Trip
	s.mu.Unlock()
}
