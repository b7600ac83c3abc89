// Package voice holds the voice navigation settings and the simulated
// speech recognition used by the voice screen.
package voice

import (
	"errors"
	"sync"
	"time"

	"sakhigps/internal/models"
	"sakhigps/internal/schedule"
)

var (
	ErrUnknownPersona = errors.New("unknown persona")
	ErrSpeedRange     = errors.New("speed must be between 0.5 and 2.0")
	ErrVolumeRange    = errors.New("volume must be between 0 and 100")
)

const (
	// RecognitionDelay is how long simulated listening takes
	RecognitionDelay = 2 * time.Second
	// RecognizedCommand is what simulated listening always hears
	RecognizedCommand = "Navigate to downtown library"
)

// DefaultSettings are the voice settings of a new session
func DefaultSettings() models.VoiceSettings {
	return models.VoiceSettings{Persona: models.PersonaAdult, Speed: 1, Volume: 80, Enabled: true}
}

// ConsoleState is what the voice screen shows
type ConsoleState struct {
	Settings       models.VoiceSettings `json:"settings"`
	Listening      bool                 `json:"listening"`
	CurrentCommand string               `json:"current_command"`
}

// Console owns voice settings and the listening state of a session
type Console struct {
	mu        sync.Mutex
	sched     schedule.Scheduler
	settings  models.VoiceSettings
	listening bool
	command   string
	cancel    schedule.CancelFunc
}

// NewConsole creates a console with default settings
func NewConsole(sched schedule.Scheduler) *Console {
	return &Console{sched: sched, settings: DefaultSettings()}
}

// State returns a snapshot of the console
func (c *Console) State() ConsoleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConsoleState{Settings: c.settings, Listening: c.listening, CurrentCommand: c.command}
}

// Settings returns the current voice settings
func (c *Console) Settings() models.VoiceSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Apply validates and stores new settings
func (c *Console) Apply(s models.VoiceSettings) error {
	if !knownPersona(s.Persona) {
		return ErrUnknownPersona
	}
	if s.Speed < 0.5 || s.Speed > 2.0 {
		return ErrSpeedRange
	}
	if s.Volume < 0 || s.Volume > 100 {
		return ErrVolumeRange
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
	return nil
}

// ToggleListening starts simulated recognition, or cancels it when already
// listening. Returns the new listening flag.
func (c *Console) ToggleListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listening {
		c.stopLocked()
		return false
	}

	c.listening = true
	c.cancel = c.sched.After(RecognitionDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.listening {
			return
		}
		c.command = RecognizedCommand
		c.listening = false
		c.cancel = nil
	})
	return true
}

// Close cancels any pending recognition
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Console) stopLocked() {
	c.listening = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func knownPersona(id models.PersonaID) bool {
	switch id {
	case models.PersonaAdult, models.PersonaElder, models.PersonaChild:
		return true
	}
	return false
}
