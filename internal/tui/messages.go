package tui

import "time"

// TickMsg advances the navigation clock by one tick
type TickMsg time.Time

// ClearStatusMsg clears a transient status line
type ClearStatusMsg struct{}
