package models

// PersonaID identifies a voice guidance persona
type PersonaID string

const (
	PersonaAdult PersonaID = "adult"
	PersonaElder PersonaID = "elder"
	PersonaChild PersonaID = "child"
)

// Persona describes how voice guidance is phrased for a kind of walker
type Persona struct {
	ID          PersonaID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
}

// VoiceSettings are the user adjustable voice guidance options
type VoiceSettings struct {
	Persona PersonaID `json:"persona"`
	Speed   float64   `json:"speed"`
	Volume  int       `json:"volume"`
	Enabled bool      `json:"enabled"`
}
