package models

// Presence represents the online status of a trusted contact
type Presence string

const (
	PresenceOnline    Presence = "online"
	PresenceOffline   Presence = "offline"
	PresenceAvailable Presence = "available"
)

// Label returns the display text for a presence value
func (p Presence) Label() string {
	switch p {
	case PresenceOnline:
		return "Online"
	case PresenceOffline:
		return "Offline"
	case PresenceAvailable:
		return "Available"
	default:
		return "Unknown"
	}
}

// ContactRecord represents a member of the user's trusted circle
type ContactRecord struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	Relationship       string   `json:"relationship"`
	Presence           Presence `json:"presence"`
	LastSeenLabel      string   `json:"last_seen_label"`
	Location           string   `json:"location"`
	IsEmergencyContact bool     `json:"is_emergency_contact"`

	// Protected records cannot be removed from the roster
	Protected bool `json:"protected"`
}

// NewContact carries the form fields for adding a contact
type NewContact struct {
	Name         string `json:"name" form:"name"`
	Phone        string `json:"phone" form:"phone"`
	Email        string `json:"email" form:"email"`
	Relationship string `json:"relationship" form:"relationship"`
}

// EmergencyNumber is a number the offline screen can send an SMS alert to
type EmergencyNumber struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Kind   string `json:"kind"`
}
