// Package contacts manages the trusted circle for a session.
package contacts

import (
	"errors"
	"strings"
	"sync"

	"sakhigps/internal/models"
)

var (
	ErrContactIncomplete = errors.New("contact needs a name and a phone number")
	ErrContactNotFound   = errors.New("contact not found")
	ErrContactProtected  = errors.New("contact cannot be removed")
)

// Roster is an ordered list of trusted contacts
type Roster struct {
	mu       sync.RWMutex
	contacts []models.ContactRecord
	nextID   int
}

// NewRoster creates a roster from seed records. The seed slice is copied.
func NewRoster(seed []models.ContactRecord) *Roster {
	r := &Roster{contacts: append([]models.ContactRecord(nil), seed...)}
	for _, c := range r.contacts {
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

// NewRosterWithNextID restores a roster whose ids have already been handed
// out up to nextID, so ids of removed contacts stay retired.
func NewRosterWithNextID(seed []models.ContactRecord, nextID int) *Roster {
	r := NewRoster(seed)
	if nextID > r.nextID {
		r.nextID = nextID
	}
	return r
}

// NextID returns the highest id handed out so far
func (r *Roster) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID
}

// List returns the contacts in insertion order
func (r *Roster) List() []models.ContactRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ContactRecord(nil), r.contacts...)
}

// Len returns the number of contacts
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contacts)
}

// Get returns a contact by id
func (r *Roster) Get(id int) (models.ContactRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexLocked(id)
	if i < 0 {
		return models.ContactRecord{}, ErrContactNotFound
	}
	return r.contacts[i], nil
}

// Add appends a contact. Name and phone are required; the roster is
// unchanged when either is blank.
func (r *Roster) Add(in models.NewContact) (models.ContactRecord, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return models.ContactRecord{}, ErrContactIncomplete
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c := models.ContactRecord{
		ID:            r.nextID,
		Name:          name,
		Phone:         phone,
		Email:         strings.TrimSpace(in.Email),
		Relationship:  strings.TrimSpace(in.Relationship),
		Presence:      models.PresenceOffline,
		LastSeenLabel: "Just added",
		Location:      "Unknown",
	}
	r.contacts = append(r.contacts, c)
	return c, nil
}

// Remove deletes a contact unless it is protected
func (r *Roster) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return ErrContactNotFound
	}
	if r.contacts[i].Protected {
		return ErrContactProtected
	}
	r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
	return nil
}

// ToggleEmergency flips the emergency flag and returns the updated contact
func (r *Roster) ToggleEmergency(id int) (models.ContactRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return models.ContactRecord{}, ErrContactNotFound
	}
	r.contacts[i].IsEmergencyContact = !r.contacts[i].IsEmergencyContact
	return r.contacts[i], nil
}

// EmergencyContacts returns the contacts flagged for emergencies
func (r *Roster) EmergencyContacts() []models.ContactRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.ContactRecord
	for _, c := range r.contacts {
		if c.IsEmergencyContact {
			out = append(out, c)
		}
	}
	return out
}

func (r *Roster) indexLocked(id int) int {
	for i, c := range r.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
