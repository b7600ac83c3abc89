// Package alerts holds a session's safety notifications and their read state.
package alerts

import (
	"errors"
	"sync"

	"sakhigps/internal/models"
)

var ErrAlertNotFound = errors.New("alert not found")

// Filter selects a subset of alerts: "all", "unread" or a category name
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnread Filter = "unread"
)

// ParseFilter turns a query value into a Filter. Empty means all.
func ParseFilter(s string) Filter {
	if s == "" {
		return FilterAll
	}
	return Filter(s)
}

// Filters lists the selectors offered on the alerts screen
func Filters() []Filter {
	out := []Filter{FilterAll, FilterUnread}
	for _, c := range models.AlertCategories {
		out = append(out, Filter(c))
	}
	return out
}

// Match reports whether the alert passes the filter
func (f Filter) Match(a models.AlertRecord) bool {
	switch f {
	case FilterAll:
		return true
	case FilterUnread:
		return !a.Read
	default:
		return string(a.Category) == string(f)
	}
}

// Book is an ordered, never-shrinking list of alerts
type Book struct {
	mu     sync.RWMutex
	alerts []models.AlertRecord
}

// NewBook creates a book from seed records. The seed slice is copied.
func NewBook(seed []models.AlertRecord) *Book {
	return &Book{alerts: append([]models.AlertRecord(nil), seed...)}
}

// List returns the alerts matching f in insertion order
func (b *Book) List(f Filter) []models.AlertRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.AlertRecord, 0, len(b.alerts))
	for _, a := range b.alerts {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// MarkRead flags one alert as read. Marking a read alert again changes nothing.
func (b *Book) MarkRead(id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts[i].Read = true
			return nil
		}
	}
	return ErrAlertNotFound
}

// MarkAllRead flags every alert as read
func (b *Book) MarkAllRead() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.alerts {
		b.alerts[i].Read = true
	}
}

// UnreadCount returns the number of unread alerts
func (b *Book) UnreadCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, a := range b.alerts {
		if !a.Read {
			n++
		}
	}
	return n
}

// ReadIDs returns the ids of read alerts, used for snapshots
func (b *Book) ReadIDs() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ids []int
	for _, a := range b.alerts {
		if a.Read {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// RestoreRead marks the given ids read, ignoring unknown ones
func (b *Book) RestoreRead(ids []int) {
	for _, id := range ids {
		_ = b.MarkRead(id)
	}
}
