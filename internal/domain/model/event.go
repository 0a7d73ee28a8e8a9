// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownCategory reports an event category outside the closed set.
var ErrUnknownCategory = errors.New("unknown event category")

// EventCategory is the closed set of event kinds. It decides which delta is
// the primary metric, how participation is defined, and whether the ranking
// is single or dual.
type EventCategory string

// Event categories.
const (
	CategoryBattle    EventCategory = "battle"
	CategorySiege     EventCategory = "siege"
	CategoryForbidden EventCategory = "forbidden"
)

// Valid reports whether c is one of the known categories.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryBattle, CategorySiege, CategoryForbidden:
		return true
	}
	return false
}

// ParseCategory normalizes and validates a category string.
func ParseCategory(s string) (EventCategory, error) {
	c := EventCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// EventStatus tracks an event through its snapshot-processing lifecycle.
type EventStatus string

// Event statuses.
const (
	StatusCreated   EventStatus = "created"
	StatusAnalyzing EventStatus = "analyzing"
	StatusCompleted EventStatus = "completed"
)

// Event represents one time-boxed competitive or monitoring period bounded
// by a start and end snapshot.
type Event struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category EventCategory `json:"category"`
	Status   EventStatus   `json:"status"`

	// Snapshot ids are set once processing has been requested.
	BeforeSnapshotID string `json:"before_snapshot_id,omitempty"`
	AfterSnapshotID  string `json:"after_snapshot_id,omitempty"`

	// Event window, taken from the snapshot capture times.
	EventStart time.Time `json:"event_start"`
	EventEnd   time.Time `json:"event_end"`

	CreatedAt time.Time `json:"created_at"`
}
