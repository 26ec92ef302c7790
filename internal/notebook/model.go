// Package notebook persists saved dictionary entries and schedules their
// flashcard reviews.
package notebook

import (
	"errors"
	"time"

	"github.com/k-otsuka/lexinote/internal/dictionary"
)

// ErrEntryNotFound is returned when an entry ID is not in the store.
var ErrEntryNotFound = errors.New("entry not found in notebook")

// SavedEntry is a dictionary entry held in the notebook together with its
// review state. The entry itself stays immutable; only the review state
// changes over time.
type SavedEntry struct {
	Entry   dictionary.Entry `json:"entry" yaml:"entry"`
	SavedAt time.Time        `json:"saved_at" yaml:"saved_at"`
	Review  ReviewState      `json:"review" yaml:"review"`
}

// ReviewState is the spaced-repetition bookkeeping for one entry.
type ReviewState struct {
	EasinessFactor float64   `json:"easiness_factor" yaml:"easiness_factor"`
	IntervalDays   int       `json:"interval_days" yaml:"interval_days"`
	CorrectStreak  int       `json:"correct_streak" yaml:"correct_streak"`
	DueAt          time.Time `json:"due_at" yaml:"due_at"`
	ReviewedAt     time.Time `json:"reviewed_at,omitempty" yaml:"reviewed_at,omitempty"`
}

// Due reports whether the entry should be shown in a review session.
// An entry that has never been reviewed is always due.
func (r ReviewState) Due(now time.Time) bool {
	if r.ReviewedAt.IsZero() {
		return true
	}
	return !now.Before(r.DueAt)
}

// Store is an ordered, deduplicated-by-ID collection of saved entries.
// Every mutation is persisted before it returns.
type Store interface {
	// Add inserts an entry. Inserting an entry whose ID already exists is
	// a no-op, not an error.
	Add(entry dictionary.Entry) error

	// Remove deletes an entry by ID, or returns ErrEntryNotFound.
	Remove(id string) error

	// Get returns the saved entry with the given ID, or ErrEntryNotFound.
	Get(id string) (SavedEntry, error)

	// List returns entries in most-recently-added-first order.
	List() ([]SavedEntry, error)

	// Len returns the number of saved entries.
	Len() (int, error)

	// UpdateReview replaces the review state of an entry.
	UpdateReview(id string, review ReviewState) error
}
