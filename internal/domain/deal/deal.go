// Package deal manages the daily-deal countdown deadline.
package deal

import (
	"time"

	"github.com/go-faster/errors"
)

// Storage persists the deal deadline. Load returns ErrNoDeadline when no
// deadline has been stored yet.
type Storage interface {
	Load() (time.Time, error)
	Save(deadline time.Time) error
}

// ErrNoDeadline is returned by Storage.Load when the deadline key is absent.
var ErrNoDeadline = errors.New("no deal deadline stored")

// Remaining is the countdown display value.
type Remaining struct {
	Hours   int
	Minutes int
	Seconds int
}

// Service owns the persisted deal deadline. The deal always runs until the
// end of the current day: a missing, unreadable, or already-passed deadline
// is reseeded to the next local midnight and persisted.
type Service struct {
	storage Storage
	now     func() time.Time
}

// NewService creates a deal Service over the given storage.
func NewService(storage Storage) *Service {
	return &Service{storage: storage, now: time.Now}
}

// Deadline returns the active deal deadline, reseeding it when needed.
func (s *Service) Deadline() time.Time {
	now := s.now()
	deadline, err := s.storage.Load()
	if err != nil || !deadline.After(now) {
		deadline = endOfDay(now)
		// Best effort: an unsaved deadline just reseeds on the next call.
		_ = s.storage.Save(deadline)
	}
	return deadline
}

// Remaining returns the time left until the active deadline, clamped at
// zero. The caller supplies now so a 1-second UI tick stays cheap.
func (s *Service) Remaining(now time.Time) Remaining {
	diff := s.Deadline().Sub(now)
	if diff <= 0 {
		return Remaining{}
	}
	return Remaining{
		Hours:   int(diff / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}

// endOfDay is 23:59:59 of now's day in now's location.
func endOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, now.Location())
}
