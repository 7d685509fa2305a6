package deal_test

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/mobile-zone/internal/domain/deal"
)

type fakeStorage struct {
	deadline time.Time
	loadErr  error
	saved    []time.Time
}

func (f *fakeStorage) Load() (time.Time, error) {
	if f.loadErr != nil {
		return time.Time{}, f.loadErr
	}
	return f.deadline, nil
}

func (f *fakeStorage) Save(deadline time.Time) error {
	f.deadline = deadline
	f.saved = append(f.saved, deadline)
	return nil
}

func TestDeadlineKeepsStoredFutureValue(t *testing.T) {
	future := time.Now().Add(2 * time.Hour)
	storage := &fakeStorage{deadline: future}
	svc := deal.NewService(storage)

	assert.True(t, svc.Deadline().Equal(future))
	assert.Empty(t, storage.saved)
}

func TestDeadlineReseeds(t *testing.T) {
	tests := []struct {
		name    string
		storage *fakeStorage
	}{
		{"absent deadline", &fakeStorage{loadErr: deal.ErrNoDeadline}},
		{"unreadable deadline", &fakeStorage{loadErr: errors.New("corrupt payload")}},
		{"passed deadline", &fakeStorage{deadline: time.Now().Add(-time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := deal.NewService(tt.storage)

			now := time.Now()
			got := svc.Deadline()

			// Reseeded to the end of the current local day.
			assert.True(t, got.After(now))
			h, m, s := got.Clock()
			assert.Equal(t, 23, h)
			assert.Equal(t, 59, m)
			assert.Equal(t, 59, s)
			assert.Equal(t, now.Day(), got.Day())

			// And persisted for the next page load.
			require.Len(t, tt.storage.saved, 1)
			assert.True(t, tt.storage.saved[0].Equal(got))
		})
	}
}

func TestDeadlineStableAcrossCalls(t *testing.T) {
	storage := &fakeStorage{loadErr: deal.ErrNoDeadline}
	svc := deal.NewService(storage)

	first := svc.Deadline()
	storage.loadErr = nil
	second := svc.Deadline()

	assert.True(t, first.Equal(second))
	assert.Len(t, storage.saved, 1)
}

func TestRemaining(t *testing.T) {
	deadline := time.Now().Add(3 * time.Hour)
	svc := deal.NewService(&fakeStorage{deadline: deadline})

	r := svc.Remaining(deadline.Add(-(2*time.Hour + 30*time.Minute + 15*time.Second)))
	assert.Equal(t, deal.Remaining{Hours: 2, Minutes: 30, Seconds: 15}, r)
}

func TestRemainingClampsAtZero(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	svc := deal.NewService(&fakeStorage{deadline: deadline})

	assert.Equal(t, deal.Remaining{}, svc.Remaining(deadline))
	assert.Equal(t, deal.Remaining{}, svc.Remaining(deadline.Add(time.Minute)))
}
