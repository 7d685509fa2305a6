package localstore

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/mobile-zone/internal/domain/deal"
)

// DealKey is the storage key holding the deal countdown deadline.
const DealKey = "mz_deal_end"

var _ deal.Storage = (*DealStorage)(nil)

// DealStorage implements deal.Storage over a KV. The payload is a JSON
// string holding the deadline as an ISO-8601 timestamp.
type DealStorage struct {
	kv KV
}

// NewDealStorage returns a DealStorage over the given KV.
func NewDealStorage(kv KV) *DealStorage {
	return &DealStorage{kv: kv}
}

// Load reads the persisted deadline. An absent key maps to ErrNoDeadline so
// the deal service reseeds.
func (s *DealStorage) Load() (time.Time, error) {
	data, err := s.kv.Get(DealKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, deal.ErrNoDeadline
		}
		return time.Time{}, errors.Wrap(err, "load deadline")
	}

	raw, err := jx.DecodeBytes(data).Str()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "decode deadline")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse deadline")
	}
	return t, nil
}

// Save persists the deadline.
func (s *DealStorage) Save(deadline time.Time) error {
	var e jx.Encoder
	e.Str(deadline.Format(time.RFC3339))
	return s.kv.Set(DealKey, e.Bytes())
}
