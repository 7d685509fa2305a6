// Package localstore is the device-local persistence layer: one JSON value
// per key, stored as files under a data directory. It stands in for the
// browser's localStorage — state is scoped to one device profile, survives
// restarts, and the last writer wins.
package localstore

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the minimal key-value contract the storage adapters build on.
// Delete on an absent key is a no-op.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store is a file-backed KV. Each key maps to <dir>/<key>.json; writes go
// through a temp file and rename so a crash never leaves a torn value.
type Store struct {
	dir string
}

var _ KV = (*Store)(nil)

// New creates the data directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &Store{dir: dir}, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read %s", key)
	}
	return data, nil
}

// Set atomically replaces the stored value for key.
func (s *Store) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", key)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrapf(err, "replace %s", key)
	}
	return nil
}

// Delete removes the stored value for key, if any.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Mem is an in-memory KV for tests and for running without a writable disk.
type Mem struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ KV = (*Mem)(nil)

// NewMem returns an empty in-memory KV.
func NewMem() *Mem {
	return &Mem{values: make(map[string][]byte)}
}

// Get returns the stored value for key, or ErrNotFound.
func (m *Mem) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set replaces the stored value for key.
func (m *Mem) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

// Delete removes the stored value for key, if any.
func (m *Mem) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
