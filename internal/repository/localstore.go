package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Well-known keys in the local storage slot. KeySession holds the
// serialized current Identity, KeyTheme the display mode string.
const (
	KeySession = "matchupUser"
	KeyTheme   = "theme"
)

// ErrMalformedValue is returned when a stored value cannot be decoded.
// Callers treat it as "no value" and at most log it.
var ErrMalformedValue = errors.New("malformed stored value")

// LocalStore is a single-file JSON key-value slot. It stands in for the
// web client's local storage: a handful of opaque records under
// well-known keys, read at startup and rewritten on change. No versioning
// or migration logic exists.
type LocalStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalStore creates a local store backed by the file at path. The
// file is created lazily on first write.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// Get decodes the value under key into out. The second return reports
// whether the key was present. A value that cannot be decoded yields
// ErrMalformedValue; a file that cannot be parsed at all is reported the
// same way.
func (s *LocalStore) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}

	raw, ok := entries[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrMalformedValue, key, err)
	}
	return true, nil
}

// Set writes the value under key, replacing any previous value.
func (s *LocalStore) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		// A corrupt file is overwritten rather than blocking writes.
		entries = map[string]json.RawMessage{}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}
	entries[key] = raw

	return s.save(entries)
}

// Delete removes the value under key. Deleting an absent key is not an
// error.
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		entries = map[string]json.RawMessage{}
	}

	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)

	return s.save(entries)
}

func (s *LocalStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: store file: %v", ErrMalformedValue, err)
	}
	if entries == nil {
		entries = map[string]json.RawMessage{}
	}
	return entries, nil
}

func (s *LocalStore) save(entries map[string]json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
