package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

// store keeps history in a JSON object file, one entry per key, so the file
// can be shared with other key-value state.
type store struct {
	mu   sync.Mutex
	path string
	key  string
}

// New returns a history.Store backed by the JSON file at path
func New(path string) history.Store {
	return &store{
		path: path,
		key:  history.StorageKey,
	}
}

// Load implements history.Store.Load
func (s *store) Load(_ context.Context) ([]*history.LocalRaffle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return nil, history.ErrNotFound
	}

	raw, ok := entries[s.key]
	if !ok {
		return nil, history.ErrNotFound
	}

	records, err := history.UnmarshalList(raw)
	if err != nil {
		return nil, history.ErrNotFound
	}
	return records, nil
}

// Save implements history.Store.Save
func (s *store) Save(_ context.Context, records []*history.LocalRaffle) error {
	data, err := history.MarshalList(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		// Unreadable files are replaced rather than merged
		entries = make(map[string]json.RawMessage)
	}
	entries[s.key] = data

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode history file")
	}
	return s.writeFile(encoded)
}

func (s *store) readEntries() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("history file is not an object")
	}
	return entries, nil
}

func (s *store) writeFile(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create history directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.path), "failed to replace history file")
}
