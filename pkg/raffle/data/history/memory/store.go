package memory

import (
	"context"
	"sync"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

type store struct {
	mu   sync.Mutex
	data []byte
}

// New returns a new in memory history.Store
func New() history.Store {
	return &store{}
}

// NewWithData returns an in memory history.Store seeded with raw serialized
// history, which may be malformed.
func NewWithData(data []byte) history.Store {
	return &store{data: append([]byte(nil), data...)}
}

// Load implements history.Store.Load
func (s *store) Load(_ context.Context) ([]*history.LocalRaffle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, history.ErrNotFound
	}

	records, err := history.UnmarshalList(s.data)
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

	s.data = data
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
}
