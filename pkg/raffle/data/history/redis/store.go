package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

type store struct {
	client *redis.Client
	key    string
}

// New returns a history.Store keeping the serialized list under a single
// redis string key. An empty key selects history.StorageKey.
func New(client *redis.Client, key string) history.Store {
	if key == "" {
		key = history.StorageKey
	}
	return &store{
		client: client,
		key:    key,
	}
}

// Load implements history.Store.Load
func (s *store) Load(ctx context.Context) ([]*history.LocalRaffle, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, history.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	records, err := history.UnmarshalList(data)
	if err != nil {
		return nil, history.ErrNotFound
	}
	return records, nil
}

// Save implements history.Store.Save
func (s *store) Save(ctx context.Context, records []*history.LocalRaffle) error {
	data, err := history.MarshalList(records)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}
