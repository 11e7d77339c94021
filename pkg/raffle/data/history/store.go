package history

import (
	"context"
	"errors"
)

// StorageKey is the key under which key-value backends keep the serialized
// history list.
const StorageKey = "localRaffles"

var (
	// ErrNotFound indicates there is no usable history. Malformed data is
	// reported the same way, since it must never be partially trusted.
	ErrNotFound = errors.New("raffle history not found")
)

// Store persists the list of settled raffles. Saves overwrite the whole list.
type Store interface {
	// Load returns the full persisted list, or ErrNotFound
	Load(ctx context.Context) ([]*LocalRaffle, error)

	// Save replaces the persisted list with records
	Save(ctx context.Context, records []*LocalRaffle) error
}
