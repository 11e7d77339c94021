package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is an interface for getting a raw configuration value
type Config interface {
	// Get returns the latest config value
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// NoopConfig is a config that does not yield any values.
var NoopConfig = &noopConfig{}

type noopConfig struct{}

func (*noopConfig) Get(_ context.Context) (interface{}, error) {
	return nil, ErrNoValue
}

func (*noopConfig) Shutdown() {
}

// Typed provides a typed view over a config.Config.
type Typed[T any] interface {
	// Get returns the latest value, falling back to the last known or default
	// value on error.
	Get(ctx context.Context) T

	// GetSafe is Get, but also propagates any error that occurred.
	GetSafe(ctx context.Context) (T, error)

	Shutdown()
}

type (
	Bool     = Typed[bool]
	Duration = Typed[time.Duration]
	Int64    = Typed[int64]
	Uint64   = Typed[uint64]
	String   = Typed[string]
)
