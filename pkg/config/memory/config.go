// Package memory provides a config.Config held in memory, for overrides and
// tests
package memory

import (
	"context"
	"sync"

	"github.com/code-payments/mad-raffle/pkg/config"
)

// Config is a config.Config whose value and error are set directly
type Config struct {
	mu       sync.RWMutex
	value    interface{}
	err      error
	shutdown bool
}

// NewConfig returns a Config holding value. A nil value means no value is
// set.
func NewConfig(value interface{}) *Config {
	return &Config{
		value: value,
	}
}

// Get implements config.Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.err != nil:
		return nil, c.err
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements config.Config.Shutdown
func (c *Config) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()
}

// SetValue sets the value returned by subsequent Get calls. A nil value
// results in config.ErrNoValue.
func (c *Config) SetValue(value interface{}) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

// ClearValue is SetValue(nil)
func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// SetError makes subsequent Get calls fail with err until it's cleared with a
// nil error
func (c *Config) SetError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}
