package env

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/code-payments/mad-raffle/pkg/config"
	"github.com/code-payments/mad-raffle/pkg/config/wrapper"
)

type conf struct {
	key string
}

// NewConfig returns a config backed by the environment variable named key,
// upper cased. The variable is looked up on every Get, and blank values count
// as unset.
func NewConfig(key string) config.Config {
	return &conf{
		key: strings.ToUpper(key),
	}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	val, ok := os.LookupEnv(c.key)
	val = strings.TrimSpace(val)
	if !ok || len(val) == 0 {
		return nil, config.ErrNoValue
	}
	return []byte(val), nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {}

// NewUint64Config creates an env-based uint64 config
func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}

// NewBoundedUint64Config creates an env-based uint64 config rejecting values
// above maxValue
func NewBoundedUint64Config(key string, defaultValue, maxValue uint64) config.Uint64 {
	return wrapper.NewBoundedUint64Config(NewConfig(key), defaultValue, maxValue)
}

// NewStringConfig creates an env-based string config
func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

// NewDurationConfig creates an env-based duration config
func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}
