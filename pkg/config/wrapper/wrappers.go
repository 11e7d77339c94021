package wrapper

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// convertFunc converts a raw override value. Raw env values arrive as []byte.
type convertFunc[T any] func(raw interface{}) (T, error)

type typedConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      convertFunc[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newTypedConfig[T any](override config.Config, defaultValue T, convert convertFunc[T]) *typedConfig[T] {
	return &typedConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *typedConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = c.defaultValue
		c.stateMu.Unlock()
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.stateMu.Lock()
	c.lastValue = newValue
	c.stateMu.Unlock()
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *typedConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *typedConfig[T]) Shutdown() {
	c.override.Shutdown()
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (bool, error) {
		switch v := raw.(type) {
		case []byte:
			return strconv.ParseBool(string(v))
		case bool:
			return v, nil
		}
		return false, ErrUnsuportedConversion
	})
}

// NewInt64Config returns a new int64 config utility wrapper
func NewInt64Config(override config.Config, defaultValue int64) config.Int64 {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (int64, error) {
		switch v := raw.(type) {
		case []byte:
			return strconv.ParseInt(string(v), 10, 64)
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		}
		return 0, ErrUnsuportedConversion
	})
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return newTypedConfig(override, defaultValue, toUint64)
}

// NewBoundedUint64Config is NewUint64Config, but values above maxValue are
// rejected like unparseable ones, keeping the last valid value.
func NewBoundedUint64Config(override config.Config, defaultValue, maxValue uint64) config.Uint64 {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (uint64, error) {
		v, err := toUint64(raw)
		if err != nil {
			return 0, err
		}
		if v > maxValue {
			return 0, errors.Errorf("value %d exceeds maximum %d", v, maxValue)
		}
		return v, nil
	})
}

func toUint64(raw interface{}) (uint64, error) {
	switch v := raw.(type) {
	case []byte:
		return strconv.ParseUint(string(v), 10, 64)
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, errors.Errorf("negative value: %d", v)
		}
		return uint64(v), nil
	}
	return 0, ErrUnsuportedConversion
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (string, error) {
		switch v := raw.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		}
		return "", ErrUnsuportedConversion
	})
}

// NewDurationConfig returns a new duration config utility wrapper. Raw values
// are either Go duration strings or integer seconds.
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (time.Duration, error) {
		switch v := raw.(type) {
		case []byte:
			if seconds, err := strconv.ParseInt(string(v), 10, 64); err == nil {
				return time.Duration(seconds) * time.Second, nil
			}
			return time.ParseDuration(string(v))
		case time.Duration:
			return v, nil
		}
		return 0, ErrUnsuportedConversion
	})
}
