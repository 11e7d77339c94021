package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/mad-raffle/pkg/config"
)

func TestConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	ctx := context.Background()

	c := NewConfig(env)

	v, err := c.Get(ctx)
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)

	// Changes are observed without rebuilding the config
	t.Setenv(env, " value ")
	v, err = c.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(env, "  ")
	v, err = c.Get(ctx)
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	ctx := context.Background()
	t.Setenv("ENV_CONFIG_TEST_UINT", "420")
	t.Setenv("ENV_CONFIG_TEST_DURATION", "30")

	assert.EqualValues(t, 420, NewUint64Config("env_config_test_uint", 100).Get(ctx))
	assert.EqualValues(t, 100, NewUint64Config("ENV_CONFIG_TEST_MISSING", 100).Get(ctx))
	assert.Equal(t, 30*time.Second, NewDurationConfig("ENV_CONFIG_TEST_DURATION", time.Second).Get(ctx))
	assert.Equal(t, "confirmed", NewStringConfig("ENV_CONFIG_TEST_MISSING", "confirmed").Get(ctx))

	t.Setenv("ENV_CONFIG_TEST_UINT", "-1")
	_, err := NewUint64Config("ENV_CONFIG_TEST_UINT", 100).GetSafe(ctx)
	assert.Error(t, err)
}
