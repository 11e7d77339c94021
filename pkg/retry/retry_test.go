package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/mad-raffle/pkg/retry/backoff"
)

func TestRealSleeper(t *testing.T) {
	sleeperImpl = &realSleeper{}

	start := time.Now()
	n, err := Retry(func() error { return errors.New("err") },
		Limit(2),
		Backoff(backoff.Constant(500*time.Millisecond), 500*time.Millisecond),
	)

	assert.NotNil(t, err)
	assert.EqualValues(t, 2, n)
	assert.True(t, 500*time.Millisecond <= time.Since(start))
	assert.True(t, 1*time.Second > time.Since(start))
}

func TestRetrier(t *testing.T) {
	retriableErr := errors.New("retriable")
	r := NewRetrier(Limit(5), RetriableErrors(retriableErr))

	// Happy path always goes through
	attempts, err := r.Retry(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, uint(1), attempts)

	// Test ordering does not matter, by triggering 1 filter, then the other.
	attempts, err = r.Retry(func() error { return errors.New("unknown") })
	assert.Error(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = r.Retry(func() error { return retriableErr })
	assert.EqualError(t, retriableErr, err.Error())
	assert.Equal(t, uint(5), attempts)
}

func TestRetry_StopsAtFirstDecliningStrategy(t *testing.T) {
	sleeps := recordSleeps(t)

	var calls int
	attempts, err := Retry(
		func() error {
			calls++
			return errors.New("always")
		},
		Limit(3),
		Backoff(backoff.Constant(time.Millisecond), time.Second),
	)
	assert.Error(t, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 3, calls)

	// No sleep after the final attempt
	assert.Equal(t, []time.Duration{time.Millisecond, time.Millisecond}, sleeps.durations)
}
