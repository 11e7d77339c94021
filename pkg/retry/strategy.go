package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/code-payments/mad-raffle/pkg/retry/backoff"
)

// Strategy decides whether another attempt is made after attempts failures,
// the latest of which is err. Strategies may block, such as when backing off.
type Strategy func(attempts uint, err error) bool

// Limit allows at most maxAttempts attempts in total
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableWhen retries only errors matching predicate
func RetriableWhen(predicate func(error) bool) Strategy {
	return func(_ uint, err error) bool {
		return predicate(err)
	}
}

// RetriableErrors retries only errors that are, or wrap, one of
// retriableErrors
func RetriableErrors(retriableErrors ...error) Strategy {
	return RetriableWhen(func(err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	})
}

// WithContext stops retrying once ctx is done
func WithContext(ctx context.Context) Strategy {
	return func(_ uint, _ error) bool {
		return ctx.Err() == nil
	}
}

// Backoff sleeps for the strategy's delay, capped at maxBackoff, before every
// further attempt
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return BackoffWithJitter(strategy, maxBackoff, 0)
}

// BackoffWithJitter is Backoff with the delay randomly scaled by up to
// +/- jitter, a fraction of the capped delay
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := strategy(attempts)
		if delay > maxBackoff {
			delay = maxBackoff
		}
		if jitter > 0 {
			delay = time.Duration(float64(delay) * (1 + (rand.Float64()*2-1)*jitter))
		}

		sleeperImpl.Sleep(delay)
		return true
	}
}

type sleeper interface {
	Sleep(time.Duration)
}

type realSleeper struct{}

func (r *realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var sleeperImpl sleeper = &realSleeper{}
