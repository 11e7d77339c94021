// Package backoff provides delays between retry attempts
package backoff

import (
	"math"
	"time"
)

// Strategy returns the delay to wait after the given attempt, starting at 1
type Strategy func(attempts uint) time.Duration

// Constant waits the same interval after every attempt
func Constant(interval time.Duration) Strategy {
	return func(_ uint) time.Duration {
		return interval
	}
}

// Exponential waits baseDelay * base^(attempts-1), saturating at the largest
// representable duration
func Exponential(baseDelay time.Duration, base float64) Strategy {
	return func(attempts uint) time.Duration {
		if attempts == 0 {
			attempts = 1
		}

		delay := float64(baseDelay) * math.Pow(base, float64(attempts-1))
		if delay >= math.MaxInt64 || math.IsInf(delay, 0) || math.IsNaN(delay) {
			return math.MaxInt64
		}
		return time.Duration(delay)
	}
}

// BinaryExponential doubles the delay after every attempt
func BinaryExponential(baseDelay time.Duration) Strategy {
	return Exponential(baseDelay, 2)
}
