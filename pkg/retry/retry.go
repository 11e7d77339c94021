// Package retry runs an action until it succeeds or one of a set of
// strategies gives up.
package retry

// Action is a retriable operation
type Action func() error

// Retrier retries actions using a fixed set of strategies
type Retrier interface {
	// Retry runs action until it succeeds or a strategy declines another
	// attempt, returning the number of attempts made.
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier applying strategies, in order, after every
// failed attempt
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

// Retry implements Retrier.Retry
func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry runs action until it succeeds or a strategy declines another attempt.
// Strategies are evaluated in order and evaluation stops at the first one that
// declines, so a Backoff placed after a Limit never sleeps once the limit is
// reached. The returned count includes the final attempt.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	var attempts uint
	for {
		attempts++

		err := action()
		if err == nil {
			return attempts, nil
		}
		if !shouldRetry(strategies, attempts, err) {
			return attempts, err
		}
	}
}

func shouldRetry(strategies []Strategy, attempts uint, err error) bool {
	for _, s := range strategies {
		if !s(attempts, err) {
			return false
		}
	}
	return true
}
