package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// Strategy decides whether an action should be attempted again. Strategies
// may sleep or cause other side effects.
type Strategy func(attempts uint, err error) bool

// Limit allows at most maxAttempts attempts in total.
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of retriableErrors.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	}
}

// Notify calls fn before every retry. It never prevents one.
func Notify(fn func(attempts uint, err error)) Strategy {
	return func(attempts uint, err error) bool {
		fn(attempts, err)
		return true
	}
}

// Backoff sleeps for the delay given by delayFn, capped at maxBackoff.
func Backoff(delayFn BackoffFunc, maxBackoff time.Duration) Strategy {
	return BackoffWithJitter(delayFn, maxBackoff, 0)
}

// BackoffWithJitter is Backoff with the capped delay randomly moved by up to
// jitter (a fraction of the delay) in either direction.
func BackoffWithJitter(delayFn BackoffFunc, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := delayFn(attempts)
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

// BackoffFunc returns how long to wait after the given attempt, starting at 1.
type BackoffFunc func(attempts uint) time.Duration

// ConstantBackoff always waits interval.
func ConstantBackoff(interval time.Duration) BackoffFunc {
	return func(uint) time.Duration {
		return interval
	}
}

// ExponentialBackoff waits baseDelay * base^(attempts-1), saturating instead
// of overflowing.
func ExponentialBackoff(baseDelay time.Duration, base float64) BackoffFunc {
	return func(attempts uint) time.Duration {
		delay := float64(baseDelay) * math.Pow(base, float64(attempts-1))
		if delay >= math.MaxInt64 || delay < 0 {
			return math.MaxInt64
		}
		return time.Duration(delay)
	}
}

// BinaryExponentialBackoff doubles the delay after every attempt.
func BinaryExponentialBackoff(baseDelay time.Duration) BackoffFunc {
	return ExponentialBackoff(baseDelay, 2)
}

type sleeper interface {
	Sleep(time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var sleeperImpl sleeper = realSleeper{}
