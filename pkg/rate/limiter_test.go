package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNoLimiter(t *testing.T) {
	var l NoLimiter
	for i := 0; i < 10000; i++ {
		assert.True(t, l.Allow("getAccountInfo"))
		assert.NoError(t, l.Wait(context.Background(), "getAccountInfo"))
	}
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(2), 0)

	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("getAccountInfo"))
	}
	assert.False(t, l.Allow("getAccountInfo"))

	// Keys are limited independently
	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("sendTransaction"))
	}
	assert.False(t, l.Allow("sendTransaction"))
}

func TestLocalRateLimiter_FractionalLimit(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(0.5), 0)

	assert.True(t, l.Allow("getAccountInfo"))
	assert.False(t, l.Allow("getAccountInfo"))
}

func TestLocalRateLimiter_Wait(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(1), 1)

	assert.NoError(t, l.Wait(context.Background(), "getAccountInfo"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "getAccountInfo"))
}
