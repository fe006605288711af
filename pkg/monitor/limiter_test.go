package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("subject1")
	require.NotNil(t, limiter)
	assert.Equal(t, rate.Limit(1), limiter.Limit())
	assert.Equal(t, 2, limiter.Burst())
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("subject2", 5, 10)
	limiter := store.GetLimiter("subject2")

	assert.Equal(t, rate.Limit(5), limiter.Limit())
	assert.Equal(t, 10, limiter.Burst())

	// other subjects keep the default
	assert.Equal(t, rate.Limit(1), store.GetLimiter("subject3").Limit())
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	subjectID := uuid.NewString()

	var wg sync.WaitGroup
	seen := make(chan *rate.Limiter, 100)

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- store.GetLimiter(subjectID)
		}()
	}

	wg.Wait()
	close(seen)

	first := store.GetLimiter(subjectID)
	for limiter := range seen {
		assert.Same(t, first, limiter)
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	subjectID := uuid.NewString()

	assert.True(t, store.Allow(subjectID))
	assert.True(t, store.Allow(subjectID))
	assert.False(t, store.Allow(subjectID), "third call should be rate limited")

	// Wait for refill
	time.Sleep(600 * time.Millisecond)
	assert.True(t, store.Allow(subjectID))
}
