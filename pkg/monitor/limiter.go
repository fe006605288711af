package monitor

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-subject rate limiters: subject_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(subjectID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[subjectID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[subjectID] = limiter
	}
	return limiter
}

// Allow consumes one token from the subject's limiter.
func (s *RateLimiterStore) Allow(subjectID string) bool {
	return s.GetLimiter(subjectID).Allow()
}

func (s *RateLimiterStore) SetLimiter(subjectID string, subjectRate rate.Limit, subjectBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[subjectID] = rate.NewLimiter(subjectRate, subjectBurst)
}
