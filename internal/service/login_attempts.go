package service

import (
	"sync"
	"time"
)

var (
	loginWindow      = 15 * time.Minute
	lockDuration     = 10 * time.Minute
	maxLoginAttempts = 5
	// how often RecordFailure sweeps out stale entries
	pruneInterval = time.Minute
)

type attemptState struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// expired reports whether the state no longer affects any decision.
func (s *attemptState) expired(now time.Time) bool {
	if now.Before(s.lockedUntil) {
		return false
	}
	return !s.lockedUntil.IsZero() || now.Sub(s.firstAttempt) > loginWindow
}

// LoginAttempts is an in-memory LoginGuard keyed by client IP.
type LoginAttempts struct {
	mu        sync.Mutex
	attempts  map[string]*attemptState
	lastPrune time.Time
	now       func() time.Time
}

func NewLoginAttempts() *LoginAttempts {
	return &LoginAttempts{
		attempts: make(map[string]*attemptState),
		now:      time.Now,
	}
}

// CheckLock returns how long key stays locked, or 0.
func (l *LoginAttempts) CheckLock(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return 0
	}
	now := l.now()
	if state.expired(now) {
		delete(l.attempts, key)
		return 0
	}
	if !now.Before(state.lockedUntil) {
		return 0
	}
	return state.lockedUntil.Sub(now)
}

// RecordFailure counts a failed login and returns the attempts left before lockout.
func (l *LoginAttempts) RecordFailure(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	state, ok := l.attempts[key]
	if !ok || state.expired(now) {
		state = &attemptState{firstAttempt: now}
		l.attempts[key] = state
	}

	state.count++
	if state.count >= maxLoginAttempts {
		state.lockedUntil = now.Add(lockDuration)
		state.count = maxLoginAttempts
	}
	return maxLoginAttempts - state.count
}

func (l *LoginAttempts) ResetAttempts(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// pruneLocked drops expired entries at most once per pruneInterval.
// Callers hold l.mu.
func (l *LoginAttempts) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < pruneInterval {
		return
	}
	l.lastPrune = now
	for key, state := range l.attempts {
		if state.expired(now) {
			delete(l.attempts, key)
		}
	}
}
