// pkg/memcache/request_tokens.go
package mem

import (
	"context"
	"sync"
	"time"
)

// RequestTokenStore hands out increasing tokens per client session so a caller
// can tell whether its request is still the newest one ("last request wins").
type RequestTokenStore interface {
	// Issue returns a new token for session, strictly greater than any issued
	// within the last ttl. Idle sessions start again from 1 after the ttl.
	Issue(ctx context.Context, session string) (int64, error)

	// Latest returns the newest token issued for session, 0 if none (or expired).
	Latest(ctx context.Context, session string) (int64, error)
}

type entry struct {
	token     int64
	expiresAt time.Time
}

type RequestTokens struct {
	mu        sync.Mutex
	data      map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewRequestTokens(ttl time.Duration) *RequestTokens {
	return &RequestTokens{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *RequestTokens) Issue(_ context.Context, session string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	e := s.data[session]
	if now.After(e.expiresAt) {
		e.token = 0
	}
	e.token++
	e.expiresAt = now.Add(s.ttl)
	s.data[session] = e
	return e.token, nil
}

func (s *RequestTokens) Latest(_ context.Context, session string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[session]
	if !ok || s.now().After(e.expiresAt) {
		return 0, nil
	}
	return e.token, nil
}

// sweepLocked drops expired sessions at most once per ttl.
func (s *RequestTokens) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
	s.lastSweep = now
}
