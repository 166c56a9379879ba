package mem

import (
	"sync"
	"time"
)

// OAuthStateStore keeps the state parameter of an OAuth authorization round
// trip. A state is bound to the user that started the flow, or to "" when the
// flow is an anonymous login.
type OAuthStateStore interface {
	Set(state string, userID string, ttl time.Duration)

	// Consume returns the bound user id and removes the state, so a state can
	// be used once. ok is false when the state is unknown or expired.
	Consume(state string) (userID string, ok bool)
}

type entry struct {
	userID    string
	expiresAt time.Time
}

type OAuthStates struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewOAuthStates() *OAuthStates {
	return &OAuthStates{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *OAuthStates) Set(state string, userID string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	s.data[state] = entry{
		userID:    userID,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *OAuthStates) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[state]
	if !ok {
		return "", false
	}
	delete(s.data, state)
	if s.now().After(e.expiresAt) {
		return "", false
	}
	return e.userID, true
}

// purgeExpiredLocked drops abandoned flows so the map cannot grow without
// bound. Callers hold s.mu.
func (s *OAuthStates) purgeExpiredLocked() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
