package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// States tracks the OAuth state values handed out by the login endpoint so
// the callback can reject forged or replayed redirects.
type States struct {
	issued map[string]time.Time // state -> issue time
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
}

func NewStates() *States {
	return &States{
		issued: make(map[string]time.Time),
		ttl:    10 * time.Minute,
		now:    time.Now,
	}
}

// Issue returns a new state value and remembers it until it expires.
func (s *States) Issue() string {
	state := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.issued[state] = s.now()

	return state
}

// Consume reports whether state was issued and has not expired. A state can
// only be consumed once.
func (s *States) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.issued[state]
	if !ok {
		return false
	}
	delete(s.issued, state)

	if s.now().Sub(issuedAt) > s.ttl {
		log.Debugf("oauth state %s expired", state)
		return false
	}
	return true
}

// Pending returns the number of states waiting for a callback.
func (s *States) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issued)
}

// prune drops expired states. Callers hold mu.
func (s *States) prune() {
	for state, issuedAt := range s.issued {
		if s.now().Sub(issuedAt) > s.ttl {
			delete(s.issued, state)
		}
	}
}
