// Package session keeps per-visitor component state in memory.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/cart"
	"github.com/barakadvert/storefront/internal/configurator"
	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/pricing"
	"github.com/barakadvert/storefront/internal/wizard"
)

// Session owns the stateful components of one visitor. Quote, Cart and
// Design are fixed at creation; the checkout is replaced on every start.
type Session struct {
	ID     string
	Quote  *wizard.Quote
	Cart   *cart.Cart
	Design *configurator.Configurator

	mu       sync.Mutex
	checkout *wizard.Checkout
	lastSeen time.Time
}

// Checkout returns the current checkout or nil when none was started.
func (s *Session) Checkout() *wizard.Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

// StartCheckout snapshots the cart into a fresh checkout wizard.
func (s *Session) StartCheckout(rates pricing.Rates) (*wizard.Checkout, error) {
	items := s.Cart.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	c := wizard.NewCheckout(items, rates)
	s.mu.Lock()
	s.checkout = c
	s.mu.Unlock()
	return c, nil
}

// Builder wires the components of a new session.
type Builder func(id string) *Session

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	build    Builder
	now      func() time.Time
}

func NewStore(ttl time.Duration, build Builder) *Store {
	return &Store{sessions: make(map[string]*Session), ttl: ttl, build: build, now: time.Now}
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *Store) Create() *Session {
	id := uuid.NewString()
	sess := s.build(id)
	sess.ID = id
	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// Run sweeps until ctx is done.
func (s *Store) Run(ctx context.Context) {
	every := s.ttl / 2
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Int("active", s.Len()).Msg("sessions swept")
			}
		}
	}
}
