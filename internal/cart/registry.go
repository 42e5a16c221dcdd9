package cart

import (
	"context"
	"sync"
	"time"

	"foodcart-be/internal/logger"

	"go.uber.org/zap"
)

const DefaultSessionTTL = 2 * time.Hour

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry hands out one Store per customer session. Sessions live only in
// memory and are dropped after sitting idle for the configured TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	pricing  Pricing
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(pricing Pricing, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*session),
		pricing:  pricing,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Cart returns the customer's store, creating an empty one on first use.
func (r *Registry) Cart(customerID string) (*Store, error) {
	if customerID == "" {
		return nil, ErrCustomerRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[customerID]
	if !ok {
		sess = &session{store: NewStore(r.pricing)}
		r.sessions[customerID] = sess
	}
	sess.lastSeen = r.now()
	return sess.store, nil
}

// Drop forgets the customer's session.
func (r *Registry) Drop(customerID string) {
	r.mu.Lock()
	delete(r.sessions, customerID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.L().Info("expired idle cart sessions", zap.Int("count", n))
			}
		}
	}
}
