package cart

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an idle session cart survives before the
	// sweeper drops it.
	DefaultTTL = 12 * time.Hour

	sweepInterval = 10 * time.Minute
)

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Store holds per-session carts in memory, keyed by an opaque session
// token. Carts are never written anywhere durable.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

// NewStore creates an in-memory cart store with the given idle TTL
// (DefaultTTL when zero).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// GetOrCreate returns the cart for a session token, creating a fresh cart
// and token when the token is empty or unknown. The returned token should
// be set back on the session cookie.
func (s *Store) GetOrCreate(token string) (*Cart, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if e, ok := s.entries[token]; ok {
			e.lastSeen = time.Now()
			return e.cart, token, nil
		}
	}

	newToken, err := generateToken()
	if err != nil {
		return nil, "", err
	}

	c := New()
	s.entries[newToken] = &entry{cart: c, lastSeen: time.Now()}
	return c, newToken, nil
}

// Get returns the cart for a session token, or nil when none exists.
func (s *Store) Get(token string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return nil
	}
	e.lastSeen = time.Now()
	return e.cart
}

// Drop removes a session's cart.
func (s *Store) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

// Len returns the number of live session carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep runs the idle-cart collector until ctx is cancelled.
func (s *Store) Sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(time.Now())
		}
	}
}

func (s *Store) sweepOnce(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, token)
		}
	}
}

// generateToken generates a cryptographically secure session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
