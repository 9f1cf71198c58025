package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxEntries triggers a sweep of expired items and idle limiters.
const maxEntries = 10000

type item struct {
	data      []byte
	expiresAt time.Time
}

type limiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is an in-process stand-in for Client, used when no Redis address is
// configured. Its rate limiter is a token bucket refilling maxRequests per
// minute rather than a fixed window.
type Memory struct {
	mu          sync.Mutex
	items       map[string]item
	limiters    map[string]*limiter
	maxRequests int
	now         func() time.Time
}

// NewMemory allows maxRequests per key per minute, at least one.
func NewMemory(maxRequests int) *Memory {
	maxRequests = max(maxRequests, 1)
	return &Memory{
		items:       make(map[string]item),
		limiters:    make(map[string]*limiter),
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

func (m *Memory) IsRateLimited(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	l, ok := m.limiters[key]
	if !ok {
		if len(m.limiters) >= maxEntries {
			m.sweepLocked(now)
		}
		l = &limiter{lim: rate.NewLimiter(rate.Every(limitWindow/time.Duration(m.maxRequests)), m.maxRequests)}
		m.limiters[key] = l
	}
	l.lastSeen = now
	return !l.lim.AllowN(now, 1)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok || !m.now().Before(it.expiresAt) {
		delete(m.items, key)
		return nil, ErrMiss
	}
	return append([]byte(nil), it.data...), nil
}

func (m *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.items) >= maxEntries {
		m.sweepLocked(now)
	}
	m.items[key] = item{data: append([]byte(nil), data...), expiresAt: now.Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Set(ctx, revokedKey(tokenID), []byte("1"), ttl)
}

func (m *Memory) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := m.Get(ctx, revokedKey(tokenID))
	if err == ErrMiss {
		return false, nil
	}
	return err == nil, err
}

func (m *Memory) Close() error { return nil }

func (m *Memory) sweepLocked(now time.Time) {
	for k, it := range m.items {
		if !now.Before(it.expiresAt) {
			delete(m.items, k)
		}
	}
	for k, l := range m.limiters {
		if now.Sub(l.lastSeen) > limitWindow {
			delete(m.limiters, k)
		}
	}
}
