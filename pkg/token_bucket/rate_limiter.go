package token_bucket

import (
	"sync"
	"time"
)

// Limiter принимает (true) или отклоняет (false) очередной запрос.
type Limiter interface {
	Allow() bool
}

type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate float64
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

// NewTokenBucket создает ведро, заполненное до capacity.
// refillRate задается в токенах в секунду.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now,
		lastSeen:   now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	t.lastSeen = time.Now()

	if t.tokens > 0 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	tokensToAdd := int(elapsed * t.refillRate)

	if tokensToAdd > 0 {
		t.tokens += tokensToAdd
		if t.tokens > t.capacity {
			t.tokens = t.capacity
		}
		t.lastRefill = now
	}
}

// idle сообщает, что ведро полное и к нему давно не обращались.
func (t *TokenBucket) idle(now time.Time, ttl time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity && now.Sub(t.lastSeen) >= ttl
}
