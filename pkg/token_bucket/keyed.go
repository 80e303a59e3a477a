package token_bucket

import (
	"sync"
	"time"
)

// KeyedLimiter держит отдельное ведро на каждый ключ (например, адрес клиента).
// Ведра, которые долго простаивают полными, удаляются при очередном Allow,
// поэтому карта не растет бесконечно.
type KeyedLimiter struct {
	capacity   int
	refillRate float64
	idleTTL    time.Duration

	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

func NewKeyedLimiter(capacity int, refillRate float64, idleTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		buckets:    make(map[string]*TokenBucket),
		lastSweep:  time.Now(),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	return k.bucket(key).Allow()
}

// Len количество ключей, для которых сейчас хранится ведро.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *KeyedLimiter) bucket(key string) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if k.idleTTL > 0 && now.Sub(k.lastSweep) >= k.idleTTL {
		k.evictIdle(now)
		k.lastSweep = now
	}

	b, ok := k.buckets[key]
	if !ok {
		b = NewTokenBucket(k.capacity, k.refillRate)
		k.buckets[key] = b
	}
	return b
}

func (k *KeyedLimiter) evictIdle(now time.Time) {
	for key, b := range k.buckets {
		if b.idle(now, k.idleTTL) {
			delete(k.buckets, key)
		}
	}
}
