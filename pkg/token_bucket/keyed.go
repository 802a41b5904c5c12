package token_bucket

import (
	"sync"
	"time"
)

// idleBucketsLimit порог, после которого полные (простаивающие) бакеты удаляются.
const idleBucketsLimit = 4096

// Keyed держит отдельный TokenBucket на каждый ключ (адрес клиента).
type Keyed struct {
	capacity   int
	refillRate float64
	now        nowFunc

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyed(capacity int, refillRate float64) *Keyed {
	return newKeyed(capacity, refillRate, time.Now)
}

func newKeyed(capacity int, refillRate float64, now nowFunc) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *Keyed) Allow(key string) bool {
	return k.bucket(key).Allow()
}

func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) bucket(key string) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()

	if b, ok := k.buckets[key]; ok {
		return b
	}
	if len(k.buckets) >= idleBucketsLimit {
		k.evictFull()
	}
	b := newTokenBucket(k.capacity, k.refillRate, k.now)
	k.buckets[key] = b
	return b
}

// evictFull удаляет бакеты, которые успели пополниться до capacity.
// Новый бакет для того же ключа ведет себя так же, как удаленный.
func (k *Keyed) evictFull() {
	for key, b := range k.buckets {
		if b.full() {
			delete(k.buckets, key)
		}
	}
}
