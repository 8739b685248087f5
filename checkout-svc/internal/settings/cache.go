package settings

import (
	"sync"
	"time"

	"food-delivery/checkout-svc/internal/domain"
)

const DefaultTTL = 5 * time.Minute

// Cache holds the last fetched delivery settings and when they were stored.
// Value and timestamp are always replaced together. Every Invalidate starts a
// new generation; SetIfGeneration refuses values fetched in an older one.
type Cache struct {
	mu         sync.RWMutex
	value      domain.DeliverySettings
	storedAt   time.Time
	present    bool
	stale      bool
	generation uint64

	ttl time.Duration
	now func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns the cached settings only while they are inside the validity window.
func (c *Cache) Get() (domain.DeliverySettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.present || c.stale || c.now().Sub(c.storedAt) >= c.ttl {
		return domain.DeliverySettings{}, false
	}
	return c.value, true
}

func (c *Cache) Set(s domain.DeliverySettings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(s)
}

// SetIfGeneration stores s only if no Invalidate happened since generation
// was read. It reports whether s was stored.
func (c *Cache) SetIfGeneration(s domain.DeliverySettings, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != generation {
		return false
	}
	c.store(s)
	return true
}

func (c *Cache) store(s domain.DeliverySettings) {
	c.value = s
	c.storedAt = c.now()
	c.present = true
	c.stale = false
}

func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}

// Invalidate forces the next Get to miss. The value is kept for LastKnown.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stale = true
	c.generation++
}

// LastKnown returns whatever was stored last, regardless of age.
func (c *Cache) LastKnown() (domain.DeliverySettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.value, c.present
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}
