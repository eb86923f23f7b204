package cache

import (
	"maps"
	"sync"

	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/ports"
)

// MemoryHolidayCache keeps one holiday set per tenant and year.
// Sets returned by Get are shared and must be treated as read-only.
type MemoryHolidayCache struct {
	mu   sync.RWMutex
	sets map[ports.HolidayKey]domain.HolidaySet
}

func NewMemoryHolidayCache() *MemoryHolidayCache {
	return &MemoryHolidayCache{sets: make(map[ports.HolidayKey]domain.HolidaySet)}
}

func (c *MemoryHolidayCache) Get(key ports.HolidayKey) (domain.HolidaySet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sets[key]
	return s, ok
}

func (c *MemoryHolidayCache) Put(key ports.HolidayKey, set domain.HolidaySet) {
	cp := maps.Clone(set)
	if cp == nil {
		cp = domain.HolidaySet{}
	}
	c.mu.Lock()
	c.sets[key] = cp
	c.mu.Unlock()
}

func (c *MemoryHolidayCache) Clear() {
	c.mu.Lock()
	c.sets = make(map[ports.HolidayKey]domain.HolidaySet)
	c.mu.Unlock()
}
