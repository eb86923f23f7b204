package cache

import (
	"sync"

	"delivery-date-service/internal/domain"
)

// MemoryRuleCache is an in-process rule cache safe for concurrent use.
type MemoryRuleCache struct {
	mu    sync.RWMutex
	rules map[string]domain.DeliveryRule
}

func NewMemoryRuleCache() *MemoryRuleCache {
	return &MemoryRuleCache{rules: make(map[string]domain.DeliveryRule)}
}

func (c *MemoryRuleCache) Get(key string) (domain.DeliveryRule, bool) {
	c.mu.RLock()
	r, ok := c.rules[key]
	c.mu.RUnlock()
	if !ok {
		return domain.DeliveryRule{}, false
	}
	return r.Clone(), true
}

// Put stores a private copy of rule.
func (c *MemoryRuleCache) Put(key string, rule domain.DeliveryRule) {
	c.mu.Lock()
	c.rules[key] = rule.Clone()
	c.mu.Unlock()
}

func (c *MemoryRuleCache) Clear() {
	c.mu.Lock()
	c.rules = make(map[string]domain.DeliveryRule)
	c.mu.Unlock()
}

func (c *MemoryRuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
