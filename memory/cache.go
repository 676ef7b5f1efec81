package memory

import (
	"sync"
	"time"
)

// profileCache 短TTL进程内缓存。领取校验允许读到分钟级的旧数据，
// 资格判断不是安全边界。
type profileCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	profile  *Profile
	expireAt time.Time
}

func newProfileCache(ttl time.Duration) *profileCache {
	return &profileCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *profileCache) get(address string) (*Profile, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[address]
	if !ok || time.Now().After(entry.expireAt) {
		return nil, false
	}
	return entry.profile, true
}

func (c *profileCache) set(address string, profile *Profile) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = cacheEntry{
		profile:  profile,
		expireAt: time.Now().Add(c.ttl),
	}
}
