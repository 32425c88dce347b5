package websearch

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/vegasq/agenttools/tools"
)

// Cache defaults, overridable through the environment.
const (
	DefaultCacheTTL     = 300 * time.Second
	DefaultCacheMaxSize = 128
)

// cache is a bounded TTL memo for successful search payloads. When full,
// the oldest entry is evicted. A TTL of zero or less disables reads; a max
// size of zero or less disables writes.
type cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]cacheEntry
}

type cacheEntry struct {
	storedAt time.Time
	payload  tools.Result
}

func newCacheFromEnv() *cache {
	ttl := DefaultCacheTTL
	if seconds, ok := envInt("WEB_SEARCH_CACHE_TTL_SECONDS"); ok {
		ttl = time.Duration(seconds) * time.Second
	}
	maxSize := DefaultCacheMaxSize
	if size, ok := envInt("WEB_SEARCH_CACHE_MAX_SIZE"); ok {
		maxSize = size
	}
	return &cache{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(provider, q string, numResults int, country, language string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", provider, q, numResults, country, language)
}

func (c *cache) get(key string) (tools.Result, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	// Hand out a copy so a caller mutating the payload cannot poison
	// later hits.
	payload := make(tools.Result, len(entry.payload))
	for k, v := range entry.payload {
		payload[k] = v
	}
	return payload, true
}

func (c *cache) set(key string, payload tools.Result) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestAt time.Time
		for k, entry := range c.entries {
			if oldestKey == "" || entry.storedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = entry.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = cacheEntry{storedAt: time.Now(), payload: payload}
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
