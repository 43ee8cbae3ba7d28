package templatizer

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheConfig contains configuration options for the template cache
type CacheConfig struct {
	// MaxSize is the maximum number of templates to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached templates. 0 means no expiration.
	TTL time.Duration
}

// TemplateCache holds compiled templates by key. It is safe for concurrent use.
type TemplateCache struct {
	lru    *expirable.LRU[string, *Template]
	config CacheConfig
}

// NewTemplateCache creates a cache with the given configuration. Evictions
// are logged at trace level to logger, which may be nil.
func NewTemplateCache(config CacheConfig, logger hclog.Logger) *TemplateCache {
	tc := &TemplateCache{config: config}
	if config.MaxSize <= 0 {
		return tc
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	onEvict := func(key string, _ *Template) {
		logger.Trace("evicted template from cache", "key", key)
	}
	tc.lru = expirable.NewLRU[string, *Template](config.MaxSize, onEvict, config.TTL)
	return tc
}

// Enabled reports whether the cache stores anything.
func (tc *TemplateCache) Enabled() bool {
	return tc != nil && tc.lru != nil
}

// Get retrieves a template from the cache
func (tc *TemplateCache) Get(key string) (*Template, bool) {
	if !tc.Enabled() {
		return nil, false
	}
	tmpl, ok := tc.lru.Get(key)
	if ok {
		metrics.IncrCounter(metricCacheHit, 1)
	} else {
		metrics.IncrCounter(metricCacheMiss, 1)
	}
	return tmpl, ok
}

// Set adds or replaces a template in the cache
func (tc *TemplateCache) Set(key string, tmpl *Template) {
	if !tc.Enabled() {
		return
	}
	tc.lru.Add(key, tmpl)
}

// Remove removes a template from the cache
func (tc *TemplateCache) Remove(key string) {
	if !tc.Enabled() {
		return
	}
	tc.lru.Remove(key)
}

// Clear removes all templates from the cache
func (tc *TemplateCache) Clear() {
	if !tc.Enabled() {
		return
	}
	tc.lru.Purge()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	if !tc.Enabled() {
		return 0
	}
	return tc.lru.Len()
}
