package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// StateCache is the gateway's only shared mutable state: a keyed,
// TTL-bounded cache of backend resources. All writes go through Set and the
// Invalidate helpers; mutation handlers never poke entries directly.
type StateCache struct {
	lru *expirable.LRU[string, interface{}]
}

func New(size int, ttl time.Duration) *StateCache {
	if size <= 0 {
		size = 1024
	}
	return &StateCache{
		lru: expirable.NewLRU[string, interface{}](size, nil, ttl),
	}
}

func (c *StateCache) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

func (c *StateCache) Set(key string, value interface{}) {
	c.lru.Add(key, value)
}

func (c *StateCache) Invalidate(keys ...string) {
	for _, key := range keys {
		c.lru.Remove(key)
	}
}

// InvalidatePrefix drops every entry under a key namespace, e.g. all cached
// beat listings when one beat is published.
func (c *StateCache) InvalidatePrefix(prefix string) {
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

func (c *StateCache) Len() int {
	return c.lru.Len()
}
