// Package cache wraps compiler.Compile in a bounded LRU so a service
// embedding this module does not re-parse identical WHERE clauses on
// every call. The teacher has no cache of its own; this follows its
// convention of one small internal/<concern> package with a single
// exported constructor and a handful of methods.
package cache

import (
	"github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/vsqlc/vsqlc/internal/compiler"
)

// Cache compiles WHERE clauses through compiler.Compile, caching results
// keyed on the verbatim clause text. Safe for concurrent use: the
// underlying LRU already is.
type Cache struct {
	lru *lru.Cache[string, *compiler.Filter]
	log zerolog.Logger
}

// New builds a Cache holding at most size compiled filters. size must be
// positive.
func New(size int, log zerolog.Logger) (*Cache, error) {
	c := &Cache{log: log}
	evict := func(key string, _ *compiler.Filter) {
		c.log.Debug().Str("clause", key).Msg("cache: evicted")
	}
	backing, err := lru.NewWithEvict(size, evict)
	if err != nil {
		return nil, err
	}
	c.lru = backing
	return c, nil
}

// Compile returns the cached Filter for where, compiling and caching it
// on a miss. A compile error is never cached.
func (c *Cache) Compile(where string) (*compiler.Filter, error) {
	if f, ok := c.lru.Get(where); ok {
		c.log.Debug().Str("clause", where).Msg("cache: hit")
		return f, nil
	}
	f, err := compiler.Compile(where)
	if err != nil {
		return nil, err
	}
	c.lru.Add(where, f)
	return f, nil
}

// Len reports the number of compiled filters currently cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}
