package realtime

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sytelus/claude-sessions/internal/search"
)

const cacheSize = 128

// resultCache maps exact query strings to immutable result snapshots for the
// session. The LRU capacity underneath is only a safety bound; correctness
// relies on exact-key lookup plus the eager prefix eviction below.
type resultCache struct {
	entries *lru.Cache[string, []search.Result]
}

func newResultCache() *resultCache {
	entries, err := lru.New[string, []search.Result](cacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &resultCache{entries: entries}
}

func (c *resultCache) get(query string) ([]search.Result, bool) {
	return c.entries.Get(query)
}

func (c *resultCache) put(query string, results []search.Result) {
	c.entries.Add(query, results)
}

// evictNonPrefix drops every entry whose key is not a textual prefix of the
// current query. This is a cheap approximation of invalidation, not tied to
// relevance semantics: it can discard perfectly valid results for
// unrelated-but-previously-seen queries. Kept as is; smarter invalidation is
// a possible future improvement.
func (c *resultCache) evictNonPrefix(current string) {
	for _, key := range c.entries.Keys() {
		if !strings.HasPrefix(current, key) {
			c.entries.Remove(key)
		}
	}
}
