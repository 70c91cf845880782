package trending

import (
	"sort"
	"sync"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
)

type entry struct {
	count int
	seq   uint64
}

// Counter tallies query strings for the lifetime of the process. It is safe
// for concurrent use; no increment is ever lost.
type Counter struct {
	mu      sync.Mutex
	entries map[string]*entry
	nextSeq uint64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		entries: make(map[string]*entry),
	}
}

// Increment records one occurrence of query. Empty queries are ignored.
func (c *Counter) Increment(query string) {
	if query == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[query]
	if !ok {
		e = &entry{seq: c.nextSeq}
		c.nextSeq++
		c.entries[query] = e
	}
	e.count++
}

// Count returns how many times query has been recorded.
func (c *Counter) Count(query string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[query]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of distinct queries recorded.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Top returns up to limit queries by descending count. Queries with equal
// counts keep the order in which they were first seen.
func (c *Counter) Top(limit int) []domain.TrendingQuery {
	if limit <= 0 {
		return []domain.TrendingQuery{}
	}

	c.mu.Lock()
	type ranked struct {
		query string
		entry
	}
	all := make([]ranked, 0, len(c.entries))
	for q, e := range c.entries {
		all = append(all, ranked{query: q, entry: *e})
	}
	c.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].seq < all[j].seq
	})

	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]domain.TrendingQuery, len(all))
	for i, r := range all {
		out[i] = domain.TrendingQuery{Query: r.query, Count: r.count}
	}
	return out
}
