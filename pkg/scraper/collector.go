package scraper

import "bingrab/pkg/bing"

// collector accumulates image results in discovery order, dropping
// duplicates and capping the sequence at the run's limit.
type collector struct {
	limit   int
	seen    map[string]struct{}
	results []bing.ImageResult
}

func newCollector(limit int) *collector {
	return &collector{
		limit: limit,
		seen:  make(map[string]struct{}),
	}
}

// Add records a result unless its URL was already collected or the limit
// is reached. It reports whether the result was kept.
func (c *collector) Add(r bing.ImageResult) bool {
	if c.Full() {
		return false
	}
	if _, dup := c.seen[r.URL]; dup {
		return false
	}
	c.seen[r.URL] = struct{}{}
	c.results = append(c.results, r)
	return true
}

// AddAll records a batch of results and returns how many were kept.
func (c *collector) AddAll(batch []bing.ImageResult) int {
	added := 0
	for _, r := range batch {
		if c.Add(r) {
			added++
		}
	}
	return added
}

// Full reports whether the limit has been reached.
func (c *collector) Full() bool {
	return len(c.results) >= c.limit
}

// Len returns the number of collected results.
func (c *collector) Len() int {
	return len(c.results)
}

// Results returns the collected sequence in discovery order.
func (c *collector) Results() []bing.ImageResult {
	return c.results
}
