package trie

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hollis-dev/symserve/pkg/model"
)

// queryCache memoizes completion results for hot prefixes. Entries are
// evicted FIFO once the cache is full; Invalidate drops every entry whose
// prefix could be stale after an insert.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	maxSize int
}

type cacheEntry struct {
	prefix  string
	results []model.Completion
}

func newQueryCache(maxSize int) *queryCache {
	return &queryCache{
		entries: make(map[string]cacheEntry, maxSize),
		maxSize: maxSize,
	}
}

func cacheKey(prefix string, maxResults int, minScore float64) string {
	return fmt.Sprintf("%s:%d:%g", prefix, maxResults, minScore)
}

// get returns a copy of the cached results so callers can re-score freely.
func (qc *queryCache) get(key string) ([]model.Completion, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	entry, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]model.Completion, len(entry.results))
	copy(out, entry.results)
	return out, true
}

func (qc *queryCache) put(key, prefix string, results []model.Completion) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if _, exists := qc.entries[key]; !exists {
		if len(qc.order) >= qc.maxSize {
			oldest := qc.order[0]
			qc.order = qc.order[1:]
			delete(qc.entries, oldest)
		}
		qc.order = append(qc.order, key)
	}
	stored := make([]model.Completion, len(results))
	copy(stored, results)
	qc.entries[key] = cacheEntry{prefix: prefix, results: stored}
}

// invalidate drops entries whose cached prefix is a prefix of word or has
// word as a prefix. Conservative: anything that could now be stale goes.
func (qc *queryCache) invalidate(word string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	var stale []string
	for key, entry := range qc.entries {
		if strings.HasPrefix(word, entry.prefix) || strings.HasPrefix(entry.prefix, word) {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return
	}
	for _, key := range stale {
		delete(qc.entries, key)
	}
	kept := qc.order[:0]
	for _, key := range qc.order {
		if _, ok := qc.entries[key]; ok {
			kept = append(kept, key)
		}
	}
	qc.order = kept
}

func (qc *queryCache) clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries = make(map[string]cacheEntry, qc.maxSize)
	qc.order = nil
}
