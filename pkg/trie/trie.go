// Package trie implements the character trie behind prefix completion
// queries. Terminal nodes carry completion metadata and an insert count;
// subtree walks answer "everything starting with P" with a bounded result
// cache in front.
package trie

import (
	"sort"
	"strings"
	"sync"

	"github.com/hollis-dev/symserve/pkg/model"
)

const defaultCacheSize = 100

// Metadata is the optional per-insert completion payload.
type Metadata struct {
	Kind     model.Kind
	File     string
	Line     int
	Scope    string
	Language string
}

// PrefixTrie stores identifiers and answers prefix queries. Mutations are
// serialized internally; concurrent inserts from indexing workers and
// concurrent reads between index runs are both safe.
type PrefixTrie struct {
	mu            sync.RWMutex
	root          *node
	size          int
	caseSensitive bool
	cache         *queryCache
}

// New creates an empty trie. When caseSensitive is false, keys are folded
// to lowercase on insert and query.
func New(caseSensitive bool) *PrefixTrie {
	return &PrefixTrie{
		root:          newNode(),
		caseSensitive: caseSensitive,
		cache:         newQueryCache(defaultCacheSize),
	}
}

func (t *PrefixTrie) normalize(text string) string {
	if t.caseSensitive {
		return text
	}
	return strings.ToLower(text)
}

// Insert adds word to the trie, bumping its frequency and upserting meta
// into the terminal node. Inserting the empty string is a no-op.
func (t *PrefixTrie) Insert(word string, meta *Metadata) {
	if word == "" {
		return
	}
	word = t.normalize(word)

	t.mu.Lock()
	n := t.root
	for _, r := range word {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	if !n.terminal {
		t.size++
	}
	n.terminal = true
	n.frequency++
	n.upsert(word, meta)
	t.mu.Unlock()

	t.cache.invalidate(word)
}

// Search reports whether any inserted word starts with prefix.
func (t *PrefixTrie) Search(prefix string) bool {
	prefix = t.normalize(prefix)
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.findNode(prefix) != nil
}

func (t *PrefixTrie) findNode(prefix string) *node {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Completions collects every stored completion under prefix whose derived
// score (frequency/100, capped at 1.0) meets minScore, sorted by frequency
// descending and truncated to maxResults. An unknown prefix yields an
// empty result, not an error.
func (t *PrefixTrie) Completions(prefix string, maxResults int, minScore float64) []model.Completion {
	prefix = t.normalize(prefix)

	key := cacheKey(prefix, maxResults, minScore)
	if cached, ok := t.cache.get(key); ok {
		return cached
	}

	t.mu.RLock()
	start := t.findNode(prefix)
	if start == nil {
		t.mu.RUnlock()
		return nil
	}
	collected := collect(start, maxResults, minScore)
	t.mu.RUnlock()

	// Stable keeps traversal order for equal frequencies.
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Frequency > collected[j].Frequency
	})
	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}

	t.cache.put(key, prefix, collected)
	return collected
}

// collect walks the subtree depth-first with an explicit stack, visiting
// children in lexicographic rune order, until maxResults records are
// gathered or the subtree is exhausted.
func collect(start *node, maxResults int, minScore float64) []model.Completion {
	var out []model.Completion
	stack := []*node{start}

	for len(stack) > 0 && len(out) < maxResults {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.terminal {
			for _, c := range n.completions {
				if len(out) >= maxResults {
					return out
				}
				score := float64(c.Frequency) / 100.0
				if score > 1.0 {
					score = 1.0
				}
				if score < minScore {
					continue
				}
				c.Score = score
				out = append(out, c)
			}
		}

		runes := make([]rune, 0, len(n.children))
		for r := range n.children {
			runes = append(runes, r)
		}
		sort.Slice(runes, func(i, j int) bool { return runes[i] > runes[j] })
		// Reverse order on the stack so the smallest rune pops first.
		for _, r := range runes {
			stack = append(stack, n.children[r])
		}
	}
	return out
}

// Words returns the texts of all completions under prefix.
func (t *PrefixTrie) Words(prefix string) []string {
	completions := t.Completions(prefix, 50, 0)
	words := make([]string, 0, len(completions))
	for _, c := range completions {
		if c.Text != "" {
			words = append(words, c.Text)
		}
	}
	return words
}

// Size returns the number of distinct inserted words, not total insert
// occurrences.
func (t *PrefixTrie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Clear drops every entry and the query cache.
func (t *PrefixTrie) Clear() {
	t.mu.Lock()
	t.root = newNode()
	t.size = 0
	t.mu.Unlock()
	t.cache.clear()
}

// ClearCache wipes the memoized query results without touching the trie.
func (t *PrefixTrie) ClearCache() {
	t.cache.clear()
}
