// Package store keeps the secondary symbol index: name to occurrences,
// file to names and scope to names. It answers the scope-membership and
// name-prefix queries the trie cannot.
package store

import (
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/hollis-dev/symserve/pkg/model"
)

// SymbolStore records every symbol occurrence seen during indexing.
// Mutations are serialized internally; see the indexer for the
// query-vs-index consistency contract.
type SymbolStore struct {
	mu sync.RWMutex

	symbols      map[string][]model.Symbol
	fileSymbols  map[string][]string
	scopeSymbols map[string][]string

	// nameIndex maps lowercased names to their original spellings for
	// case-insensitive prefix search.
	nameIndex *patricia.Trie

	totalCount int
}

// New creates an empty store.
func New() *SymbolStore {
	return &SymbolStore{
		symbols:      make(map[string][]model.Symbol),
		fileSymbols:  make(map[string][]string),
		scopeSymbols: make(map[string][]string),
		nameIndex:    patricia.NewTrie(),
	}
}

// Add records one symbol occurrence. Symbols without a name are ignored.
func (s *SymbolStore) Add(sym model.Symbol) {
	if sym.Name == "" {
		return
	}
	file := sym.File
	if file == "" {
		file = "unknown"
	}
	scope := sym.Scope
	if scope == "" {
		scope = model.ScopeModule
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := s.symbols[sym.Name]; !known {
		s.indexName(sym.Name)
	}
	s.symbols[sym.Name] = append(s.symbols[sym.Name], sym)

	if !contains(s.fileSymbols[file], sym.Name) {
		s.fileSymbols[file] = append(s.fileSymbols[file], sym.Name)
	}
	if !contains(s.scopeSymbols[scope], sym.Name) {
		s.scopeSymbols[scope] = append(s.scopeSymbols[scope], sym.Name)
	}
	s.totalCount++
}

// indexName registers a new name in the case-insensitive prefix index.
// Distinct spellings sharing a lowercase form live under one key.
func (s *SymbolStore) indexName(name string) {
	key := patricia.Prefix(strings.ToLower(name))
	if item := s.nameIndex.Get(key); item != nil {
		spellings := item.([]string)
		if !contains(spellings, name) {
			s.nameIndex.Set(key, append(spellings, name))
		}
		return
	}
	s.nameIndex.Insert(key, []string{name})
}

// Symbols returns all recorded occurrences of name, empty if unknown.
func (s *SymbolStore) Symbols(name string) []model.Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	occ := s.symbols[name]
	out := make([]model.Symbol, len(occ))
	copy(out, occ)
	return out
}

// SymbolsInScope returns the names declared in scope, empty if unknown.
func (s *SymbolStore) SymbolsInScope(scope string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.scopeSymbols[scope]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// SymbolsInFile returns the names seen in file, empty if unknown.
func (s *SymbolStore) SymbolsInFile(file string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.fileSymbols[file]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// SearchByPrefix returns every known name matching prefix
// case-insensitively. This is the store's own fallback lookup path,
// independent of the trie.
func (s *SymbolStore) SearchByPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	_ = s.nameIndex.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)),
		func(p patricia.Prefix, item patricia.Item) error {
			names = append(names, item.([]string)...)
			return nil
		})
	return names
}

// AllNames returns the distinct known symbol names.
func (s *SymbolStore) AllNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	return names
}

// Size returns the total number of recorded occurrences.
func (s *SymbolStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalCount
}

// UniqueCount returns the number of distinct names.
func (s *SymbolStore) UniqueCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

// Clear drops everything.
func (s *SymbolStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = make(map[string][]model.Symbol)
	s.fileSymbols = make(map[string][]string)
	s.scopeSymbols = make(map[string][]string)
	s.nameIndex = patricia.NewTrie()
	s.totalCount = 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
