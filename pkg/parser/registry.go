// Package parser wraps tree-sitter behind a language registry. It parses
// source text, extracts symbol occurrences with their lexical scope, and
// exposes the node-location helpers the context analyzer needs.
package parser

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage is returned when no parser is registered for a
// requested language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Registry holds the available language parsers. It is constructed once at
// startup and passed into the indexer and analyzer; there is no implicit
// process-wide registration.
type Registry struct {
	languages map[string]*Language
	byExt     map[string]*Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]*Language),
		byExt:     make(map[string]*Language),
	}
}

// DefaultRegistry returns a registry with every bundled language.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Python())
	r.Register(JavaScript())
	r.Register(TypeScript())
	return r
}

// Register adds a language, replacing any previous registration under the
// same name or extensions.
func (r *Registry) Register(l *Language) {
	r.languages[l.Name] = l
	for _, ext := range l.Extensions {
		r.byExt[ext] = l
	}
}

// Get returns the language registered under name.
func (r *Registry) Get(name string) (*Language, error) {
	l, ok := r.languages[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}
	return l, nil
}

// Supported returns the registered language names, sorted.
func (r *Registry) Supported() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectLanguage maps a file path to a registered language name by
// extension. The second return is false when the extension is unknown.
func (r *Registry) DetectLanguage(path string) (string, bool) {
	l, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false
	}
	return l.Name, true
}
