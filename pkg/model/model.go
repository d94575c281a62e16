// Package model defines the symbol, completion and context types shared by
// the trie, store, analyzer and indexer packages.
package model

// Kind is the syntactic kind of a symbol or completion.
type Kind string

const (
	KindFunction   Kind = "function"
	KindClass      Kind = "class"
	KindVariable   Kind = "variable"
	KindImport     Kind = "import"
	KindBuiltin    Kind = "builtin"
	KindKeyword    Kind = "keyword"
	KindIdentifier Kind = "identifier"
)

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFunction, KindClass, KindVariable, KindImport,
		KindBuiltin, KindKeyword, KindIdentifier:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Scope sentinels. Everything else is a dotted path of enclosing
// function/class names, innermost last.
const (
	ScopeModule  = "module"
	ScopeBuiltin = "builtin"
)

// Symbol is a single occurrence of a name in a source file, as produced by
// the parser. Immutable once created.
type Symbol struct {
	Name     string
	Kind     Kind
	Scope    string
	File     string
	Line     int // 1-indexed, 0 means unknown
	Column   int // 0-indexed, valid only when Line > 0
	Language string
}

// Completion is a scored completion candidate returned for a prefix query.
// Score is derived at query/ranking time and never persisted in the trie.
type Completion struct {
	Text      string
	Kind      Kind
	Score     float64
	Frequency int
	File      string
	Line      int
	Scope     string
	Language  string
}

// Context is the resolved scope and visible-symbol set for a cursor
// position. It is computed per query and never persisted.
type Context struct {
	Scope            string
	ScopePath        []string
	AvailableSymbols []string
	CurrentLine      string
	Language         string
	Prefix           string
}

// HasSymbol reports whether name is visible in the context.
func (c *Context) HasSymbol(name string) bool {
	for _, s := range c.AvailableSymbols {
		if s == name {
			return true
		}
	}
	return false
}

// IndexResult aggregates the outcome of one directory indexing run.
type IndexResult struct {
	FilesIndexed   int
	TotalFiles     int
	SymbolsIndexed int
	UniqueSymbols  int
}

// Stats is a point-in-time summary of the index.
type Stats struct {
	FilesIndexed  int
	UniqueSymbols int
	TotalSymbols  int
	Languages     []string
}
