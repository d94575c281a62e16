package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// family selects the extraction walker. Python and the ECMAScript
// languages use different grammar node shapes.
type family int

const (
	familyPython family = iota
	familyEcma
)

// Language describes one tree-sitter grammar: how to detect its files,
// which node types open a lexical scope, which names are language-provided,
// and the keyword/builtin catalogue the indexer seeds.
type Language struct {
	Name       string
	Extensions []string

	// Keywords and SeedBuiltins form the fixed catalogue inserted before
	// any file is indexed, tagged scope "builtin".
	Keywords     []string
	SeedBuiltins []string

	lang       *sitter.Language
	fam        family
	scopeNodes map[string]struct{}
	classNodes map[string]struct{}
	builtins   map[string]struct{}
}

// NewParser creates a fresh tree-sitter parser for this language. Parsers
// are not safe for concurrent use; each goroutine needs its own.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Parse parses source into a syntax tree. The caller owns the tree and
// must Close it.
func (l *Language) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := l.NewParser().ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", l.Name, err)
	}
	return tree, nil
}

// IsBuiltin reports whether name is a language-provided identifier.
func (l *Language) IsBuiltin(name string) bool {
	_, ok := l.builtins[name]
	return ok
}

func (l *Language) isScopeNode(nodeType string) bool {
	_, ok := l.scopeNodes[nodeType]
	return ok
}

func (l *Language) isClassNode(nodeType string) bool {
	_, ok := l.classNodes[nodeType]
	return ok
}

// NodeAtPoint returns the smallest named node spanning the 0-indexed
// (row, col) point, or nil when the point is outside the tree.
func NodeAtPoint(tree *sitter.Tree, row, col uint32) *sitter.Node {
	root := tree.RootNode()
	if root == nil {
		return nil
	}
	p := sitter.Point{Row: row, Column: col}
	return root.NamedDescendantForPointRange(p, p)
}

// AncestorScopePath walks from n to the root and collects the names of
// enclosing function/class constructs, outermost first. Both the cursor
// scope and the visible-symbol resolution share this one helper.
func AncestorScopePath(n *sitter.Node, l *Language, source []byte) []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if !l.isScopeNode(cur.Type()) {
			continue
		}
		if name := cur.ChildByFieldName("name"); name != nil {
			path = append([]string{name.Content(source)}, path...)
		}
	}
	return path
}

// ScopeString joins a scope path with dots; an empty path is module scope.
func ScopeString(path []string) string {
	if len(path) == 0 {
		return "module"
	}
	return strings.Join(path, ".")
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}
