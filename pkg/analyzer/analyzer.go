// Package analyzer resolves the lexical context around a cursor position:
// the enclosing scope path and the set of symbol names visible there.
package analyzer

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hollis-dev/symserve/pkg/model"
	"github.com/hollis-dev/symserve/pkg/parser"
)

// Analyzer computes cursor contexts using the injected parser registry.
type Analyzer struct {
	registry *parser.Registry
}

// New creates an analyzer backed by registry.
func New(registry *parser.Registry) *Analyzer {
	return &Analyzer{registry: registry}
}

// AnalyzeContext resolves the context at the 1-indexed (line, column)
// cursor in source. Parse failures and out-of-range cursors degrade to the
// module-level context; only an unregistered language is an error.
func (a *Analyzer) AnalyzeContext(ctx context.Context, language, source string, line, column int) (model.Context, error) {
	lang, err := a.registry.Get(language)
	if err != nil {
		return model.Context{}, err
	}

	lines := strings.Split(source, "\n")
	degraded := model.Context{
		Scope:       model.ScopeModule,
		CurrentLine: lineAt(lines, line),
		Language:    lang.Name,
	}

	src := []byte(source)
	tree, err := lang.Parse(ctx, src)
	if err != nil || tree == nil {
		if err != nil {
			log.Debugf("context analysis fell back to module scope: %v", err)
		}
		return degraded, nil
	}
	defer tree.Close()

	if line < 1 || column < 1 {
		return degraded, nil
	}
	node := parser.NodeAtPoint(tree, uint32(line-1), uint32(column-1))
	if node == nil {
		return degraded, nil
	}

	scopePath := parser.AncestorScopePath(node, lang, src)
	scope := parser.ScopeString(scopePath)

	symbols := lang.ExtractFromTree(tree, src)

	return model.Context{
		Scope:            scope,
		ScopePath:        scopePath,
		AvailableSymbols: visibleNames(symbols, scope),
		CurrentLine:      lineAt(lines, line),
		Language:         lang.Name,
	}, nil
}

// visibleNames collects the deduplicated names whose scope is visible
// from current: the same scope, an ancestor scope, or the module/builtin
// sentinels.
func visibleNames(symbols []model.Symbol, current string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, sym := range symbols {
		scope := sym.Scope
		if scope == "" {
			scope = model.ScopeModule
		}
		visible := scope == current ||
			strings.HasPrefix(current, scope+".") ||
			scope == model.ScopeModule ||
			scope == model.ScopeBuiltin
		if !visible {
			continue
		}
		if _, dup := seen[sym.Name]; dup {
			continue
		}
		seen[sym.Name] = struct{}{}
		names = append(names, sym.Name)
	}
	sort.Strings(names)
	return names
}

func lineAt(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// PrefixFromCode scans backward from the 1-indexed cursor and returns the
// identifier fragment being typed. It is a pure text scan, independent of
// parsing; out-of-range positions yield the empty string.
func PrefixFromCode(source string, line, column int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	current := lines[line-1]
	if column < 1 || column > len(current)+1 {
		return ""
	}

	start := column - 1
	for start > 0 && isPrefixRune(current[start-1]) {
		start--
	}
	return current[start : column-1]
}

func isPrefixRune(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
