package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hollis-dev/symserve/pkg/model"
)

// maxWalkDepth bounds the recursive descent so pathologically nested
// sources cannot blow the stack.
const maxWalkDepth = 512

// ExtractSymbols parses source and returns every symbol occurrence with
// its lexical scope, in document order.
func (l *Language) ExtractSymbols(ctx context.Context, source []byte) ([]model.Symbol, error) {
	tree, err := l.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return l.ExtractFromTree(tree, source), nil
}

// ExtractFromTree extracts symbols from an already parsed tree. The
// analyzer uses this to avoid re-parsing the source it just parsed for
// cursor location.
func (l *Language) ExtractFromTree(tree *sitter.Tree, source []byte) []model.Symbol {
	root := tree.RootNode()
	if root == nil {
		return nil
	}
	w := &walker{lang: l, source: source, seen: make(map[lineName]struct{})}
	switch l.fam {
	case familyPython:
		w.python(root, nil, 0)
	case familyEcma:
		w.ecma(root, nil, 0)
	}
	return w.symbols
}

// lineName dedupes builtin identifier occurrences per source line.
type lineName struct {
	line int
	name string
}

type walker struct {
	lang    *Language
	source  []byte
	symbols []model.Symbol
	seen    map[lineName]struct{}
}

func (w *walker) emit(name string, kind model.Kind, scope []string, n *sitter.Node) {
	sym := model.Symbol{
		Name:     name,
		Kind:     kind,
		Scope:    ScopeString(scope),
		Line:     int(n.StartPoint().Row) + 1,
		Column:   int(n.StartPoint().Column),
		Language: w.lang.Name,
	}
	if kind == model.KindBuiltin {
		sym.Scope = model.ScopeBuiltin
	}
	w.seen[lineName{sym.Line, name}] = struct{}{}
	w.symbols = append(w.symbols, sym)
}

func (w *walker) python(n *sitter.Node, scope []string, depth int) {
	if depth > maxWalkDepth {
		return
	}

	switch n.Type() {
	case "function_definition", "class_definition":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil {
			name := nameNode.Content(w.source)
			kind := model.KindFunction
			if w.lang.isClassNode(n.Type()) {
				kind = model.KindClass
			}
			w.emit(name, kind, scope, n)
			if body := n.ChildByFieldName("body"); body != nil {
				inner := append(append([]string(nil), scope...), name)
				for i := 0; i < int(body.ChildCount()); i++ {
					w.python(body.Child(i), inner, depth+1)
				}
			}
			return
		}

	case "assignment":
		if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			w.emit(left.Content(w.source), model.KindVariable, scope, n)
		}

	case "import_statement":
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.Type() != "dotted_name" && child.Type() != "aliased_import" {
				continue
			}
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil && child.ChildCount() > 0 {
				nameNode = child.Child(0)
			}
			if nameNode != nil {
				w.emit(nameNode.Content(w.source), model.KindImport, nil, n)
			}
		}

	case "import_from_statement":
		if mod := n.ChildByFieldName("module_name"); mod != nil {
			w.emit(mod.Content(w.source), model.KindImport, nil, n)
		}

	case "identifier":
		w.builtinOccurrence(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.python(n.Child(i), scope, depth+1)
	}
}

func (w *walker) ecma(n *sitter.Node, scope []string, depth int) {
	if depth > maxWalkDepth {
		return
	}

	switch n.Type() {
	case "function_declaration", "class_declaration":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil {
			name := nameNode.Content(w.source)
			kind := model.KindFunction
			if w.lang.isClassNode(n.Type()) {
				kind = model.KindClass
			}
			w.emit(name, kind, scope, n)
			if body := n.ChildByFieldName("body"); body != nil {
				inner := append(append([]string(nil), scope...), name)
				for i := 0; i < int(body.ChildCount()); i++ {
					w.ecma(body.Child(i), inner, depth+1)
				}
			}
			return
		}

	case "variable_declaration", "lexical_declaration":
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			if nameNode := child.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
				w.emit(nameNode.Content(w.source), model.KindVariable, scope, n)
			}
		}

	case "import_statement":
		w.importedIdentifiers(n, depth)

	case "identifier":
		w.builtinOccurrence(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.ecma(n.Child(i), scope, depth+1)
	}
}

// importedIdentifiers collects the bound names of an import statement:
// default imports, namespace imports and named import specifiers.
func (w *walker) importedIdentifiers(n *sitter.Node, depth int) {
	if depth > maxWalkDepth {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "identifier" {
			if _, dup := w.seen[lineName{int(child.StartPoint().Row) + 1, child.Content(w.source)}]; !dup {
				w.emit(child.Content(w.source), model.KindImport, nil, n)
			}
			continue
		}
		w.importedIdentifiers(child, depth+1)
	}
}

// builtinOccurrence records an identifier node when it names a language
// builtin and the same name was not already emitted for this line.
func (w *walker) builtinOccurrence(n *sitter.Node) {
	name := n.Content(w.source)
	if !w.lang.IsBuiltin(name) {
		return
	}
	if _, dup := w.seen[lineName{int(n.StartPoint().Row) + 1, name}]; dup {
		return
	}
	w.emit(name, model.KindBuiltin, nil, n)
}
