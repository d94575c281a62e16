package parser

import (
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScript returns the TypeScript language descriptor. The grammar
// shares its declaration node shapes with JavaScript, so the same
// extraction walker applies.
func TypeScript() *Language {
	return &Language{
		Name:         "typescript",
		Extensions:   []string{".ts", ".tsx"},
		lang:         typescript.GetLanguage(),
		fam:          familyEcma,
		scopeNodes:   set("function_declaration", "class_declaration"),
		classNodes:   set("class_declaration"),
		builtins:     set(ecmaBuiltins...),
		Keywords:     ecmaKeywords,
		SeedBuiltins: ecmaSeedBuiltins,
	}
}
