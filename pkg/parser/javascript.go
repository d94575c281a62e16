package parser

import (
	"github.com/smacker/go-tree-sitter/javascript"
)

// ecmaBuiltins is shared by the JavaScript and TypeScript descriptors.
var ecmaBuiltins = []string{
	"console", "window", "document", "Array", "Object", "String",
	"Number", "Boolean", "Date", "Math", "JSON", "Promise",
	"Set", "Map", "WeakSet", "WeakMap", "Symbol", "Proxy",
	"Reflect", "Error", "TypeError", "ReferenceError", "parseInt",
	"parseFloat", "isNaN", "isFinite", "encodeURI", "decodeURI",
	"encodeURIComponent", "decodeURIComponent", "eval", "Function",
}

var ecmaKeywords = []string{
	"function", "class", "return", "if", "else",
	"for", "while", "try", "catch", "finally",
	"import", "from", "export", "const", "let", "var",
	"async", "await",
}

var ecmaSeedBuiltins = []string{
	"console", "Array", "Object", "String", "Number", "Boolean", "Promise",
}

// JavaScript returns the JavaScript language descriptor.
func JavaScript() *Language {
	return &Language{
		Name:         "javascript",
		Extensions:   []string{".js", ".jsx"},
		lang:         javascript.GetLanguage(),
		fam:          familyEcma,
		scopeNodes:   set("function_declaration", "class_declaration"),
		classNodes:   set("class_declaration"),
		builtins:     set(ecmaBuiltins...),
		Keywords:     ecmaKeywords,
		SeedBuiltins: ecmaSeedBuiltins,
	}
}
