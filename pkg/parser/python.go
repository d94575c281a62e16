package parser

import (
	"github.com/smacker/go-tree-sitter/python"
)

// Python returns the Python language descriptor.
func Python() *Language {
	return &Language{
		Name:       "python",
		Extensions: []string{".py"},
		lang:       python.GetLanguage(),
		fam:        familyPython,
		scopeNodes: set("function_definition", "class_definition"),
		classNodes: set("class_definition"),
		builtins: set(
			"print", "len", "str", "int", "float", "list", "dict", "set",
			"tuple", "range", "enumerate", "zip", "map", "filter", "sorted",
			"max", "min", "sum", "abs", "round", "type", "isinstance",
			"hasattr", "getattr", "setattr", "delattr", "dir", "vars",
			"open", "file", "input", "eval", "exec", "compile", "repr",
			"format", "chr", "ord", "hex", "oct", "bin", "bool", "bytes",
			"bytearray", "memoryview", "slice", "property", "staticmethod",
			"classmethod", "super", "object", "Exception", "BaseException",
		),
		Keywords: []string{
			"def", "class", "return", "if", "elif", "else",
			"for", "while", "try", "except", "finally",
			"with", "as", "import", "from", "pass",
			"break", "continue", "yield", "lambda",
		},
		SeedBuiltins: []string{
			"print", "len", "range", "str", "int",
			"float", "list", "dict", "set", "tuple",
		},
	}
}
