package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/symserve/pkg/model"
)

const pySource = `import os

def calculate(x):
    result = x * 2
    print(result)
    return result

class Shape:
    def area(self):
        size = 10
        return size
`

const jsSource = `import { readFile } from "fs";

function add(a, b) {
  const total = a + b;
  return total;
}

class Point {
  scale(factor) {
    let scaled = factor * 2;
    return scaled;
  }
}

var counter = 0;
`

func findSymbol(symbols []model.Symbol, name string, kind model.Kind) (model.Symbol, bool) {
	for _, s := range symbols {
		if s.Name == name && s.Kind == kind {
			return s, true
		}
	}
	return model.Symbol{}, false
}

func TestExtractPythonSymbols(t *testing.T) {
	symbols, err := Python().ExtractSymbols(context.Background(), []byte(pySource))
	require.NoError(t, err)
	require.NotEmpty(t, symbols)

	testCases := []struct {
		name  string
		kind  model.Kind
		scope string
		line  int
	}{
		{"os", model.KindImport, model.ScopeModule, 1},
		{"calculate", model.KindFunction, model.ScopeModule, 3},
		{"result", model.KindVariable, "calculate", 4},
		{"print", model.KindBuiltin, model.ScopeBuiltin, 5},
		{"Shape", model.KindClass, model.ScopeModule, 8},
		{"area", model.KindFunction, "Shape", 9},
		{"size", model.KindVariable, "Shape.area", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sym, ok := findSymbol(symbols, tc.name, tc.kind)
			require.True(t, ok, "symbol %s (%s) not extracted", tc.name, tc.kind)
			assert.Equal(t, tc.scope, sym.Scope)
			assert.Equal(t, tc.line, sym.Line)
			assert.Equal(t, "python", sym.Language)
		})
	}
}

func TestExtractJavaScriptSymbols(t *testing.T) {
	symbols, err := JavaScript().ExtractSymbols(context.Background(), []byte(jsSource))
	require.NoError(t, err)
	require.NotEmpty(t, symbols)

	testCases := []struct {
		name  string
		kind  model.Kind
		scope string
	}{
		{"readFile", model.KindImport, model.ScopeModule},
		{"add", model.KindFunction, model.ScopeModule},
		{"total", model.KindVariable, "add"},
		{"Point", model.KindClass, model.ScopeModule},
		{"counter", model.KindVariable, model.ScopeModule},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sym, ok := findSymbol(symbols, tc.name, tc.kind)
			require.True(t, ok, "symbol %s (%s) not extracted", tc.name, tc.kind)
			assert.Equal(t, tc.scope, sym.Scope)
			assert.Equal(t, "javascript", sym.Language)
		})
	}
}

func TestExtractTypeScriptSymbols(t *testing.T) {
	src := `function greet(name: string): string {
  const message = "hi " + name;
  return message;
}
`
	symbols, err := TypeScript().ExtractSymbols(context.Background(), []byte(src))
	require.NoError(t, err)

	greet, ok := findSymbol(symbols, "greet", model.KindFunction)
	require.True(t, ok)
	assert.Equal(t, model.ScopeModule, greet.Scope)

	message, ok := findSymbol(symbols, "message", model.KindVariable)
	require.True(t, ok)
	assert.Equal(t, "greet", message.Scope)
}

func TestExtractEmptySource(t *testing.T) {
	symbols, err := Python().ExtractSymbols(context.Background(), []byte(""))
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestBuiltinDedupePerLine(t *testing.T) {
	src := "print(len(str(1)), len(str(2)))\n"
	symbols, err := Python().ExtractSymbols(context.Background(), []byte(src))
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, s := range symbols {
		if s.Kind == model.KindBuiltin {
			counts[s.Name]++
		}
	}
	assert.Equal(t, 1, counts["print"])
	assert.Equal(t, 1, counts["len"])
	assert.Equal(t, 1, counts["str"])
}

func TestRegistryDetectLanguage(t *testing.T) {
	registry := DefaultRegistry()

	testCases := []struct {
		path string
		lang string
		ok   bool
	}{
		{"main.py", "python", true},
		{"app.js", "javascript", true},
		{"widget.jsx", "javascript", true},
		{"index.ts", "typescript", true},
		{"view.TSX", "typescript", true},
		{"readme.md", "", false},
		{"Makefile", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			lang, ok := registry.DetectLanguage(tc.path)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.lang, lang)
			}
		})
	}
}

func TestRegistryGetUnsupported(t *testing.T) {
	registry := DefaultRegistry()

	_, err := registry.Get("cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	lang, err := registry.Get("Python")
	require.NoError(t, err)
	assert.Equal(t, "python", lang.Name)
}
