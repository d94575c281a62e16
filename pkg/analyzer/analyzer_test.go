package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/symserve/pkg/model"
	"github.com/hollis-dev/symserve/pkg/parser"
)

const pySource = `import os

def calculate(x):
    result = x * 2
    return result

class Shape:
    def area(self):
        size = 10
        return size
`

func newAnalyzer() *Analyzer {
	return New(parser.DefaultRegistry())
}

func TestAnalyzeContextInsideFunction(t *testing.T) {
	a := newAnalyzer()

	ctx, err := a.AnalyzeContext(context.Background(), "python", pySource, 4, 5)
	require.NoError(t, err)

	assert.Equal(t, "calculate", ctx.Scope)
	assert.Equal(t, []string{"calculate"}, ctx.ScopePath)
	assert.Equal(t, "    result = x * 2", ctx.CurrentLine)
	assert.Equal(t, "python", ctx.Language)

	assert.Contains(t, ctx.AvailableSymbols, "result")
	assert.Contains(t, ctx.AvailableSymbols, "calculate")
	assert.Contains(t, ctx.AvailableSymbols, "os")
	assert.Contains(t, ctx.AvailableSymbols, "Shape")
	// names local to another function stay invisible
	assert.NotContains(t, ctx.AvailableSymbols, "size")
}

func TestAnalyzeContextNestedScope(t *testing.T) {
	a := newAnalyzer()

	ctx, err := a.AnalyzeContext(context.Background(), "python", pySource, 9, 9)
	require.NoError(t, err)

	assert.Equal(t, "Shape.area", ctx.Scope)
	assert.Equal(t, []string{"Shape", "area"}, ctx.ScopePath)
	assert.Contains(t, ctx.AvailableSymbols, "size")
	assert.Contains(t, ctx.AvailableSymbols, "area")
	assert.NotContains(t, ctx.AvailableSymbols, "result")
}

func TestAnalyzeContextModuleLevel(t *testing.T) {
	a := newAnalyzer()

	ctx, err := a.AnalyzeContext(context.Background(), "python", pySource, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, model.ScopeModule, ctx.Scope)
	assert.Empty(t, ctx.ScopePath)
}

func TestAnalyzeContextOutOfRangeDegrades(t *testing.T) {
	a := newAnalyzer()

	ctx, err := a.AnalyzeContext(context.Background(), "python", pySource, 9999, 1)
	require.NoError(t, err)

	assert.Equal(t, model.ScopeModule, ctx.Scope)
	assert.Empty(t, ctx.CurrentLine)
}

func TestAnalyzeContextInvalidCursorDegrades(t *testing.T) {
	a := newAnalyzer()

	ctx, err := a.AnalyzeContext(context.Background(), "python", pySource, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, model.ScopeModule, ctx.Scope)
}

func TestAnalyzeContextUnsupportedLanguage(t *testing.T) {
	a := newAnalyzer()

	_, err := a.AnalyzeContext(context.Background(), "fortran", "x = 1", 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupportedLanguage)
}

func TestPrefixFromCode(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		line   int
		column int
		want   string
	}{
		{"simple identifier", "res", 1, 4, "res"},
		{"mid line", "x = calcu", 1, 10, "calcu"},
		{"attribute chain", "value = os.pa", 1, 14, "os.pa"},
		{"after space", "return  ", 1, 8, ""},
		{"cursor at start", "result", 1, 1, ""},
		{"second line", "a = 1\n    tot", 2, 8, "tot"},
		{"underscore", "my_var", 1, 7, "my_var"},
		{"out of range line", "x", 5, 1, ""},
		{"out of range column", "x", 1, 99, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixFromCode(tc.source, tc.line, tc.column))
		})
	}
}
