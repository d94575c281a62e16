package trie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/symserve/pkg/model"
)

func meta(kind model.Kind, scope string) *Metadata {
	return &Metadata{Kind: kind, File: "main.py", Line: 1, Scope: scope, Language: "python"}
}

func TestInsertAndSearch(t *testing.T) {
	tr := New(false)

	words := []string{"calculate", "calibrate", "call", "cache"}
	for _, w := range words {
		tr.Insert(w, meta(model.KindFunction, model.ScopeModule))
	}

	assert.Equal(t, len(words), tr.Size())
	assert.True(t, tr.Search("cal"))
	assert.True(t, tr.Search("calculate"))
	assert.True(t, tr.Search(""))
	assert.False(t, tr.Search("calz"))
	assert.False(t, tr.Search("xyz"))
}

func TestInsertEmptyWordIsNoop(t *testing.T) {
	tr := New(false)
	tr.Insert("", meta(model.KindVariable, model.ScopeModule))
	assert.Equal(t, 0, tr.Size())
}

func TestCaseSensitivity(t *testing.T) {
	testCases := []struct {
		caseSensitive bool
		insert        string
		query         string
		found         bool
	}{
		{false, "Calculate", "calc", true},
		{false, "Calculate", "CALC", true},
		{true, "Calculate", "calc", false},
		{true, "Calculate", "Calc", true},
	}

	for _, tc := range testCases {
		name := fmt.Sprintf("sensitive=%v/%s->%s", tc.caseSensitive, tc.insert, tc.query)
		t.Run(name, func(t *testing.T) {
			tr := New(tc.caseSensitive)
			tr.Insert(tc.insert, meta(model.KindFunction, model.ScopeModule))
			assert.Equal(t, tc.found, tr.Search(tc.query))
		})
	}
}

func TestFrequencyAccumulates(t *testing.T) {
	tr := New(false)

	tr.Insert("result", meta(model.KindVariable, "calculate"))
	tr.Insert("result", meta(model.KindVariable, "calculate"))
	tr.Insert("result", meta(model.KindVariable, "calculate"))

	// repeated inserts bump the count, not the size
	assert.Equal(t, 1, tr.Size())

	completions := tr.Completions("res", 10, 0)
	require.Len(t, completions, 1)
	assert.Equal(t, "result", completions[0].Text)
	assert.Equal(t, 3, completions[0].Frequency)
	assert.InDelta(t, 0.03, completions[0].Score, 1e-9)
}

func TestScoreCapsAtOne(t *testing.T) {
	tr := New(false)
	for range 150 {
		tr.Insert("loop", meta(model.KindVariable, model.ScopeModule))
	}

	completions := tr.Completions("lo", 10, 0)
	require.Len(t, completions, 1)
	assert.Equal(t, 150, completions[0].Frequency)
	assert.Equal(t, 1.0, completions[0].Score)
}

func TestCompletionsOrderedByFrequency(t *testing.T) {
	tr := New(false)

	for range 5 {
		tr.Insert("calculate", meta(model.KindFunction, model.ScopeModule))
	}
	for range 3 {
		tr.Insert("calibrate", meta(model.KindFunction, model.ScopeModule))
	}
	tr.Insert("call", meta(model.KindFunction, model.ScopeModule))

	completions := tr.Completions("cal", 10, 0)
	require.Len(t, completions, 3)
	assert.Equal(t, "calculate", completions[0].Text)
	assert.Equal(t, "calibrate", completions[1].Text)
	assert.Equal(t, "call", completions[2].Text)
}

func TestCompletionsRespectsMaxResults(t *testing.T) {
	tr := New(false)
	for i := range 20 {
		tr.Insert(fmt.Sprintf("symbol%02d", i), meta(model.KindVariable, model.ScopeModule))
	}

	completions := tr.Completions("symbol", 5, 0)
	assert.Len(t, completions, 5)

	assert.Empty(t, tr.Completions("symbol", 0, 0))
}

func TestCompletionsMinScoreFilter(t *testing.T) {
	tr := New(false)

	for range 50 {
		tr.Insert("frequent", meta(model.KindVariable, model.ScopeModule))
	}
	tr.Insert("fresh", meta(model.KindVariable, model.ScopeModule))

	completions := tr.Completions("fre", 10, 0.25)
	require.Len(t, completions, 1)
	assert.Equal(t, "frequent", completions[0].Text)
}

func TestCompletionsNoMatch(t *testing.T) {
	tr := New(false)
	tr.Insert("alpha", meta(model.KindVariable, model.ScopeModule))

	assert.Empty(t, tr.Completions("beta", 10, 0))
}

func TestCacheInvalidationOnInsert(t *testing.T) {
	tr := New(false)
	tr.Insert("calculate", meta(model.KindFunction, model.ScopeModule))

	first := tr.Completions("cal", 10, 0)
	require.Len(t, first, 1)

	// a word under the cached prefix must show up on the next query
	tr.Insert("calibrate", meta(model.KindFunction, model.ScopeModule))

	second := tr.Completions("cal", 10, 0)
	assert.Len(t, second, 2)
}

func TestCachedResultsAreIsolated(t *testing.T) {
	tr := New(false)
	tr.Insert("value", meta(model.KindVariable, model.ScopeModule))

	first := tr.Completions("val", 10, 0)
	require.Len(t, first, 1)
	first[0].Score = 99

	second := tr.Completions("val", 10, 0)
	require.Len(t, second, 1)
	assert.NotEqual(t, 99.0, second[0].Score)
}

func TestWords(t *testing.T) {
	tr := New(false)
	for _, w := range []string{"parse", "parser", "part"} {
		tr.Insert(w, meta(model.KindFunction, model.ScopeModule))
	}

	words := tr.Words("par")
	assert.ElementsMatch(t, []string{"parse", "parser", "part"}, words)
	assert.Empty(t, tr.Words("q"))
}

func TestClear(t *testing.T) {
	tr := New(false)
	tr.Insert("calculate", meta(model.KindFunction, model.ScopeModule))
	require.Equal(t, 1, tr.Size())

	tr.Clear()

	assert.Equal(t, 0, tr.Size())
	assert.False(t, tr.Search("cal"))
	assert.Empty(t, tr.Completions("cal", 10, 0))
}

func TestUnicodeWords(t *testing.T) {
	tr := New(false)
	tr.Insert("héllo", meta(model.KindVariable, model.ScopeModule))

	assert.True(t, tr.Search("hé"))
	completions := tr.Completions("hé", 10, 0)
	require.Len(t, completions, 1)
	assert.Equal(t, "héllo", completions[0].Text)
}
