package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/symserve/pkg/model"
)

func completion(text string, kind model.Kind, score float64) model.Completion {
	return model.Completion{
		Text:     text,
		Kind:     kind,
		Score:    score,
		Scope:    model.ScopeModule,
		Language: "python",
	}
}

func TestRankEmptyInput(t *testing.T) {
	r := New()
	assert.Nil(t, r.Rank(nil, nil))
	assert.Nil(t, r.Rank([]model.Completion{}, nil))
}

func TestKindWeightsOrdering(t *testing.T) {
	r := New()

	input := []model.Completion{
		completion("value", model.KindVariable, 0.5),
		completion("value_fn", model.KindFunction, 0.5),
		completion("valueCls", model.KindClass, 0.5),
	}

	ranked := r.Rank(input, nil)
	require.Len(t, ranked, 3)
	assert.Equal(t, "value_fn", ranked[0].Text)
	assert.Equal(t, "valueCls", ranked[1].Text)
	assert.Equal(t, "value", ranked[2].Text)
}

func TestUnknownKindGetsFloorWeight(t *testing.T) {
	r := New()

	ranked := r.Rank([]model.Completion{
		{Text: "odd", Kind: model.Kind("mystery"), Score: 0.8},
	}, nil)

	require.Len(t, ranked, 1)
	assert.InDelta(t, 0.4, ranked[0].Score, 1e-9)
}

func TestUnscoredCandidateGetsBase(t *testing.T) {
	r := New()

	ranked := r.Rank([]model.Completion{
		{Text: "plain", Kind: model.KindFunction},
	}, nil)

	require.Len(t, ranked, 1)
	assert.InDelta(t, 0.5, ranked[0].Score, 1e-9)
}

func TestSameScopeBeatsOtherScope(t *testing.T) {
	r := New()
	ctx := &model.Context{Scope: "calculate", Language: "python"}

	local := model.Completion{Text: "total", Kind: model.KindVariable, Score: 0.5, Scope: "calculate", Language: "python"}
	foreign := model.Completion{Text: "total2", Kind: model.KindVariable, Score: 0.5, Scope: "other_fn", Language: "python"}

	ranked := r.Rank([]model.Completion{foreign, local}, ctx)
	require.Len(t, ranked, 2)
	assert.Equal(t, "total", ranked[0].Text)
}

func TestAncestorScopeBoost(t *testing.T) {
	r := New()
	ctx := &model.Context{Scope: "Outer.inner", Language: "python"}

	ancestor := model.Completion{Text: "shared", Kind: model.KindVariable, Score: 0.5, Scope: "Outer", Language: "python"}
	unrelated := model.Completion{Text: "shared2", Kind: model.KindVariable, Score: 0.5, Scope: "Elsewhere", Language: "python"}

	ranked := r.Rank([]model.Completion{unrelated, ancestor}, ctx)
	require.Len(t, ranked, 2)
	assert.Equal(t, "shared", ranked[0].Text)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestKeywordExactMatchDominates(t *testing.T) {
	r := New()
	ctx := &model.Context{Prefix: "def", Language: "python"}

	input := []model.Completion{
		{Text: "define_all", Kind: model.KindFunction, Score: 0.5, Language: "python"},
		{Text: "def", Kind: model.KindKeyword, Score: 0.5, Language: "python"},
		{Text: "default_timeout", Kind: model.KindVariable, Score: 0.5, Language: "python"},
	}

	ranked := r.Rank(input, ctx)
	require.Len(t, ranked, 3)
	assert.Equal(t, "def", ranked[0].Text)
}

func TestLanguageMismatchPenalty(t *testing.T) {
	r := New()
	ctx := &model.Context{Language: "python"}

	same := model.Completion{Text: "parse", Kind: model.KindFunction, Score: 0.5, Language: "python"}
	other := model.Completion{Text: "parseInt", Kind: model.KindFunction, Score: 0.5, Language: "javascript"}

	ranked := r.Rank([]model.Completion{other, same}, ctx)
	require.Len(t, ranked, 2)
	assert.Equal(t, "parse", ranked[0].Text)
	assert.Less(t, ranked[1].Score, 0.1)
}

func TestAvailableSymbolBoost(t *testing.T) {
	r := New()
	ctx := &model.Context{
		Language:         "python",
		AvailableSymbols: []string{"visible"},
	}

	visible := model.Completion{Text: "visible", Kind: model.KindVariable, Score: 0.5, Language: "python"}
	hidden := model.Completion{Text: "visible2", Kind: model.KindVariable, Score: 0.5, Language: "python"}

	ranked := r.Rank([]model.Completion{hidden, visible}, ctx)
	require.Len(t, ranked, 2)
	assert.Equal(t, "visible", ranked[0].Text)
}

func TestFrequencyBoostIsCapped(t *testing.T) {
	r := New()

	modest := model.Completion{Text: "a", Kind: model.KindVariable, Score: 0.5, Frequency: 10}
	heavy := model.Completion{Text: "b", Kind: model.KindVariable, Score: 0.5, Frequency: 500}
	extreme := model.Completion{Text: "c", Kind: model.KindVariable, Score: 0.5, Frequency: 5000}

	ranked := r.Rank([]model.Completion{modest, heavy, extreme}, nil)
	require.Len(t, ranked, 3)
	// both high-frequency candidates hit the same cap
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-9)
	assert.Greater(t, ranked[0].Score, ranked[2].Score)
}

func TestScoreClampedToOne(t *testing.T) {
	r := New()
	ctx := &model.Context{Prefix: "def", Language: "python"}

	ranked := r.Rank([]model.Completion{
		{Text: "def", Kind: model.KindKeyword, Score: 0.9, Frequency: 100, Language: "python"},
	}, ctx)

	require.Len(t, ranked, 1)
	assert.Equal(t, 1.0, ranked[0].Score)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	r := New()
	input := []model.Completion{completion("alpha", model.KindFunction, 0.5)}

	_ = r.Rank(input, nil)

	assert.Equal(t, 0.5, input[0].Score)
}

func TestStableOrderOnTies(t *testing.T) {
	r := New()

	input := []model.Completion{
		completion("first", model.KindFunction, 0.5),
		completion("second", model.KindFunction, 0.5),
		completion("third", model.KindFunction, 0.5),
	}

	ranked := r.Rank(input, nil)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Text)
	assert.Equal(t, "second", ranked[1].Text)
	assert.Equal(t, "third", ranked[2].Text)
}

func TestFilterByKind(t *testing.T) {
	input := []model.Completion{
		completion("fn", model.KindFunction, 0.5),
		completion("kw", model.KindKeyword, 0.5),
		completion("v", model.KindVariable, 0.5),
	}

	kept := FilterByKind(input, []model.Kind{model.KindFunction, model.KindKeyword})
	require.Len(t, kept, 2)
	assert.Equal(t, "fn", kept[0].Text)
	assert.Equal(t, "kw", kept[1].Text)

	assert.Len(t, FilterByKind(input, nil), 3)
}

func TestLimit(t *testing.T) {
	input := []model.Completion{
		completion("a", model.KindFunction, 0.5),
		completion("b", model.KindFunction, 0.5),
	}

	assert.Len(t, Limit(input, 1), 1)
	assert.Len(t, Limit(input, 5), 2)
	assert.Empty(t, Limit(input, 0))
	assert.Len(t, Limit(input, -1), 2)
}
