package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pkg/utils"
)

func testItem() *core.Item {
	it := core.NewItem("a2", core.KindArtist)
	it.ArtistName = "Band B"
	it.RawScore = 0.9
	it.Score = 0.45
	it.Popularity = 0.5
	it.PutLabel("genre", utils.Label{Value: "rock", Source: utils.SourceRecall})
	return it
}

func TestEval(t *testing.T) {
	rctx := &core.RecommendContext{
		Kind:        core.KindArtist,
		QueryArtist: &core.Artist{ID: "a1", Name: "Band A"},
		Params:      map[string]any{"min": 0.4},
	}

	tests := []struct {
		expr string
		want bool
	}{
		{expr: "", want: true},
		{expr: `item.score > 0.4`, want: true},
		{expr: `item.popularity < 0.5`, want: false},
		{expr: `item.kind == "artist" && item.name == "Band B"`, want: true},
		{expr: `label.genre == "rock"`, want: true},
		{expr: `"mood" in label`, want: false},
		{expr: `rctx.query_name != item.name`, want: true},
		{expr: `item.score >= rctx.params.min`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, testItem(), rctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(`item.score >`)
	require.Error(t, err)

	p, err := Compile(`item.score`)
	require.NoError(t, err)
	_, err = p.Evaluate(testItem(), nil)
	require.Error(t, err, "non-boolean result")
}

func TestProgram_Reuse(t *testing.T) {
	p, err := Compile(`item.score > 0.3`)
	require.NoError(t, err)
	assert.Equal(t, `item.score > 0.3`, p.String())

	low := testItem()
	low.Score = 0.1
	ok, err := p.Evaluate(low, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Evaluate(testItem(), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
