package filter

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
)

func item(id string, score, popularity float64) *core.Item {
	it := core.NewItem(id, core.KindArtist)
	it.ArtistName = id
	it.Score = score
	it.Popularity = popularity
	return it
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterNode_PopularityAndThreshold(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		NewMaxPopularityFilter(0.8),
		NewScoreThresholdFilter(0.1),
	}}
	items := []*core.Item{
		item("keep", 0.5, 0.2),
		item("ceiling", 0.5, 0.8), // 等于上限保留
		item("too_popular", 0.9, 0.81),
		item("at_threshold", 0.1, 0.2), // 等于阈值过滤
		item("below", 0.05, 0.2),
		nil,
	}

	out, err := node.Process(context.Background(), nil, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "ceiling"}, ids(out))
}

func TestFilterNode_LogsDropCounts(t *testing.T) {
	var buf bytes.Buffer
	node := &FilterNode{
		Filters: []Filter{NewMaxPopularityFilter(0.8), NewScoreThresholdFilter(0.1)},
		Logger:  zerolog.New(&buf).Level(zerolog.DebugLevel),
	}
	_, err := node.Process(context.Background(), nil, []*core.Item{
		item("keep", 0.5, 0.2),
		item("too_popular", 0.05, 0.9), // 两个过滤器都命中，只计入第一个
		item("below", 0.05, 0.2),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"in":3`)
	assert.Contains(t, out, `"out":1`)
	assert.Contains(t, out, `"dropped":{"filter.max_popularity":1,"filter.score_threshold":1}`)
}

func TestFilterNode_ZeroLoggerIsSilent(t *testing.T) {
	node := &FilterNode{Filters: []Filter{NewScoreThresholdFilter(0.1)}}
	out, err := node.Process(context.Background(), nil, []*core.Item{item("a", 0.5, 0)})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestFilterNode_NoFilters(t *testing.T) {
	items := []*core.Item{item("a", 0, 1)}
	out, err := (&FilterNode{}).Process(context.Background(), nil, items)
	require.NoError(t, err)
	assert.Equal(t, items, out)
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`item.popularity < 0.5`)
	require.NoError(t, err)
	assert.Equal(t, `item.popularity < 0.5`, f.Expr())

	node := &FilterNode{Filters: []Filter{f}}
	out, err := node.Process(context.Background(), nil, []*core.Item{
		item("indie", 0.3, 0.1),
		item("mainstream", 0.3, 0.7),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"indie"}, ids(out))
}

func TestExprFilter_InvalidExpression(t *testing.T) {
	_, err := NewExprFilter(`item.popularity <`)
	require.Error(t, err)
}

func TestExprFilter_EvalErrorAbortsNode(t *testing.T) {
	f, err := NewExprFilter(`item.score`)
	require.NoError(t, err)

	_, err = (&FilterNode{Filters: []Filter{f}}).Process(context.Background(), nil, []*core.Item{item("a", 1, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.expr")
}
