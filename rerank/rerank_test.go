package rerank

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/cluster"
	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pkg/utils"
)

func items(n int) []*core.Item {
	out := make([]*core.Item, n)
	for i := range out {
		out[i] = core.NewItem(string(rune('a'+i)), core.KindArtist)
	}
	return out
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name string
		n    int
		in   int
		want int
	}{
		{name: "truncate", n: 3, in: 5, want: 3},
		{name: "fewer than n", n: 10, in: 4, want: 4},
		{name: "exact", n: 4, in: 4, want: 4},
		{name: "zero means no truncation", n: 0, in: 4, want: 4},
		{name: "empty", n: 3, in: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), nil, items(tt.in))
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestTopNNode_AppendDoesNotClobberTail(t *testing.T) {
	in := items(5)
	got, err := (&TopNNode{N: 2}).Process(context.Background(), nil, in)
	require.NoError(t, err)

	_ = append(got, core.NewItem("z", core.KindArtist))
	assert.Equal(t, "c", in[2].ID)
}

func TestDiversity_ByGenreLabel(t *testing.T) {
	in := items(4)
	genres := []string{"rock", "rock", "jazz", ""}
	for i, g := range genres {
		if g != "" {
			in[i].PutLabel("genre", utils.Label{Value: g, Source: utils.SourceRecall})
		}
	}

	got, err := (&Diversity{}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "d", got[2].ID, "items without a category are kept")
}

func TestDiversity_ByMeta(t *testing.T) {
	in := items(3)
	in[0].Meta["artist_id"] = "x"
	in[1].Meta["artist_id"] = "x"
	in[2].Meta["artist_id"] = "y"

	got, err := (&Diversity{LabelKey: "artist_id"}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestDiversity_MaxPerCategory(t *testing.T) {
	in := items(5)
	for i, g := range []string{"rock", "rock", "rock", "jazz", "jazz"} {
		in[i].PutLabel("genre", utils.Label{Value: g, Source: utils.SourceRecall})
	}

	got, err := (&Diversity{MaxPerCategory: 2}).Process(context.Background(), nil, in)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"a", "b", "d", "e"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
}

func TestClusterNode(t *testing.T) {
	catalog := core.ArtistCatalog{
		"a1": {ID: "a1", Name: "Alpha", Genre: "rock", Popularity: 0.2},
		"a2": {ID: "a2", Name: "Beta", Genre: "rock", Popularity: 0.3},
	}
	query := catalog["a1"]

	newItem := func() *core.Item {
		it := core.NewItem("a2", core.KindArtist)
		it.ArtistName = "Beta"
		it.Score = 0.5
		return it
	}

	enh := cluster.NewEnhancer(1, cluster.WithRand(rand.New(rand.NewPCG(1, 1))))
	node := NewClusterNode(enh)
	rctx := &core.RecommendContext{Kind: core.KindArtist, QueryArtist: &query, Artists: catalog}

	got, err := node.Process(context.Background(), rctx, []*core.Item{newItem()})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[0].Score, 1e-12, "untrained model passes through")

	enh.TrainArtists(catalog.Artists())
	got, err = node.Process(context.Background(), rctx, []*core.Item{newItem()})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got[0].Score, 1e-12)

	got, err = node.Process(context.Background(), &core.RecommendContext{Kind: core.KindSong}, []*core.Item{newItem()})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got[0].Score, 1e-12, "no query song")
}
