package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/pkg/utils"
)

func TestArtistCatalog_Ordering(t *testing.T) {
	c := ArtistCatalog{
		"a3": {ID: "a3", Name: "Same"},
		"a1": {ID: "a1", Name: "Same"},
		"a2": {ID: "a2", Name: "Other"},
	}

	assert.Equal(t, []string{"a1", "a2", "a3"}, c.IDs())
	assert.Equal(t, "a1", c.Artists()[0].ID)

	got, ok := c.FindByName("Same")
	require.True(t, ok)
	assert.Equal(t, "a1", got.ID, "duplicate names resolve to the smallest id")

	_, ok = c.FindByName("same")
	assert.False(t, ok, "match is case-sensitive")
}

func TestSongCatalog_FindByName(t *testing.T) {
	c := SongCatalog{
		"s2": {ID: "s2", Name: "Intro"},
		"s1": {ID: "s1", Name: "Intro"},
	}
	got, ok := c.FindByName("Intro")
	require.True(t, ok)
	assert.Equal(t, "s1", got.ID)
	assert.Len(t, c.Songs(), 2)

	_, ok = SongCatalog{}.FindByName("Intro")
	assert.False(t, ok)
}

func TestItem_SubjectName(t *testing.T) {
	a := NewItem("a1", KindArtist)
	a.ArtistName = "Artist"
	s := NewItem("s1", KindSong)
	s.SongTitle = "Song"

	assert.Equal(t, "Artist", a.SubjectName())
	assert.Equal(t, "Song", s.SubjectName())
}

func TestItem_PutLabelMerges(t *testing.T) {
	it := &Item{}
	it.PutLabel("genre", utils.Label{Value: "rock", Source: utils.SourceRecall})
	it.PutLabel("genre", utils.Label{Value: "indie", Source: utils.SourceRerank})
	it.PutLabel("genre", utils.Label{Value: "punk", Source: utils.SourceRecall})

	assert.Equal(t, utils.Label{Value: "rock|indie|punk", Source: "recall,rerank"}, it.Labels["genre"])
}

func TestItem_AppendReasonAndClone(t *testing.T) {
	it := NewItem("a1", KindArtist)
	it.AppendReason("Similar style")
	it.AppendReason(" (Same cluster)")
	it.Meta["genre"] = "rock"
	it.PutLabel("same_cluster", utils.Label{Value: "1", Source: utils.SourceRerank})

	cp := it.Clone()
	cp.Meta["genre"] = "jazz"
	cp.PutLabel("extra", utils.Label{Value: "x"})
	cp.Score = 2

	assert.Equal(t, "Similar style (Same cluster)", it.Reason)
	assert.Equal(t, "rock", it.Meta["genre"])
	assert.NotContains(t, it.Labels, "extra")
	assert.Zero(t, it.Score)
}

func TestRecommendContext_Query(t *testing.T) {
	rctx := &RecommendContext{Kind: KindArtist, QueryArtist: &Artist{ID: "a1", Name: "A"}}
	assert.Equal(t, "a1", rctx.QueryID())
	assert.Equal(t, "A", rctx.QueryName())

	rctx = &RecommendContext{Kind: KindSong, QuerySong: &Song{ID: "s1", Name: "S"}}
	assert.Equal(t, "s1", rctx.QueryID())
	assert.Equal(t, "S", rctx.QueryName())

	rctx = &RecommendContext{Kind: KindSong, QueryArtist: &Artist{ID: "a1"}}
	assert.Empty(t, rctx.QueryID(), "query must match kind")
	assert.Empty(t, rctx.QueryName())
}

func TestDomainError(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrStoreNotFound)

	assert.True(t, errors.Is(wrapped, ErrStoreNotFound))
	assert.True(t, IsStoreNotFound(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotSupported(wrapped))

	other := NewDomainError(ModuleLoader, ErrorCodeNotFound, "loader: missing")
	assert.False(t, errors.Is(other, ErrStoreNotFound), "same code, different module")
	assert.False(t, IsStoreNotFound(other))
	assert.True(t, IsNotFound(other))

	dim := fmt.Errorf("cosine: %w", ErrDimensionMismatch)
	assert.True(t, IsDimensionMismatch(dim))
	assert.Equal(t, ErrDimensionMismatch, GetDomainError(dim))

	assert.True(t, IsInvalidInput(NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "bad")))
	assert.Nil(t, GetDomainError(errors.New("plain")))
}
