package recall

import (
	"context"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
	"github.com/rushteam/muserec/pkg/utils"
	"github.com/rushteam/muserec/similarity"
)

// ArtistSimilarity 是基于内容的艺人召回：对目录中每个其他艺人计算与查询艺人的相似度。
//
// 核心思想："喜欢这个艺人的用户，也会喜欢特征相近的其他艺人"
//
// 与查询艺人同名的条目一并跳过；候选按 id 顺序产出，Score 初始等于 RawScore。
// 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type ArtistSimilarity struct {
	Calculator *similarity.Calculator
}

func (r *ArtistSimilarity) Name() string        { return "recall.artist_similarity" }
func (r *ArtistSimilarity) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ArtistSimilarity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *ArtistSimilarity) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.QueryArtist == nil || len(rctx.Artists) == 0 {
		return nil, nil
	}
	calc := r.Calculator
	if calc == nil {
		calc = similarity.NewCalculator()
	}
	query := *rctx.QueryArtist

	out := make([]*core.Item, 0, len(rctx.Artists))
	for _, id := range rctx.Artists.IDs() {
		artist := rctx.Artists[id]
		if artist.Name == query.Name {
			continue
		}
		sim := calc.ArtistSimilarity(query, artist)

		it := core.NewItem(artist.ID, core.KindArtist)
		it.ArtistName = artist.Name
		it.RawScore = sim
		it.Score = sim
		it.Popularity = artist.Popularity
		it.Reason = "Similar artist"
		it.Meta["genre"] = artist.Genre
		it.PutLabel("recall_source", utils.Label{Value: "artist_similarity", Source: utils.SourceRecall})
		if artist.Genre != "" {
			it.PutLabel("genre", utils.Label{Value: artist.Genre, Source: utils.SourceRecall})
		}
		out = append(out, it)
	}
	return out, nil
}

// SongSimilarity 是基于音频特征的歌曲召回，结构与 ArtistSimilarity 一致。
// 相似度直接使用歌曲存储的原始特征（见 similarity.Calculator）。
type SongSimilarity struct {
	Calculator *similarity.Calculator
}

func (r *SongSimilarity) Name() string        { return "recall.song_similarity" }
func (r *SongSimilarity) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *SongSimilarity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *SongSimilarity) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.QuerySong == nil || len(rctx.Songs) == 0 {
		return nil, nil
	}
	calc := r.Calculator
	if calc == nil {
		calc = similarity.NewCalculator()
	}
	query := *rctx.QuerySong

	out := make([]*core.Item, 0, len(rctx.Songs))
	for _, id := range rctx.Songs.IDs() {
		song := rctx.Songs[id]
		if song.Name == query.Name {
			continue
		}
		sim := calc.SongSimilarity(query, song)

		it := core.NewItem(song.ID, core.KindSong)
		it.SongTitle = song.Name
		it.RawScore = sim
		it.Score = sim
		it.Popularity = song.Popularity
		it.Reason = "Similar song"
		it.Meta["artist_id"] = song.ArtistID
		if artist, ok := rctx.Artists[song.ArtistID]; ok {
			it.Meta["artist_name"] = artist.Name
			if artist.Genre != "" {
				it.PutLabel("genre", utils.Label{Value: artist.Genre, Source: utils.SourceRecall})
			}
		}
		it.PutLabel("recall_source", utils.Label{Value: "song_similarity", Source: utils.SourceRecall})
		out = append(out, it)
	}
	return out, nil
}

var (
	_ Source        = (*ArtistSimilarity)(nil)
	_ pipeline.Node = (*ArtistSimilarity)(nil)
	_ Source        = (*SongSimilarity)(nil)
	_ pipeline.Node = (*SongSimilarity)(nil)
)
