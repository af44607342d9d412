package feature

import (
	"slices"

	"github.com/rushteam/muserec/core"
)

// 艺人特征向量的维度布局（顺序固定）。
const (
	ArtistGenre = iota
	ArtistPopularity
	ArtistTagCount
	ArtistGenreDiversity
	ArtistUnderground

	ArtistDims
)

var artistFeatureNames = [ArtistDims]string{
	"genre_encoding",
	"popularity_score",
	"tag_count",
	"genre_diversity",
	"underground_factor",
}

// Extractor 把目录实体映射为定长数值向量。
//
// 艺人向量：[流派编码, 流行度, 标签数/10, 去重标签数/5, 1-流行度]，计数类特征截断到 1.0。
// 歌曲向量：预计算特征 ++ [流行度, 1-流行度]。
// 两者最终都做 L2 归一化（见 Normalize）。向量每次按需计算，不缓存。
type Extractor struct {
	Genres *GenreEncoder
}

// NewExtractor 创建使用内置流派编码表的抽取器。
func NewExtractor() *Extractor {
	return &Extractor{Genres: NewGenreEncoder()}
}

func (e *Extractor) Name() string { return "feature.extractor" }

// ArtistFeatures 抽取艺人特征向量（已归一化）。
func (e *Extractor) ArtistFeatures(a core.Artist) []float64 {
	genres := e.Genres
	if genres == nil {
		genres = NewGenreEncoder()
	}

	v := make([]float64, ArtistDims)
	v[ArtistGenre] = genres.Encode(a.Genre)
	v[ArtistPopularity] = a.Popularity
	v[ArtistTagCount] = Clamp01Ratio(len(a.Tags), 10)
	v[ArtistGenreDiversity] = Clamp01Ratio(distinct(a.Tags), 5)
	v[ArtistUnderground] = UndergroundFactor(a.Popularity)
	return Normalize(v)
}

// SongFeatures 抽取歌曲特征向量（已归一化）。
func (e *Extractor) SongFeatures(s core.Song) []float64 {
	v := make([]float64, 0, len(s.Features)+2)
	v = append(v, s.Features...)
	v = append(v, s.Popularity, UndergroundFactor(s.Popularity))
	return Normalize(v)
}

// FeatureNames 返回艺人特征的可读名称，仅用于调试输出，不参与打分。
func (e *Extractor) FeatureNames() []string {
	return slices.Clone(artistFeatureNames[:])
}

// UndergroundFactor 是流行度的反向指标，越小众越高。
func UndergroundFactor(popularity float64) float64 {
	return 1.0 - popularity
}

func distinct(tags []string) int {
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	return len(seen)
}
