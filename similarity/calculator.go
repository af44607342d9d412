// Package similarity 计算向量之间、实体之间的相似度与距离。
package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/feature"
)

// Cosine 计算余弦相似度，取值 [-1, 1]；特征分量非负时实际落在 [0, 1]。
//
// 任一向量模长为 0 时返回 0，不会除零。长度不一致视为退化输入，同样返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// Euclidean 计算欧氏距离。长度不一致返回 core.ErrDimensionMismatch。
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return math.Inf(1), core.ErrDimensionMismatch
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2), nil
}

// DistanceToSimilarity 把非负距离映射到 (0, 1]：1/(1+d)。
func DistanceToSimilarity(d float64) float64 {
	return 1.0 / (1.0 + d)
}

// Calculator 是实体级相似度的入口。
//
// 注意两条路径并不对称：
//   - 艺人：经 Extractor 重新抽取并归一化后再算余弦
//   - 歌曲：直接对库里存的原始 Features 算余弦（不含流行度分量）
//
// 下游排序结果依赖这一数值行为，修改前需确认影响。
type Calculator struct {
	Extractor *feature.Extractor
}

// NewCalculator 创建使用默认抽取器的 Calculator。
func NewCalculator() *Calculator {
	return &Calculator{Extractor: feature.NewExtractor()}
}

// ArtistSimilarity 计算两个艺人的相似度。
func (c *Calculator) ArtistSimilarity(a, b core.Artist) float64 {
	ext := c.extractor()
	return Cosine(ext.ArtistFeatures(a), ext.ArtistFeatures(b))
}

// SongSimilarity 计算两首歌曲的相似度。
func (c *Calculator) SongSimilarity(a, b core.Song) float64 {
	return Cosine(a.Features, b.Features)
}

func (c *Calculator) extractor() *feature.Extractor {
	if c.Extractor == nil {
		c.Extractor = feature.NewExtractor()
	}
	return c.Extractor
}
