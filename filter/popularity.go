package filter

import (
	"context"

	"github.com/rushteam/muserec/core"
)

// MaxPopularityFilter 过滤掉流行度高于上限的候选（等于上限保留）。
// 比较的是实体原始流行度，而不是调整后的分数。
type MaxPopularityFilter struct {
	Max float64
}

func NewMaxPopularityFilter(max float64) *MaxPopularityFilter {
	return &MaxPopularityFilter{Max: max}
}

func (f *MaxPopularityFilter) Name() string {
	return "filter.max_popularity"
}

func (f *MaxPopularityFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return item.Popularity > f.Max, nil
}

// ScoreThresholdFilter 过滤掉 Score 不超过阈值的候选（严格大于才保留）。
type ScoreThresholdFilter struct {
	Threshold float64
}

func NewScoreThresholdFilter(threshold float64) *ScoreThresholdFilter {
	return &ScoreThresholdFilter{Threshold: threshold}
}

func (f *ScoreThresholdFilter) Name() string {
	return "filter.score_threshold"
}

func (f *ScoreThresholdFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return !(item.Score > f.Threshold), nil
}
