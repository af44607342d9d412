package rank

import (
	"context"
	"fmt"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
	"github.com/rushteam/muserec/pkg/utils"
)

// PopularityNode 用 PopularityAdjuster 把 RawScore 调整为 Score。
// - 写入 labels：popularity_penalty
// - 不排序，排序交给 SortNode
type PopularityNode struct {
	Adjuster *PopularityAdjuster
}

func (n *PopularityNode) Name() string        { return "rank.popularity" }
func (n *PopularityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PopularityNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	adj := n.Adjuster
	if adj == nil {
		adj = NewPopularityAdjuster()
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = adj.AdjustForPopularity(it.RawScore, it.Popularity)
		it.PutLabel("popularity_penalty", utils.Label{
			Value:  fmt.Sprintf("%.4f", adj.PopularityPenalty(it.Popularity)),
			Source: utils.SourceRank,
		})
	}
	return items, nil
}

// UndergroundBoostNode 对小众实体的 Score 加权。默认引擎链路不启用，可通过配置挂载。
type UndergroundBoostNode struct {
	Adjuster *PopularityAdjuster
}

func (n *UndergroundBoostNode) Name() string        { return "rank.underground_boost" }
func (n *UndergroundBoostNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *UndergroundBoostNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	adj := n.Adjuster
	if adj == nil {
		adj = NewPopularityAdjuster()
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		boosted := adj.BoostUnderground(it.Score, it.Popularity)
		if boosted != it.Score {
			it.Score = boosted
			it.AppendReason(" (Underground)")
			it.PutLabel("underground_boost", utils.Label{Value: "true", Source: utils.SourceRank})
		}
	}
	return items, nil
}

var (
	_ pipeline.Node = (*PopularityNode)(nil)
	_ pipeline.Node = (*UndergroundBoostNode)(nil)
)
