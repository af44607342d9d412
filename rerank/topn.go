package rerank

import (
	"context"
	"slices"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

// TopNNode 保留排序后的前 N 个候选，即请求的推荐条数。
// 必须放在 rank.sort 之后；同簇加权放在它之后，只重排已入选的结果。
type TopNNode struct {
	// N <= 0 不截断
	N int
}

func (n *TopNNode) Name() string { return "rerank.topn" }

func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	// 截断结果不与被丢弃的尾部共享容量，后续节点 append 不会覆盖原切片
	return slices.Clip(items[:n.N]), nil
}
