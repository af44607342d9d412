package rerank

import (
	"context"

	"github.com/rushteam/muserec/cluster"
	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

// ClusterNode 把 cluster.Enhancer 接入 Pipeline：对与查询实体同簇的结果加权并重排。
// 对应 Kind 的模型未训练、或上下文缺少查询实体时原样透传。
//
// 它需要一个已训练的 Enhancer，因此不在全局注册表中；配置驱动时用
// builders.ClusterNodeBuilder 注册到自己的 NodeFactory。engine 直接构造它。
type ClusterNode struct {
	Enhancer *cluster.Enhancer
}

func NewClusterNode(e *cluster.Enhancer) *ClusterNode {
	return &ClusterNode{Enhancer: e}
}

func (n *ClusterNode) Name() string {
	return "rerank.cluster"
}

func (n *ClusterNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *ClusterNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Enhancer == nil || rctx == nil || len(items) == 0 {
		return items, nil
	}

	switch rctx.Kind {
	case core.KindArtist:
		if rctx.QueryArtist == nil {
			return items, nil
		}
		return n.Enhancer.EnhanceArtists(items, *rctx.QueryArtist, rctx.Artists), nil
	case core.KindSong:
		if rctx.QuerySong == nil {
			return items, nil
		}
		return n.Enhancer.EnhanceSongs(items, *rctx.QuerySong, rctx.Songs), nil
	}
	return items, nil
}

var (
	_ pipeline.Node = (*TopNNode)(nil)
	_ pipeline.Node = (*Diversity)(nil)
	_ pipeline.Node = (*ClusterNode)(nil)
)
