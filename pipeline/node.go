package pipeline

import (
	"context"

	"github.com/rushteam/muserec/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打日志）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：为目录中每个候选打原始相似度
	KindFilter Kind = "filter" // 过滤阶段：剔除不满足流行度上限/分数阈值的候选
	KindRank   Kind = "rank"   // 排序阶段：流行度调整与排序
	KindReRank Kind = "rerank" // 重排阶段：截断、聚类加权、多样性
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
