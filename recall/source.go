package recall

import (
	"context"

	"github.com/rushteam/muserec/core"
)

// Source 表示一个召回源：根据查询上下文生成带原始分数的候选集。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
