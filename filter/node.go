package filter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

// FilterNode 按顺序组合多个过滤器：任一过滤器命中即移除该候选，后续过滤器不再执行。
// 过滤器出错时中止整条链路。
type FilterNode struct {
	Filters []Filter

	// Logger 为零值时不输出；非零时以 debug 级别记录各过滤器的移除数量。
	Logger zerolog.Logger
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	dropped := make([]int, len(n.Filters))
	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		hit, err := n.match(ctx, rctx, item)
		if err != nil {
			return nil, err
		}
		if hit < 0 {
			out = append(out, item)
			continue
		}
		dropped[hit]++
	}

	if e := n.Logger.Debug(); e.Enabled() {
		d := zerolog.Dict()
		for i, f := range n.Filters {
			d.Int(f.Name(), dropped[i])
		}
		e.Int("in", len(items)).Int("out", len(out)).Dict("dropped", d).Msg("filter applied")
	}
	return out, nil
}

// match 返回第一个命中的过滤器下标，未命中返回 -1。
func (n *FilterNode) match(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (int, error) {
	for i, f := range n.Filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			return -1, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

var _ pipeline.Node = (*FilterNode)(nil)
