package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/muserec/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链，按顺序同步执行。
type Pipeline struct {
	Name  string
	Nodes []Node
}

// Run 依次执行每个 Node，上一个的输出作为下一个的输入。
// 任一 Node 出错即中止，错误带上 Node 名称。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if node == nil {
			continue
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Append 在链尾追加 Node，返回自身便于链式构建。
func (p *Pipeline) Append(nodes ...Node) *Pipeline {
	p.Nodes = append(p.Nodes, nodes...)
	return p
}
