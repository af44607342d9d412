package filter

import (
	"context"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式做保留判断：表达式为 true 的候选保留，false 的过滤。
//
// 示例：
//
//	f, err := filter.NewExprFilter(`item.popularity < 0.5 && label.genre != "pop"`)
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式；表达式非法时返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// Expr 返回原始表达式。
func (f *ExprFilter) Expr() string {
	return f.program.String()
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	keep, err := f.program.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
