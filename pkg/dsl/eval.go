// Package dsl 提供基于 CEL (Common Expression Language) 的推荐结果过滤表达式。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/muserec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的表达式，可对多个 Item 重复求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.2 / item.popularity <= 0.5
//   - 字符串：item.name.startsWith("The") / item.kind == "song"
//   - Label：label.genre == "rock"（不存在的 key 需先用 "genre" in label 判断）
//   - 上下文：rctx.query_name != item.name
//
// 示例：
//   - `item.popularity < 0.5 && item.score > 0.3` → 小众且足够相似
//   - `!("genre" in label) || label.genre != "pop"` → 排除流行乐
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。空表达式返回 nil Program，求值恒为 true。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Evaluate 对单个 Item 求值，表达式必须返回布尔值。
func (p *Program) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p == nil {
		return true, nil
	}
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Eval 编译并立即求值，适合一次性判断；批量场景请使用 Compile。
func Eval(expr string, item *core.Item, rctx *core.RecommendContext) (bool, error) {
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Evaluate(item, rctx)
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	itemMap := map[string]interface{}{}
	labels := map[string]interface{}{}
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
		meta := map[string]interface{}{}
		for k, v := range item.Meta {
			meta[k] = v
		}
		itemMap = map[string]interface{}{
			"id":         item.ID,
			"kind":       string(item.Kind),
			"name":       item.SubjectName(),
			"raw_score":  item.RawScore,
			"score":      item.Score,
			"popularity": item.Popularity,
			"reason":     item.Reason,
			"meta":       meta,
		}
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		params := map[string]interface{}{}
		for k, v := range rctx.Params {
			params[k] = v
		}
		rctxMap = map[string]interface{}{
			"kind":       string(rctx.Kind),
			"query_id":   rctx.QueryID(),
			"query_name": rctx.QueryName(),
			"params":     params,
		}
	}

	return map[string]interface{}{
		"item":  itemMap,
		"label": labels,
		"rctx":  rctxMap,
	}
}
