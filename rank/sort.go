package rank

import (
	"context"
	"sort"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

// SortNode 按 Score 降序做稳定排序，nil 排在末尾。
type SortNode struct{}

func (n *SortNode) Name() string        { return "rank.sort" }
func (n *SortNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	SortByScore(items)
	return items, nil
}

// SortByScore 原地按 Score 降序稳定排序。
func SortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
}
