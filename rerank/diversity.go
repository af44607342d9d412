package rerank

import (
	"context"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

// DefaultDiversityKey 是 Diversity 未指定 LabelKey 时的分组键。
const DefaultDiversityKey = "genre"

// Diversity 限制同一类别的结果条数，按输入顺序保留前 MaxPerCategory 个（输入需已排序）。
//
// 类别取自 label[LabelKey]，没有再取 meta[LabelKey]（字符串）；取不到类别的结果不受限。
// 艺人召回写入 genre 标签，歌曲召回写入 artist_id 元数据：
// LabelKey=genre 得到“每个流派至多 K 个艺人”，LabelKey=artist_id 得到“每个艺人至多 K 首歌”。
type Diversity struct {
	LabelKey       string
	MaxPerCategory int // <= 0 按 1 处理
}

func (n *Diversity) Name() string { return "rerank.diversity" }

func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	key := n.LabelKey
	if key == "" {
		key = DefaultDiversityKey
	}
	limit := max(n.MaxPerCategory, 1)

	counts := make(map[string]int)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if c := categoryOf(it, key); c != "" {
			if counts[c] >= limit {
				continue
			}
			counts[c]++
		}
		out = append(out, it)
	}
	return out, nil
}

func categoryOf(it *core.Item, key string) string {
	if lbl, ok := it.Labels[key]; ok && lbl.Value != "" {
		return lbl.Value
	}
	s, _ := it.Meta[key].(string)
	return s
}
