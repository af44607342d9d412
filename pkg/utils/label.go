package utils

import "strings"

// Label 是推荐结果上的可解释标记：记录由哪个阶段、因为什么写入。
// Reason 面向用户展示；Label 面向排查与表达式过滤（filter.ExprFilter 中以 label.<key> 访问）。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rank / filter / rerank
}

// 常用 Label 来源。
const (
	SourceRecall = "recall"
	SourceRank   = "rank"
	SourceFilter = "filter"
	SourceRerank = "rerank"
)

// MergeLabel 合并同名 Label，保留历史：Value 以 '|' 累积，Source 以 ',' 累积（相同来源不重复）。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "" || hasSource(existing.Source, incoming.Source):
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

func hasSource(sources, s string) bool {
	for _, part := range strings.Split(sources, ",") {
		if part == s {
			return true
		}
	}
	return false
}
