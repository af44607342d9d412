package core

import "github.com/rushteam/muserec/pkg/utils"

// Item 是推荐链路中的统一承载结构，同时也是最终的推荐结果。
//
//   - RawScore 是未调整的相似度（0-1）
//   - Score 是经过流行度调整、聚类加权后的分数，加权后可能 > 1
//   - Reason 只追加不覆盖，记录各阶段的推荐理由
//   - ArtistName / SongTitle 每次只会填充其中一个
type Item struct {
	ID         string
	Kind       Kind
	ArtistName string
	SongTitle  string
	RawScore   float64
	Score      float64
	Popularity float64
	Reason     string
	Meta       map[string]any
	Labels     map[string]utils.Label
}

func NewItem(id string, kind Kind) *Item {
	return &Item{
		ID:     id,
		Kind:   kind,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// SubjectName 返回被推荐对象的展示名。
func (it *Item) SubjectName() string {
	if it.Kind == KindSong {
		return it.SongTitle
	}
	return it.ArtistName
}

// AppendReason 追加推荐理由。
func (it *Item) AppendReason(s string) {
	it.Reason += s
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Clone 返回 Item 的浅拷贝（Meta / Labels 复制一层）。
func (it *Item) Clone() *Item {
	cp := *it
	cp.Meta = make(map[string]any, len(it.Meta))
	for k, v := range it.Meta {
		cp.Meta[k] = v
	}
	cp.Labels = make(map[string]utils.Label, len(it.Labels))
	for k, v := range it.Labels {
		cp.Labels[k] = v
	}
	return &cp
}
