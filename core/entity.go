package core

import (
	"maps"
	"slices"
)

// Kind 标记推荐实体的类型，艺人与歌曲各自独立建模。
type Kind string

const (
	KindArtist Kind = "artist"
	KindSong   Kind = "song"
)

// Artist 是艺人实体。由加载层（loader）构建，进入推荐链路后视为只读。
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genre      string   `json:"genre"`
	Popularity float64  `json:"popularity"` // 0.0 - 1.0
	Tags       []string `json:"tags"`
}

// Song 是歌曲实体。
// Features 是预计算的音频特征（长度在同一批数据内固定）；ArtistID 仅作关联，不表示所有权。
type Song struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ArtistID   string    `json:"artist_id"`
	Popularity float64   `json:"popularity"` // 0.0 - 1.0
	Features   []float64 `json:"features"`
}

// ArtistCatalog 是 id -> Artist 的映射，key 唯一。
type ArtistCatalog map[string]Artist

// SongCatalog 是 id -> Song 的映射，key 唯一。
type SongCatalog map[string]Song

// IDs 按字典序返回所有 id。
// Go map 遍历无序，链路中凡是依赖顺序的地方（召回、按名查找、训练）都走这里，保证结果可复现。
func (c ArtistCatalog) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Artists 按 id 顺序返回全部艺人。
func (c ArtistCatalog) Artists() []Artist {
	out := make([]Artist, 0, len(c))
	for _, id := range c.IDs() {
		out = append(out, c[id])
	}
	return out
}

// FindByName 按展示名精确匹配（区分大小写），返回 id 顺序下的第一个。
// 重名时结果只是“尽力而为”，需要确定性的调用方应使用 id。
func (c ArtistCatalog) FindByName(name string) (Artist, bool) {
	for _, id := range c.IDs() {
		if a := c[id]; a.Name == name {
			return a, true
		}
	}
	return Artist{}, false
}

// IDs 按字典序返回所有 id。
func (c SongCatalog) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Songs 按 id 顺序返回全部歌曲。
func (c SongCatalog) Songs() []Song {
	out := make([]Song, 0, len(c))
	for _, id := range c.IDs() {
		out = append(out, c[id])
	}
	return out
}

// FindByName 按歌名精确匹配，返回 id 顺序下的第一个。
func (c SongCatalog) FindByName(name string) (Song, bool) {
	for _, id := range c.IDs() {
		if s := c[id]; s.Name == name {
			return s, true
		}
	}
	return Song{}, false
}
