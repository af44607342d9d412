// Package muserec 是一个音乐相似推荐工具包：给定一个艺人或一首歌，推荐特征相近、且更偏小众的艺人或歌曲。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Rank → Filter → ReRank），见 engine.Engine.Pipeline
// - Labels-first: 每个阶段写入 labels，支持 explain 与表达式过滤
// - 实例级配置: 阈值、加权系数都挂在 Engine 实例上，多个不同配置的 Engine 可并存
// - 可复现: 目录按 id 顺序遍历，k-means 的随机源可注入
package muserec

import (
	"github.com/rushteam/muserec/config"
	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/engine"
	"github.com/rushteam/muserec/pipeline"
)

// 轻量 facade：便于用户直接 import "muserec" 使用核心抽象。
type (
	Pipeline      = pipeline.Pipeline
	Node          = pipeline.Node
	Kind          = pipeline.Kind
	Engine        = engine.Engine
	Item          = core.Item
	Artist        = core.Artist
	Song          = core.Song
	ArtistCatalog = core.ArtistCatalog
	SongCatalog   = core.SongCatalog
)

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)

// NewEngine 使用默认配置创建 Engine。
func NewEngine(opts ...engine.Option) (*Engine, error) {
	return engine.New(config.DefaultEngineConfig(), opts...)
}
