package config

import (
	"github.com/rushteam/muserec/pipeline"
)

// 配置驱动时需要 import _ "github.com/rushteam/muserec/config/builders"，
// 由其 init 注册内置节点（recall.artist_similarity、rank.popularity、rerank.topn 等）。

// NodeBuilder 与 pipeline.NodeBuilder 一致。
type NodeBuilder = pipeline.NodeBuilder

var registry = pipeline.NewNodeFactory()

// Register 向全局注册表登记一种 Node 的构建逻辑，通常在 init 中调用。
func Register(typeName string, builder NodeBuilder) {
	registry.Register(typeName, builder)
}

// SupportedTypes 返回已注册的 Node 类型（已排序）。
func SupportedTypes() []string {
	return registry.Types()
}

// DefaultFactory 返回全局注册表的快照。
func DefaultFactory() *pipeline.NodeFactory {
	return registry.Clone()
}

// ValidatePipelineConfig 用全局注册表校验配置；cfg 为 nil 时视为无需校验。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	return cfg.Validate(registry)
}
