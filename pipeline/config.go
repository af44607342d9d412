package pipeline

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config 描述一条可由文件构建的推荐链路（YAML 或 JSON）。
//
//	pipeline:
//	  name: artists
//	  nodes:
//	    - type: recall.artist_similarity
//	    - type: rank.popularity
//	    - type: filter
//	      config:
//	        filters:
//	          - {type: max_popularity, max: 0.8}
//	          - {type: score_threshold, threshold: 0.1}
//	    - type: rank.sort
//	    - type: rerank.topn
//	      config: {n: 10}
type Config struct {
	Pipeline struct {
		Name  string       `yaml:"name" json:"name"`
		Nodes []NodeConfig `yaml:"nodes" json:"nodes"`
	} `yaml:"pipeline" json:"pipeline"`
}

// NodeConfig 是单个 Node 的配置。
type NodeConfig struct {
	Type   string                 `yaml:"type" json:"type"`
	Config map[string]interface{} `yaml:"config" json:"config"`
}

// NodeBuilder 根据 config 构建 Node。
type NodeBuilder func(map[string]interface{}) (Node, error)

// Load 按扩展名（.yaml / .yml / .json）读取链路配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported pipeline config extension %q", ext)
	}
}

// LoadFromYAML 从 YAML 文件加载，不看扩展名。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseYAML(data)
}

func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &cfg, nil
}

// Validate 检查链路非空，且每个节点都声明了 factory 中已注册的类型。
func (c *Config) Validate(factory *NodeFactory) error {
	if len(c.Pipeline.Nodes) == 0 {
		return fmt.Errorf("pipeline %q has no nodes", c.Pipeline.Name)
	}
	for i, nc := range c.Pipeline.Nodes {
		if nc.Type == "" {
			return fmt.Errorf("node %d: missing type", i)
		}
		if !factory.Has(nc.Type) {
			return fmt.Errorf("node %d: unsupported type %q (supported: %v)", i, nc.Type, factory.Types())
		}
	}
	return nil
}

// BuildPipeline 依次构建每个节点。所有节点的构建错误会一并返回，而不是遇到第一个就停。
func (c *Config) BuildPipeline(factory *NodeFactory) (*Pipeline, error) {
	p := &Pipeline{Name: c.Pipeline.Name, Nodes: make([]Node, 0, len(c.Pipeline.Nodes))}

	var errs []error
	for i, nc := range c.Pipeline.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			errs = append(errs, fmt.Errorf("node %d (%s): %w", i, nc.Type, err))
			continue
		}
		p.Nodes = append(p.Nodes, node)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return p, nil
}

// NodeFactory 按类型名构建 Node，可并发注册与读取。
type NodeFactory struct {
	mu       sync.RWMutex
	builders map[string]NodeBuilder
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{builders: make(map[string]NodeBuilder)}
}

// Register 注册 Node 构建器，同名覆盖。空类型名或 nil builder 被忽略。
func (f *NodeFactory) Register(nodeType string, builder NodeBuilder) {
	if nodeType == "" || builder == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[nodeType] = builder
}

func (f *NodeFactory) Has(nodeType string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.builders[nodeType]
	return ok
}

// Types 返回已注册的类型（已排序）。
func (f *NodeFactory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.builders))
}

// Clone 返回当前注册表的快照，之后对任一方的注册互不影响。
func (f *NodeFactory) Clone() *NodeFactory {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &NodeFactory{builders: maps.Clone(f.builders)}
}

// Build 根据类型和配置构建 Node。
func (f *NodeFactory) Build(nodeType string, config map[string]interface{}) (Node, error) {
	f.mu.RLock()
	builder, ok := f.builders[nodeType]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}
	return builder(config)
}
