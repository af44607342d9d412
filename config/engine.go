package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pkg/logging"
)

// EngineConfig 是推荐引擎的完整配置，对应 YAML：
//
//	engine:
//	  similarity_threshold: 0.1
//	  max_popularity: 0.8
//	  ml_enabled: true
//	  recommendations: 10
//	popularity:
//	  underground_threshold: 0.3
//	  boost_factor: 1.5
//	cluster:
//	  num_clusters: 8
//	  max_iterations: 100
//	  boost: 1.2
//	  seed: 0          # 0 表示随机种子
//	filter:
//	  expr: 'item.popularity > 0.05'
//	log:
//	  level: info
//	  format: console
type EngineConfig struct {
	Engine     EngineSection     `yaml:"engine"`
	Popularity PopularitySection `yaml:"popularity"`
	Cluster    ClusterSection    `yaml:"cluster"`
	Filter     FilterSection     `yaml:"filter"`
	Log        logging.Config    `yaml:"log"`
}

type EngineSection struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxPopularity       float64 `yaml:"max_popularity"`
	MLEnabled           bool    `yaml:"ml_enabled"`
	Recommendations     int     `yaml:"recommendations"`
}

type PopularitySection struct {
	UndergroundThreshold float64 `yaml:"underground_threshold"`
	BoostFactor          float64 `yaml:"boost_factor"`
}

type ClusterSection struct {
	NumClusters   int     `yaml:"num_clusters"`
	MaxIterations int     `yaml:"max_iterations"`
	Boost         float64 `yaml:"boost"`
	Seed          uint64  `yaml:"seed"`
}

// FilterSection 在阈值过滤之后追加一条 CEL 表达式过滤，表达式为 true 的结果保留。
type FilterSection struct {
	Expr string `yaml:"expr"`
}

// DefaultEngineConfig 返回默认配置。
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Engine: EngineSection{
			SimilarityThreshold: core.DefaultSimilarityThreshold,
			MaxPopularity:       core.DefaultMaxPopularity,
			MLEnabled:           true,
			Recommendations:     core.DefaultRecommendations,
		},
		Popularity: PopularitySection{
			UndergroundThreshold: core.DefaultUndergroundThreshold,
			BoostFactor:          core.DefaultBoostFactor,
		},
		Cluster: ClusterSection{
			NumClusters:   core.DefaultNumClusters,
			MaxIterations: core.DefaultMaxIterations,
			Boost:         core.DefaultClusterBoost,
		},
		Log: logging.Config{Level: "info", Format: "console"},
	}
}

// LoadEngineConfig 从 YAML 文件加载配置；文件中未出现的字段保留默认值。
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read file: %w", err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig 解析 YAML 配置并校验。
func ParseEngineConfig(data []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Validate 校验配置，所有问题一并返回。
// 阈值与流行度上限不做区间限制（超出 [0,1] 的值只会让过滤变得全通过或全拒绝）。
func (c EngineConfig) Validate() error {
	var errs []error
	if c.Cluster.NumClusters <= 0 {
		errs = append(errs, fmt.Errorf("cluster.num_clusters must be positive, got %d", c.Cluster.NumClusters))
	}
	if c.Cluster.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("cluster.max_iterations must be positive, got %d", c.Cluster.MaxIterations))
	}
	if c.Engine.Recommendations < 0 {
		errs = append(errs, fmt.Errorf("engine.recommendations must not be negative, got %d", c.Engine.Recommendations))
	}
	if len(errs) == 0 {
		return nil
	}
	return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "invalid engine config: "+errors.Join(errs...).Error())
}
