package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/pipeline"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	assert.Equal(t, 0.1, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, 0.8, cfg.Engine.MaxPopularity)
	assert.True(t, cfg.Engine.MLEnabled)
	assert.Equal(t, 10, cfg.Engine.Recommendations)
	assert.Equal(t, 8, cfg.Cluster.NumClusters)
	assert.Equal(t, 100, cfg.Cluster.MaxIterations)
	assert.Equal(t, 1.2, cfg.Cluster.Boost)
	assert.Equal(t, 0.3, cfg.Popularity.UndergroundThreshold)
	assert.Equal(t, 1.5, cfg.Popularity.BoostFactor)
	assert.NoError(t, cfg.Validate())
}

func TestParseEngineConfig_PartialOverride(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(`
engine:
  max_popularity: 0.5
  ml_enabled: false
cluster:
  num_clusters: 3
  seed: 42
filter:
  expr: 'item.popularity > 0.05'
`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Engine.MaxPopularity)
	assert.Equal(t, 0.1, cfg.Engine.SimilarityThreshold, "missing keys keep defaults")
	assert.False(t, cfg.Engine.MLEnabled)
	assert.Equal(t, 3, cfg.Cluster.NumClusters)
	assert.Equal(t, uint64(42), cfg.Cluster.Seed)
	assert.Equal(t, 100, cfg.Cluster.MaxIterations)
	assert.Equal(t, "item.popularity > 0.05", cfg.Filter.Expr)
}

func TestParseEngineConfig_Invalid(t *testing.T) {
	_, err := ParseEngineConfig([]byte(`
cluster:
  num_clusters: 0
  max_iterations: -1
`))
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "num_clusters")
	assert.Contains(t, err.Error(), "max_iterations")

	_, err = ParseEngineConfig([]byte("engine: [1, 2"))
	assert.Error(t, err)
}

func TestLoadEngineConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  similarity_threshold: 0.2\n"), 0o644))

	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Engine.SimilarityThreshold)

	_, err = LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidatePipelineConfig(t *testing.T) {
	Register("test.noop", func(map[string]interface{}) (pipeline.Node, error) { return nil, nil })
	assert.Contains(t, SupportedTypes(), "test.noop")

	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: t
  nodes:
    - type: test.noop
`))
	require.NoError(t, err)
	assert.NoError(t, ValidatePipelineConfig(cfg))

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "test.unknown"})
	err = ValidatePipelineConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.unknown")

	cfg.Pipeline.Nodes = nil
	assert.Error(t, ValidatePipelineConfig(cfg))
	assert.NoError(t, ValidatePipelineConfig(nil))
}

func TestLoadEngineConfig_Example(t *testing.T) {
	cfg, err := LoadEngineConfig("../examples/config/engine.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cluster.NumClusters)
	assert.Equal(t, uint64(42), cfg.Cluster.Seed)
	assert.Equal(t, "console", cfg.Log.Format)
}
