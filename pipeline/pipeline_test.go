package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
)

type appendNode struct {
	name string
	err  error
}

func (n *appendNode) Name() string { return n.name }
func (n *appendNode) Kind() Kind   { return KindRank }

func (n *appendNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	return append(items, core.NewItem(n.name, core.KindArtist)), nil
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestPipeline_RunInOrder(t *testing.T) {
	p := (&Pipeline{}).Append(&appendNode{name: "a"}, nil, &appendNode{name: "b"})

	out, err := p.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(out))
}

func TestPipeline_RunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&appendNode{name: "a"},
		&appendNode{name: "broken", err: boom},
		&appendNode{name: "never"},
	}}

	out, err := p.Run(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func testFactory() *NodeFactory {
	f := NewNodeFactory()
	f.Register("test.append", func(cfg map[string]interface{}) (Node, error) {
		name, _ := cfg["name"].(string)
		if name == "" {
			return nil, errors.New("name required")
		}
		return &appendNode{name: name}, nil
	})
	return f
}

func TestNodeFactory(t *testing.T) {
	f := testFactory()
	f.Register("", nil)
	f.Register("test.nil", nil)

	assert.Equal(t, []string{"test.append"}, f.Types())
	assert.True(t, f.Has("test.append"))

	_, err := f.Build("test.missing", nil)
	assert.Error(t, err)

	clone := f.Clone()
	clone.Register("test.extra", func(map[string]interface{}) (Node, error) { return nil, nil })
	assert.False(t, f.Has("test.extra"))
	assert.True(t, clone.Has("test.extra"))
}

const yamlConfig = `
pipeline:
  name: demo
  nodes:
    - type: test.append
      config: {name: x}
    - type: test.append
      config: {name: y}
`

func TestConfig_BuildPipeline(t *testing.T) {
	cfg, err := ParseYAML([]byte(yamlConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate(testFactory()))

	p, err := cfg.BuildPipeline(testFactory())
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name)

	out, err := p.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ids(out))
}

func TestConfig_BuildPipelineJoinsErrors(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{
		{Type: "test.append"},
		{Type: "test.append", Config: map[string]interface{}{"name": "ok"}},
		{Type: "test.missing"},
	}

	_, err := cfg.BuildPipeline(testFactory())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 0 (test.append)")
	assert.Contains(t, err.Error(), "node 2 (test.missing)")
	assert.NotContains(t, err.Error(), "node 1")
}

func TestConfig_Validate(t *testing.T) {
	f := testFactory()

	empty := &Config{}
	assert.Error(t, empty.Validate(f))

	missing := &Config{}
	missing.Pipeline.Nodes = []NodeConfig{{}}
	assert.ErrorContains(t, missing.Validate(f), "missing type")

	unknown := &Config{}
	unknown.Pipeline.Nodes = []NodeConfig{{Type: "test.unknown"}}
	assert.ErrorContains(t, unknown.Validate(f), "test.append")
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "p.yml")
	jsn := filepath.Join(dir, "p.json")
	txt := filepath.Join(dir, "p.txt")
	require.NoError(t, os.WriteFile(yml, []byte(yamlConfig), 0o600))
	require.NoError(t, os.WriteFile(jsn, []byte(`{"pipeline":{"name":"j","nodes":[{"type":"test.append","config":{"name":"z"}}]}}`), 0o600))
	require.NoError(t, os.WriteFile(txt, []byte(yamlConfig), 0o600))

	cfg, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Pipeline.Name)
	assert.Len(t, cfg.Pipeline.Nodes, 2)

	cfg, err = Load(jsn)
	require.NoError(t, err)
	assert.Equal(t, "j", cfg.Pipeline.Name)
	assert.Equal(t, "z", cfg.Pipeline.Nodes[0].Config["name"])

	_, err = Load(txt)
	assert.Error(t, err)

	cfg, err = LoadFromYAML(txt)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Pipeline.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
