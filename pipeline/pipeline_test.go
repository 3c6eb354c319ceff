package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
)

type funcNode struct {
	name  string
	calls *int
	fn    func([]*core.Item) ([]*core.Item, error)
}

func (n *funcNode) Name() string { return n.name }
func (n *funcNode) Kind() Kind   { return KindRank }
func (n *funcNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	*n.calls++
	return n.fn(items)
}

func TestPipeline_Run(t *testing.T) {
	var calls int
	drop := &funcNode{name: "drop", calls: &calls, fn: func([]*core.Item) ([]*core.Item, error) { return nil, nil }}
	never := &funcNode{name: "never", calls: &calls, fn: func(items []*core.Item) ([]*core.Item, error) { return items, nil }}

	p := &Pipeline{Nodes: []Node{drop, never}}
	out, err := p.Run(context.Background(), nil, []*core.Item{{Index: 0}})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 1, calls, "pipeline stops after an empty stage")
}

func TestPipeline_RunError(t *testing.T) {
	var calls int
	boom := &funcNode{name: "boom", calls: &calls, fn: func([]*core.Item) ([]*core.Item, error) { return nil, errors.New("x") }}
	_, err := (&Pipeline{Nodes: []Node{boom}}).Run(context.Background(), nil, []*core.Item{{}})
	assert.EqualError(t, err, "boom: x")
}

func TestConfig_BuildPipeline(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
pipeline:
  name: default
  nodes:
    - type: noop
      config:
        n: 3
`))
	require.NoError(t, err)
	require.Len(t, cfg.Pipeline.Nodes, 1)

	var calls int
	f := NewNodeFactory()
	f.Register("noop", func(c map[string]any, deps Deps) (Node, error) {
		assert.Equal(t, 3, c["n"])
		assert.Equal(t, "v", deps["k"])
		return &funcNode{name: "noop", calls: &calls, fn: func(i []*core.Item) ([]*core.Item, error) { return i, nil }}, nil
	})
	p, err := cfg.BuildPipeline(f, Deps{"k": "v"})
	require.NoError(t, err)
	assert.Len(t, p.Nodes, 1)

	cfg.Pipeline.Nodes[0].Type = "missing"
	_, err = cfg.BuildPipeline(f, nil)
	assert.Error(t, err)
}
