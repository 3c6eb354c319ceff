package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/config"
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/feature"
	"github.com/rushteam/unlox/filter"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/rank"
	"github.com/rushteam/unlox/rerank"
)

const pipelineYAML = `
pipeline:
  name: mumbai-excluded
  nodes:
    - type: filter
      config:
        filters:
          - type: business_type
          - type: budget
          - type: expr
            rule: 'service.location != "mumbai"'
    - type: rank.similarity
      config:
        strategy: knn
    - type: rerank.threshold
      config:
        min_score: 0.2
    - type: rerank.topn
      config:
        n: 3
    - type: explain.reasons
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(pipelineYAML))
	require.NoError(t, err)
	require.NoError(t, config.ValidateNodes(cfg.Pipeline.Nodes))

	enc, _ := feature.Fit([]core.ServiceRecord{{ServiceID: "S1", Description: "seo", BusinessType: "retail", Location: "delhi"}})
	p, err := cfg.BuildPipeline(config.DefaultFactory(), pipeline.Deps{DepEncoders: enc})
	require.NoError(t, err)
	require.Len(t, p.Nodes, 5)

	fn, ok := p.Nodes[0].(*filter.FilterNode)
	require.True(t, ok)
	assert.Len(t, fn.Filters, 3)

	rn, ok := p.Nodes[1].(*rank.RankNode)
	require.True(t, ok)
	assert.Equal(t, "knn", rn.Strategy.Name())

	assert.Equal(t, 0.2, p.Nodes[2].(*rerank.ThresholdNode).MinScore)
	assert.Equal(t, 3, p.Nodes[3].(*rerank.TopNNode).N)
}

func TestBuilders_Errors(t *testing.T) {
	_, err := BuildRankNode(map[string]any{}, nil)
	assert.True(t, core.IsMissingArtifact(err))

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "blacklist"}}}, nil)
	assert.Error(t, err)

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "expr", "rule": "service.location =="}}}, nil)
	assert.True(t, core.IsInvalidInput(err))

	n, err := BuildFilterNode(map[string]any{}, nil)
	require.NoError(t, err)
	assert.Len(t, n.(*filter.FilterNode).Filters, 3)

	th, err := BuildThresholdNode(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultMinScore, th.(*rerank.ThresholdNode).MinScore)

	assert.Error(t, config.ValidateNodes([]pipeline.NodeConfig{{Type: "recall.hot"}}))
}
