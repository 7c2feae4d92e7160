package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rigcore/rig/internal/component"
	"github.com/rigcore/rig/internal/core/graph"
)

const sampleManifest = `
root: stage
nodes:
  - name: stage
    components:
      - type: Script
        params:
          source: |
            function tick(dt)
              return true
            end
    children:
      - name: prop
        components:
          - type: Tween
            params:
              from: 0
              to: 5
              duration: 2
              autoplay: true
      - name: light
  - name: backdrop
`

func newTestSystem(t *testing.T) *graph.System {
	t.Helper()
	types := graph.NewTypes()
	component.Register(types)
	return graph.NewSystem(types, zaptest.NewLogger(t))
}

func TestParseManifest(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "stage", m.Root)
	require.Len(t, m.Nodes, 2)
	assert.Equal(t, "stage", m.Nodes[0].Name)
	assert.Len(t, m.Nodes[0].Children, 2)
	assert.Equal(t, 4, m.Count())
}

func TestParseBadYAMLFails(t *testing.T) {
	_, err := Parse([]byte("nodes: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composition.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Count())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildConstructsComposition(t *testing.T) {
	s := newTestSystem(t)
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	require.NoError(t, Build(s, m))

	assert.Equal(t, 4, s.Graph().Nodes().Count())

	// Hierarchy edges follow the nesting.
	stage, ok := s.FindNodeByName("stage", "")
	require.True(t, ok)
	stageH := stage.Hierarchy()
	require.NotNil(t, stageH)
	require.Len(t, stageH.Children(), 2)
	assert.Equal(t, "prop", stageH.Children()[0].Node().Name())
	assert.Equal(t, "light", stageH.Children()[1].Node().Name())

	// The named root hierarchy is designated on the graph.
	assert.Same(t, stageH, s.Graph().Root())

	// Leaf nodes without children still get hierarchies when attached.
	light, ok := s.FindNodeByName("light", "")
	require.True(t, ok)
	assert.NotNil(t, light.Hierarchy())

	// A top-level node without children carries no hierarchy.
	backdrop, ok := s.FindNodeByName("backdrop", "")
	require.True(t, ok)
	assert.Nil(t, backdrop.Hierarchy())

	// Component params ran through the inflate hooks.
	prop, ok := s.FindNodeByName("prop", "")
	require.True(t, ok)
	c, err := prop.Component("Tween")
	require.NoError(t, err)
	tw := c.(*component.Tween)
	assert.Equal(t, float32(5), tw.To)
	assert.True(t, tw.Running())
}

func TestBuildUnknownComponentTypeFails(t *testing.T) {
	s := newTestSystem(t)
	m, err := Parse([]byte(`
nodes:
  - name: broken
    components:
      - type: DoesNotExist
`))
	require.NoError(t, err)

	err = Build(s, m)
	assert.ErrorIs(t, err, graph.ErrUnknownType)
}

func TestBuildUnknownRootFails(t *testing.T) {
	s := newTestSystem(t)
	m, err := Parse([]byte("root: ghost\nnodes:\n  - name: real\n"))
	require.NoError(t, err)

	assert.Error(t, Build(s, m))
}
