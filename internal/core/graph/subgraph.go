package graph

import (
	"encoding/json"
	"fmt"
)

// SubGraphType registers the built-in graph-hosting component.
var SubGraphType = &ComponentType{
	Name: "SubGraph",
	Tags: []string{"SubGraph", ComponentTag},
	New:  func() Component { return &SubGraph{} },
}

// SubGraph owns a nested graph constructed against the same system as its
// host and forwards the per-frame lifecycle into it. Nodes and components
// of the nested graph register with the system's global registries like
// any other.
type SubGraph struct {
	Base
	graph *Graph
}

func (s *SubGraph) Init() {
	s.graph = newGraph(s.System())
}

// InnerGraph returns the nested graph.
func (s *SubGraph) InnerGraph() *Graph { return s.graph }

// Root returns the hierarchy designated as the nested graph's root.
func (s *SubGraph) Root() *Hierarchy     { return s.graph.root }
func (s *SubGraph) SetRoot(h *Hierarchy) { s.graph.root = h }

// Update delegates to the nested graph's update pass.
func (s *SubGraph) Update(ctx *FrameContext) bool {
	return s.graph.Update(ctx)
}

// Tick marks the host changed so the nested graph's next update pass is
// never skipped by a dirty-flag optimization upstream, then delegates.
func (s *SubGraph) Tick(ctx *FrameContext) bool {
	s.SetChanged()
	return s.graph.Tick(ctx)
}

// PreRender and PostRender delegate unconditionally so every nested graph
// participates in every render pass.
func (s *SubGraph) PreRender(ctx *FrameContext)  { s.graph.PreRender(ctx) }
func (s *SubGraph) PostRender(ctx *FrameContext) { s.graph.PostRender(ctx) }

// Dispose clears the nested graph before the base disposal.
func (s *SubGraph) Dispose() {
	s.graph.Clear()
	s.Base.Dispose()
}

type subGraphState struct {
	Graph *GraphRecord `json:"graph"`
}

// Deflate serializes the nested graph under the record's "graph" field.
func (s *SubGraph) Deflate() (json.RawMessage, error) {
	rec, err := s.graph.Deflate()
	if err != nil {
		return nil, err
	}
	return json.Marshal(subGraphState{Graph: rec})
}

// Inflate reconstructs the nested graph's nodes and components in the
// same phase-one pass as the host graph; the shared link table resolves
// references across graph boundaries in phase two.
func (s *SubGraph) Inflate(state json.RawMessage, links *LinkTable) error {
	st, err := s.decode(state)
	if err != nil || st.Graph == nil {
		return err
	}
	return s.graph.inflate(st.Graph, links)
}

// InflateLinks restores the nested graph's root designation.
func (s *SubGraph) InflateLinks(state json.RawMessage, links *LinkTable) error {
	st, err := s.decode(state)
	if err != nil || st.Graph == nil {
		return err
	}
	return s.graph.inflateRoot(st.Graph.Root, links)
}

func (s *SubGraph) decode(state json.RawMessage) (subGraphState, error) {
	var st subGraphState
	if len(state) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(state, &st); err != nil {
		return st, fmt.Errorf("inflate subgraph: %w", err)
	}
	return st, nil
}
