package graph

import (
	"encoding/json"
	"fmt"
)

// GraphRecord is the JSON-compatible serialized form of one graph: an
// ordered sequence of node records plus the id of the designated root
// hierarchy component, when one is set.
type GraphRecord struct {
	Nodes []NodeRecord `json:"nodes"`
	Root  string       `json:"root,omitempty"`
}

// NodeRecord serializes one node: its type name, identity, name, and an
// ordered sequence of component records.
type NodeRecord struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Components []ComponentRecord `json:"components,omitempty"`
}

// ComponentRecord serializes one component, keyed by its registered type
// name. State carries the component's own declared state; a component
// hosting a nested graph embeds that graph's record under a "graph" field
// inside State.
type ComponentRecord struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	State json.RawMessage `json:"state,omitempty"`
}

type pendingLink struct {
	component Component
	state     json.RawMessage
}

// LinkTable resolves component ids during the two-phase inflate: phase
// one creates every node and component (including nested graphs), phase
// two replays each component's stored state through InflateLinks so
// references between components can be restored.
type LinkTable struct {
	components map[string]Component
	pending    []pendingLink
}

func NewLinkTable() *LinkTable {
	return &LinkTable{components: make(map[string]Component, 16)}
}

// Component resolves a component by serialized id.
func (t *LinkTable) Component(id string) (Component, bool) {
	c, ok := t.components[id]
	return c, ok
}

func (t *LinkTable) register(c Component, state json.RawMessage) {
	t.components[c.ID()] = c
	t.pending = append(t.pending, pendingLink{component: c, state: state})
}

// Resolve runs the second inflate pass over every registered component in
// creation order.
func (t *LinkTable) Resolve() error {
	for _, p := range t.pending {
		if err := p.component.InflateLinks(p.state, t); err != nil {
			return err
		}
	}
	return nil
}

// Deflate serializes the graph and, transitively, every nested graph
// reachable from it.
func (g *Graph) Deflate() (*GraphRecord, error) {
	rec := &GraphRecord{}
	for _, n := range g.nodes.List("") {
		nr := NodeRecord{Type: n.typ.Name, ID: n.id, Name: n.name}
		for _, c := range n.components.List("") {
			state, err := c.Deflate()
			if err != nil {
				return nil, fmt.Errorf("deflate %s on node %q: %w", c.TypeName(), n.name, err)
			}
			nr.Components = append(nr.Components, ComponentRecord{
				Type:  c.TypeName(),
				ID:    c.ID(),
				State: state,
			})
		}
		rec.Nodes = append(rec.Nodes, nr)
	}
	if g.root != nil {
		rec.Root = g.root.ID()
	}
	return rec, nil
}

// inflate reconstructs the graph's nodes and components from rec (phase
// one). References between components are restored later via links.
func (g *Graph) inflate(rec *GraphRecord, links *LinkTable) error {
	for _, nr := range rec.Nodes {
		nt, err := g.system.types.Node(nr.Type)
		if err != nil {
			return err
		}
		n := g.createNode(nt, nr.Name, nr.ID)
		for _, cr := range nr.Components {
			ct, err := g.system.types.Component(cr.Type)
			if err != nil {
				return err
			}
			c, err := n.createComponent(ct, cr.ID)
			if err != nil {
				return err
			}
			links.register(c, cr.State)
			if err := c.Inflate(cr.State, links); err != nil {
				return fmt.Errorf("inflate %s on node %q: %w", cr.Type, nr.Name, err)
			}
		}
	}
	return nil
}

// inflateRoot restores the designated root hierarchy after phase one.
func (g *Graph) inflateRoot(id string, links *LinkTable) error {
	if id == "" {
		return nil
	}
	c, ok := links.Component(id)
	if !ok {
		return fmt.Errorf("inflate graph: unresolved root id %q", id)
	}
	h, ok := c.(*Hierarchy)
	if !ok {
		return fmt.Errorf("inflate graph: root %q is not a hierarchy: %w", id, ErrStructure)
	}
	g.root = h
	return nil
}

// Deflate serializes the root graph and every nested graph reachable
// from it.
func (s *System) Deflate() (*GraphRecord, error) {
	return s.graph.Deflate()
}

// Inflate restores the root graph from rec. On failure the root graph is
// cleared so the system registries never reference partial objects.
func (s *System) Inflate(rec *GraphRecord) error {
	links := NewLinkTable()
	err := s.graph.inflate(rec, links)
	if err == nil {
		err = s.graph.inflateRoot(rec.Root, links)
	}
	if err == nil {
		err = links.Resolve()
	}
	if err != nil {
		s.graph.Clear()
		return err
	}
	return nil
}
