package graph

import (
	"github.com/google/uuid"

	"github.com/rigcore/rig/internal/core/object"
)

// Graph is an addressable collection of nodes and components scoped to one
// composition unit. The root graph belongs to the system; nested graphs
// are owned by a SubGraph component. Every node and component created in a
// graph is also registered with the owning system's global registries.
type Graph struct {
	system     *System
	nodes      *object.Registry[*Node]
	components *object.Registry[Component]
	root       *Hierarchy
}

func newGraph(system *System) *Graph {
	return &Graph{
		system:     system,
		nodes:      object.NewRegistry[*Node](),
		components: object.NewRegistry[Component](),
	}
}

func (g *Graph) System() *System { return g.system }

// Nodes and Components expose the graph-scoped registries.
func (g *Graph) Nodes() *object.Registry[*Node]          { return g.nodes }
func (g *Graph) Components() *object.Registry[Component] { return g.components }

// Root is the hierarchy designated as the graph's traversal root, nil
// when none is set.
func (g *Graph) Root() *Hierarchy     { return g.root }
func (g *Graph) SetRoot(h *Hierarchy) { g.root = h }

// CreateNode creates a plain node in this graph.
func (g *Graph) CreateNode(name string) *Node {
	return g.createNode(BaseNodeType, name, uuid.NewString())
}

// CreateNodeOfType creates a node of a registered custom type.
func (g *Graph) CreateNodeOfType(typ *NodeType, name string) *Node {
	return g.createNode(typ, name, uuid.NewString())
}

func (g *Graph) createNode(typ *NodeType, name, id string) *Node {
	n := &Node{
		typ:        typ,
		id:         id,
		name:       name,
		graph:      g,
		components: object.NewRegistry[Component](),
	}
	// A freshly created node cannot collide in either registry.
	_ = g.nodes.Add(n)
	g.system.addNode(n)
	return n
}

// Update runs the update hook on every component whose changed flag is
// set, clearing the flag first so the hook may re-dirty dependents.
// Returns true when any component reported a change.
func (g *Graph) Update(ctx *FrameContext) bool {
	dirty := false
	for _, c := range g.components.List("") {
		if !c.Changed() {
			continue
		}
		c.clearChanged()
		if c.Update(ctx) {
			dirty = true
		}
	}
	return dirty
}

// Tick runs the tick hook on every component unconditionally.
func (g *Graph) Tick(ctx *FrameContext) bool {
	dirty := false
	for _, c := range g.components.List("") {
		if c.Tick(ctx) {
			dirty = true
		}
	}
	return dirty
}

// PreRender and PostRender run their hooks on every component with no
// dirty-flag short-circuit, so nested graphs participate in every pass.
func (g *Graph) PreRender(ctx *FrameContext) {
	for _, c := range g.components.List("") {
		c.PreRender(ctx)
	}
}

func (g *Graph) PostRender(ctx *FrameContext) {
	for _, c := range g.components.List("") {
		c.PostRender(ctx)
	}
}

// Clear disposes every node in the graph. Hierarchy components cascade
// into their subtrees, so the loop re-reads the registry until empty.
func (g *Graph) Clear() {
	for g.nodes.Count() > 0 {
		n, err := g.nodes.Get("")
		if err != nil {
			return
		}
		n.Dispose()
	}
	g.root = nil
}
