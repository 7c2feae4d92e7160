package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rigcore/rig/internal/core/event"
	"github.com/rigcore/rig/internal/core/object"
)

// Node is an entity owning zero or more components. It is identified by a
// mutable, non-unique name and an opaque identity, belongs to exactly one
// graph, and is destroyed explicitly via Dispose.
type Node struct {
	events     event.Emitter
	typ        *NodeType
	id         string
	name       string
	graph      *Graph
	components *object.Registry[Component]
}

func (n *Node) TypeName() string   { return n.typ.Name }
func (n *Node) TypeTags() []string { return n.typ.Tags }

func (n *Node) ID() string             { return n.id }
func (n *Node) Name() string           { return n.name }
func (n *Node) SetName(name string)    { n.name = name }
func (n *Node) Type() *NodeType        { return n.typ }
func (n *Node) Graph() *Graph          { return n.graph }
func (n *Node) System() *System        { return n.graph.system }
func (n *Node) Events() *event.Emitter { return &n.events }

// Components exposes the node's component registry for typed queries.
func (n *Node) Components() *object.Registry[Component] {
	return n.components
}

// Component returns the node's first component filed under tag.
func (n *Node) Component(tag string) (Component, error) {
	return n.components.Get(tag)
}

// Hierarchy returns the node's hierarchy component, nil when it has none.
func (n *Node) Hierarchy() *Hierarchy {
	c, ok := n.components.Find(HierarchyType.Name)
	if !ok {
		return nil
	}
	return c.(*Hierarchy)
}

// CreateComponent constructs a component of the given type attached to
// this node and registers it with the graph and system. Fails with
// ErrDuplicateSingleton when the type is a system singleton and one
// already lives anywhere in the composition.
func (n *Node) CreateComponent(typ *ComponentType) (Component, error) {
	return n.createComponent(typ, uuid.NewString())
}

func (n *Node) createComponent(typ *ComponentType, id string) (Component, error) {
	c := typ.New()
	c.attach(c, typ, n, id)
	if err := n.graph.system.addComponent(c); err != nil {
		return nil, fmt.Errorf("create component on node %q: %w", n.name, err)
	}
	if err := n.components.Add(c); err != nil {
		return nil, err
	}
	if err := n.graph.components.Add(c); err != nil {
		return nil, err
	}
	c.Init()
	return c, nil
}

// Dispose destroys the node, disposing every owned component in reverse
// creation order first, then removing the node from its graph and system.
func (n *Node) Dispose() {
	comps := n.components.List("")
	for i := len(comps) - 1; i >= 0; i-- {
		comps[i].Dispose()
	}
	n.graph.nodes.Remove(n)
	n.graph.system.removeNode(n)
}
