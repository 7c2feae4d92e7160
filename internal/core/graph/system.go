package graph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rigcore/rig/internal/core/event"
	"github.com/rigcore/rig/internal/core/object"
)

// Event names emitted on the system emitter and on the selection
// controller. Payload types follow below.
const (
	NodeEventName            = "node"
	ComponentEventName       = "component"
	HierarchyEventName       = "hierarchy"
	SelectNodeEventName      = "select-node"
	SelectComponentEventName = "select-component"
	UpdateEventName          = "update"
)

// NodeEvent reports a node entering or leaving the system registries.
type NodeEvent struct {
	Node   *Node
	Add    bool
	Remove bool
}

// ComponentEvent reports a component entering or leaving the system
// registries.
type ComponentEvent struct {
	Component Component
	Add       bool
	Remove    bool
}

// System is the process-wide authority for one running composition: the
// type registry used during deserialization, global registries of every
// node and component across all graphs, and the root graph. It indexes
// objects but never owns them; lifetime is governed by explicit disposal.
type System struct {
	events     event.Emitter
	log        *zap.Logger
	types      *Types
	nodes      *object.Registry[*Node]
	components *object.Registry[Component]
	graph      *Graph
}

// NewSystem creates a system with an empty root graph. A nil logger is
// replaced with a no-op logger.
func NewSystem(types *Types, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	s := &System{
		log:        log,
		types:      types,
		nodes:      object.NewRegistry[*Node](),
		components: object.NewRegistry[Component](),
	}
	s.graph = newGraph(s)
	return s
}

func (s *System) Types() *Types          { return s.types }
func (s *System) Graph() *Graph          { return s.graph }
func (s *System) Events() *event.Emitter { return &s.events }
func (s *System) Log() *zap.Logger       { return s.log }

// Global lookups, spanning the root graph and every nested graph.

func (s *System) Component(tag string) (Component, error) { return s.components.Get(tag) }
func (s *System) Components(tag string) []Component       { return s.components.List(tag) }
func (s *System) HasComponent(tag string) bool            { return s.components.Has(tag) }
func (s *System) Node(tag string) (*Node, error)          { return s.nodes.Get(tag) }
func (s *System) Nodes(tag string) []*Node                { return s.nodes.List(tag) }
func (s *System) HasNode(tag string) bool                 { return s.nodes.Has(tag) }

// Main lookups, scoped to the root graph only.

func (s *System) MainComponent(tag string) (Component, error) { return s.graph.components.Get(tag) }
func (s *System) MainComponents(tag string) []Component       { return s.graph.components.List(tag) }
func (s *System) MainNode(tag string) (*Node, error)          { return s.graph.nodes.Get(tag) }
func (s *System) MainNodes(tag string) []*Node                { return s.graph.nodes.List(tag) }

// FindNodeByName scans the tag-filtered node sequence for the first node
// with the given name. An empty tag scans every node.
func (s *System) FindNodeByName(name, tag string) (*Node, bool) {
	for _, n := range s.nodes.List(tag) {
		if n.Name() == name {
			return n, true
		}
	}
	return nil, false
}

// addComponent registers a component globally, arbitrating singleton
// uniqueness. Called by Node.CreateComponent, never by unrelated code.
func (s *System) addComponent(c Component) error {
	if c.Type().Singleton && s.components.Has(c.TypeName()) {
		return fmt.Errorf("%s: %w", c.TypeName(), ErrDuplicateSingleton)
	}
	if err := s.components.Add(c); err != nil {
		return err
	}
	s.log.Debug("component registered",
		zap.String("type", c.TypeName()),
		zap.String("node", c.Node().Name()))
	s.events.Emit(ComponentEventName, ComponentEvent{Component: c, Add: true})
	return nil
}

func (s *System) removeComponent(c Component) {
	s.components.Remove(c)
	s.events.Emit(ComponentEventName, ComponentEvent{Component: c, Remove: true})
}

func (s *System) addNode(n *Node) {
	// A freshly created node is never already registered.
	_ = s.nodes.Add(n)
	s.log.Debug("node registered", zap.String("name", n.Name()))
	s.events.Emit(NodeEventName, NodeEvent{Node: n, Add: true})
}

func (s *System) removeNode(n *Node) {
	s.nodes.Remove(n)
	s.events.Emit(NodeEventName, NodeEvent{Node: n, Remove: true})
}
