package graph

import (
	"go.uber.org/zap"

	"github.com/rigcore/rig/internal/core/event"
)

// SelectNodeEvent reports a node's selection state change.
type SelectNodeEvent struct {
	Node     *Node
	Selected bool
}

// SelectComponentEvent reports a component's selection state change. It
// is emitted on the selection controller and broadcast on the system
// emitter, so observers can react without subscribing to the controller.
type SelectComponentEvent struct {
	Component Component
	Selected  bool
}

// Selection tracks the currently selected nodes and components as two
// independent, unordered sets. MultiSelect allows more than one selected
// item per set; ExclusiveSelect makes node and component selection
// mutually exclusive. It observes system add/remove events and deselects
// entities that leave the composition.
type Selection struct {
	events    event.Emitter
	system    *System
	log       *zap.Logger
	multi     bool
	exclusive bool

	nodes      map[*Node]struct{}
	components map[Component]struct{}
	subs       []event.Subscription
}

// NewSelection creates a controller subscribed to the system's node and
// component lifecycle events.
func NewSelection(system *System, multi, exclusive bool) *Selection {
	s := &Selection{
		system:     system,
		log:        system.Log(),
		multi:      multi,
		exclusive:  exclusive,
		nodes:      make(map[*Node]struct{}, 4),
		components: make(map[Component]struct{}, 4),
	}
	s.subs = append(s.subs,
		system.Events().On(NodeEventName, s.onNodeEvent),
		system.Events().On(ComponentEventName, s.onComponentEvent),
	)
	return s
}

func (s *Selection) Events() *event.Emitter { return &s.events }

// IsNodeSelected reports whether n is currently selected.
func (s *Selection) IsNodeSelected(n *Node) bool {
	_, ok := s.nodes[n]
	return ok
}

// IsComponentSelected reports whether c is currently selected.
func (s *Selection) IsComponentSelected(c Component) bool {
	_, ok := s.components[c]
	return ok
}

// SelectedNodes returns the selected nodes in unspecified order.
func (s *Selection) SelectedNodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// SelectedComponents returns the selected components in unspecified order.
func (s *Selection) SelectedComponents() []Component {
	out := make([]Component, 0, len(s.components))
	for c := range s.components {
		out = append(out, c)
	}
	return out
}

// SelectNode selects n. When n is already selected and both multi-select
// and toggle apply, it is deselected instead; otherwise re-selecting is a
// no-op. Selecting a new node clears selected components under exclusive
// policy and clears other nodes unless multi-select with toggle keeps
// them.
func (s *Selection) SelectNode(n *Node, toggle bool) {
	if _, ok := s.nodes[n]; ok {
		if s.multi && toggle {
			delete(s.nodes, n)
			s.emitNode(n, false)
		}
		return
	}
	if s.exclusive {
		for _, c := range s.SelectedComponents() {
			delete(s.components, c)
			s.emitComponent(c, false)
		}
	}
	if !(s.multi && toggle) {
		for _, other := range s.SelectedNodes() {
			delete(s.nodes, other)
			s.emitNode(other, false)
		}
	}
	s.nodes[n] = struct{}{}
	s.emitNode(n, true)
}

// SelectComponent mirrors SelectNode over the component set.
func (s *Selection) SelectComponent(c Component, toggle bool) {
	if _, ok := s.components[c]; ok {
		if s.multi && toggle {
			delete(s.components, c)
			s.emitComponent(c, false)
		}
		return
	}
	if s.exclusive {
		for _, n := range s.SelectedNodes() {
			delete(s.nodes, n)
			s.emitNode(n, false)
		}
	}
	if !(s.multi && toggle) {
		for _, other := range s.SelectedComponents() {
			delete(s.components, other)
			s.emitComponent(other, false)
		}
	}
	s.components[c] = struct{}{}
	s.emitComponent(c, true)
}

// Dispose unsubscribes from system notifications. Selection state is left
// untouched.
func (s *Selection) Dispose() {
	for _, sub := range s.subs {
		s.system.Events().Off(sub)
	}
	s.subs = nil
}

// onNodeEvent deselects nodes removed from the system, then emits a
// generic update so dependents resynchronize regardless of whether the
// removed node was selected.
func (s *Selection) onNodeEvent(payload any) {
	ev, ok := payload.(NodeEvent)
	if !ok || !ev.Remove {
		return
	}
	if _, selected := s.nodes[ev.Node]; selected {
		delete(s.nodes, ev.Node)
		s.emitNode(ev.Node, false)
	}
	s.events.Emit(UpdateEventName, nil)
}

func (s *Selection) onComponentEvent(payload any) {
	ev, ok := payload.(ComponentEvent)
	if !ok || !ev.Remove {
		return
	}
	if _, selected := s.components[ev.Component]; selected {
		delete(s.components, ev.Component)
		s.emitComponent(ev.Component, false)
	}
	s.events.Emit(UpdateEventName, nil)
}

func (s *Selection) emitNode(n *Node, selected bool) {
	s.log.Debug("select node",
		zap.String("name", n.Name()),
		zap.Bool("selected", selected))
	s.events.Emit(SelectNodeEventName, SelectNodeEvent{Node: n, Selected: selected})
}

func (s *Selection) emitComponent(c Component, selected bool) {
	s.log.Debug("select component",
		zap.String("type", c.TypeName()),
		zap.Bool("selected", selected))
	ev := SelectComponentEvent{Component: c, Selected: selected}
	s.events.Emit(SelectComponentEventName, ev)
	s.system.Events().Emit(SelectComponentEventName, ev)
}
