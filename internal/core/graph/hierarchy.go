package graph

import (
	"encoding/json"
	"fmt"
)

// HierarchyEvent is multicast when a child is attached or detached. It is
// delivered to the child, each ancestor up to the root, and every one of
// their owning nodes.
type HierarchyEvent struct {
	Parent *Hierarchy
	Child  *Hierarchy
	Add    bool
	Remove bool
}

// HierarchyType registers the built-in hierarchy component.
var HierarchyType = &ComponentType{
	Name: "Hierarchy",
	Tags: []string{"Hierarchy", ComponentTag},
	New:  func() Component { return &Hierarchy{} },
}

// Hierarchy places its owning node's component set in a parent/child
// tree. The parent reference is non-owning and nil at the root; children
// are held in attachment order with no duplicates.
type Hierarchy struct {
	Base
	parent   *Hierarchy
	children []*Hierarchy
}

// Parent returns the hierarchy this one is attached under, nil at root.
func (h *Hierarchy) Parent() *Hierarchy { return h.parent }

// Children returns the direct children in attachment order.
func (h *Hierarchy) Children() []*Hierarchy {
	if len(h.children) == 0 {
		return nil
	}
	out := make([]*Hierarchy, len(h.children))
	copy(out, h.children)
	return out
}

// AddChild attaches child under this hierarchy. Fails with ErrStructure
// when child already has a parent; it must be removed first.
func (h *Hierarchy) AddChild(child *Hierarchy) error {
	if child.parent != nil {
		return fmt.Errorf("add child %q: child already has a parent: %w",
			child.Node().Name(), ErrStructure)
	}
	child.parent = h
	h.children = append(h.children, child)
	multicastHierarchy(HierarchyEvent{Parent: h, Child: child, Add: true})
	return nil
}

// RemoveChild detaches child. Fails with ErrStructure when child's
// current parent is not this hierarchy.
func (h *Hierarchy) RemoveChild(child *Hierarchy) error {
	if child.parent != h {
		return fmt.Errorf("remove child %q: not a child of %q: %w",
			child.Node().Name(), h.Node().Name(), ErrStructure)
	}
	for i, c := range h.children {
		if c == child {
			h.children = append(h.children[:i], h.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	multicastHierarchy(HierarchyEvent{Parent: h, Child: child, Remove: true})
	return nil
}

// multicastHierarchy delivers ev to the child and its node, then walks
// the ancestor chain iteratively from the parent upward, emitting at each
// hierarchy and its owning node. Iterative to bound stack depth on deep
// trees.
func multicastHierarchy(ev HierarchyEvent) {
	ev.Child.Events().Emit(HierarchyEventName, ev)
	ev.Child.Node().Events().Emit(HierarchyEventName, ev)
	for a := ev.Parent; a != nil; a = a.parent {
		a.Events().Emit(HierarchyEventName, ev)
		a.Node().Events().Emit(HierarchyEventName, ev)
	}
}

// GetRoot walks to the top of the tree and returns a component filed
// under tag on the root's owning node.
func (h *Hierarchy) GetRoot(tag string) (Component, bool) {
	root := h
	for root.parent != nil {
		root = root.parent
	}
	return root.Node().Components().Find(tag)
}

// GetParent returns a component filed under tag on the immediate parent's
// node. When recursive is set and the direct parent has no match, the
// walk continues from the grandparent upward; the direct parent is
// examined exactly once.
func (h *Hierarchy) GetParent(tag string, recursive bool) (Component, bool) {
	p := h.parent
	if p == nil {
		return nil, false
	}
	if c, ok := p.Node().Components().Find(tag); ok {
		return c, true
	}
	if recursive {
		for p = p.parent; p != nil; p = p.parent {
			if c, ok := p.Node().Components().Find(tag); ok {
				return c, true
			}
		}
	}
	return nil, false
}

// GetChild returns the first component filed under tag among the direct
// children's nodes. When recursive is set, every direct child is examined
// before any deeper level, so shallow matches always win.
func (h *Hierarchy) GetChild(tag string, recursive bool) (Component, bool) {
	for _, child := range h.children {
		if c, ok := child.Node().Components().Find(tag); ok {
			return c, true
		}
	}
	if recursive {
		for _, child := range h.children {
			if c, ok := child.GetChild(tag, true); ok {
				return c, true
			}
		}
	}
	return nil, false
}

// GetChildren collects components filed under tag from each direct
// child's node, direct matches first, then (when recursive) each child's
// subtree in attachment order.
func (h *Hierarchy) GetChildren(tag string, recursive bool) []Component {
	var out []Component
	for _, child := range h.children {
		if c, ok := child.Node().Components().Find(tag); ok {
			out = append(out, c)
		}
	}
	if recursive {
		for _, child := range h.children {
			out = append(out, child.GetChildren(tag, true)...)
		}
	}
	return out
}

// HasChildren is the boolean form of GetChild.
func (h *Hierarchy) HasChildren(tag string, recursive bool) bool {
	_, ok := h.GetChild(tag, recursive)
	return ok
}

// Dispose detaches from the parent, then disposes every direct child's
// owning node, cascading through the subtree, before the base disposal.
func (h *Hierarchy) Dispose() {
	if h.parent != nil {
		// Cannot fail: parent linkage is consistent by construction.
		_ = h.parent.RemoveChild(h)
	}
	children := h.Children()
	for _, child := range children {
		child.Node().Dispose()
	}
	h.Base.Dispose()
}

type hierarchyState struct {
	Children []string `json:"children,omitempty"`
}

// Deflate records the child hierarchy component ids; parent linkage is
// reconstructed from the child lists alone.
func (h *Hierarchy) Deflate() (json.RawMessage, error) {
	if len(h.children) == 0 {
		return nil, nil
	}
	st := hierarchyState{Children: make([]string, len(h.children))}
	for i, child := range h.children {
		st.Children[i] = child.ID()
	}
	return json.Marshal(st)
}

// InflateLinks reattaches children once every component in the record
// exists.
func (h *Hierarchy) InflateLinks(state json.RawMessage, links *LinkTable) error {
	if len(state) == 0 {
		return nil
	}
	var st hierarchyState
	if err := json.Unmarshal(state, &st); err != nil {
		return fmt.Errorf("inflate hierarchy: %w", err)
	}
	for _, id := range st.Children {
		c, ok := links.Component(id)
		if !ok {
			return fmt.Errorf("inflate hierarchy: unresolved child id %q", id)
		}
		child, ok := c.(*Hierarchy)
		if !ok {
			return fmt.Errorf("inflate hierarchy: child %q is not a hierarchy: %w", id, ErrStructure)
		}
		if err := h.AddChild(child); err != nil {
			return err
		}
	}
	return nil
}
