package graph

import "fmt"

// Base tags shared by every node and component. A concrete type's tag
// list starts with its own name and ends with one of these, so registry
// queries for the base tag match everything.
const (
	NodeTag      = "Node"
	ComponentTag = "Component"
)

// NodeType describes a registered node kind. Tags holds the type's own
// name first, then every base tag up to NodeTag.
type NodeType struct {
	Name string
	Tags []string
}

// BaseNodeType is the plain node kind used when no custom type is given.
var BaseNodeType = &NodeType{
	Name: NodeTag,
	Tags: []string{NodeTag},
}

// ComponentType describes a registered component kind: its tag chain, a
// factory, and whether at most one live instance may exist system-wide.
type ComponentType struct {
	Name      string
	Tags      []string
	Singleton bool
	New       func() Component
}

// ExtendTags builds the tag chain for a type derived from base: its own
// name followed by every tag base satisfies.
func ExtendTags(name string, base []string) []string {
	tags := make([]string, 0, len(base)+1)
	tags = append(tags, name)
	return append(tags, base...)
}

// Types maps type names to factories. Deserialization resolves every
// node and component record through it; an unregistered name is a fatal
// ErrUnknownType.
type Types struct {
	nodes      map[string]*NodeType
	components map[string]*ComponentType
}

// NewTypes returns a registry with the built-in types pre-registered.
func NewTypes() *Types {
	t := &Types{
		nodes:      make(map[string]*NodeType, 8),
		components: make(map[string]*ComponentType, 16),
	}
	t.RegisterNode(BaseNodeType)
	t.RegisterComponent(HierarchyType)
	t.RegisterComponent(SubGraphType)
	return t
}

func (t *Types) RegisterNode(nt *NodeType) {
	t.nodes[nt.Name] = nt
}

func (t *Types) RegisterComponent(ct *ComponentType) {
	t.components[ct.Name] = ct
}

// Node resolves a node type by name.
func (t *Types) Node(name string) (*NodeType, error) {
	nt, ok := t.nodes[name]
	if !ok {
		return nil, fmt.Errorf("node type %q: %w", name, ErrUnknownType)
	}
	return nt, nil
}

// Component resolves a component type by name.
func (t *Types) Component(name string) (*ComponentType, error) {
	ct, ok := t.components[name]
	if !ok {
		return nil, fmt.Errorf("component type %q: %w", name, ErrUnknownType)
	}
	return ct, nil
}
