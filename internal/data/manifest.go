// Package data loads YAML composition manifests: a declarative form of an
// initial node tree, built into a live system through the same type
// registry and inflate hooks deserialization uses.
package data

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rigcore/rig/internal/core/graph"
)

// Manifest describes an initial composition. Root optionally names the
// node whose hierarchy becomes the graph's traversal root.
type Manifest struct {
	Root  string     `yaml:"root"`
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec declares one node: an optional custom type, its components,
// and child nodes. A node with children is given a hierarchy component
// automatically.
type NodeSpec struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Components []ComponentSpec `yaml:"components"`
	Children   []NodeSpec      `yaml:"children"`
}

// ComponentSpec declares one component by registered type name. Params
// are fed through the component's inflate hook.
type ComponentSpec struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a manifest from YAML.
func Parse(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Count returns the total number of node specs, including children.
func (m *Manifest) Count() int {
	total := 0
	var walk func(specs []NodeSpec)
	walk = func(specs []NodeSpec) {
		total += len(specs)
		for _, spec := range specs {
			walk(spec.Children)
		}
	}
	walk(m.Nodes)
	return total
}

// Build constructs the manifest's nodes, components, and hierarchy edges
// in the system's root graph.
func Build(s *graph.System, m *Manifest) error {
	links := graph.NewLinkTable()
	for _, spec := range m.Nodes {
		if _, err := buildNode(s, s.Graph(), spec, nil, links); err != nil {
			return err
		}
	}
	if err := links.Resolve(); err != nil {
		return err
	}
	if m.Root != "" {
		n, ok := s.FindNodeByName(m.Root, "")
		if !ok {
			return fmt.Errorf("build manifest: root node %q not found", m.Root)
		}
		h := n.Hierarchy()
		if h == nil {
			return fmt.Errorf("build manifest: root node %q has no hierarchy", m.Root)
		}
		s.Graph().SetRoot(h)
	}
	return nil
}

func buildNode(s *graph.System, g *graph.Graph, spec NodeSpec, parent *graph.Hierarchy, links *graph.LinkTable) (*graph.Node, error) {
	typeName := spec.Type
	if typeName == "" {
		typeName = graph.NodeTag
	}
	nt, err := s.Types().Node(typeName)
	if err != nil {
		return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
	}
	n := g.CreateNodeOfType(nt, spec.Name)

	for _, cs := range spec.Components {
		ct, err := s.Types().Component(cs.Type)
		if err != nil {
			return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
		}
		c, err := n.CreateComponent(ct)
		if err != nil {
			return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
		}
		if len(cs.Params) > 0 {
			state, err := json.Marshal(cs.Params)
			if err != nil {
				return nil, fmt.Errorf("build node %q: encode %s params: %w", spec.Name, cs.Type, err)
			}
			if err := c.Inflate(state, links); err != nil {
				return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
			}
		}
	}

	var h *graph.Hierarchy
	if parent != nil || len(spec.Children) > 0 {
		if h, err = ensureHierarchy(n); err != nil {
			return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
		}
	}
	if parent != nil {
		if err := parent.AddChild(h); err != nil {
			return nil, fmt.Errorf("build node %q: %w", spec.Name, err)
		}
	}
	for _, child := range spec.Children {
		if _, err := buildNode(s, g, child, h, links); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func ensureHierarchy(n *graph.Node) (*graph.Hierarchy, error) {
	if h := n.Hierarchy(); h != nil {
		return h, nil
	}
	c, err := n.CreateComponent(graph.HierarchyType)
	if err != nil {
		return nil, err
	}
	return c.(*graph.Hierarchy), nil
}
