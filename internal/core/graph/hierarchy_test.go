package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds root→mid→leaf, each node carrying a hierarchy.
func chain(t *testing.T, s *System) (root, mid, leaf *Hierarchy) {
	t.Helper()
	g := s.Graph()
	root = mustHierarchy(t, g.CreateNode("root"))
	mid = mustHierarchy(t, g.CreateNode("mid"))
	leaf = mustHierarchy(t, g.CreateNode("leaf"))
	require.NoError(t, root.AddChild(mid))
	require.NoError(t, mid.AddChild(leaf))
	return root, mid, leaf
}

func TestAddChildSetsParentAndChildren(t *testing.T) {
	s := newTestSystem(t)
	a := mustHierarchy(t, s.Graph().CreateNode("a"))
	b := mustHierarchy(t, s.Graph().CreateNode("b"))

	require.NoError(t, a.AddChild(b))
	assert.Same(t, a, b.Parent())
	assert.Equal(t, []*Hierarchy{b}, a.Children())
}

func TestAddChildWithParentFails(t *testing.T) {
	s := newTestSystem(t)
	a := mustHierarchy(t, s.Graph().CreateNode("a"))
	b := mustHierarchy(t, s.Graph().CreateNode("b"))

	require.NoError(t, a.AddChild(b))
	// A second add without an intervening remove is a structural violation.
	assert.ErrorIs(t, a.AddChild(b), ErrStructure)
	assert.Equal(t, []*Hierarchy{b}, a.Children())

	c := mustHierarchy(t, s.Graph().CreateNode("c"))
	assert.ErrorIs(t, c.AddChild(b), ErrStructure)
}

func TestRemoveChild(t *testing.T) {
	s := newTestSystem(t)
	a := mustHierarchy(t, s.Graph().CreateNode("a"))
	b := mustHierarchy(t, s.Graph().CreateNode("b"))
	require.NoError(t, a.AddChild(b))

	require.NoError(t, a.RemoveChild(b))
	assert.Nil(t, b.Parent())
	assert.Empty(t, a.Children())

	// Re-attach is legal after removal.
	require.NoError(t, a.AddChild(b))
	assert.Same(t, a, b.Parent())
}

func TestRemoveChildWrongParentFails(t *testing.T) {
	s := newTestSystem(t)
	a := mustHierarchy(t, s.Graph().CreateNode("a"))
	b := mustHierarchy(t, s.Graph().CreateNode("b"))
	c := mustHierarchy(t, s.Graph().CreateNode("c"))
	require.NoError(t, a.AddChild(b))

	assert.ErrorIs(t, c.RemoveChild(b), ErrStructure)
	assert.Same(t, a, b.Parent())
}

func TestAddChildMulticastsToAncestorChain(t *testing.T) {
	s := newTestSystem(t)
	root, mid, _ := chain(t, s)
	leaf2 := mustHierarchy(t, s.Graph().CreateNode("leaf2"))

	var visited []string
	listen := func(name string, h *Hierarchy) {
		h.Events().On(HierarchyEventName, func(payload any) {
			ev := payload.(HierarchyEvent)
			assert.True(t, ev.Add)
			assert.False(t, ev.Remove)
			assert.Same(t, mid, ev.Parent)
			assert.Same(t, leaf2, ev.Child)
			visited = append(visited, name)
		})
		h.Node().Events().On(HierarchyEventName, func(any) {
			visited = append(visited, name+"-node")
		})
	}
	listen("leaf2", leaf2)
	listen("mid", mid)
	listen("root", root)

	require.NoError(t, mid.AddChild(leaf2))
	assert.Equal(t,
		[]string{"leaf2", "leaf2-node", "mid", "mid-node", "root", "root-node"},
		visited)
}

func TestRemoveChildMulticastsToAncestorChain(t *testing.T) {
	s := newTestSystem(t)
	root, mid, leaf := chain(t, s)

	var visited []string
	for name, h := range map[string]*Hierarchy{"root": root, "mid": mid, "leaf": leaf} {
		name := name
		h.Events().On(HierarchyEventName, func(payload any) {
			ev := payload.(HierarchyEvent)
			assert.False(t, ev.Add)
			assert.True(t, ev.Remove)
			visited = append(visited, name)
		})
	}

	require.NoError(t, mid.RemoveChild(leaf))
	assert.ElementsMatch(t, []string{"leaf", "mid", "root"}, visited)
}

func TestGetRoot(t *testing.T) {
	s := newTestSystem(t)
	root, _, leaf := chain(t, s)
	p := mustComponent[*probe](t, root.Node(), probeType)

	got, ok := leaf.GetRoot("Probe")
	require.True(t, ok)
	assert.Same(t, Component(p), got)

	self, ok := root.GetRoot("Hierarchy")
	require.True(t, ok)
	assert.Same(t, Component(root), self)

	_, ok = leaf.GetRoot("Solo")
	assert.False(t, ok)
}

func TestGetParent(t *testing.T) {
	s := newTestSystem(t)
	root, mid, leaf := chain(t, s)
	rootProbe := mustComponent[*probe](t, root.Node(), probeType)

	// Non-recursive: only the direct parent is searched.
	_, ok := leaf.GetParent("Probe", false)
	assert.False(t, ok)

	// Recursive: the walk continues past the direct parent.
	got, ok := leaf.GetParent("Probe", true)
	require.True(t, ok)
	assert.Same(t, Component(rootProbe), got)

	// Direct parent match wins over deeper ancestors.
	midProbe := mustComponent[*probe](t, mid.Node(), probeType)
	got, ok = leaf.GetParent("Probe", true)
	require.True(t, ok)
	assert.Same(t, Component(midProbe), got)

	// At the root there is no parent at all.
	_, ok = root.GetParent("Probe", true)
	assert.False(t, ok)
}

func TestGetChildPrefersShallowMatches(t *testing.T) {
	s := newTestSystem(t)
	g := s.Graph()
	root := mustHierarchy(t, g.CreateNode("root"))
	a := mustHierarchy(t, g.CreateNode("a"))
	b := mustHierarchy(t, g.CreateNode("b"))
	deep := mustHierarchy(t, g.CreateNode("deep"))
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))
	require.NoError(t, a.AddChild(deep))

	deepProbe := mustComponent[*probe](t, deep.Node(), probeType)

	// Non-recursive misses the grandchild.
	_, ok := root.GetChild("Probe", false)
	assert.False(t, ok)

	got, ok := root.GetChild("Probe", true)
	require.True(t, ok)
	assert.Same(t, Component(deepProbe), got)

	// A direct child match is preferred over the deeper one, even though
	// the deeper node was created first.
	bProbe := mustComponent[*probe](t, b.Node(), probeType)
	got, ok = root.GetChild("Probe", true)
	require.True(t, ok)
	assert.Same(t, Component(bProbe), got)
}

func TestGetChildrenOrdering(t *testing.T) {
	s := newTestSystem(t)
	g := s.Graph()
	root := mustHierarchy(t, g.CreateNode("root"))
	a := mustHierarchy(t, g.CreateNode("a"))
	b := mustHierarchy(t, g.CreateNode("b"))
	deep := mustHierarchy(t, g.CreateNode("deep"))
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))
	require.NoError(t, a.AddChild(deep))

	deepP := mustComponent[*probe](t, deep.Node(), probeType)
	aP := mustComponent[*probe](t, a.Node(), probeType)
	bP := mustComponent[*probe](t, b.Node(), probeType)

	assert.Equal(t, []Component{aP, bP}, root.GetChildren("Probe", false))
	assert.Equal(t, []Component{aP, bP, deepP}, root.GetChildren("Probe", true))
}

func TestHasChildren(t *testing.T) {
	s := newTestSystem(t)
	root, _, leaf := chain(t, s)

	assert.True(t, root.HasChildren("Hierarchy", false))
	assert.False(t, leaf.HasChildren("Hierarchy", false))

	mustComponent[*probe](t, leaf.Node(), probeType)
	assert.False(t, root.HasChildren("Probe", false))
	assert.True(t, root.HasChildren("Probe", true))
}

func TestDisposeCascadesThroughSubtree(t *testing.T) {
	s := newTestSystem(t)
	root, mid, leaf := chain(t, s)

	mid.Node().Dispose()

	// mid and leaf are gone, root survives with no children.
	assert.Empty(t, root.Children())
	assert.Equal(t, 1, s.Graph().Nodes().Count())
	_, found := s.FindNodeByName("mid", "")
	assert.False(t, found)
	_, found = s.FindNodeByName("leaf", "")
	assert.False(t, found)
	assert.Nil(t, leaf.Parent())
}

func TestDisposeDetachesFromParent(t *testing.T) {
	s := newTestSystem(t)
	root, mid, _ := chain(t, s)

	var removeSeen bool
	root.Events().On(HierarchyEventName, func(payload any) {
		if payload.(HierarchyEvent).Remove {
			removeSeen = true
		}
	})

	mid.Node().Dispose()
	assert.True(t, removeSeen)
	assert.Empty(t, root.Children())
}
