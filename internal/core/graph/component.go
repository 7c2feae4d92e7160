package graph

import (
	"encoding/json"
	"time"

	"github.com/rigcore/rig/internal/core/event"
	"github.com/rigcore/rig/internal/core/object"
)

// FrameContext carries per-frame timing to the lifecycle hooks. The frame
// driver fills one in and passes it through Update, Tick, PreRender and
// PostRender in that order, once per frame.
type FrameContext struct {
	Time  time.Time
	Delta time.Duration
	Frame uint64
}

// Component is a typed behavior unit owned by exactly one node. Concrete
// components embed Base and override the hooks they care about. The
// unexported methods keep Base the only possible implementation root.
type Component interface {
	object.Typed

	// ID returns the component's opaque identity, stable across its
	// lifetime and preserved through serialization.
	ID() string
	Type() *ComponentType
	Node() *Node
	Graph() *Graph
	System() *System
	Events() *event.Emitter

	// Changed reports the dirty flag. SetChanged marks the component for
	// the next update pass.
	Changed() bool
	SetChanged()

	// Init runs once after the component is attached to its node and
	// registered, before it is returned to the caller.
	Init()

	// Update runs when the component is marked changed; it returns true
	// when the update altered state downstream. Tick runs every frame.
	Update(ctx *FrameContext) bool
	Tick(ctx *FrameContext) bool
	PreRender(ctx *FrameContext)
	PostRender(ctx *FrameContext)

	// Inflate restores declared state from a serialized record.
	// InflateLinks runs in a second pass, once every object in the record
	// exists, to restore references between components. Deflate produces
	// the state record, nil when the component has none.
	Inflate(state json.RawMessage, links *LinkTable) error
	InflateLinks(state json.RawMessage, links *LinkTable) error
	Deflate() (json.RawMessage, error)

	// Dispose detaches the component from structural relationships and
	// removes it from every registry. Overriders must finish by calling
	// their embedded Base's Dispose.
	Dispose()

	attach(self Component, typ *ComponentType, node *Node, id string)
	clearChanged()
}

// Base supplies the default Component behavior. It records the outer
// component value at attach time so registry removal and type queries see
// the concrete type rather than Base itself.
type Base struct {
	events  event.Emitter
	self    Component
	typ     *ComponentType
	node    *Node
	id      string
	changed bool
}

func (b *Base) attach(self Component, typ *ComponentType, node *Node, id string) {
	b.self = self
	b.typ = typ
	b.node = node
	b.id = id
	b.changed = true // new components run in their first update pass
}

func (b *Base) TypeName() string        { return b.typ.Name }
func (b *Base) TypeTags() []string      { return b.typ.Tags }
func (b *Base) ID() string              { return b.id }
func (b *Base) Type() *ComponentType    { return b.typ }
func (b *Base) Node() *Node             { return b.node }
func (b *Base) Graph() *Graph           { return b.node.graph }
func (b *Base) System() *System         { return b.node.graph.system }
func (b *Base) Events() *event.Emitter  { return &b.events }

func (b *Base) Changed() bool { return b.changed }
func (b *Base) SetChanged()   { b.changed = true }
func (b *Base) clearChanged() { b.changed = false }

func (b *Base) Init() {}

func (b *Base) Update(*FrameContext) bool { return false }
func (b *Base) Tick(*FrameContext) bool   { return false }
func (b *Base) PreRender(*FrameContext)   {}
func (b *Base) PostRender(*FrameContext)  {}

func (b *Base) Inflate(json.RawMessage, *LinkTable) error      { return nil }
func (b *Base) InflateLinks(json.RawMessage, *LinkTable) error { return nil }
func (b *Base) Deflate() (json.RawMessage, error)              { return nil, nil }

// Dispose removes the component from its node's, graph's, and system's
// registries.
func (b *Base) Dispose() {
	b.node.components.Remove(b.self)
	b.node.graph.components.Remove(b.self)
	b.node.graph.system.removeComponent(b.self)
}
