// Package component ships the stock behavior components built on the
// composition core: Lua-scripted behavior and float tweening. Register
// adds their types to a type registry.
package component

import (
	"encoding/json"
	"fmt"

	"github.com/rigcore/rig/internal/core/graph"
	"github.com/rigcore/rig/internal/scripting"
)

// Register adds the stock component types to t.
func Register(t *graph.Types) {
	t.RegisterComponent(ScriptType)
	t.RegisterComponent(TweenType)
}

// ScriptType registers the Lua behavior component.
var ScriptType = &graph.ComponentType{
	Name: "Script",
	Tags: graph.ExtendTags("Script", []string{graph.ComponentTag}),
	New:  func() graph.Component { return &Script{} },
}

// Script runs a Lua chunk as node behavior. The chunk may define global
// update(dt) and tick(dt) functions; each returns a truthy value to report
// that it changed state.
type Script struct {
	graph.Base
	engine *scripting.Engine
	source string
}

func (s *Script) Init() {
	s.engine = scripting.New(s.System().Log())
}

// Source returns the currently loaded chunk.
func (s *Script) Source() string { return s.source }

// SetSource loads a Lua chunk and marks the component for the next update
// pass.
func (s *Script) SetSource(source string) error {
	if err := s.engine.Load(source); err != nil {
		return err
	}
	s.source = source
	s.SetChanged()
	return nil
}

// Engine exposes the VM for host bindings and inspection.
func (s *Script) Engine() *scripting.Engine { return s.engine }

func (s *Script) Update(ctx *graph.FrameContext) bool {
	changed, _ := s.engine.Call("update", ctx.Delta.Seconds())
	return changed
}

func (s *Script) Tick(ctx *graph.FrameContext) bool {
	changed, _ := s.engine.Call("tick", ctx.Delta.Seconds())
	return changed
}

func (s *Script) Dispose() {
	s.engine.Close()
	s.Base.Dispose()
}

type scriptState struct {
	Source string `json:"source,omitempty"`
}

func (s *Script) Deflate() (json.RawMessage, error) {
	if s.source == "" {
		return nil, nil
	}
	return json.Marshal(scriptState{Source: s.source})
}

func (s *Script) Inflate(state json.RawMessage, _ *graph.LinkTable) error {
	if len(state) == 0 {
		return nil
	}
	var st scriptState
	if err := json.Unmarshal(state, &st); err != nil {
		return fmt.Errorf("inflate script: %w", err)
	}
	if st.Source == "" {
		return nil
	}
	if err := s.SetSource(st.Source); err != nil {
		return fmt.Errorf("inflate script: %w", err)
	}
	return nil
}
