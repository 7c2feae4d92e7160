package component

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/rigcore/rig/internal/core/graph"
)

// TweenType registers the float interpolation component.
var TweenType = &graph.ComponentType{
	Name: "Tween",
	Tags: graph.ExtendTags("Tween", []string{graph.ComponentTag}),
	New:  func() graph.Component { return &Tween{} },
}

// Tween interpolates Value from From to To over Duration seconds,
// advancing on every tick while running. There is no animation manager;
// the frame loop drives it like any other component.
type Tween struct {
	graph.Base
	From     float32
	To       float32
	Duration float32
	Value    float32

	tween *gween.Tween
	done  bool
}

// Start begins (or restarts) the interpolation with the current
// parameters.
func (t *Tween) Start() {
	t.tween = gween.New(t.From, t.To, t.Duration, ease.Linear)
	t.Value = t.From
	t.done = false
	t.SetChanged()
}

// Running reports whether the tween has started and not yet finished.
func (t *Tween) Running() bool {
	return t.tween != nil && !t.done
}

func (t *Tween) Tick(ctx *graph.FrameContext) bool {
	if !t.Running() {
		return false
	}
	v, finished := t.tween.Update(float32(ctx.Delta.Seconds()))
	t.Value = v
	t.done = finished
	t.SetChanged()
	return true
}

type tweenState struct {
	From     float32 `json:"from"`
	To       float32 `json:"to"`
	Duration float32 `json:"duration"`
	Autoplay bool    `json:"autoplay,omitempty"`
}

func (t *Tween) Deflate() (json.RawMessage, error) {
	return json.Marshal(tweenState{
		From:     t.From,
		To:       t.To,
		Duration: t.Duration,
		Autoplay: t.Running(),
	})
}

func (t *Tween) Inflate(state json.RawMessage, _ *graph.LinkTable) error {
	if len(state) == 0 {
		return nil
	}
	var st tweenState
	if err := json.Unmarshal(state, &st); err != nil {
		return fmt.Errorf("inflate tween: %w", err)
	}
	t.From = st.From
	t.To = st.To
	t.Duration = st.Duration
	t.Value = st.From
	if st.Autoplay {
		t.Start()
	}
	return nil
}
