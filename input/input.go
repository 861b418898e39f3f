// Package input turns keyboard and mouse state into per-frame game actions.
package input

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type Action string

const (
	MoveForward  Action = "move_forward"
	MoveBackward Action = "move_backward"
	MoveLeft     Action = "move_left"
	MoveRight    Action = "move_right"
	Ascend       Action = "ascend"
	Descend      Action = "descend"
)

// DoublePressThreshold is the longest gap between two presses that still
// counts as a double press.
const DoublePressThreshold = 250 * time.Millisecond

// State is what systems read. Values are latched once per frame by Update.
type State interface {
	IsPressed(a Action) bool
	IsJustPressed(a Action) bool
	IsDoublePressed(a Action) bool
	PointerDeltaX() float32
	PointerDeltaY() float32
}

type Bindings map[Action]ebiten.Key

func DefaultBindings() Bindings {
	return Bindings{
		MoveForward:  ebiten.KeyW,
		MoveBackward: ebiten.KeyS,
		MoveLeft:     ebiten.KeyA,
		MoveRight:    ebiten.KeyD,
		Descend:      ebiten.KeyShiftLeft,
		Ascend:       ebiten.KeySpace,
	}
}

// ParseBindings overlays key names (as accepted by ebiten.Key.UnmarshalText)
// onto the defaults.
func ParseBindings(names map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for action, name := range names {
		a := Action(action)
		if _, ok := b[a]; !ok {
			return nil, fmt.Errorf("input: unknown action %q", action)
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("input: binding %s: %w", action, err)
		}
		b[a] = k
	}
	return b, nil
}

type keyState struct {
	pressed     bool
	lastPressed time.Time
	pressCount  int
}

// Input polls a Source each frame. Press edges, double presses and the
// pointer delta describe the latest Update and hold until the next one.
type Input struct {
	source    Source
	bindings  Bindings
	threshold time.Duration

	keys        map[ebiten.Key]*keyState
	just        map[ebiten.Key]bool
	double      map[ebiten.Key]bool
	cursorKnown bool
	lastX       int
	lastY       int
	deltaX      float32
	deltaY      float32
}

type Option func(*Input)

func WithThreshold(d time.Duration) Option {
	return func(in *Input) {
		if d > 0 {
			in.threshold = d
		}
	}
}

func WithBindings(b Bindings) Option {
	return func(in *Input) {
		if b != nil {
			in.bindings = b
		}
	}
}

func New(source Source, opts ...Option) *Input {
	in := &Input{
		source:    source,
		bindings:  DefaultBindings(),
		threshold: DoublePressThreshold,
		keys:      make(map[ebiten.Key]*keyState),
		just:      make(map[ebiten.Key]bool),
		double:    make(map[ebiten.Key]bool),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Update samples the source. It is called once per frame before the scene
// update.
func (in *Input) Update() {
	now := in.source.Now()
	sampled := make(map[ebiten.Key]struct{}, len(in.bindings))
	for _, key := range in.bindings {
		// actions may share a key
		if _, ok := sampled[key]; ok {
			continue
		}
		sampled[key] = struct{}{}

		state := in.keys[key]
		if state == nil {
			state = &keyState{}
			in.keys[key] = state
		}
		down := in.source.IsKeyPressed(key)
		pressedNow := down && !state.pressed
		in.just[key] = pressedNow
		in.double[key] = false
		if pressedNow {
			isDouble := state.pressCount == 1 && now.Sub(state.lastPressed) <= in.threshold
			in.double[key] = isDouble
			if isDouble {
				state.pressCount = 0
			} else {
				state.pressCount = 1
			}
			state.lastPressed = now
		}
		state.pressed = down
	}

	x, y := in.source.CursorPosition()
	if in.cursorKnown {
		in.deltaX = float32(x - in.lastX)
		in.deltaY = float32(y - in.lastY)
	}
	in.cursorKnown = true
	in.lastX, in.lastY = x, y
}

func (in *Input) IsPressed(a Action) bool {
	key, ok := in.bindings[a]
	if !ok {
		return false
	}
	state := in.keys[key]
	return state != nil && state.pressed
}

// IsJustPressed reports whether the action's key went down in the latest
// Update.
func (in *Input) IsJustPressed(a Action) bool {
	key, ok := in.bindings[a]
	if !ok {
		return false
	}
	return in.just[key]
}

func (in *Input) IsDoublePressed(a Action) bool {
	key, ok := in.bindings[a]
	if !ok {
		return false
	}
	return in.double[key]
}

func (in *Input) PointerDeltaX() float32 { return in.deltaX }
func (in *Input) PointerDeltaY() float32 { return in.deltaY }
