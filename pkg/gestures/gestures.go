// Package gestures defines the drag and wheel gesture payloads the scroller
// and layer packages react to. It is deliberately narrow: the full
// multi-touch recognizer stack is out of scope, only the shapes scroll
// physics needs to consume a gesture's state.
package gestures

import "github.com/go-drift/engine/pkg/graphics"

// RecognizerState is the lifecycle state of a gesture recognizer.
type RecognizerState int

const (
	// StatePossible is the initial, undecided state.
	StatePossible RecognizerState = iota
	// StateBegan marks the first frame a gesture is recognized as active.
	StateBegan
	// StateChanged marks an in-progress update.
	StateChanged
	// StateEnded marks a successful completion (e.g. finger lifted).
	StateEnded
	// StateCancelled marks an externally aborted gesture.
	StateCancelled
)

// DragEvent describes a single frame of a drag (pan) gesture.
type DragEvent struct {
	// Point is the current touch location in the gesture's coordinate space.
	Point graphics.Point
	// Translation is the cumulative displacement since the drag began.
	Translation graphics.Vector
	// Velocity is the instantaneous velocity (units/s) at this frame.
	Velocity graphics.Vector
	// Time is the event timestamp.
	Time graphics.Duration
}

// WheelEvent describes a single discrete or continuous wheel/trackpad
// scroll tick.
type WheelEvent struct {
	Delta graphics.Vector
	Time  graphics.Duration
}

// OnDrag is the callback shape a drag-driven component (ScrollLayer,
// custom gesture handlers) registers.
type OnDrag func(state RecognizerState, event DragEvent)

// OnWheel is the callback shape registered for wheel/trackpad scroll input.
type OnWheel func(state RecognizerState, event WheelEvent)
