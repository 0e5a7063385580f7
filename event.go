package tetraquery

import (
	"time"

	"github.com/solarlune/tetraquery/scene"
)

// EventType names a kind of pointer event.
type EventType string

const (
	EventClick      EventType = "click"
	EventDblClick   EventType = "dblclick"
	EventMouseDown  EventType = "mousedown"
	EventMouseUp    EventType = "mouseup"
	EventWheel      EventType = "wheel"
	EventMouseMove  EventType = "mousemove"
	EventMouseEnter EventType = "mouseenter"
	EventMouseLeave EventType = "mouseleave"
)

// buttonEvents are the event types a Surface delivers directly and which
// always run a handling pass.
var buttonEvents = []EventType{
	EventClick,
	EventDblClick,
	EventMouseDown,
	EventMouseUp,
	EventWheel,
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone MouseButton = -1
)

// PointerEvent is a pointer event as delivered by a Surface. Coordinates
// are in the same client space as the Surface's Bounds.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Button MouseButton
	DeltaY float64   // Vertical wheel delta, for wheel events.
	Time   time.Time // When the event occurred; zero means now.
}

// Event is passed to callbacks.
type Event struct {
	Type EventType

	// Target wraps the node the callback was registered on.
	Target *Result

	// Original is the pointer event that caused this one.
	Original PointerEvent

	// Hit is the ray-cast hit of the target, nil for mouseleave.
	Hit *scene.RayHit

	// X and Y are the pointer coordinates relative to the surface.
	X, Y float64

	Button MouseButton
	DeltaY float64
	Time   time.Time
}

// Callback is a function registered for events. Callbacks are compared by
// pointer, so keep the *Callback around to remove it later.
type Callback struct {
	fn func(*Event)
}

// NewCallback wraps fn in a Callback.
func NewCallback(fn func(*Event)) *Callback {
	return &Callback{fn: fn}
}

// Call invokes the callback with the event.
func (c *Callback) Call(e *Event) {
	if c != nil && c.fn != nil {
		c.fn(e)
	}
}
