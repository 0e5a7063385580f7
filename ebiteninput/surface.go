// Package ebiteninput delivers Ebitengine mouse input to a tetraquery
// Dispatcher.
//
//	surface := ebiteninput.NewSurface(q.Dispatcher())
//	q.Dispatcher().Attach(surface)
//
//	func (g *Game) Update() error {
//		surface.Update()
//		...
//	}
package ebiteninput

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/solarlune/tetraquery"
)

// DefaultDoubleClickInterval is the longest delay between two clicks of the
// same button making a double click.
const DefaultDoubleClickInterval = 400 * time.Millisecond

var buttons = [...]struct {
	ebiten ebiten.MouseButton
	button tetraquery.MouseButton
}{
	{ebiten.MouseButtonLeft, tetraquery.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, tetraquery.MouseButtonMiddle},
	{ebiten.MouseButtonRight, tetraquery.MouseButtonRight},
}

// Surface polls the mouse once per Update and emits the resulting pointer
// events to its listeners. It implements tetraquery.Surface.
type Surface struct {
	// Viewport is the screen area the scene is drawn to. A zero Viewport
	// uses the whole window.
	Viewport tetraquery.Viewport

	// DoubleClickInterval is the longest delay between two clicks of the
	// same button making a double click.
	DoubleClickInterval time.Duration

	frames    interface{ AdvanceFrame() }
	listeners map[tetraquery.EventType][]*listener

	cursorX, cursorY float64
	cursorKnown      bool
	lastClick        [len(buttons)]time.Time
}

type listener struct {
	fn func(tetraquery.PointerEvent)
}

// NewSurface creates a Surface advancing the frame of the dispatcher on
// every Update. The dispatcher can be nil.
func NewSurface(dispatcher *tetraquery.Dispatcher) *Surface {
	s := &Surface{
		DoubleClickInterval: DefaultDoubleClickInterval,
		listeners:           map[tetraquery.EventType][]*listener{},
	}
	if dispatcher != nil {
		s.frames = dispatcher
	}
	return s
}

// Bounds returns the Viewport, or the window area if the Viewport is zero.
func (s *Surface) Bounds() tetraquery.Viewport {
	if s.Viewport.Width > 0 && s.Viewport.Height > 0 {
		return s.Viewport
	}
	w, h := ebiten.WindowSize()
	return tetraquery.Viewport{Width: float64(w), Height: float64(h)}
}

// AddListener installs fn for the event type.
func (s *Surface) AddListener(t tetraquery.EventType, fn func(tetraquery.PointerEvent)) func() {
	l := &listener{fn: fn}
	s.listeners[t] = append(s.listeners[t], l)

	return func() {
		ls := s.listeners[t]
		for i, other := range ls {
			if other == l {
				s.listeners[t] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
		if len(s.listeners[t]) == 0 {
			delete(s.listeners, t)
		}
	}
}

// Update polls the mouse and emits the pointer events since the previous
// Update. Call it once per ebiten.Game.Update.
func (s *Surface) Update() {
	s.process(poll(), time.Now())
}

// input is the mouse state of one tick.
type input struct {
	x, y     float64
	pressed  [len(buttons)]bool
	released [len(buttons)]bool
	wheelY   float64
}

func poll() input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()

	in := input{
		x:      float64(mx),
		y:      float64(my),
		wheelY: wy,
	}
	for i, b := range buttons {
		in.pressed[i] = inpututil.IsMouseButtonJustPressed(b.ebiten)
		in.released[i] = inpututil.IsMouseButtonJustReleased(b.ebiten)
	}
	return in
}

func (s *Surface) process(in input, now time.Time) {
	if s.frames != nil {
		s.frames.AdvanceFrame()
	}

	ev := tetraquery.PointerEvent{
		X:      in.x,
		Y:      in.y,
		Button: tetraquery.MouseButtonNone,
		Time:   now,
	}

	if !s.cursorKnown || in.x != s.cursorX || in.y != s.cursorY {
		s.cursorX, s.cursorY = in.x, in.y
		s.cursorKnown = true
		s.emit(tetraquery.EventMouseMove, ev)
	}

	for i, b := range buttons {
		ev.Button = b.button

		if in.pressed[i] {
			s.emit(tetraquery.EventMouseDown, ev)
		}

		if in.released[i] {
			s.emit(tetraquery.EventMouseUp, ev)
			s.emit(tetraquery.EventClick, ev)

			if !s.lastClick[i].IsZero() && now.Sub(s.lastClick[i]) <= s.DoubleClickInterval {
				s.emit(tetraquery.EventDblClick, ev)
				s.lastClick[i] = time.Time{}
			} else {
				s.lastClick[i] = now
			}
		}
	}

	if in.wheelY != 0 {
		ev.Button = tetraquery.MouseButtonNone
		ev.DeltaY = in.wheelY
		s.emit(tetraquery.EventWheel, ev)
	}
}

func (s *Surface) emit(t tetraquery.EventType, ev tetraquery.PointerEvent) {
	ev.Type = t
	for _, l := range append([]*listener(nil), s.listeners[t]...) {
		l.fn(ev)
	}
}
