package tetraquery

import (
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/solarlune/tetraquery/scene"
)

// Viewport is a rectangle in client coordinates.
type Viewport struct {
	X, Y, Width, Height float64
}

// Surface is where pointer events come from, such as a window or a canvas.
type Surface interface {
	// Bounds returns the area the scene is drawn to, in the coordinate
	// space of the pointer events.
	Bounds() Viewport

	// AddListener installs fn for pointer events of type t and returns a
	// function removing it.
	AddListener(t EventType, fn func(PointerEvent)) (remove func())
}

// Raycaster finds the nodes under a point of a camera's view.
type Raycaster interface {
	// Raycast returns the hits nearest-first for the point in normalized
	// device coordinates, testing the candidates and their descendants.
	Raycast(camera *scene.Camera, ndcX, ndcY float64, candidates []*scene.Node) []scene.RayHit
}

// Dispatcher turns the pointer events of a Surface into callbacks
// registered with Result.On. It is armed once a Surface and a camera are
// set.
type Dispatcher struct {
	q         *Query
	surface   Surface
	camera    *scene.Camera
	raycaster Raycaster
	removers  []func()

	// Pointer position, in client and normalized device coordinates.
	clientX, clientY float64
	ndcX, ndcY       float64
	ndcValid         bool

	frame uint64
	cache raycastCache
	last  *nodeSet
}

type raycastCache struct {
	valid      bool
	ndcX, ndcY float64
	frame      uint64
	hits       []scene.RayHit
}

func newDispatcher(q *Query) *Dispatcher {
	return &Dispatcher{
		q:         q,
		raycaster: scene.BoundsRaycaster{},
		last:      newNodeSet(),
	}
}

// Attach starts listening to the pointer events of the surface, replacing
// any previously attached surface.
func (d *Dispatcher) Attach(s Surface) {
	d.removeListeners()
	d.surface = s
	if s == nil {
		return
	}

	d.removers = append(d.removers, s.AddListener(EventMouseMove, d.onMove))

	for _, t := range buttonEvents {
		d.removers = append(d.removers, s.AddListener(t, func(ev PointerEvent) {
			d.dispatchLogged(t, ev)
		}))
	}
}

// SetCamera sets the camera rays are cast from.
func (d *Dispatcher) SetCamera(camera *scene.Camera) {
	d.camera = camera
	d.cache = raycastCache{}
}

// Camera returns the camera rays are cast from.
func (d *Dispatcher) Camera() *scene.Camera {
	return d.camera
}

// SetRaycaster replaces the ray-casting primitive. nil restores the
// default, which tests node bounds.
func (d *Dispatcher) SetRaycaster(r Raycaster) {
	if r == nil {
		r = scene.BoundsRaycaster{}
	}
	d.raycaster = r
	d.cache = raycastCache{}
}

// Armed reports whether both a surface and a camera are set.
func (d *Dispatcher) Armed() bool {
	return d.surface != nil && d.camera != nil
}

// AdvanceFrame starts a new frame. Ray-cast results are reused only within
// a frame, so call it once per update after the scene may have moved.
func (d *Dispatcher) AdvanceFrame() {
	d.frame++
}

// Frame returns the current frame number.
func (d *Dispatcher) Frame() uint64 {
	return d.frame
}

// Dispatch moves the pointer to the event's position and runs a handling
// pass for t: every node under the pointer, nearest first, gets its
// callbacks for t invoked. A mousemove pass also dispatches mouseenter and
// mouseleave for the nodes the pointer entered and left since the previous
// mousemove pass.
//
// It returns an error of type ErrTypeConfiguration if no surface or camera
// is set. Panicking callbacks are logged and don't stop the others.
func (d *Dispatcher) Dispatch(t EventType, ev PointerEvent) error {
	if d.surface == nil {
		return errors.New("renderer not set").
			WithType(ErrTypeConfiguration).
			WithTag("event_type", t)
	}
	if d.camera == nil {
		return errors.New("camera not set").
			WithType(ErrTypeConfiguration).
			WithTag("event_type", t)
	}

	d.updatePointer(ev)

	hits := dedupHits(d.raycast())

	for i := range hits {
		d.invoke(t, hits[i].Node, &hits[i], ev)
	}

	if t == EventMouseMove {
		d.syncHover(hits, ev)
	}

	return nil
}

// Detach removes the surface listeners, every registered callback, the
// hover state and the ray-cast cache. The camera is kept. Detaching an
// unarmed Dispatcher does nothing.
func (d *Dispatcher) Detach() {
	if d.surface == nil {
		return
	}

	d.removeListeners()
	d.q.events.clear()
	d.last = newNodeSet()
	d.cache = raycastCache{}
	d.clientX, d.clientY = 0, 0
	d.ndcX, d.ndcY = 0, 0
	d.ndcValid = false
	d.surface = nil
}

func (d *Dispatcher) removeListeners() {
	for _, remove := range d.removers {
		if remove != nil {
			remove()
		}
	}
	d.removers = nil
}

func (d *Dispatcher) onMove(ev PointerEvent) {
	if !d.q.events.has(EventMouseMove, EventMouseEnter, EventMouseLeave) {
		d.updatePointer(ev)
		return
	}
	d.dispatchLogged(EventMouseMove, ev)
}

func (d *Dispatcher) dispatchLogged(t EventType, ev PointerEvent) {
	if err := d.Dispatch(t, ev); err != nil {
		logs.Warn(err)
	}
}

func (d *Dispatcher) updatePointer(ev PointerEvent) {
	d.clientX, d.clientY = ev.X, ev.Y
	d.ndcValid = false

	if d.surface == nil {
		return
	}

	b := d.surface.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return
	}

	d.ndcX = ((ev.X-b.X)/b.Width)*2 - 1
	d.ndcY = -((ev.Y-b.Y)/b.Height)*2 + 1
	d.ndcValid = true
}

func (d *Dispatcher) raycast() []scene.RayHit {
	if !d.ndcValid {
		return nil
	}

	c := d.cache
	if c.valid && c.ndcX == d.ndcX && c.ndcY == d.ndcY && c.frame == d.frame {
		raycastCacheHits.Inc()
		return c.hits
	}

	raycasts.Inc()
	hits := d.raycaster.Raycast(d.camera, d.ndcX, d.ndcY, d.q.root.Children())

	d.cache = raycastCache{
		valid: true,
		ndcX:  d.ndcX,
		ndcY:  d.ndcY,
		frame: d.frame,
		hits:  hits,
	}
	return hits
}

// dedupHits keeps the first hit of every node.
func dedupHits(hits []scene.RayHit) []scene.RayHit {
	seen := newNodeSet()
	out := make([]scene.RayHit, 0, len(hits))
	for _, h := range hits {
		if h.Node != nil && seen.add(h.Node) {
			out = append(out, h)
		}
	}
	return out
}

func (d *Dispatcher) syncHover(hits []scene.RayHit, ev PointerEvent) {
	current := newNodeSet()
	hitOf := make(map[*scene.Node]*scene.RayHit, len(hits))
	for i := range hits {
		current.add(hits[i].Node)
		hitOf[hits[i].Node] = &hits[i]
	}

	entered := current.difference(d.last)
	left := d.last.difference(current)
	d.last = current

	for _, n := range entered {
		d.invoke(EventMouseEnter, n, hitOf[n], ev)
	}
	for _, n := range left {
		d.invoke(EventMouseLeave, n, nil, ev)
	}
}

func (d *Dispatcher) invoke(t EventType, n *scene.Node, hit *scene.RayHit, ev PointerEvent) {
	cbs := d.q.events.callbacks(t, n)
	if len(cbs) == 0 {
		return
	}

	var x, y float64
	if d.surface != nil {
		b := d.surface.Bounds()
		x, y = ev.X-b.X, ev.Y-b.Y
	}

	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	for _, cb := range cbs {
		e := &Event{
			Type:     t,
			Target:   d.q.wrap(n),
			Original: ev,
			Hit:      hit,
			X:        x,
			Y:        y,
			Button:   ev.Button,
			DeltaY:   ev.DeltaY,
			Time:     ts,
		}
		d.call(cb, e, n)
	}
}

func (d *Dispatcher) call(cb *Callback, e *Event, n *scene.Node) {
	defer func() {
		if r := recover(); r != nil {
			instrumentCallbackFailure(e.Type)

			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}

			logs.Warn(errors.New("event callback failed").
				WithType(ErrTypeCallbackFailed).
				WithTag("event_type", e.Type).
				WithTag("node", n.Name()).
				Wrap(err))
		}
	}()

	cb.Call(e)
}
