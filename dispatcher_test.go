package tetraquery

import (
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/solarlune/tetraquery/scene"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	fn func(PointerEvent)
}

type fakeSurface struct {
	bounds    Viewport
	listeners map[EventType][]*fakeListener
	removed   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		bounds:    Viewport{Width: 100, Height: 100},
		listeners: map[EventType][]*fakeListener{},
	}
}

func (s *fakeSurface) Bounds() Viewport {
	return s.bounds
}

func (s *fakeSurface) AddListener(t EventType, fn func(PointerEvent)) func() {
	l := &fakeListener{fn: fn}
	s.listeners[t] = append(s.listeners[t], l)

	return func() {
		for i, other := range s.listeners[t] {
			if other == l {
				s.listeners[t] = append(s.listeners[t][:i], s.listeners[t][i+1:]...)
				s.removed++
				return
			}
		}
	}
}

func (s *fakeSurface) emit(t EventType, x, y float64) {
	for _, l := range s.listeners[t] {
		l.fn(PointerEvent{Type: t, X: x, Y: y})
	}
}

func (s *fakeSurface) listenerCount() int {
	count := 0
	for _, l := range s.listeners {
		count += len(l)
	}
	return count
}

// fakeRaycaster hits its nodes, in order, when the pointer is on the left
// half of the viewport.
type fakeRaycaster struct {
	nodes []*scene.Node
	calls int
	ndcX  float64
	ndcY  float64
}

func (r *fakeRaycaster) Raycast(camera *scene.Camera, ndcX, ndcY float64, candidates []*scene.Node) []scene.RayHit {
	r.calls++
	r.ndcX, r.ndcY = ndcX, ndcY
	if ndcX >= 0 {
		return nil
	}

	var hits []scene.RayHit
	for i, n := range r.nodes {
		hits = append(hits, scene.RayHit{Node: n, Distance: float64(i + 1)})
	}
	return hits
}

func newTestDispatcher(hit ...*scene.Node) (*Dispatcher, *fakeSurface, *fakeRaycaster) {
	q, _ := newTestScene()
	d := q.Dispatcher()

	rc := &fakeRaycaster{nodes: hit}
	s := newFakeSurface()

	d.SetRaycaster(rc)
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(s)
	return d, s, rc
}

func TestDispatchRequiresSurfaceAndCamera(t *testing.T) {
	q, _ := newTestScene()
	d := q.Dispatcher()
	require.False(t, d.Armed())

	err := d.Dispatch(EventClick, PointerEvent{})
	require.True(t, errors.IsType(err, ErrTypeConfiguration))
	require.Contains(t, err.Error(), "renderer not set")

	d.Attach(newFakeSurface())
	err = d.Dispatch(EventClick, PointerEvent{})
	require.True(t, errors.IsType(err, ErrTypeConfiguration))
	require.Contains(t, err.Error(), "camera not set")

	d.SetCamera(scene.NewCamera("camera"))
	require.True(t, d.Armed())
	require.NoError(t, d.Dispatch(EventClick, PointerEvent{}))
}

func TestDispatchClick(t *testing.T) {
	q, nodes := newTestScene()
	d := q.Dispatcher()
	rc := &fakeRaycaster{nodes: []*scene.Node{nodes["enemy1"], nodes["eye"], nodes["enemy1"]}}
	s := newFakeSurface()
	s.bounds = Viewport{X: 10, Y: 20, Width: 100, Height: 50}
	d.SetRaycaster(rc)
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(s)

	var events []*Event
	cb := NewCallback(func(e *Event) {
		events = append(events, e)
	})
	q.MustSelect(".enemy, .eye").On(EventClick, cb)

	now := time.Now()
	s.listeners[EventClick][0].fn(PointerEvent{
		Type:   EventClick,
		X:      35,
		Y:      45,
		Button: MouseButtonRight,
		Time:   now,
	})

	require.InDelta(t, -0.5, rc.ndcX, 1e-9)
	require.InDelta(t, 0, rc.ndcY, 1e-9)

	// Duplicate hits of a node are dropped, nearest first.
	require.Len(t, events, 2)
	require.Equal(t, nodes["enemy1"], events[0].Target.Object())
	require.Equal(t, nodes["eye"], events[1].Target.Object())
	require.Equal(t, 1.0, events[0].Hit.Distance)
	require.Equal(t, 2.0, events[1].Hit.Distance)

	e := events[0]
	require.Equal(t, EventClick, e.Type)
	require.Equal(t, 25.0, e.X)
	require.Equal(t, 25.0, e.Y)
	require.Equal(t, MouseButtonRight, e.Button)
	require.Equal(t, now, e.Time)
	require.Equal(t, q, e.Target.Query())
}

func TestDispatchEnterLeave(t *testing.T) {
	q, nodes := newTestScene()
	cube := nodes["enemy2"]
	d := q.Dispatcher()
	rc := &fakeRaycaster{nodes: []*scene.Node{cube}}
	s := newFakeSurface()
	d.SetRaycaster(rc)
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(s)

	var enters, leaves []*Event
	r, err := q.Select(N(cube))
	require.NoError(t, err)
	r.On(EventMouseEnter, NewCallback(func(e *Event) {
		enters = append(enters, e)
	}))
	r.On(EventMouseLeave, NewCallback(func(e *Event) {
		leaves = append(leaves, e)
	}))

	s.emit(EventMouseMove, 10, 50)
	require.Len(t, enters, 1)
	require.Empty(t, leaves)
	require.Equal(t, cube, enters[0].Target.Object())
	require.NotNil(t, enters[0].Hit)

	s.emit(EventMouseMove, 20, 50)
	require.Len(t, enters, 1)

	s.emit(EventMouseMove, 90, 50)
	require.Len(t, enters, 1)
	require.Len(t, leaves, 1)
	require.Equal(t, cube, leaves[0].Target.Object())
	require.Nil(t, leaves[0].Hit)

	s.emit(EventMouseMove, 95, 50)
	require.Len(t, leaves, 1)
}

func TestDispatchMoveWithoutListenersSkipsRaycast(t *testing.T) {
	d, s, rc := newTestDispatcher()

	s.emit(EventMouseMove, 10, 10)
	require.Zero(t, rc.calls)

	// Button events always run.
	s.emit(EventMouseDown, 10, 10)
	require.Equal(t, 1, rc.calls)
	require.InDelta(t, -0.8, rc.ndcX, 1e-9)
	require.InDelta(t, 0.8, rc.ndcY, 1e-9)

	n := scene.NewNode("n")
	d.q.wrap(n).On(EventMouseMove, NewCallback(func(*Event) {}))
	s.emit(EventMouseMove, 20, 10)
	require.Equal(t, 2, rc.calls)
}

func TestDispatchCachesRaycastPerFrame(t *testing.T) {
	d, _, rc := newTestDispatcher()

	hits := testutil.ToFloat64(raycastCacheHits)
	casts := testutil.ToFloat64(raycasts)

	ev := PointerEvent{X: 10, Y: 10}
	require.NoError(t, d.Dispatch(EventClick, ev))
	require.NoError(t, d.Dispatch(EventMouseUp, ev))
	require.Equal(t, 1, rc.calls)
	require.Equal(t, hits+1, testutil.ToFloat64(raycastCacheHits))
	require.Equal(t, casts+1, testutil.ToFloat64(raycasts))

	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 11, Y: 10}))
	require.Equal(t, 2, rc.calls)

	d.AdvanceFrame()
	require.Equal(t, uint64(1), d.Frame())
	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 11, Y: 10}))
	require.Equal(t, 3, rc.calls)
}

func TestDispatchEmptyViewportHitsNothing(t *testing.T) {
	q, nodes := newTestScene()
	d := q.Dispatcher()
	rc := &fakeRaycaster{nodes: []*scene.Node{nodes["hero"]}}
	s := newFakeSurface()
	s.bounds = Viewport{}
	d.SetRaycaster(rc)
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(s)

	called := false
	q.MustSelect("#hero").On(EventClick, NewCallback(func(*Event) { called = true }))

	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))
	require.Zero(t, rc.calls)
	require.False(t, called)
}

func TestDispatchIsolatesCallbackPanics(t *testing.T) {
	b := captureLogs(t)
	q, nodes := newTestScene()
	d := q.Dispatcher()
	d.SetRaycaster(&fakeRaycaster{nodes: []*scene.Node{nodes["hero"], nodes["enemy1"]}})
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(newFakeSurface())

	failures := testutil.ToFloat64(callbackFailures.WithLabelValues(string(EventClick)))

	var calls []string
	q.MustSelect("#hero").
		On(EventClick, NewCallback(func(*Event) { panic("boom") })).
		On(EventClick, NewCallback(func(*Event) { calls = append(calls, "hero") }))
	q.MustSelect(".enemy").
		On(EventClick, NewCallback(func(*Event) { calls = append(calls, "enemy") }))

	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))
	require.Equal(t, []string{"hero", "enemy"}, calls)
	require.Contains(t, b.String(), "event callback failed")
	require.Equal(t, failures+1, testutil.ToFloat64(callbackFailures.WithLabelValues(string(EventClick))))
}

func TestDispatchCallbacksMayMutateRegistry(t *testing.T) {
	q, nodes := newTestScene()
	d := q.Dispatcher()
	d.SetRaycaster(&fakeRaycaster{nodes: []*scene.Node{nodes["hero"]}})
	d.SetCamera(scene.NewCamera("camera"))
	d.Attach(newFakeSurface())

	hero := q.MustSelect("#hero")
	calls := 0
	var once *Callback
	once = NewCallback(func(e *Event) {
		calls++
		e.Target.Off(EventClick, once)
	})
	second := NewCallback(func(*Event) { calls++ })
	hero.On(EventClick, once).On(EventClick, second)

	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))
	require.Equal(t, 2, calls)

	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))
	require.Equal(t, 3, calls)
}

func TestDetach(t *testing.T) {
	d, s, rc := newTestDispatcher()
	require.Equal(t, 1+len(buttonEvents), s.listenerCount())

	n := scene.NewNode("n")
	d.q.wrap(n).On(EventClick, NewCallback(func(*Event) {}))
	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))

	d.Detach()
	require.Zero(t, s.listenerCount())
	require.Zero(t, d.q.events.len())
	require.False(t, d.Armed())
	require.NotNil(t, d.Camera())

	err := d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10})
	require.True(t, errors.IsType(err, ErrTypeConfiguration))
	require.Equal(t, 1, rc.calls)

	d.Detach()
	require.Equal(t, 1+len(buttonEvents), s.removed)
}

func TestDetachUnattachedKeepsCallbacks(t *testing.T) {
	q, _ := newTestScene()
	d := q.Dispatcher()
	d.SetCamera(scene.NewCamera("camera"))

	q.MustSelect("*").On(EventClick, NewCallback(func(*Event) {}))
	before := q.events.len()
	require.Equal(t, 7, before)

	d.Detach()
	require.Equal(t, before, q.events.len())

	// Callbacks registered before attaching still fire.
	rc := &fakeRaycaster{nodes: q.MustSelect("#hero").Objects()}
	d.SetRaycaster(rc)
	d.Attach(newFakeSurface())

	calls := 0
	q.MustSelect("#hero").On(EventClick, NewCallback(func(*Event) { calls++ }))
	require.NoError(t, d.Dispatch(EventClick, PointerEvent{X: 10, Y: 10}))
	require.Equal(t, 1, calls)
}

func TestAttachReplacesSurface(t *testing.T) {
	d, first, _ := newTestDispatcher()

	second := newFakeSurface()
	d.Attach(second)
	require.Zero(t, first.listenerCount())
	require.Equal(t, 1+len(buttonEvents), second.listenerCount())
}
