package tetraquery

import "github.com/solarlune/tetraquery/scene"

type registryKey struct {
	eventType EventType
	node      *scene.Node
}

// registry maps (event type, node) pairs to ordered callback sets. Empty
// entries are removed.
type registry struct {
	entries map[registryKey][]*Callback
	counts  map[EventType]int
}

func newRegistry() *registry {
	return &registry{
		entries: map[registryKey][]*Callback{},
		counts:  map[EventType]int{},
	}
}

func (r *registry) add(t EventType, n *scene.Node, cb *Callback) {
	key := registryKey{t, n}
	cbs := r.entries[key]
	for _, c := range cbs {
		if c == cb {
			return
		}
	}
	if len(cbs) == 0 {
		r.counts[t]++
	}
	r.entries[key] = append(cbs, cb)
}

func (r *registry) remove(t EventType, n *scene.Node, cb *Callback) {
	key := registryKey{t, n}
	cbs := r.entries[key]
	for i, c := range cbs {
		if c == cb {
			cbs = append(cbs[:i:i], cbs[i+1:]...)
			break
		}
	}
	if len(cbs) == 0 {
		r.removeAll(t, n)
		return
	}
	r.entries[key] = cbs
}

func (r *registry) removeAll(t EventType, n *scene.Node) {
	key := registryKey{t, n}
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	if r.counts[t]--; r.counts[t] <= 0 {
		delete(r.counts, t)
	}
}

// callbacks returns a snapshot of the callbacks registered for the pair.
func (r *registry) callbacks(t EventType, n *scene.Node) []*Callback {
	return append([]*Callback(nil), r.entries[registryKey{t, n}]...)
}

// has reports whether any node has callbacks for one of the event types.
func (r *registry) has(types ...EventType) bool {
	for _, t := range types {
		if r.counts[t] > 0 {
			return true
		}
	}
	return false
}

func (r *registry) len() int {
	return len(r.entries)
}

func (r *registry) clear() {
	r.entries = map[registryKey][]*Callback{}
	r.counts = map[EventType]int{}
}
