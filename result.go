package tetraquery

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/solarlune/tetraquery/scene"
)

// Result is an ordered list of nodes returned by a query. Setters apply to
// every node and return the Result for chaining; getters read the first
// node and return a zero value when the Result is empty.
type Result struct {
	nodes []*scene.Node
	q     *Query
}

func (q *Query) wrap(nodes ...*scene.Node) *Result {
	return &Result{nodes: nodes, q: q}
}

// Query returns the Query the Result belongs to.
func (r *Result) Query() *Query {
	return r.q
}

// Len returns the number of nodes in the Result.
func (r *Result) Len() int {
	return len(r.nodes)
}

// Object returns the node of a single-node Result, or nil if the Result
// doesn't hold exactly one node. Use Objects to get the nodes of any
// Result.
func (r *Result) Object() *scene.Node {
	if len(r.nodes) != 1 {
		return nil
	}
	return r.nodes[0]
}

// Objects returns a copy of the nodes of the Result.
func (r *Result) Objects() []*scene.Node {
	return append([]*scene.Node{}, r.nodes...)
}

func (r *Result) first() *scene.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// Each calls fn for every node with its index.
func (r *Result) Each(fn func(i int, node *scene.Node)) *Result {
	for i, n := range r.nodes {
		fn(i, n)
	}
	return r
}

// Find runs the selector with every node of the Result as context and
// concatenates the matches. Nodes found from several contexts appear once
// per context.
func (r *Result) Find(sel Selector) (*Result, error) {
	var found []*scene.Node
	for _, n := range r.nodes {
		nodes, err := r.q.query(sel, n)
		if err != nil {
			return nil, err
		}
		found = append(found, nodes...)
	}
	return r.q.wrap(found...), nil
}

// Position returns the local position of the first node.
func (r *Result) Position() scene.Vector {
	if n := r.first(); n != nil {
		return n.LocalPosition()
	}
	return scene.Vector{}
}

// SetPosition sets the local position of every node.
func (r *Result) SetPosition(x, y, z float64) *Result {
	for _, n := range r.nodes {
		n.SetLocalPosition(x, y, z)
	}
	return r
}

// Scale returns the local scale of the first node.
func (r *Result) Scale() scene.Vector {
	if n := r.first(); n != nil {
		return n.LocalScale()
	}
	return scene.Vector{}
}

// SetScale sets the local scale of every node.
func (r *Result) SetScale(x, y, z float64) *Result {
	for _, n := range r.nodes {
		n.SetLocalScale(x, y, z)
	}
	return r
}

// Rotation returns the Euler rotation of the first node.
func (r *Result) Rotation() scene.Euler {
	if n := r.first(); n != nil {
		return n.LocalEuler()
	}
	return scene.Euler{}
}

// SetRotation sets the rotation of every node from XYZ Euler angles in
// radians.
func (r *Result) SetRotation(x, y, z float64) *Result {
	for _, n := range r.nodes {
		n.SetLocalEuler(scene.NewEuler(x, y, z))
	}
	return r
}

// Quaternion returns the orientation of the first node.
func (r *Result) Quaternion() scene.Quaternion {
	if n := r.first(); n != nil {
		return n.LocalRotation()
	}
	return scene.NewQuaternionIdentity()
}

// SetQuaternion copies the orientation to every node.
func (r *Result) SetQuaternion(q scene.Quaternion) *Result {
	for _, n := range r.nodes {
		n.SetLocalRotation(q)
	}
	return r
}

// Material returns the first material of the first node.
func (r *Result) Material() *scene.Material {
	if n := r.first(); n != nil {
		return n.Material()
	}
	return nil
}

// SetMaterial applies the settings to the first material slot of every
// node, or to every slot if applyAll is true. Keys are applied in sorted
// order. A key the material doesn't have, or a value of the wrong type, is
// logged and skipped.
func (r *Result) SetMaterial(settings map[string]any, applyAll bool) *Result {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, n := range r.nodes {
		slots := n.Materials()
		if len(slots) == 0 {
			continue
		}
		if !applyAll {
			slots = slots[:1]
		}

		for _, mat := range slots {
			if mat == nil {
				continue
			}
			for _, k := range keys {
				if err := mat.Set(k, settings[k]); err != nil {
					logMaterialError(n, mat, k, err)
				}
			}
		}
	}
	return r
}

func logMaterialError(n *scene.Node, mat *scene.Material, key string, err error) {
	errType := ErrTypeInvalidMaterialValue
	msg := "invalid material value"
	if errors.IsType(err, scene.ErrTypeUnknownMaterialProperty) {
		errType = ErrTypeUnrecognizedMaterialProperty
		msg = "material property not recognized"
	}

	logs.Warn(errors.New(msg).
		WithType(errType).
		WithTag("node", n.Name()).
		WithTag("material", mat.Name).
		WithTag("property", key).
		Wrap(err))
}

// Toggle flips the visibility of every node.
func (r *Result) Toggle() *Result {
	for _, n := range r.nodes {
		n.SetVisible(!n.Visible(), false)
	}
	return r
}

// Visible returns the visibility of the first node.
func (r *Result) Visible() bool {
	if n := r.first(); n != nil {
		return n.Visible()
	}
	return false
}

// Show sets the visibility of every node.
func (r *Result) Show(visible bool) *Result {
	for _, n := range r.nodes {
		n.SetVisible(visible, false)
	}
	return r
}

// ID returns the id of the first node.
func (r *Result) ID() string {
	if n := r.first(); n != nil {
		if m, ok := r.q.meta[n]; ok {
			return m.id
		}
	}
	return ""
}

// SetID sets the id of every node, updating the id index and the label's
// #id tag. Other tags of the label are kept. An empty id removes it.
func (r *Result) SetID(id string) *Result {
	for _, n := range r.nodes {
		r.q.setID(n, id)
	}
	return r
}

// Classes returns the classes of the first node.
func (r *Result) Classes() []string {
	if n := r.first(); n != nil {
		if m, ok := r.q.meta[n]; ok {
			return append([]string{}, m.classes...)
		}
	}
	return []string{}
}

// HasClass reports whether the first node has the class.
func (r *Result) HasClass(cls string) bool {
	if n := r.first(); n != nil {
		if m, ok := r.q.meta[n]; ok {
			return m.hasClass(cls)
		}
	}
	return false
}

// AddClass adds the class to every node that doesn't have it yet.
func (r *Result) AddClass(cls string) *Result {
	for _, n := range r.nodes {
		r.q.addClass(n, cls)
	}
	return r
}

// RemoveClass removes the class from every node that has it.
func (r *Result) RemoveClass(cls string) *Result {
	for _, n := range r.nodes {
		r.q.removeClass(n, cls)
	}
	return r
}

// ToggleClass removes the class from the nodes having it and adds it to
// the others.
func (r *Result) ToggleClass(cls string) *Result {
	for _, n := range r.nodes {
		if m, ok := r.q.meta[n]; ok && m.hasClass(cls) {
			r.q.removeClass(n, cls)
		} else {
			r.q.addClass(n, cls)
		}
	}
	return r
}

// Parent returns the parent of the first node.
func (r *Result) Parent() *scene.Node {
	if n := r.first(); n != nil {
		return n.Parent()
	}
	return nil
}

// SetParent moves every node under parent, keeping their local transforms.
// A nil parent detaches them. Nodes that are the parent or one of its
// ancestors are left in place.
func (r *Result) SetParent(parent *scene.Node) *Result {
	for _, n := range r.nodes {
		if parent == nil {
			n.Unparent()
			continue
		}
		if n == parent || parent.IsDescendantOf(n) {
			logs.WithTag("node", n.Name()).
				WithTag("parent", parent.Name()).
				Debug("skipping reparenting that would create a cycle")
			continue
		}
		parent.AddChildren(n)
	}
	return r
}

// AppendTo moves every node under the first node of target. It does
// nothing if target is empty.
func (r *Result) AppendTo(target *Result) *Result {
	if p := target.first(); p != nil {
		r.SetParent(p)
	}
	return r
}

// Clone deep-copies every node. The clones are detached and aren't
// scanned; call Query.Scan on them to index their labels.
func (r *Result) Clone() *Result {
	clones := make([]*scene.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		clones = append(clones, n.Clone())
	}
	return r.q.wrap(clones...)
}

// On registers the callback for the event type on every node.
func (r *Result) On(t EventType, cb *Callback) *Result {
	if cb == nil {
		return r
	}
	for _, n := range r.nodes {
		r.q.events.add(t, n, cb)
	}
	return r
}

// Off unregisters the callbacks for the event type from every node, or
// all of the node's callbacks for the type when none are given.
func (r *Result) Off(t EventType, cbs ...*Callback) *Result {
	for _, n := range r.nodes {
		if len(cbs) == 0 {
			r.q.events.removeAll(t, n)
			continue
		}
		for _, cb := range cbs {
			r.q.events.remove(t, n, cb)
		}
	}
	return r
}
