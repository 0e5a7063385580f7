package scene

import (
	"strconv"
	"strings"
	"sync/atomic"
)

var nodeID atomic.Uint64

// Node represents a single object in a 3D scene graph. A Node has a local transform (position, rotation, and scale)
// relative to its parent, a set of children, optional Materials, and optional Bounds used for ray intersection.
//
// Besides its Name, each Node carries a Label: a free-form metadata string (for example "#player .enemy .boss")
// that selector engines read to identify the Node.
type Node struct {
	id          uint64
	name        string
	label       string
	parent      *Node
	children    []*Node
	position    Vector
	scale       Vector
	rotation    Quaternion
	euler       Euler
	visible     bool
	materials   []*Material
	bounds      Bounds
	camera      *Camera
	props       *Properties
	onTransform func(*Node)
}

// NewNode returns a new Node.
func NewNode(name string) *Node {
	return &Node{
		id:       nodeID.Add(1),
		name:     name,
		scale:    Vector{1, 1, 1},
		rotation: NewQuaternionIdentity(),
		children: []*Node{},
		visible:  true,
		props:    NewProperties(),
	}
}

// ID returns the object's unique ID.
func (node *Node) ID() uint64 {
	return node.id
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the object's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Label returns the Node's metadata string.
func (node *Node) Label() string {
	return node.label
}

// SetLabel sets the Node's metadata string.
func (node *Node) SetLabel(label string) {
	node.label = label
}

// Properties returns the Node's auxiliary properties, loaded from glTF extras or set through code.
func (node *Node) Properties() *Properties {
	return node.props
}

// Camera returns the Camera this Node belongs to, or nil if the Node isn't a Camera.
func (node *Node) Camera() *Camera {
	return node.camera
}

// Clone returns a deep copy of the Node and all of its recursive children. The clones are unparented, get new IDs, and
// share their Materials with the originals.
func (node *Node) Clone() *Node {
	newNode := NewNode(node.name)
	newNode.label = node.label
	newNode.position = node.position
	newNode.scale = node.scale
	newNode.rotation = node.rotation
	newNode.euler = node.euler
	newNode.visible = node.visible
	newNode.materials = append([]*Material(nil), node.materials...)
	newNode.bounds = node.bounds
	newNode.props = node.props.Clone()
	newNode.onTransform = node.onTransform

	if node.camera != nil {
		newCam := *node.camera
		newCam.Node = newNode
		newNode.camera = &newCam
	}

	for _, child := range node.children {
		childClone := child.Clone()
		childClone.parent = newNode
		newNode.children = append(newNode.children, childClone)
	}

	return newNode
}

// Parent returns the Node's parent, or nil if it has none.
func (node *Node) Parent() *Node {
	return node.parent
}

// AddChildren parents the provided children Nodes to the calling Node. If the children are already parented to other
// Nodes, they are unparented before doing so. Their local transforms are kept as-is.
func (node *Node) AddChildren(children ...*Node) {
	for _, child := range children {
		if child == nil || child == node {
			continue
		}
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		child.parent = node
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this object.
func (node *Node) RemoveChildren(children ...*Node) {
	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.parent = nil
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}
}

// Unparent unparents the Node from its parent, removing it from the scenegraph.
func (node *Node) Unparent() {
	if node.parent != nil {
		node.parent.RemoveChildren(node)
	}
}

// Index returns the index of the Node in its parent's children list.
// If the node doesn't have a parent, its index will be -1.
func (node *Node) Index() int {
	if node.parent != nil {
		for i, c := range node.parent.children {
			if c == node {
				return i
			}
		}
	}
	return -1
}

// Children returns a copy of the Node's children.
func (node *Node) Children() []*Node {
	return append(make([]*Node, 0, len(node.children)), node.children...)
}

// ChildrenRecursive returns the Node's recursive children (i.e. children, grandchildren, etc) in pre-order.
func (node *Node) ChildrenRecursive() []*Node {
	out := []*Node{}
	for _, child := range node.children {
		child.Traverse(func(n *Node) {
			out = append(out, n)
		})
	}
	return out
}

// Traverse calls fn for the Node and each of its recursive children, in pre-order (parents before children, children
// in order).
func (node *Node) Traverse(fn func(*Node)) {
	fn(node)
	for _, child := range node.children {
		child.Traverse(fn)
	}
}

// Root returns the top-most Node in the calling Node's hierarchy, which is the Node itself if it has no parent.
func (node *Node) Root() *Node {
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// IsDescendantOf returns true if the calling Node is a child, grandchild, etc., of the given ancestor.
func (node *Node) IsDescendantOf(ancestor *Node) bool {
	for p := node.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Visible returns whether the Object is visible.
func (node *Node) Visible() bool {
	return node.visible
}

// SetVisible sets the object's visibility. If recursive is true, all recursive children of this Node will have their
// visibility set the same way.
func (node *Node) SetVisible(visible bool, recursive bool) {
	node.visible = visible
	if recursive {
		for _, child := range node.ChildrenRecursive() {
			child.visible = visible
		}
	}
}

// Material returns the Node's first Material, or nil if it has none.
func (node *Node) Material() *Material {
	if len(node.materials) == 0 {
		return nil
	}
	return node.materials[0]
}

// Materials returns the Node's Material slots.
func (node *Node) Materials() []*Material {
	return node.materials
}

// SetMaterials sets the Node's Material slots.
func (node *Node) SetMaterials(materials ...*Material) {
	node.materials = materials
}

// Bounds returns the Node's local-space Bounds.
func (node *Node) Bounds() Bounds {
	return node.bounds
}

// SetBounds sets the Node's local-space Bounds.
func (node *Node) SetBounds(bounds Bounds) {
	node.bounds = bounds
}

// SetTransformCallback sets a function to be called whenever the Node's local transform changes.
func (node *Node) SetTransformCallback(fn func(*Node)) {
	node.onTransform = fn
}

func (node *Node) transformChanged() {
	if node.onTransform != nil {
		node.onTransform(node)
	}
}

// LocalPosition returns the Node's local position.
func (node *Node) LocalPosition() Vector {
	return node.position
}

// SetLocalPosition sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPosition(x, y, z float64) {
	node.SetLocalPositionVec(Vector{x, y, z})
}

// SetLocalPositionVec sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPositionVec(position Vector) {
	node.position = position
	node.transformChanged()
}

// Move moves a Node in local space by the x, y, and z values provided.
func (node *Node) Move(x, y, z float64) {
	node.SetLocalPositionVec(node.position.Add(Vector{x, y, z}))
}

// LocalScale returns the object's local scale (scale relative to its parent).
func (node *Node) LocalScale() Vector {
	return node.scale
}

// SetLocalScale sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScale(w, h, d float64) {
	node.SetLocalScaleVec(Vector{w, h, d})
}

// SetLocalScaleVec sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScaleVec(scale Vector) {
	node.scale = scale
	node.transformChanged()
}

// LocalRotation returns the object's local rotation as a Quaternion.
func (node *Node) LocalRotation() Quaternion {
	return node.rotation
}

// SetLocalRotation sets the object's local rotation. The Euler mirror returned by LocalEuler is updated to match.
func (node *Node) SetLocalRotation(rotation Quaternion) {
	node.rotation = rotation.Normalized()
	node.euler = node.rotation.Euler()
	node.transformChanged()
}

// LocalEuler returns the object's local rotation as XYZ-ordered Euler angles. If the rotation was set through
// SetLocalEuler, the exact angles given are returned.
func (node *Node) LocalEuler() Euler {
	return node.euler
}

// SetLocalEuler sets the object's local rotation from XYZ-ordered Euler angles, keeping the Quaternion in sync.
func (node *Node) SetLocalEuler(euler Euler) {
	node.euler = euler
	node.rotation = NewQuaternionFromEuler(euler)
	node.transformChanged()
}

// Rotate rotates the Node in local space around the given axis by the angle given (in radians).
func (node *Node) Rotate(axis Vector, angle float64) {
	node.SetLocalRotation(node.rotation.Mult(NewQuaternionFromAxisAngle(axis, angle)))
}

// TransformPoint transforms a point from the Node's local space into world space.
func (node *Node) TransformPoint(point Vector) Vector {
	for n := node; n != nil; n = n.parent {
		point = n.rotation.RotateVec(point.MultComp(n.scale)).Add(n.position)
	}
	return point
}

// TransformDirection rotates a direction from the Node's local space into world space, ignoring scale.
func (node *Node) TransformDirection(dir Vector) Vector {
	return node.WorldRotation().RotateVec(dir)
}

// WorldPosition returns the Node's world position, transformed by its parents.
func (node *Node) WorldPosition() Vector {
	return node.TransformPoint(Vector{})
}

// WorldRotation returns the Node's orientation in world space.
func (node *Node) WorldRotation() Quaternion {
	rot := node.rotation
	for p := node.parent; p != nil; p = p.parent {
		rot = p.rotation.Mult(rot)
	}
	return rot
}

// WorldScale returns the Node's scale in world space. Shear from rotated, non-uniformly scaled parents is ignored.
func (node *Node) WorldScale() Vector {
	scale := node.scale
	for p := node.parent; p != nil; p = p.parent {
		scale = scale.MultComp(p.scale)
	}
	return scale
}

// WorldBounds returns an axis-aligned box enclosing the Node's Bounds in world space, and false if the Node has no Bounds.
func (node *Node) WorldBounds() (Bounds, bool) {
	if node.bounds.IsEmpty() {
		return Bounds{}, false
	}
	corners := node.bounds.Corners()
	out := Bounds{}
	for _, c := range corners {
		p := node.TransformPoint(c)
		out = out.Union(NewBoundsAABB(p, p))
	}
	return out, true
}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of
// nodes, separated by forward slashes ('/'), and is relative to the node you use to call Get. "../" goes up one
// level in the hierarchy.
func (node *Node) Get(path string) *Node {
	current := node
	for _, s := range strings.Split(path, "/") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		if s == ".." {
			current = current.parent
		} else {
			var next *Node
			for _, child := range current.children {
				if child.name == s {
					next = child
					break
				}
			}
			current = next
		}
		if current == nil {
			return nil
		}
	}
	return current
}

// Path returns a string indicating the hierarchical path to get this Node from the root, such that passing it to
// Get() called on the root will return this Node. The root's name isn't included.
func (node *Node) Path() string {
	if node.parent == nil {
		return ""
	}
	path := node.name
	for p := node.parent; p.parent != nil; p = p.parent {
		path = p.name + "/" + path
	}
	return path
}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children, along with
// their labels and world positions (truncated to the first 2 decimals). This is useful to debug the layout of a node
// tree.
func (node *Node) HierarchyAsString() string {

	var b strings.Builder

	var printNode func(n *Node, level int)

	printNode = func(n *Node, level int) {

		prefix := "NODE"
		if level == 0 {
			prefix = "ROOT"
		} else if n.camera != nil {
			prefix = "CAM"
		} else if len(n.materials) > 0 {
			prefix = "MESH"
		}

		for i := 0; i < level; i++ {
			b.WriteString("    |")
		}
		if level > 0 {
			b.WriteString("-")
		}

		wp := n.WorldPosition()
		b.WriteString(" [" + prefix + "] " + n.name)
		if n.label != "" && n.label != n.name {
			b.WriteString(" {" + n.label + "}")
		}
		b.WriteString(" : [" +
			strconv.FormatFloat(wp.X, 'f', 2, 64) + ", " +
			strconv.FormatFloat(wp.Y, 'f', 2, 64) + ", " +
			strconv.FormatFloat(wp.Z, 'f', 2, 64) + "]\n")

		for _, child := range n.children {
			printNode(child, level+1)
		}

	}

	printNode(node, 0)
	return b.String()

}
