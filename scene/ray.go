package scene

import (
	"math"
	"sort"
)

// Ray represents a half-line in world space, starting at Origin and heading along the (unit) Direction.
type Ray struct {
	Origin    Vector
	Direction Vector
}

// NewRay returns a new Ray from the origin towards the target position.
func NewRay(origin, target Vector) Ray {
	return Ray{
		Origin:    origin,
		Direction: target.Sub(origin).Unit(),
	}
}

// At returns the world position at distance t along the Ray.
func (ray Ray) At(t float64) Vector {
	return ray.Origin.Add(ray.Direction.Scale(t))
}

// RayHit represents the result of a raycast test.
type RayHit struct {
	Node     *Node   // Node is the Node that was struck by the raycast.
	Distance float64 // Distance is the distance from the Ray's origin to the struck position.
	Position Vector  // Position is the world position where the Node was struck.
	Normal   Vector  // Normal is the normal of the surface the ray struck.
}

// IntersectNode tests the Ray against the Node's Bounds (not its children). It returns false if the Node has no
// Bounds or the Ray misses.
func (ray Ray) IntersectNode(node *Node) (RayHit, bool) {

	var (
		t      float64
		normal Vector
		ok     bool
	)

	switch node.bounds.Shape {

	case BoundsSphere:

		ws := node.WorldScale()
		radius := node.bounds.Radius * math.Max(math.Abs(ws.X), math.Max(math.Abs(ws.Y), math.Abs(ws.Z)))
		center := node.TransformPoint(node.bounds.Center)

		t, ok = raySphereTest(ray, center, radius)
		if ok {
			normal = ray.At(t).Sub(center).Unit()
		}

	case BoundsBox:

		box, _ := node.WorldBounds()
		t, normal, ok = rayAABBTest(ray, box.Min, box.Max)

	}

	if !ok {
		return RayHit{}, false
	}

	return RayHit{
		Node:     node,
		Distance: t,
		Position: ray.At(t),
		Normal:   normal,
	}, true

}

// Cast tests the Ray against each of the Nodes given (and, if recursive is true, their recursive children),
// returning the hits sorted nearest-first. Invisible Nodes and everything under them are skipped unless
// includeHidden is true.
func (ray Ray) Cast(nodes []*Node, recursive, includeHidden bool) []RayHit {

	hits := []RayHit{}

	var test func(n *Node)

	test = func(n *Node) {
		if !n.visible && !includeHidden {
			return
		}
		if hit, ok := ray.IntersectNode(n); ok {
			hits = append(hits, hit)
		}
		if recursive {
			for _, child := range n.children {
				test(child)
			}
		}
	}

	for _, n := range nodes {
		test(n)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	return hits

}

// BoundsRaycaster casts rays from a Camera against Node Bounds. It is the default ray-casting primitive used for
// pointer picking.
type BoundsRaycaster struct {
	IncludeHidden bool // Whether invisible Nodes can be struck.
}

// Raycast casts a ray through the given normalized device coordinates of the Camera against the candidates and all
// of their recursive children, returning the hits within the Camera's clip range, nearest-first.
func (r BoundsRaycaster) Raycast(camera *Camera, ndcX, ndcY float64, candidates []*Node) []RayHit {

	hits := camera.Ray(ndcX, ndcY).Cast(candidates, true, r.IncludeHidden)

	out := hits[:0]
	for _, hit := range hits {
		if hit.Node == camera.Node {
			continue
		}
		if hit.Distance >= camera.near && hit.Distance <= camera.far {
			out = append(out, hit)
		}
	}
	return out

}

func raySphereTest(ray Ray, center Vector, radius float64) (float64, bool) {

	m := ray.Origin.Sub(center)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - radius*radius

	// Origin outside and pointing away
	if c > 0 && b > 0 {
		return 0, false
	}

	discr := b*b - c
	if discr < 0 {
		return 0, false
	}

	t := -b - math.Sqrt(discr)
	if t < 0 {
		t = -b + math.Sqrt(discr)
	}

	return t, t >= 0

}

func rayAABBTest(ray Ray, min, max Vector) (float64, Vector, bool) {

	tmin, tmax := math.Inf(-1), math.Inf(1)
	normal := Vector{}

	origin := ray.Origin.Floats()
	dir := ray.Direction.Floats()
	lo := min.Floats()
	hi := max.Floats()

	for axis := 0; axis < 3; axis++ {

		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, Vector{}, false
			}
			continue
		}

		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tmin {
			tmin = t1
			n := [3]float64{}
			n[axis] = -math.Copysign(1, dir[axis])
			normal = Vector{n[0], n[1], n[2]}
		}
		tmax = math.Min(tmax, t2)

		if tmin > tmax {
			return 0, Vector{}, false
		}

	}

	if tmax < 0 {
		return 0, Vector{}, false
	}

	if tmin < 0 {
		// Origin is inside the box; report the exit point.
		return tmax, ray.Direction.Invert(), true
	}

	return tmin, normal, true

}
