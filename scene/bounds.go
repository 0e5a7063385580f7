package scene

import "math"

// BoundsShape indicates what kind of volume a Bounds describes.
type BoundsShape int

const (
	BoundsNone   BoundsShape = iota // BoundsNone means the Node has no geometry and can't be hit by rays.
	BoundsBox                       // BoundsBox is an axis-aligned box in the Node's local space.
	BoundsSphere                    // BoundsSphere is a sphere in the Node's local space.
)

// Bounds represents the local-space volume of a Node's geometry, used for ray intersection testing.
type Bounds struct {
	Shape  BoundsShape
	Min    Vector // Min is the minimum corner of a box.
	Max    Vector // Max is the maximum corner of a box.
	Center Vector // Center is the center of a sphere.
	Radius float64
}

// NewBoundsAABB returns a box Bounds spanning the two corners given.
func NewBoundsAABB(min, max Vector) Bounds {
	return Bounds{
		Shape: BoundsBox,
		Min:   Vector{math.Min(min.X, max.X), math.Min(min.Y, max.Y), math.Min(min.Z, max.Z)},
		Max:   Vector{math.Max(min.X, max.X), math.Max(min.Y, max.Y), math.Max(min.Z, max.Z)},
	}
}

// NewBoundsBox returns a box Bounds of the given width, height, and depth, centered on the origin.
func NewBoundsBox(width, height, depth float64) Bounds {
	half := Vector{width / 2, height / 2, depth / 2}
	return NewBoundsAABB(half.Invert(), half)
}

// NewBoundsSphere returns a sphere Bounds.
func NewBoundsSphere(center Vector, radius float64) Bounds {
	return Bounds{
		Shape:  BoundsSphere,
		Center: center,
		Radius: math.Abs(radius),
	}
}

// IsEmpty returns true if the Bounds describes no volume.
func (bounds Bounds) IsEmpty() bool {
	return bounds.Shape == BoundsNone
}

// Size returns the width, height, and depth of the Bounds.
func (bounds Bounds) Size() Vector {
	switch bounds.Shape {
	case BoundsBox:
		return bounds.Max.Sub(bounds.Min)
	case BoundsSphere:
		d := bounds.Radius * 2
		return Vector{d, d, d}
	}
	return Vector{}
}

// Corners returns the eight corners of the box enclosing the Bounds.
func (bounds Bounds) Corners() [8]Vector {
	min, max := bounds.Min, bounds.Max
	if bounds.Shape == BoundsSphere {
		r := Vector{bounds.Radius, bounds.Radius, bounds.Radius}
		min, max = bounds.Center.Sub(r), bounds.Center.Add(r)
	}
	return [8]Vector{
		{min.X, min.Y, min.Z},
		{max.X, min.Y, min.Z},
		{min.X, max.Y, min.Z},
		{max.X, max.Y, min.Z},
		{min.X, min.Y, max.Z},
		{max.X, min.Y, max.Z},
		{min.X, max.Y, max.Z},
		{max.X, max.Y, max.Z},
	}
}

// Union returns a box Bounds enclosing both the calling Bounds and the other one.
func (bounds Bounds) Union(other Bounds) Bounds {
	if bounds.IsEmpty() {
		return other
	} else if other.IsEmpty() {
		return bounds
	}

	a, b := bounds.Corners(), other.Corners()
	return NewBoundsAABB(
		Vector{math.Min(a[0].X, b[0].X), math.Min(a[0].Y, b[0].Y), math.Min(a[0].Z, b[0].Z)},
		Vector{math.Max(a[7].X, b[7].X), math.Max(a[7].Y, b[7].Y), math.Max(a[7].Z, b[7].Z)},
	)
}
