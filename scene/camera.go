package scene

import "math"

// Camera represents a viewpoint into the scene. A Camera is a Node, so it can be positioned, rotated, and parented
// like any other; it looks down its local -Z axis, with +Y up.
type Camera struct {
	*Node
	perspective bool
	fieldOfView float64 // Vertical field of view in degrees
	near, far   float64
	orthoScale  float64 // Vertical extent of the view volume when orthographic
	aspectRatio float64
}

// NewCamera returns a new perspective Camera with a 60 degree vertical field of view and an aspect ratio of 1.
func NewCamera(name string) *Camera {
	cam := &Camera{
		Node:        NewNode(name),
		perspective: true,
		fieldOfView: 60,
		near:        0.1,
		far:         1000,
		orthoScale:  20,
		aspectRatio: 1,
	}
	cam.Node.camera = cam
	return cam
}

// Clone returns a deep copy of the Camera and its Node hierarchy.
func (camera *Camera) Clone() *Camera {
	return camera.Node.Clone().Camera()
}

// Perspective returns whether the Camera is a perspective (true) or orthographic (false) Camera.
func (camera *Camera) Perspective() bool {
	return camera.perspective
}

// SetPerspective sets the Camera's projection to be a perspective (true) or orthographic (false) projection.
func (camera *Camera) SetPerspective(perspective bool) {
	camera.perspective = perspective
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float64 {
	return camera.fieldOfView
}

// SetFieldOfView sets the vertical field of view in degrees.
func (camera *Camera) SetFieldOfView(fovY float64) {
	camera.fieldOfView = fovY
}

// Near returns the near clipping distance.
func (camera *Camera) Near() float64 {
	return camera.near
}

// Far returns the far clipping distance.
func (camera *Camera) Far() float64 {
	return camera.far
}

// SetClipRange sets the near and far clipping distances. Ray hits outside of this range are discarded.
func (camera *Camera) SetClipRange(near, far float64) {
	camera.near = near
	camera.far = far
}

// OrthoScale returns the vertical extent of an orthographic Camera's view.
func (camera *Camera) OrthoScale() float64 {
	return camera.orthoScale
}

// SetOrthoScale sets the vertical extent of an orthographic Camera's view.
func (camera *Camera) SetOrthoScale(scale float64) {
	camera.orthoScale = scale
}

// AspectRatio returns the width divided by the height of the Camera's view.
func (camera *Camera) AspectRatio() float64 {
	return camera.aspectRatio
}

// SetAspectRatio sets the width divided by the height of the Camera's view. Surfaces usually set this from their
// size whenever it changes.
func (camera *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		camera.aspectRatio = aspect
	}
}

// LookAt rotates the Camera so that it faces the given world position.
func (camera *Camera) LookAt(target Vector) {

	from := camera.WorldPosition()
	forward := target.Sub(from).Unit()
	if forward.IsZero() {
		return
	}

	z := forward.Invert()
	up := VecY
	if math.Abs(z.Dot(up)) > 0.9999 {
		up = VecZ
	}
	x := up.Cross(z).Unit()
	y := z.Cross(x)

	world := newQuaternionFromRotationColumns(x, y, z)

	if camera.parent != nil {
		world = camera.parent.WorldRotation().Conjugate().Mult(world)
	}

	camera.SetLocalRotation(world)

}

// Ray returns the world-space ray passing through the given point in normalized device coordinates, where (-1, -1)
// is the bottom-left corner of the view and (1, 1) is the top-right.
func (camera *Camera) Ray(ndcX, ndcY float64) Ray {

	rot := camera.WorldRotation()
	origin := camera.WorldPosition()

	if camera.perspective {
		tanHalf := math.Tan(camera.fieldOfView * math.Pi / 360)
		dir := Vector{ndcX * tanHalf * camera.aspectRatio, ndcY * tanHalf, -1}
		return Ray{
			Origin:    origin,
			Direction: rot.RotateVec(dir).Unit(),
		}
	}

	half := camera.orthoScale / 2
	offset := Vector{ndcX * half * camera.aspectRatio, ndcY * half, 0}
	return Ray{
		Origin:    origin.Add(rot.RotateVec(offset)),
		Direction: rot.RotateVec(Vector{0, 0, -1}).Unit(),
	}

}
