package scene

import "math"

// Euler represents a rotation as three angles in radians, applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float64
}

// NewEuler returns a new Euler rotation from the given angles (in radians).
func NewEuler(x, y, z float64) Euler {
	return Euler{x, y, z}
}

// Quaternion represents an orientation. Nodes store their rotation as a Quaternion and keep an Euler mirror of it in sync.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new Quaternion from the given components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns a Quaternion representing no rotation.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromEuler returns a Quaternion representing the same orientation as the XYZ-ordered Euler rotation given.
func NewQuaternionFromEuler(euler Euler) Quaternion {

	c1, s1 := math.Cos(euler.X/2), math.Sin(euler.X/2)
	c2, s2 := math.Cos(euler.Y/2), math.Sin(euler.Y/2)
	c3, s3 := math.Cos(euler.Z/2), math.Sin(euler.Z/2)

	return Quaternion{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}

}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by angle radians around the given axis.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	axis = axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// newQuaternionFromRotationColumns builds a Quaternion out of the three (unit-length) columns of a pure rotation matrix.
func newQuaternionFromRotationColumns(c0, c1, c2 Vector) Quaternion {

	m11, m12, m13 := c0.X, c1.X, c2.X
	m21, m22, m23 := c0.Y, c1.Y, c2.Y
	m31, m32, m33 := c0.Z, c1.Z, c2.Z

	trace := m11 + m22 + m33

	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return Quaternion{(m32 - m23) * s, (m13 - m31) * s, (m21 - m12) * s, 0.25 / s}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		return Quaternion{0.25 * s, (m12 + m21) / s, (m13 + m31) / s, (m32 - m23) / s}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		return Quaternion{(m12 + m21) / s, 0.25 * s, (m23 + m32) / s, (m13 - m31) / s}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		return Quaternion{(m13 + m31) / s, (m23 + m32) / s, 0.25 * s, (m21 - m12) / s}
	}

}

// Euler returns the XYZ-ordered Euler angles representing the Quaternion's orientation.
func (quat Quaternion) Euler() Euler {

	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W

	m11 := 1 - 2*(y*y+z*z)
	m12 := 2 * (x*y - w*z)
	m13 := 2 * (x*z + w*y)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - w*x)
	m32 := 2 * (y*z + w*x)
	m33 := 1 - 2*(x*x+y*y)

	out := Euler{Y: math.Asin(math.Max(-1, math.Min(1, m13)))}

	if math.Abs(m13) < 0.9999999 {
		out.X = math.Atan2(-m23, m33)
		out.Z = math.Atan2(-m12, m11)
	} else {
		// Gimbal lock; Z is folded into X.
		out.X = math.Atan2(m32, m22)
	}

	return out

}

// Mult returns the Hamilton product of the calling Quaternion and the other one (applying other first, then quat).
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	return Quaternion{
		X: quat.X*other.W + quat.W*other.X + quat.Y*other.Z - quat.Z*other.Y,
		Y: quat.Y*other.W + quat.W*other.Y + quat.Z*other.X - quat.X*other.Z,
		Z: quat.Z*other.W + quat.W*other.Z + quat.X*other.Y - quat.Y*other.X,
		W: quat.W*other.W - quat.X*other.X - quat.Y*other.Y - quat.Z*other.Z,
	}
}

// RotateVec returns the Vector given, rotated by the Quaternion.
func (quat Quaternion) RotateVec(vec Vector) Vector {
	q := Vector{quat.X, quat.Y, quat.Z}
	t := q.Cross(vec).Scale(2)
	return vec.Add(t.Scale(quat.W)).Add(q.Cross(t))
}

// Normalized returns a unit-length copy of the Quaternion.
func (quat Quaternion) Normalized() Quaternion {
	l := math.Sqrt(quat.Dot(quat))
	if l < 1e-8 {
		return NewQuaternionIdentity()
	}
	return Quaternion{quat.X / l, quat.Y / l, quat.Z / l, quat.W / l}
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Equals returns true if the two Quaternions represent (nearly) the same orientation.
func (quat Quaternion) Equals(other Quaternion) bool {
	return math.Abs(math.Abs(quat.Dot(other))-1) < 1e-8
}

// Slerp spherically interpolates between the calling Quaternion and the other one by the percentage given.
func (quat Quaternion) Slerp(other Quaternion, percent float64) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	cosHalfTheta := quat.Dot(other)

	// Take the short way around.
	if cosHalfTheta < 0 {
		other = Quaternion{-other.X, -other.Y, -other.Z, -other.W}
		cosHalfTheta = -cosHalfTheta
	}

	if cosHalfTheta >= 1 {
		return quat
	}

	sinHalfTheta := math.Sqrt(1 - cosHalfTheta*cosHalfTheta)

	if sinHalfTheta < 1e-6 {
		return Quaternion{
			quat.X*0.5 + other.X*0.5,
			quat.Y*0.5 + other.Y*0.5,
			quat.Z*0.5 + other.Z*0.5,
			quat.W*0.5 + other.W*0.5,
		}.Normalized()
	}

	halfTheta := math.Atan2(sinHalfTheta, cosHalfTheta)
	ratioA := math.Sin((1-percent)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(percent*halfTheta) / sinHalfTheta

	return Quaternion{
		X: quat.X*ratioA + other.X*ratioB,
		Y: quat.Y*ratioA + other.Y*ratioB,
		Z: quat.Z*ratioA + other.Z*ratioB,
		W: quat.W*ratioA + other.W*ratioB,
	}

}

// Conjugate returns the conjugate of the Quaternion, which, for unit Quaternions, is the inverse rotation.
func (quat Quaternion) Conjugate() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, quat.W}
}
