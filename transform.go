package sweep

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a 3D affine transformation, typically the world
// transform of the object a curve is attached to.
// The zero value of Transform is the identity transform.
type Transform struct {
	// in order to make the zero value of Transform represent the identity
	// transform we store it with the identity matrix subtracted.
	// These diagonal elements are subtracted such that
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	// The projective row is always (0,0,0,1) and is not stored.
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
}

// Apply applies the Transform to the argument point and returns the result.
func (t Transform) Apply(v r3.Vec) r3.Vec {
	if t == (Transform{}) {
		return v
	}
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23,
	}
}

// ApplyDir applies the linear part of the Transform to the direction v,
// ignoring translation.
func (t Transform) ApplyDir(v r3.Vec) r3.Vec {
	if t == (Transform{}) {
		return v
	}
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z,
	}
}

// Mul multiplies the Transforms t and b and returns the result.
// The result applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x00 := t.d00 + 1
	x11 := t.d11 + 1
	x22 := t.d22 + 1
	y00 := b.d00 + 1
	y11 := b.d11 + 1
	y22 := b.d22 + 1
	var m Transform
	m.d00 = x00*y00 + t.x01*b.x10 + t.x02*b.x20 - 1
	m.x10 = t.x10*y00 + x11*b.x10 + t.x12*b.x20
	m.x20 = t.x20*y00 + t.x21*b.x10 + x22*b.x20
	m.x01 = x00*b.x01 + t.x01*y11 + t.x02*b.x21
	m.d11 = t.x10*b.x01 + x11*y11 + t.x12*b.x21 - 1
	m.x21 = t.x20*b.x01 + t.x21*y11 + x22*b.x21
	m.x02 = x00*b.x02 + t.x01*b.x12 + t.x02*y22
	m.x12 = t.x10*b.x02 + x11*b.x12 + t.x12*y22
	m.d22 = t.x20*b.x02 + t.x21*b.x12 + x22*y22 - 1
	m.x03 = x00*b.x03 + t.x01*b.x13 + t.x02*b.x23 + t.x03
	m.x13 = t.x10*b.x03 + x11*b.x13 + t.x12*b.x23 + t.x13
	m.x23 = t.x20*b.x03 + t.x21*b.x13 + x22*b.x23 + t.x23
	return m
}

// ComposeTransform creates a new transform for a given translation to
// position, scaling vector scale and quaternion rotation. Scaling is applied
// first, then rotation, then translation. The identity Transform is constructed with
//
//	ComposeTransform(Vec{}, Vec{1,1,1}, Rotation{Real: 1})
func ComposeTransform(position, scale r3.Vec, q r3.Rotation) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2

	var t Transform
	t.d00 = (1-(yy+zz))*scale.X - 1
	t.x10 = (xy + wz) * scale.X
	t.x20 = (xz - wy) * scale.X

	t.x01 = (xy - wz) * scale.Y
	t.d11 = (1-(xx+zz))*scale.Y - 1
	t.x21 = (yz + wx) * scale.Y

	t.x02 = (xz + wy) * scale.Z
	t.x12 = (yz - wx) * scale.Z
	t.d22 = (1-(xx+yy))*scale.Z - 1

	t.x03 = position.X
	t.x13 = position.Y
	t.x23 = position.Z
	return t
}

// EulerRotation returns the rotation for the Euler angles given in degrees.
// Angles are applied around Z first, then X, then Y, which is the order
// scene editors with a Y-up convention store them in.
func EulerRotation(degrees r3.Vec) r3.Rotation {
	const toRad = math.Pi / 180
	qx := quat.Number(r3.NewRotation(degrees.X*toRad, r3.Vec{X: 1}))
	qy := quat.Number(r3.NewRotation(degrees.Y*toRad, r3.Vec{Y: 1}))
	qz := quat.Number(r3.NewRotation(degrees.Z*toRad, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(qy, quat.Mul(qx, qz)))
}
