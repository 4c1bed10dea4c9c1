package aurora

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Deg converts degrees to radians when multiplied: e.g. 48.8566 * aurora.Deg.
const Deg = math.Pi / 180

// Rad converts radians to degrees when multiplied: e.g. x * aurora.Rad.
const Rad = 180 / math.Pi

// AU is one astronomical unit in meters, used at the satellites package
// boundary where internal computation is in meters (§6).
const AU = 149597870700.0

// Color is a linear RGBA color in [0, 1], premultiplied-friendly so the
// default ebiten-backed renderer can multiply tints without a conversion
// step.
type Color struct {
	R, G, B, A float64
}

// Vec3 is a 3-vector, used for ICRF/GCRS/CIRS/Observed/View positions.
// pv pairs (§6) are represented by PV.
type Vec3 struct {
	X, Y, Z float64
}

// PV is a position/velocity pair, the pv type of §6.
type PV struct {
	Pos, Vel Vec3
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. Returns v unchanged if it is
// the zero vector (callers at frame boundaries treat that as a numerical
// failure sentinel, §7).
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Angle returns the angle in radians between v and o.
func (v Vec3) Angle(o Vec3) float64 {
	cosTheta := v.Normalize().Dot(o.Normalize())
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta)
}

// Mat3 is a row-major 3×3 rotation matrix, the type of the eight cached
// rotation matrices the Observer maintains.
type Mat3 [9]float64

// IdentityMat3 is the 3×3 identity matrix.
var IdentityMat3 = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// Apply transforms v by m: result = m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Mul returns m * o, composed via gonum's mat.Dense rather than a
// hand-rolled triple loop — Observer.computeMatrices chains six or more of
// these per update, and the rest of the engine already treats gonum as the
// dependency that owns numerical linear algebra.
func (m Mat3) Mul(o Mat3) Mat3 {
	a := mat.NewDense(3, 3, append([]float64(nil), m[:]...))
	b := mat.NewDense(3, 3, append([]float64(nil), o[:]...))
	var c mat.Dense
	c.Mul(a, b)
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = c.At(i, j)
		}
	}
	return r
}

// Transpose returns the transpose of m (its inverse, for an orthonormal
// rotation matrix).
func (m Mat3) Transpose() Mat3 {
	return Mat3{m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8]}
}

// Rect is an axis-aligned screen-space rectangle in window pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// BlendMode selects the compositing operation the renderer uses for a draw
// call (§4.7's painter flags include an ADD blend).
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
)

// Cap is a spherical bounding cap {axis, cos_half_angle} (§4.2, GLOSSARY).
// A point p is visible-checkable by dot(p, axis) >= CosHalfAngle.
type Cap struct {
	Axis         Vec3
	CosHalfAngle float64
}

// Contains reports whether the unit vector p lies within the cap.
func (c Cap) Contains(p Vec3) bool {
	return c.Axis.Dot(p) >= c.CosHalfAngle
}

// Disjoint reports whether two caps cannot possibly overlap: the
// great-circle separation of their axes exceeds the sum of their
// half-angles (§4.2).
func (c Cap) Disjoint(o Cap) bool {
	sep := c.Axis.Angle(o.Axis)
	halfC := math.Acos(clamp(c.CosHalfAngle, -1, 1))
	halfO := math.Acos(clamp(o.CosHalfAngle, -1, 1))
	return sep > halfC+halfO
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
