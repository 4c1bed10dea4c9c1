package aurora

import (
	"math"
	"testing"
)

func TestSlerpEndpoints(t *testing.T) {
	a := IdentityQuat
	b := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, 90*Deg)

	if d := a.Slerp(b, 0).dot(a); d < 0.9999 {
		t.Errorf("Slerp(t=0) should equal start, dot=%v", d)
	}
	if d := a.Slerp(b, 1).dot(b); d < 0.9999 {
		t.Errorf("Slerp(t=1) should equal end, dot=%v", d)
	}
}

func TestAngleToZeroForEqualQuats(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1, Y: 0, Z: 0}, 30*Deg)
	if a := q.AngleTo(q); a > 1e-9 {
		t.Errorf("expected zero angle between equal quaternions, got %v", a)
	}
}

func TestQuatToMat3Orthonormal(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0.3, Y: 0.6, Z: 0.1}, 50*Deg)
	m := q.ToMat3()
	v := Vec3{X: 1, Y: 0, Z: 0}
	out := m.Apply(v)
	if d := math.Abs(out.Norm() - 1); d > 1e-9 {
		t.Errorf("expected rotation to preserve unit length, got norm=%v", out.Norm())
	}
}
