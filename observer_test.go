package aurora

import (
	"math"
	"testing"
)

// fakeEphemeris is a minimal, deterministic Ephemeris stand-in for tests
// that don't need real astronomical accuracy, only a stable contract.
type fakeEphemeris struct{}

func (fakeEphemeris) TTToUTC(ttMJD float64) (float64, float64) {
	return ttMJD - 0.0007, ttMJD - 0.0007
}

func (fakeEphemeris) EarthPV(ttMJD float64) (PV, PV) {
	pv := PV{
		Pos: Vec3{X: math.Cos(ttMJD), Y: math.Sin(ttMJD), Z: 0},
		Vel: Vec3{X: -math.Sin(ttMJD), Y: math.Cos(ttMJD), Z: 0},
	}
	return pv, pv
}

func (fakeEphemeris) NutationPrecessionMatrix(ttMJD float64) Mat3 {
	return rotZ(1e-6 * ttMJD)
}

func (fakeEphemeris) EarthRotationAngle(ut1MJD float64) float64 {
	return math.Mod(ut1MJD*2*math.Pi, 2*math.Pi)
}

func (fakeEphemeris) EquationOfOrigins(ttMJD float64) float64 { return 0 }

func newTestObserver() *Observer {
	return NewObserver(fakeEphemeris{}, ObserverInputs{
		Longitude: 2.3522 * Deg,
		Latitude:  48.8566 * Deg,
		Elevation: 35,
		TT:        59945.5,
		Yaw:       10 * Deg,
		Pitch:     45 * Deg,
		Roll:      0,
	})
}

func matMaxDiff(a, b Mat3) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

// TestUpdateIdempotent covers §8: "after update(O, false); update(O, false)
// no matrix element changes by more than 1e-15".
func TestUpdateIdempotent(t *testing.T) {
	o := newTestObserver()
	if err := o.Update(false); err != nil {
		t.Fatalf("first update: %v", err)
	}
	before := o.RI2V
	if err := o.Update(false); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if d := matMaxDiff(before, o.RI2V); d > 1e-15 {
		t.Errorf("RI2V changed by %g on idempotent update", d)
	}
}

// TestConvertFrameRoundTrip covers §8: "for every frame pair (A, B) and
// unit vector v: convert(A->B->A, v) equals v within 1e-12".
func TestConvertFrameRoundTrip(t *testing.T) {
	o := newTestObserver()
	if err := o.Update(false); err != nil {
		t.Fatalf("update: %v", err)
	}

	frames := []Frame{FrameICRF, FrameCIRS, FrameObserved, FrameView, FrameEcliptic}
	v := Vec3{X: 0.267, Y: 0.535, Z: 0.802}.Normalize()

	for _, a := range frames {
		for _, b := range frames {
			mid, err := o.ConvertFrame(a, b, true, v)
			if err != nil {
				t.Fatalf("convert %s->%s: %v", a, b, err)
			}
			back, err := o.ConvertFrame(b, a, true, mid)
			if err != nil {
				t.Fatalf("convert %s->%s: %v", b, a, err)
			}
			if d := back.Sub(v).Norm(); d > 1e-12 {
				t.Errorf("%s->%s->%s round trip off by %g", a, b, a, d)
			}
		}
	}
}

// TestConvertFrameBeforeUpdate covers §7's Programming error kind.
func TestConvertFrameBeforeUpdate(t *testing.T) {
	o := newTestObserver()
	_, err := o.ConvertFrame(FrameICRF, FrameView, true, Vec3{X: 1})
	if !IsKind(err, KindProgramming) {
		t.Fatalf("expected KindProgramming, got %v", err)
	}
}

// TestUpdateNoOpOnSameInputs checks that a repeated Update with identical
// inputs does not advance Generation (§4.1 supplement: generation only
// increments on an accurate pass).
func TestUpdateNoOpOnSameInputs(t *testing.T) {
	o := newTestObserver()
	_ = o.Update(false)
	g1 := o.Generation()
	_ = o.Update(false)
	if o.Generation() != g1 {
		t.Errorf("generation advanced on a no-op update: %d -> %d", g1, o.Generation())
	}
}

// TestFastPathMatchesAccurateAtSameTime checks that the fast path, when
// nothing besides pointing changed, produces the same RO2V as a full
// accurate recompute (§4.1 step 2's intent: pointing-only changes never
// need a new ephemeris sample).
func TestFastPathMatchesAccurateAtSameTime(t *testing.T) {
	o := newTestObserver()
	_ = o.Update(false)

	o.Yaw += 5 * Deg
	if err := o.Update(true); err != nil {
		t.Fatalf("fast update: %v", err)
	}
	fastRO2V := o.RO2V

	o2 := newTestObserver()
	o2.Yaw += 5 * Deg
	_ = o2.Update(false)

	if d := matMaxDiff(fastRO2V, o2.RO2V); d > 1e-9 {
		t.Errorf("fast-path RO2V diverges from accurate by %g", d)
	}
}
