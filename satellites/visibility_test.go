package satellites

import (
	"math"
	"testing"

	"github.com/novasky/aurora"
)

func TestEclipseFactorFullyLit(t *testing.T) {
	// Satellite on the day side: Sun direction and anti-earth direction
	// nearly coincide, far outside Earth's angular radius from orbit.
	sat := aurora.Vec3{X: 7000e3, Y: 0, Z: 0}
	sun := aurora.Vec3{X: 1.496e11, Y: 0, Z: 0}
	illum, eclipsed := EclipseFactor(sat, sun)
	if eclipsed {
		t.Error("expected not eclipsed when satellite is sunward of Earth")
	}
	if illum != 1 {
		t.Errorf("illum = %v, want 1", illum)
	}
}

func TestEclipseFactorFullyEclipsed(t *testing.T) {
	// Satellite on the night side, directly behind Earth from the Sun.
	sat := aurora.Vec3{X: -7000e3, Y: 0, Z: 0}
	sun := aurora.Vec3{X: 1.496e11, Y: 0, Z: 0}
	illum, eclipsed := EclipseFactor(sat, sun)
	if !eclipsed {
		t.Error("expected eclipsed when satellite is directly behind Earth from the Sun")
	}
	if illum != 0 {
		t.Errorf("illum = %v, want 0", illum)
	}
}

func TestMagnitudeEclipsedSentinel(t *testing.T) {
	m := Magnitude(-1.8, 1000, 0)
	if m != 17.0 {
		t.Errorf("eclipsed magnitude = %v, want 17.0", m)
	}
}

func TestMagnitudeFormula(t *testing.T) {
	// stdmag=-1.8 at range=1000km, fully illuminated: -1.8 - 15.75 + 2.5*log10(1e6) = -1.8-15.75+15 = -2.55
	m := Magnitude(-1.8, 1000, 1)
	want := -1.8 - 15.75 + 2.5*math.Log10(1000.0*1000.0/1.0)
	if math.Abs(m-want) > 1e-9 {
		t.Errorf("magnitude = %v, want %v", m, want)
	}
}

func TestMagnitudeDimsWithRange(t *testing.T) {
	far := Magnitude(-1.8, 2000, 1)
	near := Magnitude(-1.8, 500, 1)
	if near >= far {
		t.Errorf("closer satellite should be brighter (lower vmag): near=%v far=%v", near, far)
	}
}
