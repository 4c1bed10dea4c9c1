package satellites

import (
	"math"
	"testing"
)

const issLine1 = "1 25544U 98067A   20115.55025390  .00016717  00000-0  10270-3 0  9027"
const issLine2 = "2 25544  51.6412 253.9367 0001868 190.8144 169.2966 15.49324997 23698"

func TestParseTLE(t *testing.T) {
	el, err := ParseTLE(issLine1, issLine2)
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if el.CatalogNumber != 25544 {
		t.Errorf("catalog = %d, want 25544", el.CatalogNumber)
	}
	if el.EpochYear != 2020 {
		t.Errorf("epoch year = %d, want 2020", el.EpochYear)
	}
	if math.Abs(el.Inclination-51.6412) > 1e-6 {
		t.Errorf("inclination = %v, want 51.6412", el.Inclination)
	}
	if math.Abs(el.MeanMotion-15.49324997) > 1e-6 {
		t.Errorf("mean motion = %v, want 15.49324997", el.MeanMotion)
	}
	if math.Abs(el.Eccentricity-0.0001868) > 1e-9 {
		t.Errorf("eccentricity = %v, want 0.0001868", el.Eccentricity)
	}
}

func TestParseTLERejectsShortLines(t *testing.T) {
	if _, err := ParseTLE("short", "also short"); err == nil {
		t.Fatal("expected an error for malformed TLE lines")
	}
}

// TestPropagateISSProducesLEORadius checks the ISS example from §8 stays
// in a physically sane low-earth orbit: radius close to earth radius plus
// ~400km, not the escaped-to-infinity or collapsed-to-origin failure
// modes a broken Kepler solve would produce.
func TestPropagateISSProducesLEORadius(t *testing.T) {
	el, err := ParseTLE(issLine1, issLine2)
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	var prop WGS72Propagator
	pos, _, ok := prop.Propagate(el, 0)
	if !ok {
		t.Fatal("propagation failed at epoch")
	}
	r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	if r < 6600 || r > 7200 {
		t.Errorf("orbital radius = %v km, want roughly 6600-7200 (LEO)", r)
	}
}

func TestPropagateStableOverTime(t *testing.T) {
	el, err := ParseTLE(issLine1, issLine2)
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	var prop WGS72Propagator
	for _, tsince := range []float64{0, 30, 90, 200} {
		pos, _, ok := prop.Propagate(el, tsince)
		if !ok {
			t.Fatalf("propagation failed at tsince=%v", tsince)
		}
		r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
		if r < 6600 || r > 7200 {
			t.Errorf("tsince=%v: orbital radius = %v km, want roughly 6600-7200", tsince, r)
		}
	}
}
