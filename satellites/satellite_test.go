package satellites

import (
	"math"
	"testing"

	"github.com/novasky/aurora"
)

// fakeEphemeris is a minimal, deterministic aurora.Ephemeris stand-in. The
// barycentric Earth pv is irrelevant to Satellite.Update, which only reads
// the observer's geocentric pv, so it is left at the zero value.
type fakeEphemeris struct{}

func (fakeEphemeris) TTToUTC(ttMJD float64) (float64, float64) { return ttMJD, ttMJD }

func (fakeEphemeris) EarthPV(ttMJD float64) (aurora.PV, aurora.PV) {
	return aurora.PV{}, aurora.PV{}
}

func (fakeEphemeris) NutationPrecessionMatrix(ttMJD float64) aurora.Mat3 {
	return aurora.IdentityMat3
}

func (fakeEphemeris) EarthRotationAngle(ut1MJD float64) float64 { return 0.73 }

func (fakeEphemeris) EquationOfOrigins(ttMJD float64) float64 { return 0 }

func newTestObserver() *aurora.Observer {
	obs := aurora.NewObserver(fakeEphemeris{}, aurora.ObserverInputs{
		Longitude: 121.5654 * aurora.Deg,
		Latitude:  25.0330 * aurora.Deg,
		Elevation: 20,
		TT:        58963.18,
	})
	return obs
}

// constPropagator returns a fixed position/velocity regardless of the
// requested epoch, letting a test pin the satellite's ICRF position
// directly instead of going through a real element set.
type constPropagator struct {
	posKM, velKMS [3]float64
}

func (p constPropagator) Propagate(elements *Elements, minutesSinceEpoch float64) ([3]float64, [3]float64, bool) {
	return p.posKM, p.velKMS, true
}

// TestSatelliteObservedPosIsTopocentric covers the case that broke silently
// before: ObservedPos must be relative to the observer's own position on
// Earth's surface, not the solar-system barycenter, and it must be rotated
// into the Observed frame rather than left in ICRF orientation.
func TestSatelliteObservedPosIsTopocentric(t *testing.T) {
	obs := newTestObserver()
	if err := obs.Update(false); err != nil {
		t.Fatalf("observer update: %v", err)
	}

	// Place a satellite 500 km above the observer along the Observed
	// frame's own "up" axis, then embed that in ICRF via RH2I. This pins
	// down the expected ObservedPos without assuming which Observed axis
	// is "up": RI2H undoing RH2I should recover the vector exactly.
	const satAltitudeM = 500_000.0
	upObserved := aurora.Vec3{Z: satAltitudeM}
	observerICRF := obs.ObserverPVG.Pos.Scale(aurora.AU)
	satICRF := observerICRF.Add(obs.RH2I.Apply(upObserved))

	sat := NewSatellite(&Elements{StdMag: -1.8})
	prop := constPropagator{posKM: [3]float64{satICRF.X / 1000, satICRF.Y / 1000, satICRF.Z / 1000}}
	// Put the Sun on the far side of the satellite from Earth (same side
	// as the observer's zenith) so the pass is fully lit, matching the
	// geometry of a genuine overhead satellite pass.
	sunICRF := observerICRF.Normalize().Scale(aurora.AU)

	if err := sat.Update(prop, obs, sunICRF); err != nil {
		t.Fatalf("satellite update: %v", err)
	}

	rangeM := sat.ObservedPos.Norm()
	if math.Abs(rangeM-satAltitudeM) > 1.0 {
		t.Errorf("range = %.1f m, want ~%.1f m (observer must be geocentric, not barycentric)", rangeM, satAltitudeM)
	}
	if d := sat.ObservedPos.Sub(upObserved).Norm(); d > 1.0 {
		t.Errorf("ObservedPos = %+v, want ~%+v (must be rotated into the Observed frame)", sat.ObservedPos, upObserved)
	}
	if sat.Eclipsed {
		t.Fatalf("satellite unexpectedly eclipsed")
	}

	// At 500 km range, full illumination, and stdmag -1.8, vmag should
	// land around -4, not the +20s a barycentric-range bug would produce.
	if sat.VMag > -2 {
		t.Errorf("vmag = %.2f, want a bright negative magnitude for a 500 km fully-lit pass", sat.VMag)
	}
}
