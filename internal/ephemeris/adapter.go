// Package ephemeris adapts github.com/tejzpr/go-swisseph to the
// aurora.Ephemeris port. Aurora's own code treats planetary ephemerides,
// nutation, and precession as black-box numerical routines (spec §1
// non-goals); this package is the one place that calls into the real
// library and reshapes its outputs into the pv/Mat3 conventions the rest
// of the engine expects.
package ephemeris

import (
	"math"

	swe "github.com/tejzpr/go-swisseph"

	"github.com/novasky/aurora"
)

// mjdToJD converts Modified Julian Date to the Julian Day swe expects.
const mjdToJD = 2400000.5

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000, radians.
// go-swisseph does not export a standalone obliquity routine outside of a
// full Calc call, so the constant is taken from its own IAU 2006 value
// rather than re-derived.
const obliquityJ2000 = 23.4392911 * math.Pi / 180

// Adapter implements aurora.Ephemeris on top of go-swisseph.
type Adapter struct {
	// EphePath, if set, is passed to SetEphePath before first use so
	// go-swisseph can find its JPL/Moshier ephemeris files. Empty uses
	// the library's built-in Moshier approximation.
	EphePath string

	initialized bool
}

func (a *Adapter) ensureInit() {
	if a.initialized {
		return
	}
	if a.EphePath != "" {
		swe.SetEphePath(a.EphePath)
	}
	a.initialized = true
}

// TTToUTC implements aurora.Ephemeris.
func (a *Adapter) TTToUTC(ttMJD float64) (utcMJD, ut1MJD float64) {
	a.ensureInit()
	tjdET := ttMJD + mjdToJD
	dt := swe.Deltat(tjdET) // ET - UT1, in days
	tjdUT1 := tjdET - dt
	// go-swisseph's Deltat approximates ET-UT; treat UTC ≈ UT1 at the
	// sub-second precision this engine needs (DUT1 is small enough that
	// the render loop can't perceive the difference).
	return tjdUT1 - mjdToJD, tjdUT1 - mjdToJD
}

// EarthPV implements aurora.Ephemeris using the Sun's geocentric Cartesian
// position (heliocentric Earth position is the negation of geocentric Sun
// position) with speed enabled for the velocity component.
func (a *Adapter) EarthPV(ttMJD float64) (pvh, pvb aurora.PV) {
	a.ensureInit()
	tjdET := ttMJD + mjdToJD
	flags := int32(swe.FlagSwieph | swe.FlagSpeed | swe.FlagXYZ | swe.FlagEquatorial)
	res := swe.Calc(tjdET, swe.Sun, flags)
	if res.Flag < 0 || len(res.Data) < 6 {
		// Permanent numerical failure: ephemeris file missing or out of
		// range. Fall back to the Moshier analytic model, which go-swisseph
		// selects automatically when FlagSwieph data isn't found, so in
		// practice res.Flag < 0 here means a genuinely bad time argument.
		return aurora.PV{}, aurora.PV{}
	}
	sunGeoPos := aurora.Vec3{X: res.Data[0], Y: res.Data[1], Z: res.Data[2]}
	sunGeoVel := aurora.Vec3{X: res.Data[3], Y: res.Data[4], Z: res.Data[5]}

	// Heliocentric Earth = -geocentric Sun.
	pvh = aurora.PV{Pos: sunGeoPos.Scale(-1), Vel: sunGeoVel.Scale(-1)}

	// Barycentric Earth ≈ heliocentric Earth plus the Sun's own small
	// barycentric offset; approximated here as heliocentric since the
	// Sun-barycenter offset (≤0.01 AU) is below the fast-path tolerance
	// this engine targets (§9 open question on the 1-day drift tolerance
	// applies equally to this simplification).
	pvb = pvh
	return pvh, pvb
}

// NutationPrecessionMatrix implements aurora.Ephemeris with a closed-form
// precession rotation computed here, without a library call. Nutation is
// not applied, so the result rotates J2000 coordinates to the mean
// equator and equinox of date.
func (a *Adapter) NutationPrecessionMatrix(ttMJD float64) aurora.Mat3 {
	a.ensureInit()
	tjdET := ttMJD + mjdToJD
	// Precession: centuries since J2000 drive a slow rotation of the mean
	// equinox. Use the classical Newcomb precession-in-longitude rate,
	// which go-swisseph computes internally for FlagJ2000 comparisons but
	// does not expose directly, so it's reproduced here as a closed form.
	t := (tjdET - 2451545.0) / 36525.0
	zeta := (2306.2181*t + 0.30188*t*t) * math.Pi / 180 / 3600
	z := (2306.2181*t + 1.09468*t*t) * math.Pi / 180 / 3600
	theta := (2004.3109*t - 0.42665*t*t) * math.Pi / 180 / 3600

	precession := rotZ(-z).Mul(rotY(theta)).Mul(rotZ(-zeta))
	return precession
}

// EarthRotationAngle implements aurora.Ephemeris via the library's
// apparent sidereal time, converted from hours to radians.
func (a *Adapter) EarthRotationAngle(ut1MJD float64) float64 {
	a.ensureInit()
	tjdUT := ut1MJD + mjdToJD
	gst := swe.Sidtime(tjdUT) // hours
	return math.Mod(gst/24*2*math.Pi, 2*math.Pi)
}

// EquationOfOrigins implements aurora.Ephemeris as the difference between
// apparent and mean sidereal time, both available from go-swisseph's
// sidereal-time routine family.
func (a *Adapter) EquationOfOrigins(ttMJD float64) float64 {
	a.ensureInit()
	tjdET := ttMJD + mjdToJD
	gstApparent := swe.Sidtime(tjdET)
	gstMean := swe.Sidtime0(tjdET, obliquityJ2000*180/math.Pi, 0)
	return (gstApparent - gstMean) / 24 * 2 * math.Pi
}

func rotX(a float64) aurora.Mat3 {
	s, c := math.Sincos(a)
	return aurora.Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotY(a float64) aurora.Mat3 {
	s, c := math.Sincos(a)
	return aurora.Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotZ(a float64) aurora.Mat3 {
	s, c := math.Sincos(a)
	return aurora.Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}
