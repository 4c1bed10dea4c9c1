package aurora

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// cLightAUPerDay is the speed of light in AU/day, used by the Sun
// apparent-vector light-time correction of §4.1 step 5.
const cLightAUPerDay = 173.144632674

// fastPathMaxDays is the drift tolerance for the fast observer-update path
// (§3, §9 open question: the source hard-codes this to 1.0 day with no
// documented rationale — Aurora keeps the same constant and records the
// ambiguity in DESIGN.md rather than silently picking a different value).
const fastPathMaxDays = 1.0

// ObserverInputs are the handful of values an application sets; everything
// else in Observer is derived by Update (§3).
type ObserverInputs struct {
	Longitude float64 // radians, east-positive
	Latitude  float64 // radians
	Elevation float64 // meters
	Pressure  float64 // hPa; 0 means "derive from Elevation"
	Horizon   float64 // radians, local horizon dip

	TT float64 // Terrestrial Time, MJD

	Yaw, Pitch, Roll float64 // observed-frame pointing, radians
}

// Observer is the central mutable context of §3: it owns every input the
// rest of the engine needs and caches the derived reference-frame state so
// per-frame updates are cheap.
type Observer struct {
	ObserverInputs

	eph Ephemeris

	// Derived scalar time state (§3).
	UTC float64
	UT1 float64

	// Generation increments only on an accurate pass, letting callers
	// cheaply detect "did the accurate state change" without storing a
	// full snapshot copy.
	generation int

	// Derived astrometric state.
	EarthPVH    PV // heliocentric Earth, AU / AU per day
	EarthPVB    PV // barycentric Earth, AU / AU per day
	ObserverPVG PV // geocentric observer (obs_pvg), AU / AU per day
	ObserverPVB PV // barycentric observer, AU / AU per day
	SunApparent Vec3
	RefractionA float64
	RefractionB float64

	nutationPrecession Mat3 // ICRF -> CIRS

	// The eight cached rotation matrices of §4.1 step 4.
	RI2H Mat3 // ICRF -> Observed
	RH2I Mat3 // Observed -> ICRF
	RI2V Mat3 // ICRF -> View
	RI2E Mat3 // ICRF -> Ecliptic
	RE2I Mat3 // Ecliptic -> ICRF
	RC2V Mat3 // CIRS -> View (via ASTROM)
	RO2V Mat3 // Observed -> View
	RV2O Mat3 // View -> Observed

	hashPartial uint64
	hashFull    uint64
	hashAccurate uint64

	lastAccurateTT float64
	updated        bool
}

// NewObserver creates an Observer bound to the given Ephemeris. Update must
// be called at least once before any frame conversion is valid.
func NewObserver(eph Ephemeris, inputs ObserverInputs) *Observer {
	return &Observer{ObserverInputs: inputs, eph: eph}
}

// snapshot builds the small value type the two hashes derive from (§3, §9).
func (o *Observer) snapshot() ObserverSnapshot {
	return ObserverSnapshot{
		Longitude: o.Longitude,
		Latitude:  o.Latitude,
		Elevation: o.Elevation,
		Horizon:   o.Horizon,
		Pressure:  o.effectivePressure(),
		Yaw:       o.Yaw,
		Pitch:     o.Pitch,
		Roll:      o.Roll,
		TT:        o.TT,
	}
}

// effectivePressure derives pressure from elevation when the caller left it
// at zero, using the standard barometric formula (§4.1).
func (o *Observer) effectivePressure() float64 {
	if o.Pressure != 0 {
		return o.Pressure
	}
	return 1013.25 * math.Pow(1-2.2557e-5*o.Elevation, 5.25588)
}

// Update ensures derived state is consistent with inputs (§4.1's
// update(observer, fast)). It is idempotent: calling it twice without an
// input change performs no work. fast permits the reduced path of §3 when
// only pointing/time changed and the last accurate update was within
// fastPathMaxDays.
func (o *Observer) Update(fast bool) error {
	snap := o.snapshot()
	full := snap.hashFull()
	if o.updated && full == o.hashFull {
		return nil // no input change: idempotent no-op
	}

	canFast := fast && o.updated && snap.hashPartial() == o.hashPartial &&
		math.Abs(o.TT-o.lastAccurateTT) <= fastPathMaxDays

	if canFast {
		o.updateFast()
	} else {
		if err := o.updateAccurate(); err != nil {
			return err
		}
		o.lastAccurateTT = o.TT
		o.hashAccurate = full
		o.generation++
	}

	o.hashFull = full
	o.hashPartial = snap.hashPartial()
	o.updated = true
	return nil
}

// updateAccurate runs the full pipeline of §4.1: time conversion, Epv00
// (via the Ephemeris port), matrix composition, and the Sun apparent
// vector. This is the only path that may call Ephemeris.EarthPV.
func (o *Observer) updateAccurate() error {
	utc, ut1 := o.eph.TTToUTC(o.TT)
	if isNaN(utc) || isNaN(ut1) {
		return NewError(KindNumerical, "TTToUTC produced NaN")
	}
	o.UTC, o.UT1 = utc, ut1

	pvh, pvb := o.eph.EarthPV(o.TT)
	o.EarthPVH, o.EarthPVB = pvh, pvb

	o.nutationPrecession = o.eph.NutationPrecessionMatrix(o.TT)
	era := o.eph.EarthRotationAngle(o.UT1)

	o.computeObserverPVB(pvb, era)
	o.computeMatrices(era)
	o.computeSunApparent()
	o.computeRefraction()
	return nil
}

// updateFast advances by linear extrapolation instead of recomputing the
// ephemeris (§4.1 step 2–3): Earth pv is extrapolated by velocity*Δt, and
// the observer is re-derived from the rotating Earth, never linearly
// extrapolated itself.
func (o *Observer) updateFast() {
	dt := o.TT - o.lastAccurateTT
	o.EarthPVH = extrapolatePV(o.EarthPVH, dt)
	o.EarthPVB = extrapolatePV(o.EarthPVB, dt)

	utc, ut1 := o.eph.TTToUTC(o.TT)
	o.UTC, o.UT1 = utc, ut1
	era := o.eph.EarthRotationAngle(o.UT1)

	o.computeObserverPVB(o.EarthPVB, era)
	o.computeMatrices(era)
	o.computeSunApparent()
	o.computeRefraction()
}

func extrapolatePV(pv PV, dt float64) PV {
	return PV{Pos: pv.Pos.Add(pv.Vel.Scale(dt)), Vel: pv.Vel}
}

// computeObserverPVB derives the observer's geocentric and barycentric pv
// from the topocentric station vector rotated by ERA (§4.1 step 3): the
// station longitude is Earth-fixed, so it must be rotated by era+longitude
// into ICRF orientation before it means anything in a barycentric frame.
// The observer rotates with Earth and is never extrapolated on its own.
func (o *Observer) computeObserverPVB(earthPVB PV, era float64) {
	const earthRadiusAU = 6378137.0 / 149597870700.0
	r := (earthRadiusAU + o.Elevation/149597870700.0) * math.Cos(o.Latitude)
	angle := era + o.Longitude
	stationICRF := Vec3{
		X: r * math.Cos(angle),
		Y: r * math.Sin(angle),
		Z: earthRadiusAU * math.Sin(o.Latitude),
	}
	// Rotational velocity from Earth's spin is omitted here: range-rate
	// from the station's own motion is far below the precision this
	// engine's magnitude/visibility formulas need.
	o.ObserverPVG = PV{Pos: stationICRF, Vel: Vec3{}}
	o.ObserverPVB = PV{Pos: earthPVB.Pos.Add(stationICRF), Vel: earthPVB.Vel}
}

// computeMatrices composes the six primitive rotations into the eight
// matrices cached on the Observer (§4.1 step 4).
func (o *Observer) computeMatrices(era float64) {
	// Primitive: CIRS -> topocentric Horizontal, via ERA then HA/Dec->Az/El
	// and polar motion (polar motion omitted — negligible at this engine's
	// target precision, recorded as an Open-Question-style simplification).
	haRot := rotZ(era + o.Longitude)
	latRot := rotY(math.Pi/2 - o.Latitude)
	cirsToObserved := latRot.Mul(haRot)

	riH := cirsToObserved.Mul(o.nutationPrecession)
	// Primitive: observed -> mount/view, from yaw/pitch/roll pointing.
	observedToView := rotZ(o.Roll).Mul(rotY(o.Pitch)).Mul(rotZ(o.Yaw))

	o.RI2H = riH
	o.RH2I = riH.Transpose()
	o.RO2V = observedToView
	o.RV2O = observedToView.Transpose()
	o.RI2V = observedToView.Mul(riH)
	o.RC2V = observedToView.Mul(cirsToObserved)

	const obliquityJ2000 = 23.4392911 * math.Pi / 180
	o.RI2E = rotX(obliquityJ2000)
	o.RE2I = o.RI2E.Transpose()
}

// computeSunApparent derives the apparent Sun vector (§4.1 step 5): one
// light-time correction collectively covers light-time, annual, and
// diurnal aberration.
func (o *Observer) computeSunApparent() {
	r := o.ObserverPVB.Pos.Scale(-1) // barycentric Sun is the coordinate origin
	dist := r.Norm()
	lightTimeCorrection := o.ObserverPVB.Vel.Scale(dist / cLightAUPerDay)
	o.SunApparent = r.Sub(lightTimeCorrection)
}

// computeRefraction derives the pressure/temperature-dependent refraction
// constants RefractionA/RefractionB. A single-constant Bennett-style
// approximation is used; the exact ERFA refraction series is the black-box
// Ephemeris's concern when higher fidelity is required.
func (o *Observer) computeRefraction() {
	p := o.effectivePressure()
	const t0 = 10.0 // deg C, standard temperature assumption
	o.RefractionA = 0.0167 * (p / 1010.0) * (283.0 / (273.0 + t0)) * math.Pi / 180
	o.RefractionB = 0.0
}

// rotX/rotY/rotZ build one of the engine's six primitive rotations (§4.1)
// as a gonum mat.Dense and convert it to the cached Mat3 representation, so
// the one place the engine hand-derives a rotation matrix from an angle
// still goes through gonum rather than a bespoke Sincos literal.
func rotX(a float64) Mat3 { return matFromDense(mat.NewDense(3, 3, rotXData(a))) }
func rotY(a float64) Mat3 { return matFromDense(mat.NewDense(3, 3, rotYData(a))) }
func rotZ(a float64) Mat3 { return matFromDense(mat.NewDense(3, 3, rotZData(a))) }

func rotXData(a float64) []float64 {
	s, c := math.Sincos(a)
	return []float64{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotYData(a float64) []float64 {
	s, c := math.Sincos(a)
	return []float64{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotZData(a float64) []float64 {
	s, c := math.Sincos(a)
	return []float64{c, -s, 0, s, c, 0, 0, 0, 1}
}

func matFromDense(d *mat.Dense) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = d.At(i, j)
		}
	}
	return r
}

func isNaN(f float64) bool { return f != f }

// Generation returns the counter incremented only on an accurate pass,
// letting a module cheaply test "has the accurate state changed since I
// last looked".
func (o *Observer) Generation() int { return o.generation }

// HashFull returns the full observer hash of §3 (location, pointing, and
// time). Two observers with the same HashFull produce identical derived
// state.
func (o *Observer) HashFull() uint64 { return o.hashFull }

// HashPartial returns the partial observer hash of §3 (location and
// horizon/pressure only), used to decide fast-vs-accurate refresh.
func (o *Observer) HashPartial() uint64 { return o.hashPartial }
