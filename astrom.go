package aurora

// Ephemeris is the black-box numerical port ERFA (and, for Aurora, the
// Swiss Ephemeris) sits behind (§1 non-goals: "The ERFA astronomy
// routines... treated as black-box numerical libraries"). Observer.Update
// calls only this interface; it never reimplements precession, nutation,
// or planetary ephemerides itself.
//
// All angles are radians, all times are MJD (TT unless noted), all
// distances are AU — the unit conventions of §6.
type Ephemeris interface {
	// TTToUTC converts Terrestrial Time to UTC and UT1 via the leap-second
	// table and DUT1 (§4.1 step 1).
	TTToUTC(ttMJD float64) (utcMJD, ut1MJD float64)

	// EarthPV returns the Earth's heliocentric and barycentric pv
	// (position AU, velocity AU/day) at the given TT. Called on the
	// accurate path (Epv00 in the source ERFA); the fast-path linear
	// extrapolation lives in Observer itself (§4.1 step 2).
	EarthPV(ttMJD float64) (pvh, pvb PV)

	// NutationPrecessionMatrix returns the rotation from mean J2000 ICRF
	// coordinates to true-of-date CIRS coordinates at the given TT
	// (the composed Pnm06a/Bpn2xy/S06 pipeline of §4.1 step 1).
	NutationPrecessionMatrix(ttMJD float64) Mat3

	// EarthRotationAngle returns the Earth Rotation Angle (ERA) in
	// radians at the given UT1, used to rotate a topocentric station
	// vector into ICRF on the fast path (§4.1 step 3).
	EarthRotationAngle(ut1MJD float64) float64

	// EquationOfOrigins returns the equation of the origins in radians at
	// the given TT (§3: "Derived each update... equation of origins").
	EquationOfOrigins(ttMJD float64) float64
}

// lightDaysPerAU is used by the Sun apparent-vector correction of §4.1
// step 5: light-time in days for a distance of 1 AU.
const lightDaysPerAU = 499.004783836 / 86400.0
