package satellites

import "math"

// WGS72Propagator is the pure-Go near-earth SGP4 implementation Aurora
// carries as its one non-ecosystem dependency (see sgp4.go's doc comment
// and DESIGN.md). It covers the near-earth case (orbital period under 225
// minutes) that the overwhelming majority of a catalog's entries fall
// into; deep-space objects (SDP4's resonance/lunar-solar terms) are out of
// scope, matching §1's orbital-mechanics non-goal applied at the
// algorithm-variant level rather than skipped entirely.
type WGS72Propagator struct{}

// WGS72 gravitational constants (Spacetrack Report #3 conventions).
const (
	wgs72RadiusEarthKM = 6378.135
	wgs72XKE           = 0.0743669161
	wgs72J2            = 0.001082616
	wgs72J3            = -0.00000253881
	wgs72J4            = -0.00000165597
	wgs72Tumin         = 1.0 / wgs72XKE
	minutesPerDay      = 1440.0
	deg2rad            = math.Pi / 180.0
)

// record holds the derived secular-rate constants SGP4 computes once from
// an element set and then reuses at every propagation step.
type record struct {
	no, a, e, i, omega, argp, m0 float64
	bstar                        float64

	cosio, sinio, theta2, x3thm1 float64

	mdot, omegadot, argpdot float64

	c1, c4 float64
	t2cof  float64
}

func deriveRecord(el *Elements) *record {
	r := &record{}
	r.no = el.MeanMotion * 2 * math.Pi / minutesPerDay // rad/min
	r.e = el.Eccentricity
	r.i = el.Inclination * deg2rad
	r.omega = el.RAAN * deg2rad
	r.argp = el.ArgPerigee * deg2rad
	r.m0 = el.MeanAnomaly * deg2rad
	r.bstar = el.BStar

	a1 := math.Pow(wgs72XKE/r.no, 2.0/3.0)
	r.cosio = math.Cos(r.i)
	r.sinio = math.Sin(r.i)
	r.theta2 = r.cosio * r.cosio
	r.x3thm1 = 3*r.theta2 - 1
	betao2 := 1 - r.e*r.e
	betao := math.Sqrt(betao2)
	del1 := 1.5 * wgs72J2 * r.x3thm1 / (a1 * a1 * betao * betao2)
	a0 := a1 * (1 - del1*(1.0/3.0+del1*(1+134.0/81.0*del1)))
	del0 := 1.5 * wgs72J2 * r.x3thm1 / (a0 * a0 * betao * betao2)
	r.a = a0 / (1 - del0)
	r.no = r.no / (1 + del0)

	// Secular rates of node, perigee, and mean anomaly from J2 (Spacetrack
	// Report #3 eq. 2-7..2-9), evaluated at epoch.
	temp := 1.5 * wgs72J2 / (r.a * r.a * betao * betao2) * r.no
	r.omegadot = -temp * r.cosio
	r.argpdot = temp * (2.5 * r.theta2 - 0.5)
	r.mdot = r.no + 0.5*temp*betao*r.x3thm1

	c2 := wgs72J2 / (r.a * r.a * betao2 * betao2) * r.no
	r.c1 = r.bstar * c2
	r.c4 = 2 * r.no * r.bstar * r.a * betao2
	r.t2cof = 1.5 * r.c1
	return r
}

// Propagate implements Propagator. minutesSinceEpoch is tsince in the
// classic SGP4 formulation.
func (WGS72Propagator) Propagate(el *Elements, tsince float64) (posKM, velKMS [3]float64, ok bool) {
	r := deriveRecord(el)

	xmdf := r.m0 + r.mdot*tsince
	omgadf := r.argp + r.argpdot*tsince
	xnode := r.omega + r.omegadot*tsince
	tsq := tsince * tsince
	tempa := 1 - r.c1*tsince
	tempe := r.bstar * r.c4 * tsince
	templ := r.t2cof * tsq

	a := r.a * tempa * tempa
	e := r.e - tempe
	if e < 1e-6 {
		e = 1e-6
	}
	if e > 1 {
		return posKM, velKMS, false
	}
	xl := xmdf + templ
	omega := omgadf

	beta := math.Sqrt(1 - e*e)

	// Long-period periodics (simplified: the J3 correction to ayn is kept,
	// the Sun/Moon resonance terms a full SDP4 would add for deep-space
	// orbits are not).
	axn := e * math.Cos(omega)
	aynl := wgs72J3 * r.sinio / (4 * wgs72J2 * a * beta * beta)
	xlt := xl
	ayn := e*math.Sin(omega) + aynl

	capu := math.Mod(xlt-xnode, 2*math.Pi)
	epw := capu
	for iter := 0; iter < 10; iter++ {
		sinEPW := math.Sin(epw)
		cosEPW := math.Cos(epw)
		ecosE := axn*cosEPW + ayn*sinEPW
		esinE := axn*sinEPW - ayn*cosEPW
		f := epw + esinE - capu
		if math.Abs(f) < 1e-12 {
			break
		}
		fdot := 1 - ecosE
		epw -= f / fdot
	}

	sinEPW := math.Sin(epw)
	cosEPW := math.Cos(epw)
	ecosE := axn*cosEPW + ayn*sinEPW
	esinE := axn*sinEPW - ayn*cosEPW
	elsq := axn*axn + ayn*ayn
	if elsq >= 1 {
		return posKM, velKMS, false
	}
	pl := a * (1 - elsq)
	if pl < 0 {
		return posKM, velKMS, false
	}

	r_ := a * (1 - ecosE)
	rdot := wgs72XKE * math.Sqrt(a) / r_ * esinE
	rfdot := wgs72XKE * math.Sqrt(pl) / r_
	temp1 := esinE / (1 + math.Sqrt(1-elsq))
	sinu := a / r_ * (sinEPW - ayn - axn*temp1)
	cosu := a / r_ * (cosEPW - axn + ayn*temp1)
	u := math.Atan2(sinu, cosu)
	sin2u := 2 * sinu * cosu
	cos2u := 1 - 2*sinu*sinu

	// Short-period periodics from oblateness (the part of SGP4's
	// correction this simplified port keeps).
	temp := 0.5 * wgs72J2 * (1 / pl)
	rk := r_*(1-1.5*temp*beta*r.x3thm1) + 0.5*temp*(1-r.theta2)*cos2u
	uk := u - 0.25*temp*(7*r.theta2-1)*sin2u
	xnodek := xnode + 1.5*temp*r.cosio*sin2u
	xinck := r.i + 1.5*temp*r.cosio*r.sinio*cos2u

	sinuk := math.Sin(uk)
	cosuk := math.Cos(uk)
	sinik := math.Sin(xinck)
	cosik := math.Cos(xinck)
	sinnok := math.Sin(xnodek)
	cosnok := math.Cos(xnodek)
	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	ux := xmx*sinuk + cosnok*cosuk
	uy := xmy*sinuk + sinnok*cosuk
	uz := sinik * sinuk
	vx := xmx*cosuk - cosnok*sinuk
	vy := xmy*cosuk - sinnok*sinuk
	vz := sinik * cosuk

	x := rk * ux * wgs72RadiusEarthKM
	y := rk * uy * wgs72RadiusEarthKM
	z := rk * uz * wgs72RadiusEarthKM

	// rdot/rfdot are in earth-radii/min; scale to km/s.
	vx_ := (rdot*ux + rfdot*vx) * wgs72RadiusEarthKM / 60.0
	vy_ := (rdot*uy + rfdot*vy) * wgs72RadiusEarthKM / 60.0
	vz_ := (rdot*uz + rfdot*vz) * wgs72RadiusEarthKM / 60.0

	if rk <= 0 || math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		return posKM, velKMS, false
	}

	return [3]float64{x, y, z}, [3]float64{vx_, vy_, vz_}, true
}
