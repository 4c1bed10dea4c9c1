package satellites

import (
	"math"
	"strconv"

	"github.com/novasky/aurora"
)

// Satellite is one artificial-satellite object (§4.8, GLOSSARY): an
// element set plus the cached per-frame state an update derives from it.
// Light-time and aberration are not corrected (§4.8: orbital distances
// make the correction negligible), so the SGP4 output is treated directly
// as an ICRF position, matching the Ephemeris port's own black-box
// treatment of orbital mechanics.
type Satellite struct {
	Elements *Elements

	// ICRFPos/ICRFVel are meters and meters/second (§6: "meters internally,
	// AU at the API boundary").
	ICRFPos aurora.Vec3
	ICRFVel aurora.Vec3

	// ObservedPos is the satellite as seen from the observer, in the
	// Observed frame, meters.
	ObservedPos aurora.Vec3

	VMag      float64
	Eclipsed  bool
	lastError error

	inVisibleList bool
}

// NewSatellite wraps an element set. Update must be called at least once
// before any derived field is meaningful.
func NewSatellite(el *Elements) *Satellite {
	return &Satellite{Elements: el, VMag: math.NaN()}
}

// Err returns the sticky propagation error, if any (§7's KindPermanent
// policy: once SGP4 reports the orbit has decayed beyond recovery, further
// Update calls are a no-op that keeps returning this error).
func (s *Satellite) Err() error { return s.lastError }

// Update recomputes the satellite's ICRF/observed state and vmag for the
// observer's current epoch (§4.8). prop is typically a package-level
// WGS72Propagator{}; it is passed in rather than stored on Satellite so a
// catalog of thousands can share one stateless propagator.
func (s *Satellite) Update(prop Propagator, obs *aurora.Observer, sunICRF aurora.Vec3) error {
	if s.lastError != nil {
		return s.lastError
	}

	tsince := minutesSinceEpoch(s.Elements, obs.UTC)
	posKM, velKMS, ok := prop.Propagate(s.Elements, tsince)
	if !ok {
		s.lastError = aurora.NewError(aurora.KindPermanent, "sgp4 propagation failed (decayed orbit)")
		aurora.LogPermanentOnce("satellite/"+strconv.Itoa(s.Elements.CatalogNumber), "satellite propagation failed", map[string]any{
			"catalog": s.Elements.CatalogNumber,
		})
		return s.lastError
	}

	s.ICRFPos = aurora.Vec3{X: posKM[0] * 1000, Y: posKM[1] * 1000, Z: posKM[2] * 1000}
	s.ICRFVel = aurora.Vec3{X: velKMS[0] * 1000, Y: velKMS[1] * 1000, Z: velKMS[2] * 1000}

	observerICRF := obs.ObserverPVG.Pos.Scale(aurora.AU)
	topocentricICRF := s.ICRFPos.Sub(observerICRF)
	s.ObservedPos = obs.RI2H.Apply(topocentricICRF)

	illum, eclipsed := EclipseFactor(s.ICRFPos, sunICRF)
	s.Eclipsed = eclipsed
	rangeKM := s.ObservedPos.Norm() / 1000
	s.VMag = Magnitude(s.Elements.StdMag, rangeKM, illum)
	return nil
}

// minutesSinceEpoch converts the observer's current UTC (MJD) to the
// minutes-since-element-epoch SGP4 expects.
func minutesSinceEpoch(el *Elements, utcMJD float64) float64 {
	epochMJD := yearDayToMJD(el.EpochYear, el.EpochDay)
	return (utcMJD - epochMJD) * minutesPerDay
}

// yearDayToMJD converts a TLE epoch (year, fractional day-of-year) to MJD.
func yearDayToMJD(year int, day float64) float64 {
	// MJD of Jan 0.0 of the given year (proleptic Gregorian).
	y := year - 1
	mjdJan0 := 365*y + y/4 - y/100 + y/400 - 678576
	return float64(mjdJan0) + day
}
