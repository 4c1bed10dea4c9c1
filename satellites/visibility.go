package satellites

import (
	"math"

	"github.com/novasky/aurora"
)

// earthRadiusKM is used for the Earth's angular radius as seen from a
// satellite, the eclipse geometry of §4.8.
const earthRadiusKM = 6378.135

// sunRadiusKM is the Sun's physical radius, for its angular size as seen
// from orbit.
const sunRadiusKM = 696000.0

// EclipseFactor computes the illuminated fraction of a satellite and
// whether it is fully eclipsed by Earth (§4.8): the elongation between
// the satellite-to-Earth-center and satellite-to-Sun directions is
// compared against the angular radii of Earth and the Sun as seen from
// the satellite. satICRF and sunICRF are both in meters, ICRF-centered on
// Earth.
func EclipseFactor(satICRF, sunICRF aurora.Vec3) (illum float64, eclipsed bool) {
	toEarth := satICRF.Scale(-1)
	toSun := sunICRF.Sub(satICRF)

	earthDist := toEarth.Norm()
	sunDist := toSun.Norm()
	if earthDist == 0 || sunDist == 0 {
		return 1, false
	}

	elongation := toEarth.Angle(toSun)
	earthAngRadius := math.Asin(math.Min(earthRadiusKM*1000/earthDist, 1))
	sunAngRadius := math.Asin(math.Min(sunRadiusKM*1000/sunDist, 1))

	if elongation < earthAngRadius-sunAngRadius {
		// Sun fully occluded by Earth: total eclipse.
		return 0, true
	}
	if elongation >= earthAngRadius+sunAngRadius {
		// No overlap: fully lit.
		return 1, false
	}
	// Partial: approximate with a linear ramp across the penumbra band
	// rather than the full two-circle overlap-area integral (a numerical
	// refinement this engine treats as out of scope, same as SDP4).
	span := (earthAngRadius + sunAngRadius) - (earthAngRadius - sunAngRadius)
	if span <= 0 {
		return 1, false
	}
	frac := (elongation - (earthAngRadius - sunAngRadius)) / span
	return clamp01(frac), false
}

// Magnitude implements §4.8's apparent-magnitude formula for a satellite:
// eclipsed satellites (illum == 0) get the sentinel; otherwise
// `stdmag - 15.75 + 2.5*log10(range^2/fracil)`, range in km.
func Magnitude(stdmag, rangeKM, illum float64) float64 {
	const eclipsedSentinel = 17.0
	if illum <= 0 {
		return eclipsedSentinel
	}
	if math.IsNaN(stdmag) {
		return math.NaN()
	}
	return stdmag - 15.75 + 2.5*math.Log10(rangeKM*rangeKM/illum)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
