package aurora

import "math"

// radiansPerArcsec converts an arcsecond measure to radians, used by the
// illuminance formula's R2AS (radians-to-arcseconds) factor in §4.5.
const radiansPerArcsec = Deg / 3600

// eyeAdaptationHalfLife is the ~0.06s half-life §4.5 specifies for blending
// Lwmax toward the current frame's value (documented as "about 16% per
// 0.01666 s", i.e. one 60Hz frame).
const eyeAdaptationHalfLife = 0.06

// Tonemapper implements the parametric curve and eye-adaptation model of
// §4.5: `Ld = (ln(1 + p*Lw) / ln(1 + p*Lwmax))^(1/q)`.
type Tonemapper struct {
	P, Q float64 // curve shape parameters

	Lwmax float64 // adapted max world luminance, blended across frames

	// ScreenSizeFactor interpolates between 0.7 (small screen) and 1.5
	// (large screen), feeding the radius formula's s term.
	ScreenSizeFactor float64
	BortleIndex      float64
	ManualScale      float64

	// StarRelativeScale is the radius formula's s_rel exponent term
	// (§4.5 step 3); 0 is treated as the default of 1.0.
	StarRelativeScale float64

	RSkip, RMin, RMax float64
}

// NewTonemapper returns a Tonemapper with the curve defaults used
// throughout the rest of this package's tests.
func NewTonemapper() *Tonemapper {
	return &Tonemapper{
		P: 1.0, Q: 1.0,
		ScreenSizeFactor:  1.0,
		BortleIndex:       1,
		ManualScale:       1,
		StarRelativeScale: 1.0,
		RSkip:             0.15,
		RMin:              0.6,
		RMax:              14,
	}
}

// AdaptExponential blends Lwmax toward newLwmax over dt seconds using the
// half-life of §4.5.
func (tm *Tonemapper) AdaptExponential(newLwmax, dt float64) {
	if tm.Lwmax == 0 {
		tm.Lwmax = newLwmax
		return
	}
	k := math.Pow(0.5, dt/eyeAdaptationHalfLife)
	tm.Lwmax = math.Exp(k*math.Log(tm.Lwmax) + (1-k)*math.Log(math.Max(newLwmax, 1e-12)))
}

// AdaptFast jumps Lwmax directly to newLwmax, skipping the exponential
// blend (§4.5: "used when a bright object like the Moon enters the FOV").
func (tm *Tonemapper) AdaptFast(newLwmax float64) {
	tm.Lwmax = newLwmax
}

// Tonemap applies the parametric curve to a world luminance Lw, returning
// display luminance Ld in [0, 1].
func (tm *Tonemapper) Tonemap(lw float64) float64 {
	if tm.Lwmax <= 0 || lw < 0 {
		return 0
	}
	num := math.Log(1 + tm.P*lw)
	den := math.Log(1 + tm.P*tm.Lwmax)
	if den <= 0 {
		return 0
	}
	ld := math.Pow(num/den, 1/tm.Q)
	return clamp(ld, 0, 1)
}

// IlluminanceFromMagnitude implements §4.5 step 1: E(vmag) in lux.
func IlluminanceFromMagnitude(vmag float64) float64 {
	const r2as = 1 / radiansPerArcsec
	return 10.7646e4 / (r2as * r2as) * math.Pow(10, -0.4*vmag)
}

// TelescopeParams bundles the light-grasp/magnification factors §4.5 step 2
// folds the illuminance through on the way to apparent luminance.
type TelescopeParams struct {
	LightGrasp   float64 // aperture-area ratio vs. the naked eye pupil
	Magnification float64
}

// apparentLuminance implements §4.5 step 2: illuminance scaled by light
// grasp and magnification, with an enforced minimum apparent solid angle
// (a 2.5-arcmin disk standing in for the eye's point spread function).
func apparentLuminance(illuminanceLux float64, tel TelescopeParams) float64 {
	const minAngleRad = 2.5 / 60 * Deg
	minSolidAngle := math.Pi * minAngleRad * minAngleRad
	gain := tel.LightGrasp * tel.Magnification * tel.Magnification
	if gain <= 0 {
		gain = 1
	}
	return illuminanceLux * gain / minSolidAngle
}

// MagnitudeToRadius implements §4.5 steps 2–3: the full magnitude-to-screen
// -radius pipeline, returning the final radius in pixels, a brightness
// multiplier in [0, 1] for the caller's draw color, and whether the star is
// visible at all (false means "drop it", below RSkip).
//
// Between RSkip and RMin the radius is clamped up to RMin but the
// brightness multiplier ramps from 0 to 1 across that same band, so a star
// fades in as it crosses the skip threshold instead of popping straight to
// RMin's size at full brightness.
func (tm *Tonemapper) MagnitudeToRadius(vmag float64, tel TelescopeParams) (radius, luminance float64, visible bool) {
	e := IlluminanceFromMagnitude(vmag)
	lw := apparentLuminance(e, tel)
	ld := tm.Tonemap(lw)

	s := tm.ManualScale * tm.ScreenSizeFactor * (1 + tm.BortleIndex/10)
	sRel := tm.StarRelativeScale
	if sRel == 0 {
		sRel = 1.0
	}
	r := s * math.Pow(math.Max(ld, 0), sRel/2)

	if r < tm.RSkip {
		return 0, 0, false
	}
	luminance = 1.0
	if r < tm.RMin {
		if tm.RMin > tm.RSkip {
			luminance = (r - tm.RSkip) / (tm.RMin - tm.RSkip)
		}
		r = tm.RMin
	}
	if r > tm.RMax {
		r = tm.RMax
	}
	luminance = math.Pow(luminance, 1/2.2) // gamma 2.2, applied last
	return r, luminance, true
}

// LimitingMagnitude implements §4.5 step 4: a dichotomy (bisection) search
// over vmag for the magnitude whose radius equals targetRadius, used to
// derive per-frame stars_limit_mag / hints_limit_mag.
func (tm *Tonemapper) LimitingMagnitude(targetRadius float64, tel TelescopeParams) float64 {
	lo, hi := -30.0, 30.0
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		r, _, visible := tm.MagnitudeToRadius(mid, tel)
		if !visible || r < targetRadius {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
