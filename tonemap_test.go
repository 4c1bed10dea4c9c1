package aurora

import "testing"

func TestTonemapMonotonic(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = 100

	a := tm.Tonemap(1)
	b := tm.Tonemap(10)
	if !(a < b) {
		t.Errorf("expected Tonemap to be monotonically increasing, got %v then %v", a, b)
	}
}

func TestTonemapAtLwmaxIsOne(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = 50
	if ld := tm.Tonemap(50); ld < 0.999 {
		t.Errorf("expected Ld≈1 at Lw==Lwmax, got %v", ld)
	}
}

func TestAdaptFastJumpsImmediately(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = 1
	tm.AdaptFast(1000)
	if tm.Lwmax != 1000 {
		t.Errorf("expected AdaptFast to set Lwmax directly, got %v", tm.Lwmax)
	}
}

func TestAdaptExponentialConverges(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = 1
	for i := 0; i < 200; i++ {
		tm.AdaptExponential(1000, 1.0/60)
	}
	if diff := tm.Lwmax - 1000; diff > 1 || diff < -1 {
		t.Errorf("expected Lwmax to converge near 1000 after many frames, got %v", tm.Lwmax)
	}
}

func TestMagnitudeToRadiusBrighterIsLarger(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = IlluminanceFromMagnitude(-5)
	tel := TelescopeParams{LightGrasp: 1, Magnification: 1}

	rBright, _, okBright := tm.MagnitudeToRadius(-2, tel)
	rDim, _, okDim := tm.MagnitudeToRadius(3, tel)
	if !okBright {
		t.Fatal("expected a bright star to be visible")
	}
	if okDim && rDim > rBright {
		t.Errorf("expected a brighter star to have a larger or equal radius: bright=%v dim=%v", rBright, rDim)
	}
}

// TestMagnitudeToRadiusFadesBetweenSkipAndMin covers §4.5 step 3: a star
// whose raw radius falls between RSkip and RMin gets its radius clamped up
// to RMin but its luminance multiplier ramped down, instead of appearing at
// full brightness the instant it crosses RSkip.
func TestMagnitudeToRadiusFadesBetweenSkipAndMin(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = IlluminanceFromMagnitude(-5)
	tel := TelescopeParams{LightGrasp: 1, Magnification: 1}

	// Find a magnitude whose unclamped radius sits inside (RSkip, RMin).
	var found bool
	var lum float64
	for mag := -10.0; mag < 20; mag += 0.05 {
		_, l, visible := tm.MagnitudeToRadius(mag, tel)
		if !visible {
			continue
		}
		if l < 1 {
			found = true
			lum = l
			break
		}
	}
	if !found {
		t.Fatal("never found a magnitude landing in the r_skip..r_min fade band")
	}
	if lum <= 0 || lum >= 1 {
		t.Errorf("luminance in the fade band = %v, want strictly between 0 and 1", lum)
	}
}

func TestLimitingMagnitudeBisectionConverges(t *testing.T) {
	tm := NewTonemapper()
	tm.Lwmax = IlluminanceFromMagnitude(-5)
	tel := TelescopeParams{LightGrasp: 1, Magnification: 1}

	mag := tm.LimitingMagnitude(tm.RMin, tel)
	r, _, ok := tm.MagnitudeToRadius(mag, tel)
	if !ok {
		t.Fatal("expected limiting magnitude to still be visible")
	}
	if diff := r - tm.RMin; diff > 0.5 || diff < -0.5 {
		t.Errorf("expected radius at limiting magnitude near RMin=%v, got %v", tm.RMin, r)
	}
}
