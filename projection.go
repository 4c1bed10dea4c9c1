package aurora

import "math"

// Projection maps View-frame unit 3-vectors to/from normalized device
// coordinates (NDC, [-1, 1] on the shorter screen axis), §4.2.
type Projection interface {
	// Project returns the NDC point for a View-space unit vector, and false
	// if the point is behind the viewer (unprojectable at this fov).
	Project(v Vec3) (ndc Vec3, ok bool)
	// Unproject is the inverse of Project.
	Unproject(ndc Vec3) Vec3
	// MaxFOV returns the largest field of view this projection supports,
	// radians.
	MaxFOV() float64
	// ComputeFOVs derives the horizontal/vertical field of view from a
	// reference fov (vertical, by convention) and the viewport aspect
	// ratio (width / height).
	ComputeFOVs(fov, aspect float64) (fovx, fovy float64)
}

// StereographicProjection implements the classic stereographic projection,
// the default of most sky-rendering engines: it preserves angles and maps
// the entire sphere minus the antipodal point onto the plane.
type StereographicProjection struct{}

func (StereographicProjection) MaxFOV() float64 { return 235 * Deg }

func (StereographicProjection) ComputeFOVs(fov, aspect float64) (fovx, fovy float64) {
	fovy = fov
	// Stereographic scale factor k = 2 / (1 + cos(fov/2)); horizontal fov
	// solves the same k for the wider axis when aspect > 1.
	k := 2 / (1 + math.Cos(fovy/2))
	halfHeight := k * math.Sin(fovy/2)
	halfWidth := halfHeight * aspect
	fovx = 2 * math.Atan2(halfWidth, k*math.Cos(fovy/2)+ (1-k))
	if fovx < fovy {
		fovx = fovy
	}
	return fovx, fovy
}

func (StereographicProjection) Project(v Vec3) (Vec3, bool) {
	// View convention: +Z is the direction the observer is looking.
	if v.Z <= -1+1e-12 {
		return Vec3{}, false
	}
	k := 2 / (1 + v.Z)
	return Vec3{X: k * v.X, Y: k * v.Y, Z: 0}, true
}

func (StereographicProjection) Unproject(ndc Vec3) Vec3 {
	r2 := ndc.X*ndc.X + ndc.Y*ndc.Y
	denom := 4 + r2
	return Vec3{
		X: 4 * ndc.X / denom,
		Y: 4 * ndc.Y / denom,
		Z: (4 - r2) / denom,
	}.Normalize()
}

// OrthographicProjection implements a simple orthographic (parallel)
// projection, used for planetarium "flat disk" rendering of a hemisphere.
type OrthographicProjection struct{}

func (OrthographicProjection) MaxFOV() float64 { return 180 * Deg }

func (OrthographicProjection) ComputeFOVs(fov, aspect float64) (fovx, fovy float64) {
	fovy = fov
	fovx = fov * aspect
	maxFOV := (OrthographicProjection{}).MaxFOV()
	if fovx > maxFOV {
		fovx = maxFOV
	}
	return fovx, fovy
}

func (OrthographicProjection) Project(v Vec3) (Vec3, bool) {
	if v.Z < 0 {
		return Vec3{}, false
	}
	return Vec3{X: v.X, Y: v.Y, Z: 0}, true
}

func (OrthographicProjection) Unproject(ndc Vec3) Vec3 {
	r2 := ndc.X*ndc.X + ndc.Y*ndc.Y
	if r2 > 1 {
		return Vec3{X: ndc.X, Y: ndc.Y, Z: 0}.Normalize()
	}
	return Vec3{X: ndc.X, Y: ndc.Y, Z: math.Sqrt(1 - r2)}
}

// ViewportCap computes the bounding cap (§4.2) for a full-frame view at the
// given half-angle (half of the diagonal field of view), centered on the
// forward view direction (0, 0, 1) by construction.
func ViewportCap(halfAngle float64) Cap {
	return Cap{Axis: Vec3{X: 0, Y: 0, Z: 1}, CosHalfAngle: math.Cos(halfAngle)}
}

// IsCapClippedFast reports whether a candidate cap is entirely outside the
// viewport cap, the §4.2/§9 convenience test used to reject whole healpix
// tiles before rendering any of their contents.
func IsCapClippedFast(viewport, candidate Cap) bool {
	return viewport.Disjoint(candidate)
}

// IsPointClippedFast reports whether a single unit vector in the view (or
// any capped) frame falls outside the given cap. normalized indicates p is
// already unit length; otherwise it is normalized first.
func IsPointClippedFast(cap_ Cap, p Vec3, normalized bool) bool {
	if !normalized {
		p = p.Normalize()
	}
	return !cap_.Contains(p)
}

// Is2DPointClipped reports whether an NDC point falls outside the given
// screen-space clip rectangle.
func Is2DPointClipped(clip Rect, x, y float64) bool {
	return !clip.Contains(x, y)
}

// Is2DCircleClipped reports whether a screen-space circle is entirely
// outside the clip rectangle (conservative: touches counts as visible).
func Is2DCircleClipped(clip Rect, x, y, radius float64) bool {
	if x+radius < clip.X || x-radius > clip.X+clip.Width {
		return true
	}
	if y+radius < clip.Y || y-radius > clip.Y+clip.Height {
		return true
	}
	return false
}
