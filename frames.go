package aurora

import "fmt"

// Frame identifies one of the reference frames of §4.1 and GLOSSARY.
// GCRS and JNow are treated as aliases of ICRF and CIRS respectively at the
// precision this engine targets — an Open Question resolution recorded in
// DESIGN.md rather than left silently ambiguous.
type Frame uint8

const (
	FrameICRF Frame = iota
	FrameCIRS
	FrameObserved
	FrameView
	FrameEcliptic
	FrameGCRS = FrameICRF
	FrameJNow = FrameCIRS
)

func (f Frame) String() string {
	switch f {
	case FrameICRF:
		return "ICRF"
	case FrameCIRS:
		return "CIRS"
	case FrameObserved:
		return "Observed"
	case FrameView:
		return "View"
	case FrameEcliptic:
		return "Ecliptic"
	default:
		return "Frame(?)"
	}
}

// toICRF returns the rotation matrix from f to ICRF, using the Observer's
// cached matrices (§4.1 step 4). Observed, Ecliptic and View use the
// cached X-to-ICRF matrices (RH2I, RE2I, RV2O) directly, composing them
// where a frame is reached through Observed; CIRS is composed from RH2I and
// the CIRS-to-Observed rotation.
func (o *Observer) toICRF(f Frame) Mat3 {
	switch f {
	case FrameICRF:
		return IdentityMat3
	case FrameCIRS:
		return o.RH2I.Mul(o.riCIRStoObserved())
	case FrameObserved:
		return o.RH2I
	case FrameView:
		return o.RH2I.Mul(o.RV2O)
	case FrameEcliptic:
		return o.RE2I
	default:
		return IdentityMat3
	}
}

func (o *Observer) fromICRF(f Frame) Mat3 {
	switch f {
	case FrameICRF:
		return IdentityMat3
	case FrameCIRS:
		return o.riCIRStoObserved().Transpose().Mul(o.RI2H)
	case FrameObserved:
		return o.RI2H
	case FrameView:
		return o.RI2V
	case FrameEcliptic:
		return o.RI2E
	default:
		return IdentityMat3
	}
}

// riCIRStoObserved reconstructs the CIRS->Observed rotation from the
// cached RI2H (ICRF->Observed) and the Ephemeris-provided
// NutationPrecession (ICRF->CIRS): RI2H = RCIRStoObserved * RICRFtoCIRS.
func (o *Observer) riCIRStoObserved() Mat3 {
	return o.RI2H.Mul(o.nutationPrecession.Transpose())
}

// ConvertFrame performs a pure 3-vector conversion between reference
// frames using the Observer's cached matrices (§4.1's convert_frame).
// atInfinity is accepted for interface parity with the source design
// (direction-only vectors skip any future translation term); Aurora's
// frames are all coincident in origin so it does not otherwise affect the
// result.
func (o *Observer) ConvertFrame(src, dst Frame, atInfinity bool, v Vec3) (Vec3, error) {
	if !o.updated {
		return Vec3{}, NewError(KindProgramming, "ConvertFrame called before Observer.Update")
	}
	toI := o.toICRF(src)
	fromI := o.fromICRF(dst)
	m := fromI.Mul(toI)
	out := m.Apply(v)
	if isNaNVec(out) {
		return Vec3{}, NewError(KindNumerical, fmt.Sprintf("convert_frame(%s->%s) produced NaN", src, dst))
	}
	return out, nil
}

func isNaNVec(v Vec3) bool {
	return v.X != v.X || v.Y != v.Y || v.Z != v.Z
}
