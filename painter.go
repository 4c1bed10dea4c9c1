package aurora

// PainterFlags are the per-draw-call flags §4.7 lists alongside the
// painter's blend/line/point state.
type PainterFlags uint32

const (
	FlagAdd PainterFlags = 1 << iota
	FlagHideBelowHorizon
	FlagPlanetShader
	FlagRingShader
	FlagIsMoon
	FlagAtmosphereShader
)

// DepthRange is an optional near/far pair a module can set before issuing
// 3-D primitives (§4.7), used by modules that need explicit depth sorting
// against the default painter ordering.
type DepthRange struct {
	Near, Far float64
	Enabled   bool
}

// Painter is the sole interface between modules and the Renderer (§4.7):
// it carries per-frame state (current observer, projection, viewport) plus
// per-call state (color, flags, line width, textures) that a module
// configures before issuing a draw.
type Painter struct {
	Renderer Renderer
	Observer *Observer
	Proj     Projection

	FBWidth, FBHeight int
	PixelScale        float64

	Color       Color
	Flags       PainterFlags
	LineWidth   float64
	LineStipple uint16
	PointSmooth float64
	Depth       DepthRange

	ColorTex  Texture
	NormalTex Texture

	// viewportCap and frameCaps are the per-frame bounding caps of §4.2,
	// one per frame the painter may be asked to clip against.
	viewportCap Cap
	frameCaps   map[Frame]Cap
}

// NewPainter constructs a Painter bound to a renderer and observer. Color
// defaults to opaque white, the neutral tint that leaves draw colors
// unmodified.
func NewPainter(r Renderer, o *Observer, proj Projection) *Painter {
	return &Painter{
		Renderer: r, Observer: o, Proj: proj,
		Color:      Color{R: 1, G: 1, B: 1, A: 1},
		PixelScale: 1,
		frameCaps:  map[Frame]Cap{},
	}
}

// BeginFrame resets the painter's per-frame caps from the current FOV
// half-angle and prepares the renderer.
func (p *Painter) BeginFrame(winW, winH int, halfFOV float64, cullFlipped bool) {
	p.FBWidth, p.FBHeight = winW, winH
	p.viewportCap = ViewportCap(halfFOV)
	for f := range p.frameCaps {
		delete(p.frameCaps, f)
	}
	p.Renderer.Prepare(p.Proj, winW, winH, p.PixelScale, cullFlipped)
}

// EndFrame finishes the renderer's frame.
func (p *Painter) EndFrame() { p.Renderer.Finish() }

// SetFrameCap records the bounding cap for a frame, so later clip tests
// against that frame reuse the cached value instead of recomputing it
// (§4.2).
func (p *Painter) SetFrameCap(f Frame, c Cap) {
	p.frameCaps[f] = c
}

// IsTileClipped reports whether a healpix tile's cap is disjoint from the
// current viewport cap in the given frame (§4.7 convenience test).
func (p *Painter) IsTileClipped(frame Frame, tileCap Cap, outside bool) bool {
	cap_, ok := p.frameCaps[frame]
	if !ok {
		cap_ = p.viewportCap
	}
	clipped := IsCapClippedFast(cap_, tileCap)
	if outside {
		return !clipped
	}
	return clipped
}

// IsPointClippedFast reports whether p3 (in the given frame) falls outside
// that frame's cap (§4.7 convenience test).
func (p *Painter) IsPointClippedFast(frame Frame, p3 Vec3, normalized bool) bool {
	cap_, ok := p.frameCaps[frame]
	if !ok {
		cap_ = p.viewportCap
	}
	return IsPointClippedFast(cap_, p3, normalized)
}

// IsCapClippedFast reports whether an arbitrary cap is disjoint from the
// viewport cap.
func (p *Painter) IsCapClippedFast(c Cap) bool {
	return IsCapClippedFast(p.viewportCap, c)
}

// Project implements painter_project (§4.7): converts a point in the given
// frame to window pixel coordinates, optionally clipping first against the
// frame's cap.
func (p *Painter) Project(frame Frame, v Vec3, atInfinity bool, clipFirst bool) (winPos Vec3, ok bool) {
	if clipFirst && p.IsPointClippedFast(frame, v, atInfinity) {
		return Vec3{}, false
	}
	viewVec, err := p.Observer.ConvertFrame(frame, FrameView, atInfinity, v)
	if err != nil {
		return Vec3{}, false
	}
	ndc, projectable := p.Proj.Project(viewVec)
	if !projectable {
		return Vec3{}, false
	}
	return p.ndcToWindow(ndc), true
}

// Unproject is the inverse of Project: a window pixel position maps back
// to a unit vector in the given frame.
func (p *Painter) Unproject(frame Frame, winPos Vec3) (Vec3, error) {
	ndc := p.windowToNDC(winPos)
	viewVec := p.Proj.Unproject(ndc)
	return p.Observer.ConvertFrame(FrameView, frame, true, viewVec)
}

func (p *Painter) ndcToWindow(ndc Vec3) Vec3 {
	halfW, halfH := float64(p.FBWidth)/2, float64(p.FBHeight)/2
	short := halfW
	if halfH < short {
		short = halfH
	}
	return Vec3{X: halfW + ndc.X*short, Y: halfH - ndc.Y*short, Z: 0}
}

func (p *Painter) windowToNDC(win Vec3) Vec3 {
	halfW, halfH := float64(p.FBWidth)/2, float64(p.FBHeight)/2
	short := halfW
	if halfH < short {
		short = halfH
	}
	if short == 0 {
		return Vec3{}
	}
	return Vec3{X: (win.X - halfW) / short, Y: (halfH - win.Y) / short, Z: 0}
}

// DrawQuad issues a curved healpix-tile quad (§4.7's 3-D primitives),
// splitting it into gridSize x gridSize sub-quads as the renderer's split
// policy dictates.
func (p *Painter) DrawQuad(frame Frame, gridSize int, corners [4]Vec3, uvMap [4][2]float64) {
	p.Renderer.Quad(p, frame, gridSize, uvMap, corners)
}

// DrawLine issues a 3-D line, handling the antimeridian-discontinuity
// split policy of §4.7: positions are projected to window space first, and
// the renderer may report the line as non-drawable this frame.
func (p *Painter) DrawLine(frame Frame, positions []Vec3, width float64) bool {
	win := make([]Vec3, len(positions))
	for i, pos := range positions {
		w, ok := p.Project(frame, pos, true, false)
		if !ok {
			return false
		}
		win[i] = w
	}
	return p.Renderer.Line(p, positions, win, width)
}

// DrawPoints2D issues a batch of 2-D points through the renderer.
func (p *Painter) DrawPoints2D(points []PointVertex) {
	p.Renderer.Points2D(p, points)
}

// DrawText2D draws text anchored at a window position.
func (p *Painter) DrawText2D(text string, winPos Vec3, align TextAlign, size float64, color Color) Rect {
	return p.Renderer.Text(p, text, winPos, Vec3{}, align, size, color, 0)
}

// DrawMesh issues a 3-D mesh draw through the renderer.
func (p *Painter) DrawMesh(frame Frame, mode MeshMode, verts []Vec3, indices []uint16) {
	p.Renderer.Mesh(p, frame, mode, verts, indices, false)
}
