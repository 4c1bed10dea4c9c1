package aurora

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenTexture wraps an *ebiten.Image to satisfy the Texture handle
// (§6's texture slots).
type EbitenTexture struct{ Image *ebiten.Image }

func (EbitenTexture) textureMarker() {}

// EbitenModel is a placeholder Model handle; model_3d (§6) is out of scope
// for the default 2-D sky renderer and is provided only so a host
// application can plug in its own implementation behind the same
// interface (e.g. a rendered horizon panorama).
type EbitenModel struct{}

func (EbitenModel) modelMarker() {}

// whitePixel is a 1x1 white image used for solid-color draws without an
// atlas lookup.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(toRGBA(Color{R: 1, G: 1, B: 1, A: 1}))
}

func toRGBA(c Color) ebitenColor {
	return ebitenColor{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ebitenColor implements color.Color via premultiplied float64 components.
type ebitenColor struct{ R, G, B, A float64 }

func (c ebitenColor) RGBA() (r, g, b, a uint32) {
	a32 := uint32(clamp(c.A, 0, 1) * 0xffff)
	scale := func(v float64) uint32 {
		return uint32(clamp(v, 0, 1)*clamp(c.A, 0, 1)*0xffff)
	}
	return scale(c.R), scale(c.G), scale(c.B), a32
}

// EbitenRenderer is the default Renderer implementation (§6), built on
// ebiten's immediate-mode image and vector drawing APIs the same way the
// teacher's batch.go submits its own render commands.
type EbitenRenderer struct {
	Target *ebiten.Image
	Face   *text.GoTextFace

	proj       Projection
	winW, winH int
	pixelScale float64
}

func NewEbitenRenderer(target *ebiten.Image, face *text.GoTextFace) *EbitenRenderer {
	return &EbitenRenderer{Target: target, Face: face}
}

func (r *EbitenRenderer) Prepare(proj Projection, winW, winH int, pixelScale float64, cullFlipped bool) {
	r.proj, r.winW, r.winH, r.pixelScale = proj, winW, winH, pixelScale
}

func (r *EbitenRenderer) Finish() {}

func (r *EbitenRenderer) Points2D(p *Painter, points []PointVertex) {
	for _, pt := range points {
		vector.DrawFilledCircle(r.Target, float32(pt.X), float32(pt.Y), float32(pt.Radius), toRGBA(pt.Color), true)
	}
}

func (r *EbitenRenderer) Points3D(p *Painter, points []PointVertex3) {
	flat := make([]PointVertex, 0, len(points))
	for _, pt := range points {
		win, ok := p.Project(FrameView, pt.Pos, true, true)
		if !ok {
			continue
		}
		flat = append(flat, PointVertex{X: win.X, Y: win.Y, Radius: pt.Radius, Color: pt.Color})
	}
	r.Points2D(p, flat)
}

// Quad tessellates a curved healpix tile into gridSize x gridSize
// sub-quads and submits each as two triangles via DrawTriangles, the split
// policy of §4.7.
func (r *EbitenRenderer) Quad(p *Painter, frame Frame, gridSize int, uvMap [4][2]float64, corners [4]Vec3) {
	if gridSize < 1 {
		gridSize = 1
	}
	bilerp := func(u, v float64) Vec3 {
		top := corners[0].Scale(1 - u).Add(corners[1].Scale(u))
		bottom := corners[3].Scale(1 - u).Add(corners[2].Scale(u))
		return top.Scale(1 - v).Add(bottom.Scale(v))
	}
	uvBilerp := func(u, v float64) (float32, float32) {
		x := (1-u)*(1-v)*uvMap[0][0] + u*(1-v)*uvMap[1][0] + u*v*uvMap[2][0] + (1-u)*v*uvMap[3][0]
		y := (1-u)*(1-v)*uvMap[0][1] + u*(1-v)*uvMap[1][1] + u*v*uvMap[2][1] + (1-u)*v*uvMap[3][1]
		return float32(x), float32(y)
	}

	var verts []ebiten.Vertex
	var inds []uint16
	n := gridSize
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var cellVerts [4]ebiten.Vertex
			ok := true
			corners4 := [4][2]float64{
				{float64(i) / float64(n), float64(j) / float64(n)},
				{float64(i+1) / float64(n), float64(j) / float64(n)},
				{float64(i+1) / float64(n), float64(j+1) / float64(n)},
				{float64(i) / float64(n), float64(j+1) / float64(n)},
			}
			for k, uv := range corners4 {
				dir := bilerp(uv[0], uv[1])
				win, projected := p.Project(frame, dir, true, false)
				if !projected {
					ok = false
					break
				}
				u, v := uvBilerp(uv[0], uv[1])
				cellVerts[k] = ebiten.Vertex{
					DstX: float32(win.X), DstY: float32(win.Y),
					SrcX: u, SrcY: v,
					ColorR: float32(p.Color.R), ColorG: float32(p.Color.G),
					ColorB: float32(p.Color.B), ColorA: float32(p.Color.A),
				}
			}
			if !ok {
				continue
			}
			base := uint16(len(verts))
			verts = append(verts, cellVerts[:]...)
			inds = append(inds, base, base+1, base+2, base, base+2, base+3)
		}
	}
	if len(inds) == 0 {
		return
	}
	var img *ebiten.Image = whitePixel
	if t, ok := p.ColorTex.(EbitenTexture); ok && t.Image != nil {
		img = t.Image
	}
	var op ebiten.DrawTrianglesOptions
	if p.Flags&FlagAdd != 0 {
		op.Blend = ebiten.BlendLighter
	}
	r.Target.DrawTriangles(verts, inds, img, &op)
}

func (r *EbitenRenderer) Texture(tex Texture, uv [4][2]float64, pos Vec3, size float64, color Color, angle float64) {
	et, ok := tex.(EbitenTexture)
	if !ok || et.Image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	w, h := et.Image.Bounds().Dx(), et.Image.Bounds().Dy()
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Scale(size/float64(w), size/float64(h))
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.Scale(float32(color.R), float32(color.G), float32(color.B), float32(color.A))
	r.Target.DrawImage(et.Image, &op)
}

func (r *EbitenRenderer) Text(p *Painter, str string, winPos, viewPos Vec3, align TextAlign, size float64, color Color, angle float64) Rect {
	if r.Face == nil {
		return Rect{}
	}
	w, h := text.Measure(str, r.Face, 0)
	x := winPos.X
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, winPos.Y)
	op.ColorScale.Scale(float32(color.R), float32(color.G), float32(color.B), float32(color.A))
	text.Draw(r.Target, str, r.Face, op)
	return Rect{X: x, Y: winPos.Y, Width: w, Height: h}
}

func (r *EbitenRenderer) Line(p *Painter, positions, win []Vec3, width float64) bool {
	if len(win) < 2 {
		return false
	}
	// Antimeridian discontinuity check (§4.7's split policy): a jump larger
	// than half the framebuffer width between consecutive points means the
	// projected line wrapped around, and this simple renderer reports it as
	// non-drawable rather than attempting a split.
	for i := 1; i < len(win); i++ {
		if abs(win[i].X-win[i-1].X) > float64(r.winW)/2 {
			return false
		}
	}
	for i := 1; i < len(win); i++ {
		vector.StrokeLine(r.Target, float32(win[i-1].X), float32(win[i-1].Y), float32(win[i].X), float32(win[i].Y), float32(width), toRGBA(p.Color), true)
	}
	return true
}

func (r *EbitenRenderer) Mesh(p *Painter, frame Frame, mode MeshMode, verts []Vec3, indices []uint16, useStencil bool) {
	projVerts := make([]ebiten.Vertex, 0, len(verts))
	for _, v := range verts {
		win, ok := p.Project(frame, v, true, false)
		if !ok {
			return
		}
		projVerts = append(projVerts, ebiten.Vertex{
			DstX: float32(win.X), DstY: float32(win.Y),
			SrcX: 0, SrcY: 0,
			ColorR: float32(p.Color.R), ColorG: float32(p.Color.G),
			ColorB: float32(p.Color.B), ColorA: float32(p.Color.A),
		})
	}
	if mode != MeshTriangles || len(indices) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	r.Target.DrawTriangles(projVerts, indices, whitePixel, &op)
}

func (r *EbitenRenderer) Ellipse2D(p *Painter, center Vec3, rx, ry, angle float64, color Color) {
	vector.DrawFilledCircle(r.Target, float32(center.X), float32(center.Y), float32((rx+ry)/2), toRGBA(color), true)
}

func (r *EbitenRenderer) Rect2D(p *Painter, rect Rect, color Color) {
	vector.DrawFilledRect(r.Target, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), toRGBA(color), true)
}

func (r *EbitenRenderer) Line2D(p *Painter, x1, y1, x2, y2, width float64, color Color) {
	vector.StrokeLine(r.Target, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), toRGBA(color), true)
}

func (r *EbitenRenderer) Model3D(model Model, modelMat, viewMat, projMat Mat3, lightDir Vec3) {
	// Out of scope for the default 2-D sky renderer (§1 non-goals: GPU
	// backend/shaders); a host wanting textured 3-D models (a horizon
	// panorama, a dome) swaps in its own Renderer.
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
