package aurora

// Renderer is the one contract every module talks to only through a
// Painter (§6, §4.7): any backend implementing this interface can render
// a frame. Aurora's own modules never call a graphics API directly.
type Renderer interface {
	// Prepare begins a frame with the given projection and output size.
	// cullFlipped reverses winding-order culling, used when a mirror
	// (e.g. a Newtonian finder) flips the image.
	Prepare(proj Projection, winW, winH int, pixelScale float64, cullFlipped bool)
	// Finish ends the frame, flushing any batched commands to the screen.
	Finish()

	Points2D(p *Painter, points []PointVertex)
	Points3D(p *Painter, points []PointVertex3)

	// Quad draws a curved quad over a healpix tile (or an arbitrary
	// projected region), tessellated into gridSize x gridSize sub-quads
	// (§4.7's split policy), sampling the painter's bound texture through
	// uvMap's four corner UV coordinates.
	Quad(p *Painter, frame Frame, gridSize int, uvMap [4][2]float64, corners [4]Vec3)

	Texture(tex Texture, uv [4][2]float64, pos Vec3, size float64, color Color, angle float64)

	// Text draws a text run either in window space (winPos) or anchored at
	// a 3-D position (viewPos) and returns the drawn bounds.
	Text(p *Painter, text string, winPos Vec3, viewPos Vec3, align TextAlign, size float64, color Color, angle float64) Rect

	// Line draws a polyline given both world positions and already
	// projected window positions; returns false if the line could not be
	// drawn in the current frame (e.g. an antimeridian discontinuity the
	// renderer chose not to split), per §4.7's split policy.
	Line(p *Painter, positions []Vec3, win []Vec3, width float64) bool

	Mesh(p *Painter, frame Frame, mode MeshMode, verts []Vec3, indices []uint16, useStencil bool)

	Ellipse2D(p *Painter, center Vec3, rx, ry, angle float64, color Color)
	Rect2D(p *Painter, r Rect, color Color)
	Line2D(p *Painter, x1, y1, x2, y2, width float64, color Color)

	Model3D(model Model, modelMat, viewMat, projMat Mat3, lightDir Vec3)
}

// Texture is an opaque renderer-owned image handle (§4.7's color/normal
// texture slots).
type Texture interface{ textureMarker() }

// Model is an opaque renderer-owned 3-D asset handle (§6's model_3d).
type Model interface{ modelMarker() }

// TextAlign selects text anchor alignment.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// MeshMode selects the primitive topology for Renderer.Mesh.
type MeshMode uint8

const (
	MeshTriangles MeshMode = iota
	MeshLines
	MeshPoints
)

// PointVertex is one entry of a 2-D points batch.
type PointVertex struct {
	X, Y, Radius float64
	Color        Color
}

// PointVertex3 is one entry of a 3-D points batch; Pos is a View-frame
// position (the default renderer projects it from FrameView).
type PointVertex3 struct {
	Pos    Vec3
	Radius float64
	Color  Color
}
