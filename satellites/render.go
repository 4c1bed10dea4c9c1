package satellites

import "github.com/novasky/aurora"

// Render draws the satellites the caller's Collection.Tick decided are
// visible this frame (§4.8's incremental rendering operation): each one
// is projected from the Observed frame through the painter's current
// projection, sized by the tonemapper the same way a star would be, and
// batched into one Points2D call so tens of thousands of catalog entries
// never cost more than a handful of draw calls.
func Render(p *aurora.Painter, tm *aurora.Tonemapper, tel aurora.TelescopeParams, drawn []*Satellite, color aurora.Color) {
	if len(drawn) == 0 {
		return
	}
	verts := make([]aurora.PointVertex, 0, len(drawn))
	for _, s := range drawn {
		radius, luminance, visible := tm.MagnitudeToRadius(s.VMag, tel)
		if !visible {
			continue
		}
		win, ok := p.Project(aurora.FrameObserved, s.ObservedPos, false, true)
		if !ok {
			continue
		}
		c := color
		c.A *= luminance
		verts = append(verts, aurora.PointVertex{X: win.X, Y: win.Y, Radius: radius, Color: c})
	}
	if len(verts) > 0 {
		p.DrawPoints2D(verts)
	}
}
