package hips

import "github.com/novasky/aurora"

// TileTexture is the result of GetTileTexture's hierarchy fallback (§4.6):
// the best available tile, which order/pix it actually came from, and the
// four corner UV coordinates that map the requested tile's footprint onto
// that ancestor's (or the all-sky image's) texture space.
type TileTexture struct {
	User        any
	FromOrder   int
	FromPix     int
	UVMap       [4][2]float64
	FromAllSky  bool
	Placeholder bool
}

// GetTileTexture implements §4.6's fallback chain: an exact hit; else walk
// toward the root for a loaded ancestor with the matching UV sub-region;
// else the all-sky image; else a placeholder with an identity UV so the
// caller still has something to project against.
func (s *Survey) GetTileTexture(order, pix int) TileTexture {
	if t, status := s.GetTile(order, pix, false); status == StatusReady {
		return TileTexture{User: t.User, FromOrder: order, FromPix: pix, UVMap: identityUV()}
	}

	ancestorOrder, ancestorPix := order, pix
	for ancestorOrder > 0 {
		ancestorOrder--
		ancestorPix = ParentPix(ancestorPix)
		key := cacheKey{Survey: s.Hash, Order: ancestorOrder, Pix: int64(ancestorPix)}
		s.mu.Lock()
		t, ok := s.cache.Get(key)
		s.mu.Unlock()
		if ok && !t.Absent {
			return TileTexture{
				User:      t.User,
				FromOrder: ancestorOrder, FromPix: ancestorPix,
				UVMap: subUV(order, pix, ancestorOrder, ancestorPix),
			}
		}
	}

	if sky := s.AllSky(); sky != nil && order >= 3 {
		ancestorOrder, ancestorPix := order, pix
		for ancestorOrder > 3 {
			ancestorOrder--
			ancestorPix = ParentPix(ancestorPix)
		}
		return TileTexture{
			User:       sky.Img,
			FromAllSky: true,
			FromOrder:  3,
			FromPix:    ancestorPix,
			UVMap:      combineUV(allSkyCellUV(sky, ancestorPix), subUV(order, pix, 3, ancestorPix)),
		}
	}

	return TileTexture{Placeholder: true, UVMap: identityUV()}
}

// allSkyCellUV returns the UV sub-rectangle of the all-sky composite image
// occupied by the order-3 tile at pix, from AllSkyImage.TileBounds.
func allSkyCellUV(sky *AllSkyImage, pix int) [4][2]float64 {
	b := sky.Img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	tb := sky.TileBounds(pix)
	u0, v0 := float64(tb.Min.X)/w, float64(tb.Min.Y)/h
	u1, v1 := float64(tb.Max.X)/w, float64(tb.Max.Y)/h
	return [4][2]float64{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}

// combineUV maps inner (a UV rectangle expressed as a fraction of outer)
// into outer's own coordinate space, composing the all-sky cell's position
// in the composite with a descendant tile's position within that cell.
func combineUV(outer, inner [4][2]float64) [4][2]float64 {
	ou0, ov0 := outer[0][0], outer[0][1]
	ou1, ov1 := outer[2][0], outer[2][1]
	iu0, iv0 := inner[0][0], inner[0][1]
	iu1, iv1 := inner[2][0], inner[2][1]
	u0, v0 := ou0+iu0*(ou1-ou0), ov0+iv0*(ov1-ov0)
	u1, v1 := ou0+iu1*(ou1-ou0), ov0+iv1*(ov1-ov0)
	return [4][2]float64{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}

func identityUV() [4][2]float64 {
	return [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

// subUV computes the UV sub-rectangle of ancestor (order,pix) that the
// descendant tile (order,pix) occupies: each level of descent halves the
// extent and offsets by the child's quadrant within the parent.
func subUV(order, pix, ancestorOrder, ancestorPix int) [4][2]float64 {
	levels := order - ancestorOrder
	var u0, v0, scale float64 = 0, 0, 1
	// Walk from the requested tile up to the ancestor, accumulating the
	// quadrant offset at each level (nested scheme: child index 0..3 maps
	// to quadrant (child%2, child/2) within the parent).
	chain := make([]int, 0, levels)
	p := pix
	for i := 0; i < levels; i++ {
		chain = append(chain, p%4)
		p = ParentPix(p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		scale /= 2
		q := chain[i]
		u0 += float64(q%2) * scale
		v0 += float64(q/2) * scale
	}
	u1, v1 := u0+scale, v0+scale
	return [4][2]float64{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}

// Render implements §4.6's hips_render: drives a breadth-first traversal
// at the order the current viewport resolves to and draws each visible
// tile as a curved quad via the painter.
func (s *Survey) Render(p *aurora.Painter, frame aurora.Frame, splitOrder, tileQualityPx, screenShortSidePx int, centerOf func(order, pix int) aurora.Vec3, corners func(order, pix int) [4]aurora.Vec3, viewport aurora.Cap) {
	if !s.IsReady() {
		return
	}
	props := s.Properties()
	orderMax := props.Order
	orderMin := props.OrderMin
	target := TargetOrder(1, tileQualityPx, screenShortSidePx, orderMin, orderMax)
	if target > orderMax {
		target = orderMax
	}

	Traverse(viewport, target, centerOf, func(order, pix int) {
		tt := s.GetTileTexture(order, pix)
		if tt.Placeholder {
			return
		}
		var tex aurora.Texture
		if t, ok := tt.User.(aurora.Texture); ok {
			tex = t
		}
		p.ColorTex = tex
		p.DrawQuad(frame, splitOrder, corners(order, pix), tt.UVMap)
	})
}
