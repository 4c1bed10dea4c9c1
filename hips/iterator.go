package hips

import (
	"math"

	"github.com/novasky/aurora"
)

// node is one entry of the breadth-first traversal queue (§4.6).
type node struct {
	Order int
	Pix   int
}

// Iterator is the small breadth-first queue of §4.6, seeded with the
// twelve order-0 pixels. The consumer (Survey.Render, or a test) decides
// what order to stop at; the iterator only manages the queue mechanics.
type Iterator struct {
	queue []node
}

// NewIterator seeds the queue with the twelve order-0 healpix pixels.
func NewIterator() *Iterator {
	it := &Iterator{}
	for pix := 0; pix < 12; pix++ {
		it.queue = append(it.queue, node{Order: 0, Pix: pix})
	}
	return it
}

// Next pops and returns the next node, or ok=false when the queue is
// empty.
func (it *Iterator) Next() (order, pix int, ok bool) {
	if len(it.queue) == 0 {
		return 0, 0, false
	}
	n := it.queue[0]
	it.queue = it.queue[1:]
	return n.Order, n.Pix, true
}

// PushChildren enqueues the four nested-scheme children of (order, pix)
// for later processing (§4.6).
func (it *Iterator) PushChildren(order, pix int) {
	children := ChildPixels(pix)
	for _, c := range children {
		it.queue = append(it.queue, node{Order: order + 1, Pix: c})
	}
}

// TargetOrder computes the order at which one healpix tile projects to
// roughly tileQualityPx pixels at screen center (§4.6's order-selection
// rule), clamped to [orderMin, orderMax].
func TargetOrder(fovRad float64, tileQualityPx, screenShortSidePx, orderMin, orderMax int) int {
	// A healpix tile at order o covers roughly 58.6/2^o degrees on a side
	// (the nside=2^o pixelization's mean spacing); screen pixels per
	// degree is screenShortSidePx / fovDeg. Solve for o so tile-on-screen
	// size ≈ tileQualityPx.
	fovDeg := fovRad * aurora.Rad
	if fovDeg <= 0 {
		fovDeg = 1
	}
	pxPerDeg := float64(screenShortSidePx) / fovDeg
	const tileDegAtOrder0 = 58.6
	// tileQualityPx = tileDegAtOrder0/2^o * pxPerDeg  =>  2^o = tileDegAtOrder0*pxPerDeg/tileQualityPx
	ratio := tileDegAtOrder0 * pxPerDeg / math.Max(float64(tileQualityPx), 1)
	order := int(math.Round(math.Log2(math.Max(ratio, 1))))
	if order < orderMin {
		order = orderMin
	}
	if order > orderMax {
		order = orderMax
	}
	return order
}

// TileCap computes a conservative bounding cap for a healpix tile (§4.2),
// given the tile's center direction and its angular radius at this order.
// The exact healpix corner geometry is out of scope (non-goal); this
// approximation inflates the radius enough to never under-bound the tile.
func TileCap(center aurora.Vec3, order int) aurora.Cap {
	const tileDegAtOrder0 = 58.6
	radiusDeg := tileDegAtOrder0 / math.Pow(2, float64(order)) * 0.75 // corner-to-center slack
	return aurora.Cap{Axis: center.Normalize(), CosHalfAngle: math.Cos(radiusDeg * aurora.Deg)}
}

// Traverse drives an Iterator through one frame's visible set: a pixel
// whose cap is clipped by viewport is skipped, a pixel below targetOrder
// has its children enqueued, and a pixel at targetOrder is emitted via
// visit (§4.6). centerOf computes a tile's center direction for capping.
func Traverse(viewport aurora.Cap, targetOrder int, centerOf func(order, pix int) aurora.Vec3, visit func(order, pix int)) {
	it := NewIterator()
	for {
		order, pix, ok := it.Next()
		if !ok {
			return
		}
		cap_ := TileCap(centerOf(order, pix), order)
		if aurora.IsCapClippedFast(viewport, cap_) {
			continue
		}
		if order < targetOrder {
			it.PushChildren(order, pix)
			continue
		}
		visit(order, pix)
	}
}
