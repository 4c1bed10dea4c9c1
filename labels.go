package aurora

import "math"

// LabelEntry is one label submitted for placement (§4.4). Priority breaks
// placement order (higher first); AroundRadius > 0 marks an "around" label
// that may rotate about Anchor to dodge a collision instead of being
// dropped outright.
type LabelEntry struct {
	Text        string
	Anchor      Vec3 // screen-space x/y in .X/.Y
	Width       float64
	Height      float64
	Priority    int
	AroundRadius float64 // 0 means a fixed-position label

	placedX, placedY float64
	placed           bool
}

// LabelLayout accumulates label placements for one frame and hands the
// survivors back through Placed; it draws nothing itself.
type LabelLayout struct {
	entries []LabelEntry
	placed  []obb
}

type obb struct {
	cx, cy, hw, hh float64
}

// Add submits a label for placement this frame.
func (l *LabelLayout) Add(e LabelEntry) {
	l.entries = append(l.entries, e)
}

// Reset clears accumulated labels for the next frame.
func (l *LabelLayout) Reset() {
	l.entries = l.entries[:0]
	l.placed = l.placed[:0]
}

// Place runs the priority-ordered placement pass of §4.4: highest priority
// first, each candidate tested against every already-placed box; a
// fixed-position label that collides is dropped, an "around" label may
// rotate about its anchor at AroundRadius to find a free slot before being
// dropped.
func (l *LabelLayout) Place() {
	// Stable insertion sort by descending priority; label counts per frame
	// are small enough (tens to low hundreds) that O(n^2) is fine and
	// avoids pulling in sort for a a one-off per-frame pass.
	order := make([]int, len(l.entries))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && l.entries[order[j-1]].Priority < l.entries[order[j]].Priority; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	const angleStep = 30 * Deg
	for _, idx := range order {
		e := &l.entries[idx]
		if e.AroundRadius <= 0 {
			if l.tryPlace(e, e.Anchor.X, e.Anchor.Y) {
				continue
			}
			e.placed = false
			continue
		}
		placed := false
		for a := 0.0; a < 2*math.Pi; a += angleStep {
			x := e.Anchor.X + e.AroundRadius*math.Cos(a)
			y := e.Anchor.Y + e.AroundRadius*math.Sin(a)
			if l.tryPlace(e, x, y) {
				placed = true
				break
			}
		}
		if !placed {
			e.placed = false
		}
	}
}

func (l *LabelLayout) tryPlace(e *LabelEntry, x, y float64) bool {
	box := obb{cx: x, cy: y, hw: e.Width / 2, hh: e.Height / 2}
	for _, p := range l.placed {
		if obbOverlap(box, p) {
			return false
		}
	}
	l.placed = append(l.placed, box)
	e.placedX, e.placedY = x, y
	e.placed = true
	return true
}

func obbOverlap(a, b obb) bool {
	return math.Abs(a.cx-b.cx) < a.hw+b.hw && math.Abs(a.cy-b.cy) < a.hh+b.hh
}

// Placed returns the labels that survived this frame's placement pass,
// along with their final screen position, ready for the painter's text
// renderer.
func (l *LabelLayout) Placed() []LabelEntry {
	out := make([]LabelEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.placed {
			out = append(out, e)
		}
	}
	return out
}
