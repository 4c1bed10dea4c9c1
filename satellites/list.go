package satellites

import (
	"math"
)

// Collection owns every satellite in a loaded catalog and the bounded-cost
// rendering scheme of §4.8's "Rendering order" paragraph. The visible set
// is a plain []int of indices into All rather than an intrusive linked
// list threaded through each Satellite — Satellite only needs the
// inVisibleList bool so Collection can skip duplicate inserts.
type Collection struct {
	All []*Satellite

	// visible holds indices into All that rendered last frame and are
	// re-checked first, every frame, regardless of catalog size.
	visible []int

	// cursor is the round-robin position into All that the per-frame
	// sweep resumes from.
	cursor int

	// SweepSize bounds how many non-visible satellites are probed each
	// frame (§4.8: "a fixed number of other satellites"), keeping
	// per-frame cost independent of catalog size.
	SweepSize int
}

// NewCollection wraps a loaded set of satellites. sweepSize is clamped to
// at least 1 so a degenerate configuration still makes forward progress
// through the catalog.
func NewCollection(sats []*Satellite, sweepSize int) *Collection {
	if sweepSize < 1 {
		sweepSize = 1
	}
	return &Collection{All: sats, SweepSize: sweepSize}
}

// RenderFunc decides, for one updated satellite, whether it should be
// drawn this frame (culled by horizon, magnitude limit, or frustum —
// whatever the caller's painter-level visibility policy is).
type RenderFunc func(*Satellite) bool

// Tick advances every satellite in the visible list plus SweepSize more
// from the round-robin cursor, in the order §4.8 specifies: visible-list
// members first, then the sweep. update recomputes one satellite's state
// (typically Satellite.Update bound to the current observer/propagator);
// renders decides whether an updated satellite counts as visible. Tick
// returns the satellites that should actually be drawn this frame, in
// visible-list-then-sweep order, matching the render.go convention of
// "cheap, stable ordering" the painter relies on for z/creation-order ties.
func (c *Collection) Tick(update func(*Satellite) error, renders RenderFunc) []*Satellite {
	var drawn []*Satellite

	kept := c.visible[:0]
	for _, idx := range c.visible {
		s := c.All[idx]
		if err := update(s); err != nil {
			s.inVisibleList = false
			continue
		}
		if renders(s) {
			kept = append(kept, idx)
			drawn = append(drawn, s)
		} else {
			s.inVisibleList = false
		}
	}
	c.visible = kept

	n := len(c.All)
	if n == 0 {
		return drawn
	}
	sweep := c.SweepSize
	if sweep > n {
		sweep = n
	}
	for i := 0; i < sweep; i++ {
		idx := (c.cursor + i) % n
		s := c.All[idx]
		if s.inVisibleList {
			continue
		}
		if err := update(s); err != nil {
			continue
		}
		if renders(s) {
			s.inVisibleList = true
			c.visible = append(c.visible, idx)
			drawn = append(drawn, s)
		}
	}
	c.cursor = (c.cursor + sweep) % n

	return drawn
}

// DefaultRenderFunc renders a satellite whose VMag is known and at most
// limitMag. It tests magnitude only; a satellite below the horizon is not
// filtered out.
func DefaultRenderFunc(limitMag float64) RenderFunc {
	return func(s *Satellite) bool {
		if math.IsNaN(s.VMag) {
			return false
		}
		return s.VMag <= limitMag
	}
}

// Invariant exposes the §8 property test hook: "after render, every
// element of the visible list either rendered this frame or equals the
// current selection" — selection is a Satellite the host always keeps
// visible regardless of magnitude (e.g. the one under the cursor).
func (c *Collection) Invariant(rendered map[*Satellite]bool, selection *Satellite) bool {
	for _, idx := range c.visible {
		s := c.All[idx]
		if s == selection {
			continue
		}
		if !rendered[s] {
			return false
		}
	}
	return true
}
