// Package aurora is an interactive sky-rendering engine.
//
// Given an observer — a geographic location, a time, a pointing direction,
// and a field of view — Aurora computes the apparent state of celestial
// objects (stars, planets, satellites, deep-sky objects, constellations,
// atmosphere) and produces frames at interactive rates on a GPU.
//
// # Quick start
//
// Build an [Observer], attach a tree of [Module] values under a [Core], and
// run the render loop:
//
//	obs := aurora.NewObserver(&ephemeris.Adapter{}, aurora.ObserverInputs{
//		Longitude: 2.3522 * aurora.Deg, Latitude: 48.8566 * aurora.Deg,
//	})
//	painter := aurora.NewPainter(renderer, obs, &aurora.StereographicProjection{})
//	core := aurora.NewCore(obs, painter)
//	core.Root.AddChild(someModule)
//	for range ticker.C {
//		core.Tick(time.Now())
//	}
//
// # Reference-frame pipeline
//
// [Observer.Update] derives, from a handful of inputs (longitude, latitude,
// elevation, pressure, terrestrial time, pointing), everything the rest of
// the engine needs: UTC/UT1, the ERFA-style astrometry block, barycentric
// Earth and observer state, and the rotation matrices between ICRF, CIRS,
// Observed, and View space (see [ConvertFrame]). The underlying ephemeris
// math is treated as a black box behind the [Ephemeris] port — Aurora's own
// code never reimplements ERFA.
//
// # Module graph
//
// A [Module] is a node in a tree rooted at [Core.Root]. Each frame the Core
// loop advances animations, updates the [Observer], then calls every
// module's Update, Render, and PostRender hooks in render-order. Modules
// expose configuration through a reflective attribute table (see
// [Module.SetAttr] / [Module.GetAttr]) rather than through direct field
// access, so one module never reaches into another's internals.
//
// # HiPS, painting, and satellites
//
// The hips package implements the HEALPix tile engine (survey descriptors,
// async loading, an LRU tile cache bounded by tile count rather than by
// byte cost, all-sky fallback). [Painter] is the only interface between a
// module's Render hook and the [Renderer] contract (§6); the
// magnitude→luminance→pixel policy lives in [Tonemapper], and label and
// area bookkeeping in [LabelLayout] and [Areas]. The satellites package implements SGP4 propagation and
// visibility for tens of thousands of objects at bounded per-frame cost.
package aurora
