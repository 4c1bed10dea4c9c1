package aurora

import "time"

// Core is the root of the module tree and the owner of the per-frame loop
// (§4.9, §5): single-threaded cooperative scheduling, with animations,
// the observer update, and per-module update/render/post_render all
// running on the caller's goroutine.
type Core struct {
	Root     *Module
	Observer *Observer
	Painter  *Painter

	timeAnim *TimeAnimation
	dirAnim  *DirectionAnimation
	fovAnim  *FOVAnimation

	tonemapper *Tonemapper

	lastWallclock time.Time
	haveLast      bool

	// pendingTasks are deferred callbacks run once per frame after module
	// update/render (§4.9: "advance pending tasks"), e.g. a completed asset
	// fetch's continuation.
	pendingTasks []func()
}

// NewCore builds a Core with an empty root container module.
func NewCore(observer *Observer, painter *Painter) *Core {
	root := &Module{ID: nextModuleID(), Name: "root", childrenSorted: true}
	return &Core{
		Root: root, Observer: observer, Painter: painter,
		tonemapper: NewTonemapper(),
	}
}

// SetTimeAnimation installs a time animation driving the observer's TT.
func (c *Core) SetTimeAnimation(a *TimeAnimation) { c.timeAnim = a }

// SetDirectionAnimation installs a slerp animation driving mount pointing.
// Each Tick advances it and writes the result to Observer.Yaw/Pitch/Roll
// through quatToEuler.
func (c *Core) SetDirectionAnimation(a *DirectionAnimation) { c.dirAnim = a }

// SetFOVAnimation installs a FOV animation.
func (c *Core) SetFOVAnimation(a *FOVAnimation) { c.fovAnim = a }

// AddTask schedules fn to run once, after this frame's module pass
// (§4.9's "advance pending tasks").
func (c *Core) AddTask(fn func()) {
	c.pendingTasks = append(c.pendingTasks, fn)
}

// Tick runs exactly one frame of §4.9's ordering: animations, observer
// update, per-module update (ascending render_order), per-module render,
// per-module post_render, pending tasks. wallclock lets tests inject a
// deterministic clock instead of relying on time.Now (matching the
// teacher's testrunner.go "inject a fake clock" pattern).
func (c *Core) Tick(wallclock time.Time) error {
	var dt float64
	if c.haveLast {
		dt = wallclock.Sub(c.lastWallclock).Seconds()
	}
	c.lastWallclock = wallclock
	c.haveLast = true

	if c.timeAnim != nil {
		c.Observer.TT = c.timeAnim.Update(dt)
	}
	if c.dirAnim != nil {
		q := c.dirAnim.Update(dt)
		yaw, pitch, roll := quatToEuler(q)
		c.Observer.Yaw, c.Observer.Pitch, c.Observer.Roll = yaw, pitch, roll
	}
	if c.fovAnim != nil {
		c.fovAnim.Update(dt)
	}

	if err := c.Observer.Update(true); err != nil {
		return err
	}
	hashBefore := c.Observer.HashFull()

	children := c.Root.Children()
	for _, m := range children {
		if m.class != nil && m.class.Update != nil {
			m.class.Update(m, dt)
		}
	}
	for _, m := range children {
		if m.class != nil && m.class.Render != nil {
			m.class.Render(m, c.Painter)
		}
	}
	for _, m := range children {
		if m.class != nil && m.class.PostRender != nil {
			m.class.PostRender(m, c.Painter)
		}
	}

	tasks := c.pendingTasks
	c.pendingTasks = nil
	for _, t := range tasks {
		t()
	}

	if c.Observer.HashFull() != hashBefore {
		return NewError(KindProgramming, "observer state mutated during module update/render")
	}
	return nil
}

// quatToEuler decomposes q into yaw/pitch/roll using the same ZYX
// convention the Observer's mount rotation (observer.go's
// computeMatrices) composes them with.
func quatToEuler(q Quat) (yaw, pitch, roll float64) {
	m := q.ToMat3()
	pitch = asinClamped(-m[6])
	yaw = atan2Safe(m[3], m[0])
	roll = atan2Safe(m[7], m[8])
	return yaw, pitch, roll
}
