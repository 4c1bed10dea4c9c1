package aurora

import (
	"testing"
	"time"
)

type noopRenderer struct{}

func (noopRenderer) Prepare(Projection, int, int, float64, bool) {}
func (noopRenderer) Finish()                                     {}
func (noopRenderer) Points2D(*Painter, []PointVertex)            {}
func (noopRenderer) Points3D(*Painter, []PointVertex3)           {}
func (noopRenderer) Quad(*Painter, Frame, int, [4][2]float64, [4]Vec3) {}
func (noopRenderer) Texture(Texture, [4][2]float64, Vec3, float64, Color, float64) {}
func (noopRenderer) Text(*Painter, string, Vec3, Vec3, TextAlign, float64, Color, float64) Rect {
	return Rect{}
}
func (noopRenderer) Line(*Painter, []Vec3, []Vec3, float64) bool { return true }
func (noopRenderer) Mesh(*Painter, Frame, MeshMode, []Vec3, []uint16, bool) {}
func (noopRenderer) Ellipse2D(*Painter, Vec3, float64, float64, float64, Color) {}
func (noopRenderer) Rect2D(*Painter, Rect, Color)                      {}
func (noopRenderer) Line2D(*Painter, float64, float64, float64, float64, float64, Color) {}
func (noopRenderer) Model3D(Model, Mat3, Mat3, Mat3, Vec3)             {}

func newTestCore() *Core {
	o := newTestObserver()
	p := NewPainter(noopRenderer{}, o, StereographicProjection{})
	return NewCore(o, p)
}

func TestCoreTickUpdatesObserver(t *testing.T) {
	c := newTestCore()
	start := time.Unix(0, 0)
	if err := c.Tick(start); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if !c.Observer.updated {
		t.Fatal("expected observer to be updated after a tick")
	}
}

func TestCoreTickRunsModuleHooks(t *testing.T) {
	c := newTestCore()
	var updated, rendered, postRendered bool
	class := &ClassDescriptor{
		ID: "test.module",
		Update: func(m *Module, dt float64) { updated = true },
		Render: func(m *Module, p *Painter) { rendered = true },
		PostRender: func(m *Module, p *Painter) { postRendered = true },
	}
	registry[class.ID] = class
	defer delete(registry, class.ID)

	m := NewModule(class.ID, "test")
	c.Root.AddChild(m)

	if err := c.Tick(time.Unix(0, 0)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !updated || !rendered || !postRendered {
		t.Errorf("expected all three hooks to run, got update=%v render=%v postRender=%v", updated, rendered, postRendered)
	}
}

func TestCoreTickRunsPendingTasks(t *testing.T) {
	c := newTestCore()
	ran := false
	c.AddTask(func() { ran = true })
	if err := c.Tick(time.Unix(0, 0)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !ran {
		t.Error("expected pending task to run during the tick")
	}
	if len(c.pendingTasks) != 0 {
		t.Error("expected pending tasks to be cleared after running")
	}
}

func TestCoreTickAdvancesTimeAnimation(t *testing.T) {
	c := newTestCore()
	startTT := c.Observer.TT
	c.SetTimeAnimation(NewTimeAnimation(startTT, startTT+1, 1))

	_ = c.Tick(time.Unix(0, 0))
	_ = c.Tick(time.Unix(1, 0))

	if c.Observer.TT <= startTT {
		t.Errorf("expected TT to advance, got %v (start %v)", c.Observer.TT, startTT)
	}
}
