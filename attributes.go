package aurora

// AttrType is the semantic type of a reflective attribute (§4.3).
type AttrType uint8

const (
	AttrBool AttrType = iota
	AttrInt
	AttrFloat
	AttrString
	AttrVec3
	AttrColor
)

// AttrDescriptor declares one entry of a Module's ordered attribute table
// (§4.3): reflective (name, semantic type, accessor pair) access is the
// only sanctioned way for one module to read or change another's
// configuration.
type AttrDescriptor struct {
	Name string
	Type AttrType
	Get  func(m *Module) any
	Set  func(m *Module, v any) // nil for read-only attributes
}

// ClassFlags are the per-descriptor flags of §4.3.
type ClassFlags uint32

const (
	// FlagIsModule marks a descriptor for automatic instantiation as a
	// direct child of the Core on startup.
	FlagIsModule ClassFlags = 1 << iota
	// FlagInJSONTree marks a descriptor as serializable into a scene
	// definition tree.
	FlagInJSONTree
	// FlagListable marks a descriptor whose instances should appear in
	// catalog/listing operations.
	FlagListable
)

// ClassDescriptor is the static definition a Module instance is created
// from (§4.3): size/flags/hooks/attribute table/render_order are all fixed
// per class, not per instance.
type ClassDescriptor struct {
	ID         string
	Flags      ClassFlags
	RenderOrder int
	Attrs      []AttrDescriptor

	// Hooks. Every hook is optional: a nil hook is skipped. Init runs in
	// NewModule and Del in Dispose; Update/Render/PostRender run from
	// Core.Tick.
	Init       func(m *Module)
	Del        func(m *Module)
	Update     func(m *Module, dt float64)
	Render     func(m *Module, p *Painter)
	PostRender func(m *Module, p *Painter)
}

// AttrChangedEvent is recorded whenever SetAttr succeeds, for the external
// listener hook §4.3 requires ("records a 'changed' event for external
// listeners").
type AttrChangedEvent struct {
	Module *Module
	Name   string
	Value  any
}

// GetAttr performs reflective read access by name (§4.3). The Programming
// error kind covers an unknown attribute name.
func (m *Module) GetAttr(name string) (any, error) {
	for i := range m.class.Attrs {
		a := &m.class.Attrs[i]
		if a.Name == name {
			return a.Get(m), nil
		}
	}
	assertf(false, "unknown attribute %q on module %q", name, m.class.ID)
	return nil, NewError(KindProgramming, "unknown attribute "+name)
}

// SetAttr performs reflective write access by name and passes a changed
// event to the listener registered via Module.OnAttrChanged (§4.3).
// AttrDescriptor has no per-attribute on-changed hook; the module-level
// listener is the only notification.
func (m *Module) SetAttr(name string, v any) error {
	for i := range m.class.Attrs {
		a := &m.class.Attrs[i]
		if a.Name != name {
			continue
		}
		if a.Set == nil {
			return NewError(KindProgramming, "attribute "+name+" is read-only")
		}
		a.Set(m, v)
		if m.OnAttrChanged != nil {
			m.OnAttrChanged(AttrChangedEvent{Module: m, Name: name, Value: v})
		}
		return nil
	}
	assertf(false, "unknown attribute %q on module %q", name, m.class.ID)
	return NewError(KindProgramming, "unknown attribute "+name)
}
