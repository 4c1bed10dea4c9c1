package aurora

// ListResult is the "may return again later" sentinel of §4.3: a module
// that loads its children lazily (e.g. a catalog still streaming from
// disk) returns ListPartial instead of pretending the listing is final.
type ListResult uint8

const (
	ListDone ListResult = iota
	ListEmpty
	ListPartial
)

// moduleIDCounter assigns unique Module IDs. Single-threaded per the core
// loop's own concurrency model (§5): no atomic needed.
var moduleIDCounter uint32

func nextModuleID() uint32 {
	moduleIDCounter++
	return moduleIDCounter
}

// registry holds every registered ClassDescriptor, keyed by ID (§4.3: "on
// startup, all descriptors are registered").
var registry = map[string]*ClassDescriptor{}

// RegisterClass adds a descriptor to the global registry. Panics (in debug
// builds) on a duplicate ID; intended to be called from package init
// functions before any Core is constructed.
func RegisterClass(desc *ClassDescriptor) {
	assertf(registry[desc.ID] == nil, "duplicate class descriptor %q", desc.ID)
	registry[desc.ID] = desc
}

// Module is the single flat struct used for every node in the object
// graph (§4.3): one struct per tree node, so update/render traversal never
// pays interface dispatch on the hot path.
type Module struct {
	ID   uint32
	Name string

	class *ClassDescriptor

	Parent   *Module
	children []*Module

	// RenderOrder overrides the class descriptor's default for this
	// instance; ties break by creation order (§4.3), preserved by a stable
	// sort over children.
	RenderOrder int

	UserData any

	// OnAttrChanged fires after a successful SetAttr call (§4.3).
	OnAttrChanged func(AttrChangedEvent)

	childrenSorted bool
	disposed       bool
}

// NewModule instantiates a Module from a registered class descriptor and
// runs its Init hook. classID must have been registered with RegisterClass.
func NewModule(classID string, name string) *Module {
	class, ok := registry[classID]
	assertf(ok, "unregistered class %q", classID)
	m := &Module{
		ID:          nextModuleID(),
		Name:        name,
		class:       class,
		RenderOrder: class.RenderOrder,
		childrenSorted: true,
	}
	if class.Init != nil {
		class.Init(m)
	}
	return m
}

// Class returns the descriptor this module was instantiated from.
func (m *Module) Class() *ClassDescriptor { return m.class }

// AddChild appends child to this module's children, reparenting it away
// from any existing parent first.
func (m *Module) AddChild(child *Module) {
	assertf(child != nil, "cannot add nil child")
	if isAncestorModule(child, m) {
		panic("aurora: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = m
	m.children = append(m.children, child)
	m.childrenSorted = false
}

// RemoveChild detaches child from this module. Panics in debug builds if
// child.Parent != m.
func (m *Module) RemoveChild(child *Module) {
	assertf(child.Parent == m, "child's parent is not this module")
	m.removeChildByPtr(child)
	child.Parent = nil
	m.childrenSorted = false
}

// RemoveFromParent detaches this module from its parent; a no-op at the
// root.
func (m *Module) RemoveFromParent() {
	if m.Parent != nil {
		m.Parent.RemoveChild(m)
	}
}

// Children returns the sorted child slice, ordered by RenderOrder then
// creation order (§4.3: "children are sorted by render_order before each
// render pass; ties are broken by creation order").
func (m *Module) Children() []*Module {
	if !m.childrenSorted {
		m.sortChildren()
	}
	return m.children
}

func (m *Module) sortChildren() {
	// Stable sort preserves creation order (slice append order) among
	// equal RenderOrder values, satisfying the tie-break rule directly.
	n := len(m.children)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && m.children[j-1].RenderOrder > m.children[j].RenderOrder; j-- {
			m.children[j-1], m.children[j] = m.children[j], m.children[j-1]
		}
	}
	m.childrenSorted = true
}

func (m *Module) removeChildByPtr(child *Module) {
	for i, c := range m.children {
		if c == child {
			copy(m.children[i:], m.children[i+1:])
			m.children[len(m.children)-1] = nil
			m.children = m.children[:len(m.children)-1]
			return
		}
	}
}

func isAncestorModule(candidate, node *Module) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Dispose runs the class's Del hook, detaches the module, and recursively
// disposes descendants.
func (m *Module) Dispose() {
	if m.disposed {
		return
	}
	m.RemoveFromParent()
	m.dispose()
}

func (m *Module) dispose() {
	m.disposed = true
	if m.class.Del != nil {
		m.class.Del(m)
	}
	for _, c := range m.children {
		c.Parent = nil
		c.dispose()
	}
	m.children = nil
}

// IsDisposed reports whether Dispose has been called on this module.
func (m *Module) IsDisposed() bool { return m.disposed }

// GetDesignations returns alternate catalog names for this module. The
// skyculture-specific implementation is out of scope (non-goal); the
// capability slot itself is part of the general module contract, so the
// default returns the module's own name.
func (m *Module) GetDesignations() []string {
	return []string{m.Name}
}

// ListChildren lists the direct children of this module for catalog/listing
// purposes. It returns ListEmpty when there are no children and ListDone
// otherwise; it never returns ListPartial.
func (m *Module) ListChildren() ([]*Module, ListResult) {
	children := m.Children()
	if len(children) == 0 {
		return nil, ListEmpty
	}
	return children, ListDone
}
