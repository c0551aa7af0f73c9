package colshape

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a Manager. Zero values fall back to the defaults.
type Options struct {
	CellSize           float64
	UnboundedThreshold float64
	Logger             *zap.Logger
}

// Manager is the owned context bundling the registry, the grid and the
// containment tracker behind one mutex. Create/Delete calls from the host
// and Tick calls from the polling goroutine are serialized on it.
type Manager struct {
	mu      sync.Mutex
	reg     *Registry
	tracker *Tracker
	log     *zap.Logger
}

func NewManager(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		reg:     NewRegistry(opts.CellSize, opts.UnboundedThreshold),
		tracker: NewTracker(),
		log:     log,
	}
}

func (m *Manager) add(op string, s *Shape) bool {
	m.mu.Lock()
	_, err := m.reg.Add(s)
	unbounded, cells := s.Unbounded, len(s.cells)
	m.mu.Unlock()

	if errors.Is(err, ErrDuplicateID) {
		m.log.Debug(op+": id already taken", zap.String("shape", s.ID))
		return false
	}
	instrumentShapeAdded(unbounded)
	m.log.Debug(op,
		zap.String("shape", s.ID),
		zap.Bool("unbounded", unbounded),
		zap.Int("cells", cells),
	)
	return true
}

// CreateCircle registers a 2D circle. Returns false if id is taken.
func (m *Manager) CreateCircle(id string, center Vector3, radius float64, unbounded bool) bool {
	return m.add("create circle", newCircle(id, center, radius, unbounded))
}

// CreateCube registers an axis-aligned box between two opposite corners.
func (m *Manager) CreateCube(id string, corner1, corner2 Vector3, unbounded bool) bool {
	return m.add("create cube", newCube(id, corner1, corner2, unbounded))
}

// CreateCylinder registers a cylinder standing on center.Z. A negative
// height extends downward.
func (m *Manager) CreateCylinder(id string, center Vector3, radius, height float64, unbounded bool) bool {
	return m.add("create cylinder", newCylinder(id, center, radius, height, unbounded))
}

// CreateRectangle registers an XY rectangle spanning Z from bottomZ to
// bottomZ+height.
func (m *Manager) CreateRectangle(id string, x1, y1, x2, y2, bottomZ, height float64, unbounded bool) bool {
	return m.add("create rectangle", newRectangle(id, x1, y1, x2, y2, bottomZ, height, unbounded))
}

// CreateRectangleFlat is CreateRectangle with bottomZ = 0.
func (m *Manager) CreateRectangleFlat(id string, x1, y1, x2, y2, height float64, unbounded bool) bool {
	return m.CreateRectangle(id, x1, y1, x2, y2, 0, height, unbounded)
}

// CreateSphere registers a 3D sphere.
func (m *Manager) CreateSphere(id string, center Vector3, radius float64, unbounded bool) bool {
	return m.add("create sphere", newSphere(id, center, radius, unbounded))
}

// Delete removes the shape with the given id. It never reports a leave
// transition, even if the tracked point is inside the shape.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	var unbounded bool
	if s, ok := m.reg.Lookup(id); ok {
		unbounded = s.Unbounded
	}
	h, err := m.reg.Remove(id)
	if err == nil {
		m.tracker.Forget(h)
	}
	m.mu.Unlock()

	if errors.Is(err, ErrNotFound) {
		m.log.Debug("delete: shape not found", zap.String("shape", id))
		return false
	}
	instrumentShapeRemoved(unbounded)
	m.log.Debug("delete", zap.String("shape", id))
	return true
}

// Tick runs one containment pass against the position reported by src.
// When the position is unavailable the tick is skipped, the inside set is
// left untouched and ok is false.
func (m *Manager) Tick(src PositionSource) (t Transitions, ok bool) {
	// Resolved before locking: the source may call back into the Manager.
	p, ok := src.TrackedPosition()
	if !ok {
		instrumentSkippedTick()
		return Transitions{}, false
	}

	start := time.Now()
	m.mu.Lock()
	t = m.tracker.Step(m.reg, p)
	m.mu.Unlock()

	instrumentTick(start, t)
	return t, true
}

// Get returns a copy of the shape registered under id.
func (m *Manager) Get(id string) (Shape, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.reg.Lookup(id)
	if !ok {
		return Shape{}, false
	}
	c := *s
	c.cells = nil
	return c, true
}

// Len returns the number of registered shapes.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.Len()
}

// Snapshot returns copies of all registered shapes.
func (m *Manager) Snapshot() []Shape {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Shape, 0, m.reg.Len())
	m.reg.Each(func(s *Shape) {
		c := *s
		c.cells = nil
		out = append(out, c)
	})
	return out
}

// Inside returns the ids of the shapes that contained the tracked point on
// the last completed tick.
func (m *Manager) Inside() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Inside()
}

// Stats summarizes index occupancy.
type Stats struct {
	Shapes    int `json:"shapes"`
	Unbounded int `json:"unbounded"`
	Cells     int `json:"cells"`
	Inside    int `json:"inside"`
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Shapes:    m.reg.Len(),
		Unbounded: m.reg.UnboundedLen(),
		Cells:     m.reg.Grid().CellCount(),
		Inside:    len(m.tracker.inside),
	}
}
