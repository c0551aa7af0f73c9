package colshape

import "errors"

// DefaultUnboundedThreshold is the bounding-box width or depth above which
// a shape skips the grid and is tested directly on every tick.
const DefaultUnboundedThreshold = 2000.0

// MaxCellsPerSide bounds threshold/cellSize, and with it the number of cells
// a single bounded shape can occupy. Smaller cell sizes are raised to
// threshold/MaxCellsPerSide.
const MaxCellsPerSide = 64.0

// ClampCellSize returns the cell size the registry would use for the given
// cell size and unbounded threshold.
func ClampCellSize(cellSize, unboundedThreshold float64) float64 {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if unboundedThreshold <= 0 {
		unboundedThreshold = DefaultUnboundedThreshold
	}
	if floor := unboundedThreshold / MaxCellsPerSide; cellSize < floor {
		return floor
	}
	return cellSize
}

var (
	ErrDuplicateID = errors.New("colshape: identifier already taken")
	ErrNotFound    = errors.New("colshape: shape not found")
)

// Registry owns every shape, keyed by identifier, and keeps the grid and
// the unbounded set in step with it. Not goroutine-safe.
type Registry struct {
	threshold float64
	byID      map[string]Handle
	shapes    *arena
	grid      *Grid
	unbounded map[Handle]struct{}
}

func NewRegistry(cellSize, unboundedThreshold float64) *Registry {
	if unboundedThreshold <= 0 {
		unboundedThreshold = DefaultUnboundedThreshold
	}
	return &Registry{
		threshold: unboundedThreshold,
		byID:      make(map[string]Handle, 256),
		shapes:    newArena(),
		grid:      NewGrid(ClampCellSize(cellSize, unboundedThreshold)),
		unbounded: make(map[Handle]struct{}),
	}
}

// Add stores s and indexes it. The registry takes ownership of s.
func (r *Registry) Add(s *Shape) (Handle, error) {
	if _, exists := r.byID[s.ID]; exists {
		return 0, ErrDuplicateID
	}

	// Huge shapes would occupy too many cells; force them unbounded.
	if s.Width() > r.threshold || s.Depth() > r.threshold {
		s.Unbounded = true
	}

	h := r.shapes.alloc(s)
	r.byID[s.ID] = h
	if s.Unbounded {
		r.unbounded[h] = struct{}{}
	} else {
		r.grid.Insert(s)
	}
	return h, nil
}

// Remove unindexes and releases the shape with the given id, returning the
// handle it had. The handle is invalid once Remove returns.
func (r *Registry) Remove(id string) (Handle, error) {
	h, ok := r.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	s, _ := r.shapes.get(h)
	if s.Unbounded {
		delete(r.unbounded, h)
	} else {
		r.grid.Remove(s)
	}
	delete(r.byID, id)
	r.shapes.release(h)
	return h, nil
}

// Lookup returns the shape registered under id.
func (r *Registry) Lookup(id string) (*Shape, bool) {
	h, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.shapes.get(h)
}

// Resolve returns the shape behind h, or false if h is stale.
func (r *Registry) Resolve(h Handle) (*Shape, bool) {
	return r.shapes.get(h)
}

// Candidates calls fn for every shape that may contain p: the shapes in
// p's grid cell, then all unbounded shapes.
func (r *Registry) Candidates(p Vector3, fn func(*Shape)) {
	for h := range r.grid.Query(p.X, p.Y) {
		if s, ok := r.shapes.get(h); ok {
			fn(s)
		}
	}
	for h := range r.unbounded {
		if s, ok := r.shapes.get(h); ok {
			fn(s)
		}
	}
}

// Each calls fn for every registered shape in slot order.
func (r *Registry) Each(fn func(*Shape)) {
	r.shapes.each(func(_ Handle, s *Shape) { fn(s) })
}

func (r *Registry) Len() int           { return r.shapes.len() }
func (r *Registry) UnboundedLen() int  { return len(r.unbounded) }
func (r *Registry) Grid() *Grid        { return r.grid }
func (r *Registry) Threshold() float64 { return r.threshold }
