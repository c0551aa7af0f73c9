package colshape

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments on release, so a
// handle held after its shape was deleted never resolves again.
type Handle uint64

func newHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// IsZero reports whether h is the zero handle, which never refers to a shape.
func (h Handle) IsZero() bool { return h == 0 }

// arena owns shape records in slots addressed by generational handles,
// reusing freed slots through a free list.
type arena struct {
	generations []uint32
	slots       []*Shape
	freeList    []uint32
	live        int
}

func newArena() *arena {
	return &arena{
		generations: make([]uint32, 0, 256),
		slots:       make([]*Shape, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (a *arena) alloc(s *Shape) Handle {
	var idx uint32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// generation starts at 1 so the zero handle stays invalid
		a.generations = append(a.generations, 1)
		a.slots = append(a.slots, nil)
	}
	h := newHandle(idx, a.generations[idx])
	a.slots[idx] = s
	s.handle = h
	a.live++
	return h
}

func (a *arena) get(h Handle) (*Shape, bool) {
	idx := h.index()
	if int(idx) >= len(a.slots) || a.generations[idx] != h.generation() {
		return nil, false
	}
	s := a.slots[idx]
	return s, s != nil
}

func (a *arena) release(h Handle) {
	idx := h.index()
	if int(idx) >= len(a.slots) || a.generations[idx] != h.generation() {
		return // stale handle
	}
	a.slots[idx] = nil
	a.generations[idx]++
	a.freeList = append(a.freeList, idx)
	a.live--
}

func (a *arena) len() int {
	return a.live
}

func (a *arena) each(fn func(Handle, *Shape)) {
	for idx, s := range a.slots {
		if s != nil {
			fn(newHandle(uint32(idx), a.generations[idx]), s)
		}
	}
}
