package system

import (
	"time"

	"github.com/l1jgo/colshape/internal/colshape"
	coresys "github.com/l1jgo/colshape/internal/core/system"
)

// TrackerSystem runs one containment pass per tick and hands the resulting
// transitions to a sink. Phase 0 (Update).
type TrackerSystem struct {
	shapes *colshape.Manager
	source colshape.PositionSource
	sink   colshape.Sink
}

func NewTrackerSystem(shapes *colshape.Manager, source colshape.PositionSource, sink colshape.Sink) *TrackerSystem {
	return &TrackerSystem{shapes: shapes, source: source, sink: sink}
}

func (s *TrackerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TrackerSystem) Update(_ time.Duration) {
	t, ok := s.shapes.Tick(s.source)
	if !ok || t.Empty() {
		return
	}
	// Delivered after the manager lock is released, so sinks may create
	// or delete shapes.
	colshape.Deliver(s.sink, t)
}
