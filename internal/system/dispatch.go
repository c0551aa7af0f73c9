package system

import (
	"time"

	"github.com/l1jgo/colshape/internal/core/event"
	coresys "github.com/l1jgo/colshape/internal/core/system"
)

// EventDispatchSystem swaps the bus and delivers everything emitted earlier
// in the same tick. Phase 1 (Output).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
