package event

// ShapeEntered is emitted when the tracked point moves into a shape.
type ShapeEntered struct {
	ShapeID string
}

// ShapeLeft is emitted when the tracked point moves out of a shape.
type ShapeLeft struct {
	ShapeID string
}

// Sink feeds enter/leave transitions into a Bus.
type Sink struct {
	Bus *Bus
}

func (s Sink) OnEnter(id string) { Emit(s.Bus, ShapeEntered{ShapeID: id}) }
func (s Sink) OnLeave(id string) { Emit(s.Bus, ShapeLeft{ShapeID: id}) }

// Handlers routes bus events back into enter/leave callbacks, so anything
// implementing OnEnter/OnLeave can listen on the bus.
type Handlers interface {
	OnEnter(id string)
	OnLeave(id string)
}

// SubscribeTransitions registers h for both transition event types.
func SubscribeTransitions(b *Bus, h Handlers) {
	Subscribe(b, func(e ShapeEntered) { h.OnEnter(e.ShapeID) })
	Subscribe(b, func(e ShapeLeft) { h.OnLeave(e.ShapeID) })
}
