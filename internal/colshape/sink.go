package colshape

import "go.uber.org/zap"

// PositionSource resolves the tracked point. It returns false when the
// tracked entity cannot be resolved, never a stale or default point.
type PositionSource interface {
	TrackedPosition() (Vector3, bool)
}

// PositionFunc adapts a plain function to PositionSource.
type PositionFunc func() (Vector3, bool)

func (f PositionFunc) TrackedPosition() (Vector3, bool) { return f() }

// Sink receives enter/leave notifications from the polling goroutine.
type Sink interface {
	OnEnter(id string)
	OnLeave(id string)
}

// Deliver sends the entered batch, then the left batch, to sink.
func Deliver(sink Sink, t Transitions) {
	for _, id := range t.Entered {
		sink.OnEnter(id)
	}
	for _, id := range t.Left {
		sink.OnLeave(id)
	}
}

// LogSink writes transitions to a zap logger at debug level.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) OnEnter(id string) {
	s.Log.Debug("tracked point entered shape", zap.String("shape", id))
}

func (s LogSink) OnLeave(id string) {
	s.Log.Debug("tracked point left shape", zap.String("shape", id))
}
