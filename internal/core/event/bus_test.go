package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type transitionLog struct {
	entered []string
	left    []string
}

func (l *transitionLog) OnEnter(id string) { l.entered = append(l.entered, id) }
func (l *transitionLog) OnLeave(id string) { l.left = append(l.left, id) }

func TestBusDoubleBuffering(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e ShapeEntered) { got = append(got, e.ShapeID) })

	Emit(b, ShapeEntered{ShapeID: "a"})
	Emit(b, ShapeEntered{ShapeID: "b"})
	require.Equal(t, 2, b.Pending())

	// Nothing is delivered before the swap.
	b.DispatchAll()
	require.Empty(t, got)

	b.SwapBuffers()
	require.Zero(t, b.Pending())
	b.DispatchAll()
	require.Equal(t, []string{"a", "b"}, got)

	// Front buffer is drained after dispatch.
	b.DispatchAll()
	require.Equal(t, []string{"a", "b"}, got)
}

func TestBusTypedRouting(t *testing.T) {
	b := NewBus()
	l := &transitionLog{}
	SubscribeTransitions(b, l)

	s := Sink{Bus: b}
	s.OnEnter("zone")
	s.OnLeave("other")
	b.SwapBuffers()
	b.DispatchAll()

	require.Equal(t, []string{"zone"}, l.entered)
	require.Equal(t, []string{"other"}, l.left)
}

func TestBusEmitDuringDispatch(t *testing.T) {
	b := NewBus()
	var left []string
	Subscribe(b, func(e ShapeEntered) { Emit(b, ShapeLeft{ShapeID: e.ShapeID}) })
	Subscribe(b, func(e ShapeLeft) { left = append(left, e.ShapeID) })

	Emit(b, ShapeEntered{ShapeID: "x"})
	b.SwapBuffers()
	b.DispatchAll()
	require.Empty(t, left)

	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []string{"x"}, left)
}

func TestBusDispatchFollowsEmissionOrder(t *testing.T) {
	for i := 0; i < 100; i++ {
		b := NewBus()
		var got []string
		Subscribe(b, func(e ShapeEntered) { got = append(got, "enter:"+e.ShapeID) })
		Subscribe(b, func(e ShapeLeft) { got = append(got, "leave:"+e.ShapeID) })

		s := Sink{Bus: b}
		s.OnEnter("b")
		s.OnLeave("a")
		b.SwapBuffers()
		b.DispatchAll()
		require.Equal(t, []string{"enter:b", "leave:a"}, got)

		// The order is recomputed for every swap.
		got = nil
		s.OnLeave("b")
		s.OnEnter("c")
		b.SwapBuffers()
		b.DispatchAll()
		require.Equal(t, []string{"leave:b", "enter:c"}, got)
	}
}
