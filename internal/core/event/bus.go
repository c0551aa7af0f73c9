package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during a tick sit in
// the back buffer until SwapBuffers moves them to the front, where
// DispatchAll delivers them. Emit, SwapBuffers and DispatchAll belong to the
// polling goroutine; Subscribe may be called from anywhere.
type Bus struct {
	mu         sync.Mutex // only protects handler registration
	front      map[reflect.Type][]any
	back       map[reflect.Type][]any
	frontOrder []reflect.Type // types in order of first emission since the last swap
	backOrder  []reflect.Type
	handlers   map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if len(b.back[t]) == 0 {
		b.backOrder = append(b.backOrder, t)
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	b.frontOrder, b.backOrder = b.backOrder, b.frontOrder[:0]
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.back {
		n += len(events)
	}
	return n
}

// DispatchAll delivers all front-buffer events to their subscribed handlers,
// type by type in the order each type was first emitted, and in emission
// order within a type. Handlers may subscribe or emit; emitted events wait
// for the next swap.
func (b *Bus) DispatchAll() {
	for _, t := range b.frontOrder {
		events := b.front[t]
		b.mu.Lock()
		handlers := append([]any(nil), b.handlers[t]...)
		b.mu.Unlock()

		for _, ev := range events {
			for _, h := range handlers {
				callHandler(h, ev)
			}
		}
		b.front[t] = events[:0]
	}
	b.frontOrder = b.frontOrder[:0]
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
