package events

// ChannelEvent fans notified values out to registered channels. Sends never
// block: a listener whose channel is full misses that value.
type ChannelEvent[T any] struct {
	reg registry[chan<- T, T]
}

// NewChannelEvent creates a ChannelEvent. When replayLast is true the most
// recent value is offered to every channel that subscribes after the first
// Notify.
func NewChannelEvent[T any](replayLast bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{reg: registry[chan<- T, T]{replayLast: replayLast}}
}

// Listen registers ch and returns its deregistration function.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("events: channel cannot be nil")
	}
	id, last, replay := e.reg.add(ch)
	if replay {
		offer(ch, last)
	}
	return func() { e.reg.remove(id) }
}

// Notify offers value to every registered channel.
func (e *ChannelEvent[T]) Notify(value T) {
	for _, ch := range e.reg.record(value) {
		offer(ch, value)
	}
}

// Last returns the remembered value, if replay is enabled and Notify was called.
func (e *ChannelEvent[T]) Last() (T, bool) {
	return e.reg.lastValue()
}

// ListenerCount returns the number of registered channels.
func (e *ChannelEvent[T]) ListenerCount() int {
	return e.reg.count()
}

func offer[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}
