package events

import "sync"

// subscription pairs a listener with the id handed back to its owner.
type subscription[S any] struct {
	id       uint64
	listener S
}

// registry is the listener bookkeeping shared by CallbackEvent and ChannelEvent.
// Listeners are kept in registration order so notifications are delivered
// in the order listeners subscribed.
type registry[S any, T any] struct {
	mu         sync.RWMutex
	subs       []subscription[S]
	nextID     uint64
	replayLast bool
	last       T
	hasLast    bool
}

// add registers listener and reports the value to replay to it, if any.
func (r *registry[S, T]) add(listener S) (uint64, T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subs = append(r.subs, subscription[S]{id: id, listener: listener})
	return id, r.last, r.replayLast && r.hasLast
}

// remove drops the listener with id. Unknown ids are ignored so that
// deregistration functions can be called any number of times.
func (r *registry[S, T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

// record stores value as the last event (when replay is on) and returns a
// snapshot of the listeners to deliver it to outside the lock.
func (r *registry[S, T]) record(value T) []S {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.replayLast {
		r.last = value
		r.hasLast = true
	}
	out := make([]S, len(r.subs))
	for i, s := range r.subs {
		out[i] = s.listener
	}
	return out
}

func (r *registry[S, T]) lastValue() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.hasLast
}

func (r *registry[S, T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
