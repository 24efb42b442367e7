// Package clock abstracts the passage of time so that the timer engine can be
// driven by real timers in production and advanced deterministically in tests
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback.
type Handle uint64

// Clock provides the current time and schedules callbacks.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
	// Every calls fn once per interval d until the returned handle is
	// cancelled.
	Every(d time.Duration, fn func()) Handle
	// After calls fn once after d unless the handle is cancelled first.
	After(d time.Duration, fn func()) Handle
	// Cancel stops a scheduled callback. Cancelling an unknown or expired
	// handle is a no-op.
	Cancel(h Handle)
}

// Dispatcher runs fn on the host's event loop.
type Dispatcher func(fn func())

type stopFunc func()

// Real is a Clock backed by the time package. Callbacks are handed to the
// dispatcher so that they run on the same goroutine as every other event.
// A callback whose handle was cancelled after it fired but before the
// dispatcher ran it is dropped.
type Real struct {
	dispatch Dispatcher
	timers   map[Handle]stopFunc
	mu       sync.Mutex
	next     Handle
}

// NewReal returns a real clock. A nil dispatcher runs callbacks directly on
// the timer goroutine.
func NewReal(dispatch Dispatcher) *Real {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Real{
		dispatch: dispatch,
		timers:   make(map[Handle]stopFunc),
	}
}

// Now returns time.Now.
func (r *Real) Now() time.Time {
	return time.Now()
}

func (r *Real) register(stop stopFunc) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.timers[r.next] = stop

	return r.next
}

func (r *Real) active(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.timers[h]

	return ok
}

func (r *Real) forget(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.timers, h)
}

// Every schedules fn to run every d.
func (r *Real) Every(d time.Duration, fn func()) Handle {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	h := r.register(func() {
		ticker.Stop()
		close(done)
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.dispatch(func() {
					if r.active(h) {
						fn()
					}
				})
			}
		}
	}()

	return h
}

// After schedules fn to run once after d.
func (r *Real) After(d time.Duration, fn func()) Handle {
	var h Handle

	ready := make(chan struct{})

	t := time.AfterFunc(d, func() {
		<-ready

		r.dispatch(func() {
			if !r.active(h) {
				return
			}

			r.forget(h)
			fn()
		})
	})

	h = r.register(func() {
		t.Stop()
	})

	close(ready)

	return h
}

// Cancel stops the callback associated with h.
func (r *Real) Cancel(h Handle) {
	r.mu.Lock()
	stop, ok := r.timers[h]
	delete(r.timers, h)
	r.mu.Unlock()

	if ok {
		stop()
	}
}
