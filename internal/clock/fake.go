package clock

import (
	"sync"
	"time"
)

type fakeTimer struct {
	at    time.Time
	fn    func()
	every time.Duration
}

// Fake is a manually driven Clock for tests. Callbacks run synchronously on
// the goroutine that advances the clock.
type Fake struct {
	now    time.Time
	timers map[Handle]*fakeTimer
	mu     sync.Mutex
	next   Handle
}

// NewFake returns a fake clock whose current time is start.
func NewFake(start time.Time) *Fake {
	return &Fake{
		now:    start,
		timers: make(map[Handle]*fakeTimer),
	}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) schedule(t *fakeTimer) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	f.timers[f.next] = t

	return f.next
}

// Every schedules fn to run every d of fake time.
func (f *Fake) Every(d time.Duration, fn func()) Handle {
	return f.schedule(&fakeTimer{
		at:    f.Now().Add(d),
		every: d,
		fn:    fn,
	})
}

// After schedules fn to run once after d of fake time.
func (f *Fake) After(d time.Duration, fn func()) Handle {
	return f.schedule(&fakeTimer{
		at: f.Now().Add(d),
		fn: fn,
	})
}

// Cancel removes a scheduled callback.
func (f *Fake) Cancel(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.timers, h)
}

// Pending reports the number of scheduled callbacks.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}

// due pops the earliest callback scheduled at or before limit. Ties are
// broken by scheduling order.
func (f *Fake) due(limit time.Time) (func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		h    Handle
		next *fakeTimer
	)

	for k, t := range f.timers {
		if t.at.After(limit) {
			continue
		}

		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && k < h) {
			h, next = k, t
		}
	}

	if next == nil {
		return nil, false
	}

	if next.at.After(f.now) {
		f.now = next.at
	}

	if next.every > 0 {
		next.at = next.at.Add(next.every)
	} else {
		delete(f.timers, h)
	}

	return next.fn, true
}

// Advance moves the clock forward by d, running every callback that falls
// due along the way in time order.
func (f *Fake) Advance(d time.Duration) {
	limit := f.Now().Add(d)

	for {
		fn, ok := f.due(limit)
		if !ok {
			break
		}

		fn()
	}

	f.mu.Lock()
	f.now = limit
	f.mu.Unlock()
}

// Suspend moves the clock forward by d without running anything, the way a
// suspended process sees time jump when it is resumed. Periodic callbacks
// keep at most one overdue firing, like a time.Ticker whose consumer was
// stalled; it runs on the next call to Advance.
func (f *Fake) Suspend(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)

	for _, t := range f.timers {
		if t.every > 0 && t.at.Before(f.now) {
			t.at = f.now
		}
	}
}
