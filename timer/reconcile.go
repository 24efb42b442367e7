package timer

import (
	"log/slog"
	"time"
)

// Reconciler keeps a running session honest across periods where the host
// was not delivering ticks. It consumes the host's foreground signal and
// corrects the engine from the wall clock on every return to the
// foreground.
type Reconciler struct {
	engine     *Engine
	foreground bool
}

// NewReconciler returns a reconciler that assumes the host starts in the
// foreground.
func NewReconciler(e *Engine) *Reconciler {
	return &Reconciler{
		engine:     e,
		foreground: true,
	}
}

// Foreground reports the last observed lifecycle state.
func (r *Reconciler) Foreground() bool {
	return r.foreground
}

// Observe records the host's lifecycle state. Repeating the current state is
// not a transition and does nothing.
func (r *Reconciler) Observe(foreground bool) {
	if foreground == r.foreground {
		return
	}

	r.foreground = foreground

	if foreground {
		_ = r.engine.Handle(Resync{})
		return
	}

	_ = r.engine.Handle(Backgrounded{})
}

// resync recomputes the running session from its wall-clock anchor. The
// result always wins over whatever ticks were counted while the host was
// away, and the tick subscription is replaced so that a tick queued before
// the suspension cannot apply stale state on top of it.
func (e *Engine) resync(ev Resync) {
	e.background = false

	if e.state.Phase != Running {
		e.ignore(ev)
		return
	}

	wall := max(int(e.clock.Now().Sub(e.state.StartWallClock)/time.Second), 0)

	e.log.Debug(
		"reconciling session with wall clock",
		slog.String("session", e.state.SessionID),
		slog.Int("real_elapsed", wall),
		slog.Int("remaining", e.state.RemainingSeconds),
		slog.Int("elapsed", e.state.ElapsedSeconds),
	)

	if e.cfg.Mode == Countdown {
		e.state.RemainingSeconds = max(seconds(e.cfg.Target)-wall, 0)
		if e.state.RemainingSeconds == 0 {
			e.finish(ev, ReasonExpired)
			return
		}
	} else {
		limit := seconds(e.cfg.MaxSession)
		if limit > 0 && wall >= limit {
			e.state.ElapsedSeconds = limit
			e.finish(ev, ReasonCapped)

			return
		}

		e.state.ElapsedSeconds = wall
	}

	e.startTicking()

	// the user can see the timer again
	e.cancelNotification()
}

// backgrounded re-arms the completion notification for the time that is
// actually left, since a resume may have cancelled the original one.
func (e *Engine) backgrounded(ev Backgrounded) {
	e.background = true

	if e.state.Phase != Running {
		e.ignore(ev)
		return
	}

	if e.cfg.Mode == Countdown {
		e.scheduleNotification(
			time.Duration(e.state.RemainingSeconds) * time.Second,
		)
	}
}
