package timer

import "time"

// Event is an input to the engine's transition function. The set of events
// is closed: only the types declared in this package implement it.
type Event interface {
	event()
}

type (
	// Arm starts the grace period for a new session.
	Arm struct {
		Config Config
	}

	// GraceCancel abandons a session during its grace period.
	GraceCancel struct{}

	// Tick advances a running session by one second.
	Tick struct {
		gen uint64
	}

	// RequestStop marks a running session as awaiting stop confirmation.
	RequestStop struct{}

	// CancelStopRequest withdraws a stop request.
	CancelStopRequest struct{}

	// ConfirmStop ends a running session at the user's request.
	ConfirmStop struct{}

	// Expire ends a countdown that reached zero.
	Expire struct{}

	// Cap ends a stopwatch that reached the session ceiling.
	Cap struct{}

	// SetMode switches between countdown and stopwatch while idle.
	SetMode struct {
		Mode Mode
	}

	// SetTarget updates the countdown shown while idle.
	SetTarget struct {
		Duration time.Duration
	}

	// Resync recomputes a running session from the wall clock.
	Resync struct{}

	// Backgrounded reports that the host stopped being visible.
	Backgrounded struct{}

	graceTick struct {
		gen uint64
	}
)

func (Arm) event()               {}
func (GraceCancel) event()       {}
func (Tick) event()              {}
func (RequestStop) event()       {}
func (CancelStopRequest) event() {}
func (ConfirmStop) event()       {}
func (Expire) event()            {}
func (Cap) event()               {}
func (SetMode) event()           {}
func (SetTarget) event()         {}
func (Resync) event()            {}
func (Backgrounded) event()      {}
func (graceTick) event()         {}
