package timer

import (
	"strings"
	"time"
)

// Phase is the lifecycle stage of a focus session.
type Phase int

const (
	// Idle means no session is active and the duration can be changed.
	Idle Phase = iota
	// Grace means a session has nominally started but can still be
	// cancelled without being recorded.
	Grace
	// Running means the session is ticking and stopping it records it.
	Running
	// Finalizing is the transient hand-off to the finalizer.
	Finalizing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Grace:
		return "grace"
	case Running:
		return "running"
	case Finalizing:
		return "finalizing"
	}

	return "unknown"
}

// Mode selects between counting down to a target and counting up.
type Mode int

const (
	// Countdown counts down from a target duration.
	Countdown Mode = iota
	// Stopwatch counts up until stopped or capped.
	Stopwatch
)

func (m Mode) String() string {
	if m == Stopwatch {
		return "stopwatch"
	}

	return "countdown"
}

// ParseMode converts a mode name from the config file or command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "countdown", "":
		return Countdown, nil
	case "stopwatch":
		return Stopwatch, nil
	}

	return Countdown, ErrInvalidMode.Fmt(s)
}

// Config is the immutable description of an armed session.
type Config struct {
	// ActivityTag identifies what the session is for.
	ActivityTag string
	// Target is the countdown length. Ignored in Stopwatch mode.
	Target time.Duration
	// MaxSession caps how long a session may run.
	MaxSession time.Duration
	Mode       Mode
}

// State is a snapshot of the engine.
type State struct {
	StartWallClock        time.Time
	SessionID             string
	Phase                 Phase
	Mode                  Mode
	RemainingSeconds      int
	ElapsedSeconds        int
	GraceRemainingSeconds int
	StopRequested         bool
}

// Seconds returns the value shown on the clock face for the current mode.
func (s State) Seconds() int {
	if s.Mode == Stopwatch {
		return s.ElapsedSeconds
	}

	return s.RemainingSeconds
}

// Policy holds the externally configured limits of the engine.
type Policy struct {
	// Grace is the length of the cancellation window after arming.
	Grace time.Duration
	// MaxSession is the ceiling applied when a config leaves it unset.
	MaxSession time.Duration
	// DefaultDuration is the countdown shown while idle.
	DefaultDuration time.Duration
	// DefaultMode is the mode the engine starts in.
	DefaultMode Mode
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
