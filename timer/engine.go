// Package timer implements the focus session state machine: the grace
// period, countdown and stopwatch ticking, reconciliation with the wall clock
// after the host was suspended, and the one-time hand-off of a finished
// session to the upload collaborator
package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focusring/internal/clock"
)

const tickInterval = time.Second

// Notifier schedules the "session complete" notification. Failures are
// logged and otherwise ignored.
type Notifier interface {
	ScheduleCompletion(after time.Duration, label string) error
	CancelCompletion() error
}

// Deliverer is implemented by notifiers that can deliver a scheduled
// notification ahead of its deadline.
type Deliverer interface {
	// DeliverPending fires the pending notification now. It does nothing
	// if the notification was already delivered or cancelled.
	DeliverPending() error
}

type nopNotifier struct{}

func (nopNotifier) ScheduleCompletion(time.Duration, string) error { return nil }

func (nopNotifier) CancelCompletion() error { return nil }

// Option customises an Engine.
type Option func(*Engine)

// WithNotifier sets the completion notification adapter.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithIDGenerator overrides how session identifiers are created.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// Engine owns the state of the focus session. All methods must be called
// from the same goroutine that runs the clock's callbacks.
type Engine struct {
	clock     clock.Clock
	notifier  Notifier
	finalizer *Finalizer
	log       *slog.Logger
	newID     func() string
	state     State
	cfg       Config
	policy    Policy
	target    time.Duration
	tick      clock.Handle
	grace     clock.Handle
	tickGen   uint64
	graceGen  uint64
	ticking   bool
	gracing   bool
	notified  bool
	// background is true while the host is not visible
	background bool
}

// New returns an idle engine.
func New(c clock.Clock, f *Finalizer, p Policy, opts ...Option) *Engine {
	e := &Engine{
		clock:     c,
		finalizer: f,
		policy:    p,
		notifier:  nopNotifier{},
		log:       slog.Default(),
		newID:     uuid.NewString,
		target:    p.DefaultDuration,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.state = e.idleState(p.DefaultMode)

	return e
}

// State returns a snapshot of the session state.
func (e *Engine) State() State {
	return e.state
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Config returns the configuration of the armed session. It is the zero
// value while idle.
func (e *Engine) Config() Config {
	return e.cfg
}

// Target returns the countdown length used when the engine is idle.
func (e *Engine) Target() time.Duration {
	return e.target
}

// Handle is the engine's transition function. Events that are not valid in
// the current phase are ignored. The only error returned is a validation
// failure from Arm, in which case the state is unchanged.
func (e *Engine) Handle(ev Event) error {
	switch ev := ev.(type) {
	case Arm:
		return e.arm(ev)
	case GraceCancel:
		e.graceCancel(ev)
	case graceTick:
		e.graceTick(ev)
	case Tick:
		e.advance(ev)
	case RequestStop:
		e.setStopRequested(ev, true)
	case CancelStopRequest:
		e.setStopRequested(ev, false)
	case ConfirmStop:
		e.finish(ev, ReasonStopped)
	case Expire:
		e.finish(ev, ReasonExpired)
	case Cap:
		e.finish(ev, ReasonCapped)
	case SetMode:
		e.setMode(ev)
	case SetTarget:
		e.setTarget(ev)
	case Resync:
		e.resync(ev)
	case Backgrounded:
		e.backgrounded(ev)
	}

	return nil
}

// Arm validates cfg and starts the grace period.
func (e *Engine) Arm(cfg Config) error {
	return e.Handle(Arm{Config: cfg})
}

// GraceCancel abandons the session during its grace period.
func (e *Engine) GraceCancel() {
	_ = e.Handle(GraceCancel{})
}

// Tick advances the running session by one second.
func (e *Engine) Tick() {
	_ = e.Handle(Tick{})
}

// RequestStop asks for confirmation before stopping the session.
func (e *Engine) RequestStop() {
	_ = e.Handle(RequestStop{})
}

// CancelStopRequest keeps the session running after a stop request.
func (e *Engine) CancelStopRequest() {
	_ = e.Handle(CancelStopRequest{})
}

// ConfirmStop ends and records the running session.
func (e *Engine) ConfirmStop() {
	_ = e.Handle(ConfirmStop{})
}

// Expire ends the running session as completed.
func (e *Engine) Expire() {
	_ = e.Handle(Expire{})
}

// Cap ends the running session at the session ceiling.
func (e *Engine) Cap() {
	_ = e.Handle(Cap{})
}

// SetMode switches modes while idle.
func (e *Engine) SetMode(m Mode) {
	_ = e.Handle(SetMode{Mode: m})
}

// SetTarget sets the countdown shown while idle.
func (e *Engine) SetTarget(d time.Duration) {
	_ = e.Handle(SetTarget{Duration: d})
}

func (e *Engine) ignore(ev Event) {
	e.log.Debug(
		"ignoring timer event",
		slog.String("event", fmt.Sprintf("%T", ev)),
		slog.String("phase", e.state.Phase.String()),
	)
}

func (e *Engine) idleState(mode Mode) State {
	s := State{
		Phase: Idle,
		Mode:  mode,
	}

	if mode == Countdown {
		s.RemainingSeconds = seconds(e.target)
	}

	return s
}

func (e *Engine) arm(ev Arm) error {
	if e.state.Phase != Idle {
		e.ignore(ev)
		return nil
	}

	cfg := ev.Config

	if cfg.MaxSession <= 0 {
		cfg.MaxSession = e.policy.MaxSession
	}

	switch cfg.Mode {
	case Countdown:
		if cfg.Target < time.Second {
			return ErrInvalidDuration
		}

		if cfg.MaxSession > 0 && cfg.Target > cfg.MaxSession {
			return ErrDurationTooLong.Fmt(cfg.Target, cfg.MaxSession)
		}

		cfg.Target = cfg.Target.Truncate(time.Second)
	case Stopwatch:
		cfg.Target = 0
	default:
		return ErrInvalidMode.Fmt(cfg.Mode)
	}

	e.cfg = cfg
	e.state = State{
		Phase:                 Grace,
		Mode:                  cfg.Mode,
		RemainingSeconds:      seconds(cfg.Target),
		GraceRemainingSeconds: seconds(e.policy.Grace),
	}

	e.log.Info(
		"session armed",
		slog.String("mode", cfg.Mode.String()),
		slog.Duration("target", cfg.Target),
		slog.String("tag", cfg.ActivityTag),
	)

	if e.state.GraceRemainingSeconds <= 0 {
		e.startRunning()
		return nil
	}

	e.graceGen++
	gen := e.graceGen

	e.grace = e.clock.Every(tickInterval, func() {
		_ = e.Handle(graceTick{gen: gen})
	})
	e.gracing = true

	return nil
}

func (e *Engine) graceCancel(ev GraceCancel) {
	if e.state.Phase != Grace {
		e.ignore(ev)
		return
	}

	e.log.Info("session cancelled during grace period")

	e.reset()
}

func (e *Engine) graceTick(ev graceTick) {
	if e.state.Phase != Grace || ev.gen != e.graceGen {
		e.ignore(ev)
		return
	}

	e.state.GraceRemainingSeconds--
	if e.state.GraceRemainingSeconds > 0 {
		return
	}

	e.stopGrace()
	e.startRunning()
}

func (e *Engine) startRunning() {
	e.state.Phase = Running
	e.state.GraceRemainingSeconds = 0
	e.state.StartWallClock = e.clock.Now()
	e.state.SessionID = e.newID()

	if e.cfg.Mode == Countdown {
		e.state.RemainingSeconds = seconds(e.cfg.Target)
	} else {
		e.state.ElapsedSeconds = 0
	}

	e.log.Info(
		"session started",
		slog.String("session", e.state.SessionID),
		slog.Time("start", e.state.StartWallClock),
	)

	e.startTicking()

	if e.cfg.Mode == Countdown {
		e.scheduleNotification(e.cfg.Target)
	}
}

// startTicking replaces the tick subscription. Ticks scheduled by a previous
// subscription carry an older generation and are dropped.
func (e *Engine) startTicking() {
	e.stopTicking()

	e.tickGen++
	gen := e.tickGen

	e.tick = e.clock.Every(tickInterval, func() {
		_ = e.Handle(Tick{gen: gen})
	})
	e.ticking = true
}

func (e *Engine) stopTicking() {
	if !e.ticking {
		return
	}

	e.clock.Cancel(e.tick)
	e.ticking = false
}

func (e *Engine) stopGrace() {
	if !e.gracing {
		return
	}

	e.clock.Cancel(e.grace)
	e.gracing = false
}

func (e *Engine) advance(ev Tick) {
	if e.state.Phase != Running || (ev.gen != 0 && ev.gen != e.tickGen) {
		e.ignore(ev)
		return
	}

	if e.cfg.Mode == Countdown {
		e.state.RemainingSeconds--
		if e.state.RemainingSeconds <= 0 {
			e.state.RemainingSeconds = 0
			e.finish(ev, ReasonExpired)
		}

		return
	}

	e.state.ElapsedSeconds++

	limit := seconds(e.cfg.MaxSession)
	if limit > 0 && e.state.ElapsedSeconds >= limit {
		e.state.ElapsedSeconds = limit
		e.finish(ev, ReasonCapped)
	}
}

func (e *Engine) setStopRequested(ev Event, requested bool) {
	if e.state.Phase != Running {
		e.ignore(ev)
		return
	}

	e.state.StopRequested = requested
}

// elapsed is the recorded length of the running session in seconds.
func (e *Engine) elapsed() int {
	var n int

	if e.cfg.Mode == Countdown {
		n = seconds(e.cfg.Target) - e.state.RemainingSeconds
	} else {
		n = e.state.ElapsedSeconds
	}

	return max(n, 0)
}

// finish moves a running session through Finalizing back to Idle. Only the
// first of several end triggers for the same session gets past the phase
// check.
func (e *Engine) finish(ev Event, reason Reason) {
	if e.state.Phase != Running {
		e.ignore(ev)
		return
	}

	rec := Record{
		Config:         e.cfg,
		SessionID:      e.state.SessionID,
		Start:          e.state.StartWallClock,
		End:            e.clock.Now(),
		ElapsedSeconds: e.elapsed(),
		Reason:         reason,
	}

	e.state.Phase = Finalizing

	e.stopTicking()

	// the final tick and the notification deadline coincide; an expiry
	// nobody is watching is announced instead of withdrawn
	if reason == ReasonExpired && e.background {
		e.deliverNotification()
	} else {
		e.cancelNotification()
	}

	e.log.Info(
		"session ended",
		slog.String("session", rec.SessionID),
		slog.String("reason", reason.String()),
		slog.Int("elapsed", rec.ElapsedSeconds),
	)

	if e.finalizer != nil {
		e.finalizer.Finalize(rec)
	}

	e.reset()
}

// reset returns the engine to Idle with no subscriptions and no pending
// notification.
func (e *Engine) reset() {
	e.stopTicking()
	e.stopGrace()
	e.cancelNotification()

	mode := e.state.Mode
	e.cfg = Config{}
	e.state = e.idleState(mode)
}

func (e *Engine) setMode(ev SetMode) {
	if e.state.Phase != Idle {
		e.ignore(ev)
		return
	}

	e.state = e.idleState(ev.Mode)
}

func (e *Engine) setTarget(ev SetTarget) {
	if e.state.Phase != Idle {
		e.ignore(ev)
		return
	}

	e.target = ev.Duration.Truncate(time.Second)
	e.state = e.idleState(e.state.Mode)
}

func (e *Engine) label() string {
	if e.cfg.ActivityTag != "" {
		return e.cfg.ActivityTag
	}

	return "Focus session"
}

func (e *Engine) scheduleNotification(after time.Duration) {
	e.cancelNotification()

	err := e.notifier.ScheduleCompletion(after, e.label())
	if err != nil {
		e.log.Warn("unable to schedule notification", slog.Any("error", err))
		return
	}

	e.notified = true
}

func (e *Engine) deliverNotification() {
	d, ok := e.notifier.(Deliverer)
	if !ok || !e.notified {
		e.cancelNotification()
		return
	}

	e.notified = false

	err := d.DeliverPending()
	if err != nil {
		e.log.Warn("unable to deliver notification", slog.Any("error", err))
	}
}

func (e *Engine) cancelNotification() {
	if !e.notified {
		return
	}

	e.notified = false

	err := e.notifier.CancelCompletion()
	if err != nil {
		e.log.Warn("unable to cancel notification", slog.Any("error", err))
	}
}
