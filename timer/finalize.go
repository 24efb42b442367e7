package timer

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const defaultSubmitTimeout = 30 * time.Second

// Reason records why a session ended.
type Reason int

const (
	// ReasonStopped means the user confirmed a stop.
	ReasonStopped Reason = iota
	// ReasonExpired means a countdown reached zero.
	ReasonExpired
	// ReasonCapped means a stopwatch reached the session ceiling.
	ReasonCapped
)

func (r Reason) String() string {
	switch r {
	case ReasonStopped:
		return "stopped"
	case ReasonExpired:
		return "expired"
	case ReasonCapped:
		return "capped"
	}

	return "unknown"
}

// FinalizedSession is the record handed to the upload collaborator.
type FinalizedSession struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ID              string    `json:"id"`
	ActivityTag     string    `json:"activity_tag"`
	Mode            string    `json:"mode"`
	Timezone        string    `json:"timezone"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Reward is what the collaborator granted for a session.
type Reward struct {
	Coins int `json:"coins_awarded"`
	XP    int `json:"xp_awarded"`
}

// Submitter receives finalized sessions.
type Submitter interface {
	SubmitSession(ctx context.Context, sess FinalizedSession) (Reward, error)
}

// Record is what the engine knows about a session when it ends.
type Record struct {
	Start          time.Time
	End            time.Time
	SessionID      string
	Config         Config
	ElapsedSeconds int
	Reason         Reason
}

// Result is reported once the collaborator has answered. Err is set when the
// upload failed, in which case Reward is the zero value.
type Result struct {
	Err     error
	Session FinalizedSession
	Reward  Reward
	Reason  Reason
}

// FinalizerOption customises a Finalizer.
type FinalizerOption func(*Finalizer)

// WithRunner sets how the upload is dispatched. The default runs it on a new
// goroutine so that the engine never waits for it.
func WithRunner(run func(fn func())) FinalizerOption {
	return func(f *Finalizer) {
		f.run = run
	}
}

// WithResultHandler sets the callback that receives upload results.
func WithResultHandler(fn func(Result)) FinalizerOption {
	return func(f *Finalizer) {
		f.onResult = fn
	}
}

// WithFinalizerLogger sets the finalizer's logger.
func WithFinalizerLogger(l *slog.Logger) FinalizerOption {
	return func(f *Finalizer) {
		f.log = l
	}
}

// WithLocation sets the time zone reported with finalized sessions.
func WithLocation(loc *time.Location) FinalizerOption {
	return func(f *Finalizer) {
		f.location = loc
	}
}

// WithSubmitTimeout bounds how long an upload may take.
func WithSubmitTimeout(d time.Duration) FinalizerOption {
	return func(f *Finalizer) {
		f.timeout = d
	}
}

// Finalizer turns an ended session into a FinalizedSession and submits it
// exactly once.
type Finalizer struct {
	submitter Submitter
	run       func(fn func())
	onResult  func(Result)
	log       *slog.Logger
	location  *time.Location
	last      string
	timeout   time.Duration
}

// NewFinalizer returns a finalizer that submits to s.
func NewFinalizer(s Submitter, opts ...FinalizerOption) *Finalizer {
	f := &Finalizer{
		submitter: s,
		run:       func(fn func()) { go fn() },
		log:       slog.Default(),
		timeout:   defaultSubmitTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func recordKey(rec Record) string {
	if rec.SessionID != "" {
		return rec.SessionID
	}

	return strconv.FormatInt(rec.Start.UnixMilli(), 10)
}

// Finalize submits the session described by rec. It reports whether a
// submission was dispatched: sessions with no elapsed time are not recorded
// and a second call for the same session is ignored.
func (f *Finalizer) Finalize(rec Record) bool {
	key := recordKey(rec)
	if key == f.last {
		f.log.Debug("session already finalized", slog.String("session", key))
		return false
	}

	f.last = key

	if rec.ElapsedSeconds <= 0 {
		f.log.Info("session too short to record", slog.String("session", key))
		return false
	}

	sess := f.build(rec)

	if f.submitter == nil {
		return false
	}

	f.run(func() {
		f.submit(sess, rec.Reason)
	})

	return true
}

func (f *Finalizer) build(rec Record) FinalizedSession {
	elapsed := time.Duration(rec.ElapsedSeconds) * time.Second

	// a session that outlived its recorded length (e.g. the host slept
	// through the end of a countdown) ends where its duration says it did
	end := rec.End
	if limit := rec.Start.Add(elapsed); end.After(limit) {
		end = limit
	}

	loc := f.location
	if loc == nil {
		loc = rec.Start.Location()
	}

	return FinalizedSession{
		ID:              recordKey(rec),
		ActivityTag:     rec.Config.ActivityTag,
		Mode:            rec.Config.Mode.String(),
		StartTime:       rec.Start.In(loc),
		EndTime:         end.In(loc),
		DurationSeconds: rec.ElapsedSeconds,
		Timezone:        zoneName(loc),
	}
}

// zoneName returns an IANA name for loc where one is known.
func zoneName(loc *time.Location) string {
	name := loc.String()
	if name != "Local" {
		return name
	}

	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}

	return name
}

func (f *Finalizer) submit(sess FinalizedSession, reason Reason) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	reward, err := f.submitter.SubmitSession(ctx, sess)
	if err != nil {
		f.log.Warn(
			"unable to submit session",
			slog.String("session", sess.ID),
			slog.Any("error", err),
		)

		reward = Reward{}
	} else {
		f.log.Info(
			"session submitted",
			slog.String("session", sess.ID),
			slog.Int("coins", reward.Coins),
			slog.Int("xp", reward.XP),
		)
	}

	if f.onResult != nil {
		f.onResult(Result{
			Session: sess,
			Reward:  reward,
			Err:     err,
			Reason:  reason,
		})
	}
}
