// Package dial converts a drag gesture on a circular control into a snapped
// session duration
package dial

import (
	"math"
	"time"
)

const fullTurn = 360.0

type latch int

const (
	latchNone latch = iota
	// latchHigh holds the dial at 360 after the pointer crossed the seam
	// clockwise.
	latchHigh
	// latchLow holds the dial at 0 after the pointer crossed the seam
	// counter-clockwise.
	latchLow
)

// Config describes the range and quantization of a dial.
type Config struct {
	// MaxDuration is the duration represented by a full turn.
	MaxDuration time.Duration
	// SnapInterval is the step committed durations are rounded to.
	SnapInterval time.Duration
}

// Option customises a Dial.
type Option func(*Dial)

// WithGate installs a function that reports whether the dial accepts input.
// The timer screen closes the gate whenever a session is not idle.
func WithGate(open func() bool) Option {
	return func(d *Dial) {
		d.gate = open
	}
}

// Dial is the state of a circular duration control. It is not safe for
// concurrent use.
type Dial struct {
	live      *float64
	gate      func() bool
	cfg       Config
	committed float64
	lastRaw   float64
	latch     latch
	dragging  bool
}

// New returns a dial with its committed angle at zero.
func New(cfg Config, opts ...Option) (*Dial, error) {
	if cfg.MaxDuration <= 0 {
		return nil, errInvalidMaxDuration
	}

	if cfg.SnapInterval <= 0 || cfg.SnapInterval > cfg.MaxDuration {
		return nil, errInvalidSnapInterval.Fmt(cfg.SnapInterval, cfg.MaxDuration)
	}

	d := &Dial{
		cfg:  cfg,
		gate: func() bool { return true },
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Angle returns the angle of the point (dx, dy) relative to the centre of the
// control, in degrees within [0, 360). Coordinates follow screen convention
// (y grows downwards) so 0 is the top of the circle and angles grow
// clockwise.
func Angle(dx, dy float64) float64 {
	return normalize(math.Atan2(dy, dx)*180/math.Pi + 90)
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, fullTurn)
	if deg < 0 {
		deg += fullTurn
	}

	// a tiny negative remainder rounds up to a full turn
	if deg >= fullTurn {
		deg = 0
	}

	return deg
}

// shortestDelta returns the change from prev to next with the smallest
// magnitude across the 0/360 seam.
func shortestDelta(prev, next float64) float64 {
	delta := next - prev
	if delta > 180 {
		delta -= fullTurn
	} else if delta < -180 {
		delta += fullTurn
	}

	return delta
}

// StepDegrees is the angular size of one snap interval.
func (d *Dial) StepDegrees() float64 {
	return fullTurn * d.cfg.SnapInterval.Seconds() / d.cfg.MaxDuration.Seconds()
}

// Config returns the dial configuration.
func (d *Dial) Config() Config {
	return d.cfg
}

func (d *Dial) enabled() bool {
	if d.gate() {
		return true
	}

	// a drag interrupted by the gate closing is abandoned without a commit
	d.endDrag()

	return false
}

func (d *Dial) endDrag() {
	d.dragging = false
	d.live = nil
	d.latch = latchNone
}

// Press begins a drag at (dx, dy). The live angle jumps to the pointer.
func (d *Dial) Press(dx, dy float64) {
	if !d.enabled() {
		return
	}

	raw := Angle(dx, dy)

	d.dragging = true
	d.latch = latchNone
	d.lastRaw = raw
	d.live = &raw
}

// Move updates the live angle from a pointer movement. The dial follows the
// delta from the previous pointer angle so that crossing the top of the
// circle does not make it jump, and it stops at both ends of its range
// instead of wrapping around.
func (d *Dial) Move(dx, dy float64) {
	if !d.enabled() || !d.dragging {
		return
	}

	raw := Angle(dx, dy)
	delta := shortestDelta(d.lastRaw, raw)
	prev := d.lastRaw
	d.lastRaw = raw

	switch d.latch {
	case latchHigh:
		// released only once the pointer comes back across the seam
		if delta < 0 && prev+delta < 0 {
			d.latch = latchNone
			*d.live = raw
		}

		return
	case latchLow:
		if delta > 0 && prev+delta >= fullTurn {
			d.latch = latchNone
			*d.live = raw
		}

		return
	}

	next := *d.live + delta

	switch {
	case next > fullTurn:
		next = fullTurn
		d.latch = latchHigh
	case next < 0:
		next = 0
		d.latch = latchLow
	}

	*d.live = next
}

// Release ends the drag at (dx, dy), commits the snapped angle and returns
// the committed duration. ok is false if no drag was in progress or input is
// disabled.
func (d *Dial) Release(dx, dy float64) (committed time.Duration, ok bool) {
	if !d.enabled() || !d.dragging {
		return d.Duration(), false
	}

	d.Move(dx, dy)

	d.committed = d.snap(*d.live)

	d.endDrag()

	return d.Duration(), true
}

// Cancel abandons a drag without committing it.
func (d *Dial) Cancel() {
	d.endDrag()
}

// snap rounds angle to the nearest snap step, never exceeding a full turn.
func (d *Dial) snap(angle float64) float64 {
	step := d.StepDegrees()

	snapped := math.Round(angle/step) * step
	if snapped > fullTurn {
		snapped = math.Floor(fullTurn/step) * step
	}

	if snapped < 0 {
		snapped = 0
	}

	return snapped
}

func (d *Dial) toDuration(angle float64) time.Duration {
	secs := math.Round(angle / fullTurn * d.cfg.MaxDuration.Seconds())

	return time.Duration(secs) * time.Second
}

// Dragging reports whether a drag is in progress.
func (d *Dial) Dragging() bool {
	return d.dragging
}

// CommittedAngle returns the committed angle in degrees.
func (d *Dial) CommittedAngle() float64 {
	return d.committed
}

// LiveAngle returns the unsnapped angle of the drag in progress.
func (d *Dial) LiveAngle() (float64, bool) {
	if d.live == nil {
		return 0, false
	}

	return *d.live, true
}

// Angle returns the angle to display: the live angle while dragging,
// otherwise the committed one.
func (d *Dial) Angle() float64 {
	if a, ok := d.LiveAngle(); ok {
		return a
	}

	return d.committed
}

// Duration returns the committed duration.
func (d *Dial) Duration() time.Duration {
	return d.toDuration(d.committed)
}

// Preview returns the unsnapped duration under the pointer while dragging,
// or the committed duration otherwise.
func (d *Dial) Preview() time.Duration {
	return d.toDuration(d.Angle())
}

// SnappedPreview returns the duration that would be committed if the drag
// ended now.
func (d *Dial) SnappedPreview() time.Duration {
	return d.toDuration(d.snap(d.Angle()))
}

// SetDuration commits the snapped angle for dur. Durations outside the dial's
// range are clamped.
func (d *Dial) SetDuration(dur time.Duration) {
	if !d.enabled() {
		return
	}

	angle := fullTurn * dur.Seconds() / d.cfg.MaxDuration.Seconds()
	if angle > fullTurn {
		angle = fullTurn
	}

	d.committed = d.snap(angle)
}

// Step moves the committed angle by n snap steps and returns the new
// duration.
func (d *Dial) Step(n int) time.Duration {
	if !d.enabled() || d.dragging {
		return d.Duration()
	}

	angle := d.committed + float64(n)*d.StepDegrees()

	switch {
	case angle > fullTurn:
		angle = fullTurn
	case angle < 0:
		angle = 0
	}

	d.committed = d.snap(angle)

	return d.Duration()
}
