// Package notify raises the desktop notification that tells the user a
// countdown has finished
package notify

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/focusring/internal/clock"
)

const title = "Session complete"

// Scheduler schedules and withdraws the single completion notification of a
// session.
type Scheduler interface {
	ScheduleCompletion(after time.Duration, label string) error
	CancelCompletion() error
}

// Nop is a Scheduler that never notifies. It is used when notifications are
// disabled.
type Nop struct{}

// ScheduleCompletion does nothing.
func (Nop) ScheduleCompletion(time.Duration, string) error { return nil }

// CancelCompletion does nothing.
func (Nop) CancelCompletion() error { return nil }

// Option customises a Desktop scheduler.
type Option func(*Desktop)

// WithSound plays the audio file at path alongside the notification.
func WithSound(path string) Option {
	return func(d *Desktop) {
		d.sound = path
	}
}

// WithIcon sets the notification icon.
func WithIcon(path string) Option {
	return func(d *Desktop) {
		d.icon = path
	}
}

// WithLogger sets the logger used to report delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Desktop) {
		d.log = l
	}
}

// Desktop delivers the completion notification through the operating
// system's notification service once the scheduled delay has passed on the
// clock.
type Desktop struct {
	clock   clock.Clock
	send    func(title, message, icon string) error
	play    func(path string) error
	async   func(fn func())
	log     *slog.Logger
	icon    string
	sound   string
	label   string
	handle  clock.Handle
	pending bool
}

// NewDesktop returns a Desktop scheduler driven by c.
func NewDesktop(c clock.Clock, opts ...Option) (*Desktop, error) {
	d := &Desktop{
		clock: c,
		send:  beeep.Notify,
		play:  playSound,
		async: func(fn func()) { go fn() },
		log:   slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.sound != "" {
		err := checkSoundFormat(d.sound)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// ScheduleCompletion replaces any pending notification with one that fires
// after the given delay.
func (d *Desktop) ScheduleCompletion(after time.Duration, label string) error {
	if after <= 0 {
		return errInvalidDelay.Fmt(after)
	}

	_ = d.CancelCompletion()

	d.label = label
	d.pending = true
	d.handle = d.clock.After(after, d.fire)

	return nil
}

// CancelCompletion withdraws the pending notification, if any.
func (d *Desktop) CancelCompletion() error {
	if !d.pending {
		return nil
	}

	d.clock.Cancel(d.handle)
	d.pending = false

	return nil
}

// DeliverPending fires the scheduled notification now instead of at its
// deadline. It does nothing when no notification is pending.
func (d *Desktop) DeliverPending() error {
	if !d.pending {
		return nil
	}

	d.clock.Cancel(d.handle)
	d.fire()

	return nil
}

// Pending reports whether a notification is scheduled.
func (d *Desktop) Pending() bool {
	return d.pending
}

func (d *Desktop) fire() {
	if !d.pending {
		return
	}

	d.pending = false

	label, icon, sound := d.label, d.icon, d.sound

	// delivery talks to the OS and may block
	d.async(func() {
		err := d.send(title, label+" is done. Well done!", icon)
		if err != nil {
			d.log.Warn(
				"unable to deliver notification",
				slog.Any("error", err),
			)
		}

		if sound == "" {
			return
		}

		err = d.play(sound)
		if err != nil {
			d.log.Warn(
				"unable to play notification sound",
				slog.String("sound", sound),
				slog.Any("error", err),
			)
		}
	})
}
