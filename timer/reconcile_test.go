package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusring/timer"
)

func TestBackgroundedCountdownExpiresOnResume(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.run(t, timer.Config{
		Mode:   timer.Countdown,
		Target: 1200 * time.Second,
	}, 10*time.Second)

	start := h.engine.State().StartWallClock

	h.reconciler.Observe(false)
	h.clock.Suspend(1500 * time.Second)
	h.reconciler.Observe(true)

	h.requireIdle(t)

	calls := h.submitter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1200, calls[0].DurationSeconds)
	assert.Equal(t, start.Add(1200*time.Second), calls[0].EndTime)
	assert.Equal(t, timer.ReasonExpired, h.results[0].Reason)
}

func TestBackgroundedStopwatchCapsOnResume(t *testing.T) {
	p := defaultPolicy()

	h := newHarness(t, p)

	h.run(t, timer.Config{Mode: timer.Stopwatch}, 10*time.Second)

	h.reconciler.Observe(false)
	h.clock.Suspend(p.MaxSession + 100*time.Second)
	h.reconciler.Observe(true)

	h.requireIdle(t)

	calls := h.submitter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, int(p.MaxSession.Seconds()), calls[0].DurationSeconds)
	assert.Equal(t, timer.ReasonCapped, h.results[0].Reason)
}

func TestResumeCorrectsDriftAndReplacesTicker(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.run(t, timer.Config{
		Mode:   timer.Countdown,
		Target: 10 * time.Minute,
	}, 10*time.Second)

	h.clock.Advance(100 * time.Second)
	require.Equal(t, 500, h.engine.State().RemainingSeconds)

	h.reconciler.Observe(false)
	assert.Equal(t, []time.Duration{
		10 * time.Minute,
		500 * time.Second,
	}, h.notifier.scheduled)

	h.clock.Suspend(200 * time.Second)
	h.reconciler.Observe(true)

	s := h.engine.State()
	assert.Equal(t, timer.Running, s.Phase)
	assert.Equal(t, 300, s.RemainingSeconds)
	assert.False(t, h.notifier.pending, "resume cancels the notification")

	// the overdue tick from before the suspension must not apply on top
	h.clock.Advance(0)
	assert.Equal(t, 300, h.engine.State().RemainingSeconds)

	h.clock.Advance(time.Second)
	assert.Equal(t, 299, h.engine.State().RemainingSeconds)
	assert.Equal(t, 1, h.clock.Pending())
}

func TestResumeStopwatchUsesWallClock(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.run(t, timer.Config{Mode: timer.Stopwatch}, 10*time.Second)

	h.clock.Advance(30 * time.Second)

	h.reconciler.Observe(false)
	h.clock.Suspend(15 * time.Minute)
	h.reconciler.Observe(true)

	assert.Equal(t, 30+15*60, h.engine.State().ElapsedSeconds)
	assert.Empty(t, h.notifier.scheduled)
}

func TestRepeatedLifecycleValuesAreNotTransitions(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.run(t, timer.Config{
		Mode:   timer.Countdown,
		Target: 10 * time.Minute,
	}, 10*time.Second)

	h.reconciler.Observe(true)
	h.reconciler.Observe(true)
	assert.Len(t, h.notifier.scheduled, 1)

	h.reconciler.Observe(false)
	h.reconciler.Observe(false)
	assert.Len(t, h.notifier.scheduled, 2)
	assert.False(t, h.reconciler.Foreground())
}

func TestGraceIsNotReconciled(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	require.NoError(t, h.engine.Arm(timer.Config{
		Mode:   timer.Countdown,
		Target: 10 * time.Minute,
	}))

	h.clock.Advance(2 * time.Second)

	h.reconciler.Observe(false)
	h.clock.Suspend(time.Hour)
	h.reconciler.Observe(true)

	s := h.engine.State()
	assert.Equal(t, timer.Grace, s.Phase)
	assert.Equal(t, 8, s.GraceRemainingSeconds)
	assert.Empty(t, h.notifier.scheduled)

	// the grace countdown simply carries on
	h.clock.Advance(8 * time.Second)
	assert.Equal(t, timer.Running, h.engine.Phase())
}

func TestIdleIgnoresLifecycle(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.reconciler.Observe(false)
	h.clock.Suspend(time.Hour)
	h.reconciler.Observe(true)

	h.requireIdle(t)
	assert.Empty(t, h.notifier.scheduled)
}

func TestUnwatchedExpiryDeliversNotification(t *testing.T) {
	p := defaultPolicy()
	p.Grace = 0

	h := newHarness(t, p)

	require.NoError(t, h.engine.Arm(timer.Config{
		Mode:   timer.Countdown,
		Target: time.Minute,
	}))

	h.reconciler.Observe(false)
	h.clock.Advance(time.Minute)

	h.requireIdle(t)
	assert.Equal(t, 1, h.notifier.delivered)
	assert.Equal(t, timer.ReasonExpired, h.results[0].Reason)
}

func TestWatchedExpiryWithdrawsNotification(t *testing.T) {
	p := defaultPolicy()
	p.Grace = 0

	h := newHarness(t, p)

	require.NoError(t, h.engine.Arm(timer.Config{
		Mode:   timer.Countdown,
		Target: time.Minute,
	}))

	h.clock.Advance(time.Minute)

	h.requireIdle(t)
	assert.Zero(t, h.notifier.delivered)
	assert.Equal(t, 1, h.notifier.cancels)
}

func TestExpiryFoundOnResumeWithdrawsNotification(t *testing.T) {
	p := defaultPolicy()
	p.Grace = 0

	h := newHarness(t, p)

	require.NoError(t, h.engine.Arm(timer.Config{
		Mode:   timer.Countdown,
		Target: time.Minute,
	}))

	h.reconciler.Observe(false)
	h.clock.Suspend(2 * time.Minute)
	h.reconciler.Observe(true)

	h.requireIdle(t)
	assert.Zero(t, h.notifier.delivered)
}

func TestUnwatchedStopWithdrawsNotification(t *testing.T) {
	h := newHarness(t, defaultPolicy())

	h.run(t, timer.Config{
		Mode:   timer.Countdown,
		Target: 10 * time.Minute,
	}, 10*time.Second)

	h.reconciler.Observe(false)
	h.clock.Advance(time.Minute)
	h.engine.ConfirmStop()

	h.requireIdle(t)
	assert.Zero(t, h.notifier.delivered)
}
