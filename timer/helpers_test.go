package timer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusring/internal/clock"
	"github.com/ayoisaiah/focusring/timer"
)

var epoch = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

type fakeSubmitter struct {
	err    error
	calls  []timer.FinalizedSession
	reward timer.Reward
	mu     sync.Mutex
}

func (f *fakeSubmitter) SubmitSession(
	_ context.Context,
	sess timer.FinalizedSession,
) (timer.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, sess)

	if f.err != nil {
		return timer.Reward{}, f.err
	}

	return f.reward, nil
}

func (f *fakeSubmitter) Calls() []timer.FinalizedSession {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]timer.FinalizedSession(nil), f.calls...)
}

type fakeNotifier struct {
	err       error
	labels    []string
	scheduled []time.Duration
	cancels   int
	delivered int
	pending   bool
}

func (n *fakeNotifier) ScheduleCompletion(after time.Duration, label string) error {
	if n.err != nil {
		return n.err
	}

	n.scheduled = append(n.scheduled, after)
	n.labels = append(n.labels, label)
	n.pending = true

	return nil
}

func (n *fakeNotifier) DeliverPending() error {
	if !n.pending {
		return nil
	}

	n.delivered++
	n.pending = false

	return nil
}

func (n *fakeNotifier) CancelCompletion() error {
	n.cancels++
	n.pending = false

	return n.err
}

type harness struct {
	clock      *clock.Fake
	engine     *timer.Engine
	reconciler *timer.Reconciler
	submitter  *fakeSubmitter
	notifier   *fakeNotifier
	results    []timer.Result
}

func defaultPolicy() timer.Policy {
	return timer.Policy{
		Grace:           10 * time.Second,
		MaxSession:      3 * time.Hour,
		DefaultDuration: 25 * time.Minute,
		DefaultMode:     timer.Countdown,
	}
}

func newHarness(t *testing.T, p timer.Policy) *harness {
	t.Helper()

	h := &harness{
		clock:     clock.NewFake(epoch),
		submitter: &fakeSubmitter{reward: timer.Reward{Coins: 3, XP: 30}},
		notifier:  &fakeNotifier{},
	}

	f := timer.NewFinalizer(
		h.submitter,
		timer.WithRunner(func(fn func()) { fn() }),
		timer.WithResultHandler(func(r timer.Result) {
			h.results = append(h.results, r)
		}),
		timer.WithLocation(time.UTC),
	)

	h.engine = timer.New(h.clock, f, p, timer.WithNotifier(h.notifier))
	h.reconciler = timer.NewReconciler(h.engine)

	return h
}

// run arms a session and lets the grace period elapse.
func (h *harness) run(t *testing.T, cfg timer.Config, grace time.Duration) {
	t.Helper()

	require.NoError(t, h.engine.Arm(cfg))
	h.clock.Advance(grace)
	require.Equal(t, timer.Running, h.engine.Phase())
}

// requireIdle checks that an idle engine holds no subscriptions and no
// pending notification.
func (h *harness) requireIdle(t *testing.T) {
	t.Helper()

	require.Equal(t, timer.Idle, h.engine.Phase())
	require.Zero(t, h.clock.Pending(), "idle engine left scheduled callbacks")
	require.False(t, h.notifier.pending, "idle engine left a pending notification")
}
