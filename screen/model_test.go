package screen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusring/dial"
	"github.com/ayoisaiah/focusring/internal/clock"
	"github.com/ayoisaiah/focusring/timer"
)

var epoch = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

type nopSubmitter struct{}

func (nopSubmitter) SubmitSession(
	_ context.Context,
	_ timer.FinalizedSession,
) (timer.Reward, error) {
	return timer.Reward{Coins: 25, XP: 250}, nil
}

type fixture struct {
	clock   *clock.Fake
	model   *Model
	results []timer.Result
	status  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fx := &fixture{
		clock:  clock.NewFake(epoch),
		status: filepath.Join(t.TempDir(), "status.json"),
	}

	f := timer.NewFinalizer(
		nopSubmitter{},
		timer.WithRunner(func(fn func()) { fn() }),
		timer.WithResultHandler(func(r timer.Result) {
			fx.results = append(fx.results, r)
		}),
		timer.WithLocation(time.UTC),
	)

	engine := timer.New(fx.clock, f, timer.Policy{
		Grace:           10 * time.Second,
		MaxSession:      3 * time.Hour,
		DefaultDuration: 25 * time.Minute,
		DefaultMode:     timer.Countdown,
	})

	d, err := dial.New(
		dial.Config{MaxDuration: 2 * time.Hour, SnapInterval: 5 * time.Minute},
		dial.WithGate(func() bool { return engine.Phase() == timer.Idle }),
	)
	require.NoError(t, err)

	fx.model = New(Options{
		Clock:      fx.clock,
		Engine:     engine,
		Reconciler: timer.NewReconciler(engine),
		Dial:       d,
		StatusPath: fx.status,
		Tag:        "writing",
		DarkTheme:  true,
	})

	return fx
}

func (fx *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := fx.model.Update(msg)
	return cmd
}

func (fx *fixture) press(t *testing.T, k tea.KeyMsg) tea.Cmd {
	t.Helper()

	return fx.send(k)
}

func (fx *fixture) running(t *testing.T) {
	t.Helper()

	fx.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	fx.clock.Advance(10 * time.Second)
	fx.send(Callback(func() {}))

	require.Equal(t, timer.Running, fx.model.engine.Phase())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSyncsDialWithEngine(t *testing.T) {
	fx := newFixture(t)

	assert.Equal(t, 25*time.Minute, fx.model.dial.Duration())
}

func TestEnterArmsAndEscCancels(t *testing.T) {
	fx := newFixture(t)

	fx.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	s := fx.model.engine.State()
	require.Equal(t, timer.Grace, s.Phase)
	assert.Equal(t, "writing", fx.model.engine.Config().ActivityTag)
	assert.Equal(t, 25*time.Minute, fx.model.engine.Config().Target)
	assert.FileExists(t, fx.status)

	fx.press(t, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, timer.Idle, fx.model.engine.Phase())
	assert.NoFileExists(t, fx.status)
	assert.Empty(t, fx.results)
}

func TestArrowKeysStepTarget(t *testing.T) {
	fx := newFixture(t)

	fx.press(t, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 30*time.Minute, fx.model.engine.Target())
	assert.Equal(t, 1800, fx.model.engine.State().RemainingSeconds)

	fx.press(t, runes("h"))
	fx.press(t, runes("h"))
	assert.Equal(t, 20*time.Minute, fx.model.engine.Target())
}

func TestArrowKeysIgnoredWhileRunning(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.press(t, tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, 25*time.Minute, fx.model.dial.Duration())
	assert.Equal(t, 25*time.Minute, fx.model.engine.Config().Target)
}

func TestModeToggle(t *testing.T) {
	fx := newFixture(t)

	fx.press(t, runes("m"))
	assert.Equal(t, timer.Stopwatch, fx.model.engine.State().Mode)

	fx.press(t, runes("m"))
	assert.Equal(t, timer.Countdown, fx.model.engine.State().Mode)
}

// ringPoint converts a cell relative to the ring to screen coordinates.
func ringPoint(m *Model, col, row int) (x, y int) {
	return col + m.ringLeft(), row + m.ringTop()
}

func TestMouseDragSetsTarget(t *testing.T) {
	fx := newFixture(t)
	r := fx.model.ring

	// three o'clock is a quarter of a two hour dial
	x, y := ringPoint(fx.model, r.width()-1, r.radius)

	fx.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, fx.model.dial.Dragging())

	fx.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.False(t, fx.model.dial.Dragging())
	assert.Equal(t, 30*time.Minute, fx.model.engine.Target())
}

func TestMousePressOutsideRingIgnored(t *testing.T) {
	fx := newFixture(t)

	fx.send(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.False(t, fx.model.dial.Dragging())
}

func TestMouseIgnoredWhileRunning(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	r := fx.model.ring
	x, y := ringPoint(fx.model, r.width()-1, r.radius)

	fx.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.False(t, fx.model.dial.Dragging())
}

func TestStopPromptCanBeDismissed(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.press(t, runes("s"))
	require.NotNil(t, fx.model.confirm)
	assert.True(t, fx.model.engine.State().StopRequested)

	fx.press(t, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, fx.model.confirm)
	assert.False(t, fx.model.engine.State().StopRequested)
	assert.Equal(t, timer.Running, fx.model.engine.Phase())
}

func TestConfirmedStopRecordsSession(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.clock.Advance(5 * time.Minute)
	fx.press(t, runes("s"))

	fx.model.confirmed = true
	cmd := fx.model.closeConfirm()

	assert.Nil(t, cmd)
	assert.Equal(t, timer.Idle, fx.model.engine.Phase())
	assert.NoFileExists(t, fx.status)
	require.Len(t, fx.results, 1)
	assert.Equal(t, 300, fx.results[0].Session.DurationSeconds)
}

func TestSessionEndingClosesPrompt(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.press(t, runes("s"))
	require.NotNil(t, fx.model.confirm)

	fx.clock.Advance(25 * time.Minute)
	fx.send(Callback(func() {}))

	assert.Nil(t, fx.model.confirm)
	assert.Equal(t, timer.Idle, fx.model.engine.Phase())
}

func TestQuitDuringGraceCancels(t *testing.T) {
	fx := newFixture(t)

	fx.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := fx.press(t, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, timer.Idle, fx.model.engine.Phase())
	assert.Empty(t, fx.results)
}

func TestQuitWhileRunningAsksFirst(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.press(t, runes("q"))
	require.NotNil(t, fx.model.confirm)
	assert.Equal(t, timer.Running, fx.model.engine.Phase())

	fx.model.confirmed = true
	cmd := fx.model.closeConfirm()

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Len(t, fx.results, 1)
}

func TestFocusChangesReconcile(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.send(tea.BlurMsg{})
	assert.False(t, fx.model.reconciler.Foreground())

	fx.clock.Suspend(10 * time.Minute)
	fx.send(tea.FocusMsg{})

	assert.Equal(t, 900, fx.model.engine.State().RemainingSeconds)
}

func TestSuspendKeyBackgrounds(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	cmd := fx.press(t, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.NotNil(t, cmd)
	assert.False(t, fx.model.reconciler.Foreground())

	fx.clock.Suspend(30 * time.Minute)
	fx.send(tea.ResumeMsg{})

	assert.True(t, fx.model.reconciler.Foreground())
	assert.Equal(t, timer.Idle, fx.model.engine.Phase())
	require.Len(t, fx.results, 1)
	assert.Equal(t, timer.ReasonExpired, fx.results[0].Reason)
}

func TestCallbackRunsInUpdate(t *testing.T) {
	fx := newFixture(t)

	var called bool

	fx.send(Callback(func() { called = true }))

	assert.True(t, called)
}

func TestResultIsShown(t *testing.T) {
	fx := newFixture(t)

	fx.send(Result(timer.Result{
		Session: timer.FinalizedSession{DurationSeconds: 1500},
		Reward:  timer.Reward{Coins: 25, XP: 250},
	}))

	assert.Contains(t, fx.model.View(), "+25 coins")
}

func TestStatusFileFollowsSession(t *testing.T) {
	fx := newFixture(t)
	fx.running(t)

	fx.clock.Advance(time.Minute)
	fx.send(Callback(func() {}))

	s, ok, err := ReadStatus(fx.status)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "running", s.Phase)
	assert.Equal(t, "writing", s.Tag)
	assert.Equal(t, 1440, s.RemainingSeconds)

	_, err = os.Stat(fx.status)
	require.NoError(t, err)
}
