// Package screen is the terminal interface of focusring: the duration dial,
// the running session and the controls that drive the timer engine
package screen

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/focusring/dial"
	"github.com/ayoisaiah/focusring/internal/clock"
	"github.com/ayoisaiah/focusring/timer"
)

const (
	maxWidth   = 60
	ringRadius = 6
	// title line and the blank line under it
	headerLines = 2
)

// callbackMsg carries a clock callback onto the event loop.
type callbackMsg func()

// resultMsg reports the outcome of a session upload.
type resultMsg timer.Result

// Callback wraps a clock callback so that it runs inside Update. It is the
// message a clock.Dispatcher should send to the program.
func Callback(fn func()) tea.Msg {
	return callbackMsg(fn)
}

// Result wraps an upload result for delivery to the program.
func Result(r timer.Result) tea.Msg {
	return resultMsg(r)
}

// Options are the collaborators and settings of the screen.
type Options struct {
	Clock          clock.Clock
	Engine         *timer.Engine
	Reconciler     *timer.Reconciler
	Dial           *dial.Dial
	Logger         *slog.Logger
	StatusPath     string
	Tag            string
	DarkTheme      bool
	TwentyFourHour bool
	Debug          bool
}

// Model is the bubbletea model of the timer screen.
type Model struct {
	clock         clock.Clock
	engine        *timer.Engine
	reconciler    *timer.Reconciler
	dial          *dial.Dial
	log           *slog.Logger
	confirm       *huh.Form
	result        *timer.Result
	err           error
	keys          keymap
	help          help.Model
	progress      progress.Model
	style         style
	statusPath    string
	tag           string
	ring          ring
	lastPhase     timer.Phase
	confirmed     bool
	quitAfterStop bool
	quitting      bool
	twentyFour    bool
	debug         bool
}

// New returns the screen model.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	m := &Model{
		clock:      opts.Clock,
		engine:     opts.Engine,
		reconciler: opts.Reconciler,
		dial:       opts.Dial,
		log:        log,
		keys:       defaultKeymap,
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient()),
		style:      newStyle(opts.DarkTheme),
		statusPath: opts.StatusPath,
		tag:        opts.Tag,
		ring:       ring{radius: ringRadius},
		twentyFour: opts.TwentyFourHour,
		debug:      opts.Debug,
	}

	m.dial.SetDuration(m.engine.Target())

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("focusring")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, tick := msg.(callbackMsg); m.debug && !tick {
		m.log.Debug("ui message", slog.String("msg", spew.Sdump(msg)))
	}

	switch msg := msg.(type) {
	case callbackMsg:
		msg()

		return m, m.afterEngine()

	case resultMsg:
		r := timer.Result(msg)
		m.result = &r

		return m, nil

	case tea.FocusMsg:
		m.reconciler.Observe(true)

		return m, m.afterEngine()

	case tea.BlurMsg:
		m.reconciler.Observe(false)

		return m, nil

	case tea.ResumeMsg:
		m.reconciler.Observe(true)

		return m, m.afterEngine()

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padLeft*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case tea.MouseMsg:
		if m.confirm == nil {
			m.handleMouse(msg)
		}

		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}

		return m, m.handleKey(msg)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	return m, nil
}

// afterEngine brings the screen in line with the engine after it may have
// changed phase.
func (m *Model) afterEngine() tea.Cmd {
	s := m.engine.State()

	// the session ended while the stop prompt was open
	if m.confirm != nil && s.Phase != timer.Running {
		m.confirm = nil
	}

	m.syncStatus(s)

	if m.quitting && s.Phase == timer.Idle {
		return tea.Quit
	}

	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	phase := m.engine.Phase()

	switch {
	case key.Matches(msg, m.keys.quit):
		switch phase {
		case timer.Running:
			return m.openConfirm(true)
		case timer.Grace:
			m.engine.GraceCancel()
		}

		m.quitting = true

		return m.afterEngine()

	case key.Matches(msg, m.keys.start):
		if phase == timer.Idle {
			return m.arm()
		}

	case key.Matches(msg, m.keys.cancel):
		if phase == timer.Grace {
			m.engine.GraceCancel()
			return m.afterEngine()
		}

	case key.Matches(msg, m.keys.stop):
		if phase == timer.Running && !m.engine.State().StopRequested {
			return m.openConfirm(false)
		}

	case key.Matches(msg, m.keys.mode):
		if phase == timer.Idle {
			mode := timer.Stopwatch
			if m.engine.State().Mode == timer.Stopwatch {
				mode = timer.Countdown
			}

			m.engine.SetMode(mode)
		}

	case key.Matches(msg, m.keys.shorter):
		m.step(-1)

	case key.Matches(msg, m.keys.longer):
		m.step(1)

	case key.Matches(msg, m.keys.suspend):
		m.reconciler.Observe(false)

		return tea.Suspend
	}

	return nil
}

func (m *Model) step(n int) {
	if m.engine.Phase() != timer.Idle {
		return
	}

	m.engine.SetTarget(m.dial.Step(n))
}

func (m *Model) arm() tea.Cmd {
	s := m.engine.State()

	cfg := timer.Config{
		Mode:        s.Mode,
		ActivityTag: m.tag,
	}

	if s.Mode == timer.Countdown {
		cfg.Target = m.engine.Target()
	}

	m.result = nil
	m.err = m.engine.Arm(cfg)

	return m.afterEngine()
}

func (m *Model) openConfirm(quit bool) tea.Cmd {
	m.engine.RequestStop()

	m.quitAfterStop = quit
	m.confirmed = false

	title := "End this session?"
	if quit {
		title = "End this session and quit?"
	}

	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("The time spent so far will be recorded.").
				Affirmative("Stop").
				Negative("Keep going").
				Value(&m.confirmed),
		),
	).WithShowHelp(false)

	return m.confirm.Init()
}

func (m *Model) closeConfirm() tea.Cmd {
	m.confirm = nil

	if m.confirmed {
		m.engine.ConfirmStop()

		if m.quitAfterStop {
			m.quitting = true
		}
	} else {
		m.engine.CancelStopRequest()
	}

	return m.afterEngine()
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.cancel) {
		m.confirmed = false
		return m, m.closeConfirm()
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		return m, m.closeConfirm()
	case huh.StateAborted:
		m.confirmed = false
		return m, m.closeConfirm()
	}

	return m, cmd
}

func (m *Model) ringTop() int {
	return padTop + headerLines
}

func (m *Model) ringLeft() int {
	return padLeft
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-m.ringLeft(), msg.Y-m.ringTop()
	dx, dy := m.ring.offset(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.ring.hit(col, row) {
			return
		}

		m.dial.Press(dx, dy)

	case tea.MouseActionMotion:
		m.dial.Move(dx, dy)

	case tea.MouseActionRelease:
		d, ok := m.dial.Release(dx, dy)
		if ok {
			m.engine.SetTarget(d)
		}
	}
}

func (m *Model) syncStatus(s timer.State) {
	if m.statusPath == "" {
		return
	}

	if s.Phase == timer.Idle {
		if m.lastPhase != timer.Idle {
			err := removeStatusFile(m.statusPath)
			if err != nil {
				m.log.Warn("unable to remove status file", slog.Any("error", err))
			}
		}

		m.lastPhase = timer.Idle

		return
	}

	m.lastPhase = s.Phase

	err := writeStatusFile(m.statusPath, newStatus(s, m.tag, m.clock.Now()))
	if err != nil {
		m.log.Warn("unable to write status file", slog.Any("error", err))
	}
}
