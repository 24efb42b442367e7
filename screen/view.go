package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/focusring/internal/timeutil"
	"github.com/ayoisaiah/focusring/timer"
)

func (m *Model) View() string {
	if m.quitting && m.engine.Phase() == timer.Idle {
		return ""
	}

	s := m.engine.State()

	var b strings.Builder

	b.WriteString(m.titleView(s))
	b.WriteString("\n\n")
	b.WriteString(m.ring.render(m.displayAngle(s), m.faceLabel(s), m.style))
	b.WriteString("\n\n")

	if s.Phase == timer.Running {
		b.WriteString(m.progress.ViewAs(m.fraction(s)))
		b.WriteString("\n\n")
	}

	if line := m.infoView(s); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	if line := m.resultView(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	if m.confirm != nil {
		b.WriteString(m.confirm.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.ShortHelpView(m.bindings(s)))

	return m.style.base.Render(b.String())
}

func (m *Model) titleView(s timer.State) string {
	title := m.style.title.Render("focusring")
	mode := m.style.secondary.Render("[" + s.Mode.String() + "]")

	parts := []string{title, mode}
	if m.tag != "" {
		parts = append(parts, m.style.hint.Render(m.tag))
	}

	return strings.Join(parts, "  ")
}

// displayAngle is the share of the dial filled for the current state.
func (m *Model) displayAngle(s timer.State) float64 {
	if s.Phase == timer.Idle {
		if s.Mode == timer.Stopwatch && !m.dial.Dragging() {
			return 0
		}

		return m.dial.Angle()
	}

	return 360 * m.fraction(s)
}

// fraction is the progress of the session between 0 and 1.
func (m *Model) fraction(s timer.State) float64 {
	cfg := m.engine.Config()

	var f float64

	switch {
	case s.Phase == timer.Grace:
		f = 0
	case s.Mode == timer.Stopwatch && cfg.MaxSession > 0:
		f = float64(s.ElapsedSeconds) / cfg.MaxSession.Seconds()
	case s.Mode == timer.Countdown && cfg.Target > 0:
		f = 1 - float64(s.RemainingSeconds)/cfg.Target.Seconds()
	}

	return min(max(f, 0), 1)
}

func (m *Model) faceLabel(s timer.State) []string {
	secs := s.Seconds()

	if s.Phase == timer.Idle && m.dial.Dragging() {
		secs = int(m.dial.SnappedPreview() / time.Second)
	}

	face := m.style.main.Render(timeutil.Clock(secs))

	var sub string

	switch s.Phase {
	case timer.Idle:
		if s.Mode == timer.Countdown {
			sub = timeutil.HumanMinutes(secs)
		} else {
			sub = "ready"
		}
	case timer.Grace:
		sub = fmt.Sprintf("starts in %ds", s.GraceRemainingSeconds)
	case timer.Running:
		sub = "focus"
		if s.StopRequested {
			sub = "paused?"
		}
	case timer.Finalizing:
		sub = "saving"
	}

	return []string{face, m.style.hint.Render(sub)}
}

func (m *Model) infoView(s timer.State) string {
	switch s.Phase {
	case timer.Idle:
		if s.Mode == timer.Stopwatch {
			return m.style.hint.Render("Counts up until you stop it")
		}

		return m.style.hint.Render("Drag the ring or use the arrow keys to set a duration")
	case timer.Grace:
		return m.style.hint.Render("Press esc to cancel without recording")
	case timer.Running:
		if s.Mode == timer.Countdown {
			end := m.clock.Now().Add(time.Duration(s.RemainingSeconds) * time.Second)
			return m.style.secondary.Render("Ends at " + m.formatTime(end))
		}

		return m.style.secondary.Render("Started at " + m.formatTime(s.StartWallClock))
	}

	return ""
}

func (m *Model) formatTime(t time.Time) string {
	if m.twentyFour {
		return t.Format("15:04")
	}

	return t.Format("03:04 PM")
}

func (m *Model) resultView() string {
	if m.err != nil {
		return m.style.failure.Render(m.err.Error())
	}

	if m.result == nil {
		return ""
	}

	if m.result.Err != nil {
		return m.style.failure.Render("Session not saved: " + m.result.Err.Error())
	}

	r := m.result.Reward

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.style.reward.Render(fmt.Sprintf("+%d coins  +%d xp", r.Coins, r.XP)),
		m.style.hint.Render("  for "+timeutil.HumanMinutes(m.result.Session.DurationSeconds)),
	)
}

func (m *Model) bindings(s timer.State) []key.Binding {
	switch s.Phase {
	case timer.Idle:
		return []key.Binding{m.keys.start, m.keys.shorter, m.keys.longer, m.keys.mode, m.keys.quit}
	case timer.Grace:
		return []key.Binding{m.keys.cancel, m.keys.quit}
	case timer.Running:
		return []key.Binding{m.keys.stop, m.keys.suspend, m.keys.quit}
	}

	return []key.Binding{m.keys.quit}
}
