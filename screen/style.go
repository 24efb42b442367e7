package screen

import "github.com/charmbracelet/lipgloss"

const (
	padTop  = 1
	padLeft = 2
)

type style struct {
	base      lipgloss.Style
	title     lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	filled    lipgloss.Style
	empty     lipgloss.Style
	knob      lipgloss.Style
	reward    lipgloss.Style
	failure   lipgloss.Style
}

func newStyle(dark bool) style {
	accent := lipgloss.Color("#B0DB43")
	text := lipgloss.Color("#FFFFFF")
	muted := lipgloss.Color("241")

	if !dark {
		accent = lipgloss.Color("#2E7D32")
		text = lipgloss.Color("#000000")
		muted = lipgloss.Color("245")
	}

	return style{
		base:      lipgloss.NewStyle().Padding(padTop, padLeft),
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#12EAEA")),
		hint:      lipgloss.NewStyle().Foreground(muted),
		filled:    lipgloss.NewStyle().Foreground(accent),
		empty:     lipgloss.NewStyle().Foreground(muted),
		knob:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C492B1")),
		reward:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9C74F")),
		failure:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
