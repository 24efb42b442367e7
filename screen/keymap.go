package screen

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	start   key.Binding
	cancel  key.Binding
	stop    key.Binding
	mode    key.Binding
	shorter key.Binding
	longer  key.Binding
	suspend key.Binding
	quit    key.Binding
}

var defaultKeymap = keymap{
	start: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "start"),
	),
	cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mode"),
	),
	shorter: key.NewBinding(
		key.WithKeys("left", "h", "down", "j"),
		key.WithHelp("←/h", "shorter"),
	),
	longer: key.NewBinding(
		key.WithKeys("right", "l", "up", "k"),
		key.WithHelp("→/l", "longer"),
	),
	suspend: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "suspend"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
