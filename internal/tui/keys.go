package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Draw   key.Binding
	Redraw key.Binding
	Preset key.Binding
	Back   key.Binding
	Quit   key.Binding
	Exit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		Draw: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "draw roles"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "draw again"),
			key.WithDisabled(),
		),
		Preset: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "next preset"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "edit lists"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// q only quits from the results pane; in the editors it is just a letter.
		Exit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
			key.WithDisabled(),
		),
	}
}

// setResultsMode enables the bindings that only apply on the results pane.
// Disabled bindings neither match nor show up in the help bar.
func (k *keyMap) setResultsMode(on bool) {
	k.Redraw.SetEnabled(on)
	k.Exit.SetEnabled(on)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Draw, k.Redraw, k.Preset, k.Back, k.Exit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Draw, k.Redraw, k.Preset}, {k.Back, k.Exit, k.Quit}}
}
