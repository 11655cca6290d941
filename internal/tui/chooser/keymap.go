package chooser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Choose key.Binding
	Cancel key.Binding
	Abort  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Cancel}
}

func (k keyMap) FullHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Cancel, k.Abort}
}

var defaultKeyMap = keyMap{
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "cancel"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "cancel"),
	),
}
