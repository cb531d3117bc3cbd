package explorer

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Lower  key.Binding
	Raise  key.Binding
	Edit   key.Binding
	Help   key.Binding
	Quit   key.Binding
	mode   Mode
}

func newKeyMap(mode Mode) keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space/x", "toggle label")),
		Lower:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "lower threshold")),
		Raise:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "raise threshold")),
		Edit:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type threshold")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		mode:   mode,
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.mode == ModeThreshold {
		return []key.Binding{k.Lower, k.Raise, k.Edit, k.Help, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.mode == ModeThreshold {
		return [][]key.Binding{{k.Lower, k.Raise}, {k.Edit}, {k.Help, k.Quit}}
	}
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle}, {k.Help, k.Quit}}
}
