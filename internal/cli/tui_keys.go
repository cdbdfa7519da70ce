package cli

import "github.com/charmbracelet/bubbles/key"

// tuiKeyMap is the timeline view's bindings. It implements help.KeyMap.
type tuiKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Earlier   key.Binding
	Later     key.Binding
	RowUp     key.Binding
	RowDown   key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Complete  key.Binding
	Recompute key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultTUIKeys() tuiKeyMap {
	return tuiKeyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Earlier:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "start a day earlier")),
		Later:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "start a day later")),
		RowUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "drag up a row")),
		RowDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "drag down a row")),
		Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "end a day later")),
		Shrink:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "end a day earlier")),
		Complete:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Recompute: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recompute")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Later, k.RowDown, k.Grow, k.Complete, k.Help, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Earlier, k.Later, k.RowUp, k.RowDown},
		{k.Grow, k.Shrink},
		{k.Complete, k.Recompute, k.Help, k.Quit},
	}
}
