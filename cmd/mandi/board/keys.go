package board

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the marketplace bindings. It implements help.KeyMap.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Bid      key.Binding
	Contact  key.Binding
	Sort     key.Binding
	Organic  key.Binding
	Pool     key.Binding
	Verified key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev page"),
		),
		Bid: key.NewBinding(
			key.WithKeys("enter", "b"),
			key.WithHelp("enter", "place bid"),
		),
		Contact: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "whatsapp farmer"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Organic: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "organic only"),
		),
		Pool: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pools only"),
		),
		Verified: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verified only"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bid, k.Contact, k.NextPage, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Bid, k.Contact},
		{k.Sort, k.Organic, k.Pool, k.Verified},
		{k.Help, k.Quit},
	}
}

// dialogKeyMap holds the bid dialog bindings.
type dialogKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Submit    key.Binding
	Back      key.Binding
	Method    key.Binding
	Contact   key.Binding
	Close     key.Binding
}

func defaultDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space", "toggle transport"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Method: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "payment method"),
		),
		Contact: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "whatsapp farmer"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
