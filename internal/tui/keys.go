package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding. Bindings that do not apply to the current
// screen are disabled so help only lists what works.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Reload  key.Binding
	Retry   key.Binding
	Next    key.Binding
	Cancel  key.Binding
	Toggle  key.Binding
	Submit  key.Binding
	Dismiss key.Binding
	Yes     key.Binding
	No      key.Binding
	Fail    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Open, k.Reload, k.Retry, k.Next, k.Cancel, k.Toggle,
		k.Submit, k.Dismiss, k.Yes, k.No, k.Fail, k.Back, k.Quit,
	}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Toggle},
		{k.Reload, k.Retry, k.Next, k.Cancel, k.Submit},
		{k.Dismiss, k.Yes, k.No},
		{k.Fail, k.Back, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry load"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "load more"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel order"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("space", "toggle"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "ok"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "discard"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "keep editing"),
		),
		Fail: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "toggle failures"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// keyContext names the set of bindings active in a given state of the app.
type keyContext int

const (
	keysMenu keyContext = iota
	keysItems
	keysPaging
	keysOrder
	keysSettings
	keysEditor
	keysEditorLoadError
	keysDialog
	keysConfirm
)

// enabledFor returns a copy of k with only the bindings of ctx enabled.
func (k keyMap) enabledFor(ctx keyContext) keyMap {
	on := map[*key.Binding]bool{&k.Fail: true, &k.Quit: true}
	switch ctx {
	case keysMenu:
		on[&k.Up], on[&k.Down], on[&k.Open] = true, true, true
	case keysItems:
		on[&k.Reload], on[&k.Back] = true, true
	case keysPaging:
		on[&k.Up], on[&k.Down], on[&k.Reload], on[&k.Next], on[&k.Back] = true, true, true, true, true
	case keysOrder:
		on[&k.Reload], on[&k.Cancel], on[&k.Back] = true, true, true
	case keysSettings:
		on[&k.Up], on[&k.Down], on[&k.Toggle], on[&k.Reload], on[&k.Back] = true, true, true, true, true
	case keysEditor:
		on[&k.Submit], on[&k.Back] = true, true
	case keysEditorLoadError:
		on[&k.Retry], on[&k.Back] = true, true
	case keysDialog:
		on[&k.Dismiss] = true
	case keysConfirm:
		on[&k.Yes], on[&k.No] = true, true
	}

	for _, b := range []*key.Binding{
		&k.Up, &k.Down, &k.Open, &k.Reload, &k.Retry, &k.Next, &k.Cancel, &k.Toggle,
		&k.Submit, &k.Dismiss, &k.Yes, &k.No, &k.Fail, &k.Back, &k.Quit,
	} {
		b.SetEnabled(on[b])
	}
	return k
}
