package popup

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Intent is what the primitive asks its owner to do with the open state.
type Intent int

const (
	IntentNone Intent = iota
	IntentOpen
	IntentClose
)

// KeyMap holds the bindings shared by every anchored popup.
type KeyMap struct {
	Open   key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultKeyMap returns the bindings used by the menu and selector widgets.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:   key.NewBinding(key.WithKeys("enter", " ", "down"), key.WithHelp("enter", "open")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	}
}

// Intent maps a key press on the trigger or the open content to an
// open-change intent.
func (k KeyMap) Intent(msg tea.KeyMsg, open bool) Intent {
	switch {
	case !open && key.Matches(msg, k.Open):
		return IntentOpen
	case open && key.Matches(msg, k.Close):
		return IntentClose
	}
	return IntentNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Up, k.Down, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Apply routes an intent to the controller.
func (c *Controller) Apply(i Intent) {
	switch i {
	case IntentOpen:
		c.Open()
	case IntentClose:
		c.Close()
	}
}
