package main

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zlovtnik/gshell/cmd/gshell/ui"
	"github.com/zlovtnik/gshell/internal/route"
)

// control is anything the focus ring can move to. The menu and selector
// widgets satisfy it directly.
type control interface {
	tea.Model
	Focus()
	Blur()
	Focused() bool
}

// popupControl is a control with floating content. The root model routes
// every key to it while it is open.
type popupControl interface {
	control
	IsOpen() bool
}

var activateKey = key.NewBinding(key.WithKeys("enter", " "))

// ═══════════════════════════════════════════════════════════════════════════
// LINK - header navigation
// ═══════════════════════════════════════════════════════════════════════════

// link is a header navigation link. Activating it pushes a history entry,
// which does not fire the navigation-change signal.
type link struct {
	label   string
	to      route.Key
	nav     route.Navigator
	active  bool
	focused bool
}

func newLink(label string, to route.Key, nav route.Navigator) *link {
	return &link{label: label, to: to, nav: nav}
}

func (l *link) Init() tea.Cmd { return nil }
func (l *link) Focus()        { l.focused = true }
func (l *link) Blur()         { l.focused = false }
func (l *link) Focused() bool { return l.focused }

func (l *link) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && l.focused && key.Matches(k, activateKey) {
		return l, navigate(l.nav, l.to)
	}
	return l, nil
}

func (l *link) View() string {
	switch {
	case l.focused:
		return ui.LinkFocusedStyle.Render(l.label)
	case l.active:
		return ui.LinkActiveStyle.Render(l.label)
	default:
		return ui.LinkStyle.Render(l.label)
	}
}

// navigate pushes the destination and reports it to the root model.
func navigate(nav route.Navigator, to route.Destination) tea.Cmd {
	path := to.Path()
	if nav != nil {
		nav.Push(path)
	}
	return func() tea.Msg { return route.NavigatedMsg{Path: path} }
}

// ═══════════════════════════════════════════════════════════════════════════
// FIELD - labelled text input
// ═══════════════════════════════════════════════════════════════════════════

type field struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, secret bool) *field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 28
	// a blinking cursor keeps a timer running for every session
	in.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return &field{label: label, input: in}
}

func (f *field) Init() tea.Cmd { return nil }
func (f *field) Focus()        { f.input.Focus() }
func (f *field) Blur()         { f.input.Blur() }
func (f *field) Focused() bool { return f.input.Focused() }
func (f *field) Value() string { return f.input.Value() }

func (f *field) Reset() {
	f.input.Reset()
}

func (f *field) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *field) View() string {
	sty := ui.InputStyle
	if f.input.Focused() {
		sty = ui.FocusedInputStyle
	}
	return ui.LabelStyle.Render(f.label) + "\n" + sty.Render(f.input.View())
}

// ═══════════════════════════════════════════════════════════════════════════
// BUTTON
// ═══════════════════════════════════════════════════════════════════════════

type button struct {
	label   string
	press   func() tea.Cmd
	focused bool
}

func (b *button) Init() tea.Cmd { return nil }
func (b *button) Focus()        { b.focused = true }
func (b *button) Blur()         { b.focused = false }
func (b *button) Focused() bool { return b.focused }

func (b *button) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && b.focused && key.Matches(k, activateKey) && b.press != nil {
		return b, b.press()
	}
	return b, nil
}

func (b *button) View() string {
	if b.focused {
		return ui.ButtonFocusedStyle.Render(b.label)
	}
	return ui.ButtonStyle.Render(b.label)
}
