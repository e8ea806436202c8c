// Package menu provides an anchored popup menu whose items either navigate
// to a route or run an action.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/internal/widget/popup"
)

// Item is one entry of the menu.
type Item struct {
	// Label is the display text. Required.
	Label string
	// To, when set, makes selecting the item a navigation.
	To route.Destination
	// Action, when set, is called on selection. If To is also set, both
	// happen: navigation first, then the action.
	Action func() tea.Cmd
	// Icon is rendered before the label.
	Icon string
}

type Model struct {
	// Header is an optional block rendered above the items.
	Header string
	// Anchor positions the content relative to the trigger. Defaults to
	// bottom / end.
	Anchor popup.Anchor
	// ContentStyle is merged on top of Style.Content.
	ContentStyle lipgloss.Style
	Style        *Style
	KeyMap       popup.KeyMap

	trigger string
	items   []Item
	nav     route.Navigator
	ctrl    *popup.Controller
	cursor  int
	focused bool
}

// New creates a closed menu. nav performs navigations for items with a
// destination; signal closes the menu on history traversal. Either may be
// nil.
func New(trigger string, items []Item, nav route.Navigator, signal route.Signal) *Model {
	m := &Model{
		Anchor:  popup.Anchor{Align: popup.AlignEnd, Side: popup.SideBottom},
		Style:   DefaultStyle(),
		KeyMap:  popup.DefaultKeyMap(),
		trigger: trigger,
		items:   items,
		nav:     nav,
		ctrl:    popup.NewController(signal),
	}
	m.ctrl.Watch(func(open bool) {
		if !open {
			// focus does not go back to the trigger
			m.focused = false
		}
	})
	return m
}

// Init mounts the menu.
func (m *Model) Init() tea.Cmd {
	m.Mount()
	return nil
}

// Mount subscribes the menu to navigation changes. Safe to call repeatedly.
func (m *Model) Mount() {
	m.ctrl.Mount()
}

// Unmount closes the menu and releases its navigation subscription.
func (m *Model) Unmount() {
	m.ctrl.Unmount()
}

// OnOpenChange registers fn to be called on every open/close transition.
func (m *Model) OnOpenChange(fn func(open bool)) {
	m.ctrl.Watch(fn)
}

func (m *Model) IsOpen() bool  { return m.ctrl.IsOpen() }
func (m *Model) Focused() bool { return m.focused }
func (m *Model) Cursor() int   { return m.cursor }
func (m *Model) Items() []Item { return m.items }

// SetTrigger changes the trigger text.
func (m *Model) SetTrigger(trigger string) {
	m.trigger = trigger
}

// SetItems replaces the items and resets the highlight.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.cursor = 0
}

func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus. An open menu treats this as a dismiss.
func (m *Model) Blur() {
	m.focused = false
	m.ctrl.Close()
}

// Open opens the menu as if the trigger had been activated.
func (m *Model) Open() {
	m.cursor = 0
	m.ctrl.Open()
}

// Close dismisses the menu.
func (m *Model) Close() {
	m.ctrl.Close()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if !m.ctrl.IsOpen() {
		if m.KeyMap.Intent(kmsg, false) == popup.IntentOpen {
			m.Open()
		}
		return m, nil
	}

	switch {
	case m.KeyMap.Intent(kmsg, true) == popup.IntentClose:
		m.ctrl.Close()
	case len(m.items) == 0:
	case key.Matches(kmsg, m.KeyMap.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.items) - 1
		}
	case key.Matches(kmsg, m.KeyMap.Down):
		m.cursor = (m.cursor + 1) % len(m.items)
	case key.Matches(kmsg, m.KeyMap.Select):
		return m, m.Select(m.cursor)
	}
	return m, nil
}

// Select chooses the item at index i. The menu is closed before the item's
// navigation or action runs.
func (m *Model) Select(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	item := m.items[i]
	m.ctrl.Close()

	var cmds []tea.Cmd
	if item.To != nil {
		path := item.To.Path()
		if m.nav != nil {
			m.nav.Push(path)
		}
		cmds = append(cmds, func() tea.Msg { return route.NavigatedMsg{Path: path} })
	}
	if item.Action != nil {
		cmds = append(cmds, item.Action())
	}
	return tea.Batch(cmds...)
}

// View renders the trigger with the content attached when open.
func (m *Model) View() string {
	return m.Anchor.Place(m.TriggerView(), m.ContentView())
}

// TriggerView renders only the trigger.
func (m *Model) TriggerView() string {
	sty := m.Style.Trigger
	switch {
	case m.ctrl.IsOpen():
		sty = m.Style.TriggerOpen
	case m.focused:
		sty = m.Style.TriggerFocused
	}
	return sty.Render(m.trigger)
}

// ContentView renders the floating content, or "" while closed.
func (m *Model) ContentView() string {
	if !m.ctrl.IsOpen() {
		return ""
	}

	lines := make([]string, len(m.items))
	width := minContentWidth
	for i, itm := range m.items {
		label := itm.Label
		if itm.Icon != "" {
			label = m.Style.Icon.Render(itm.Icon) + label
		}
		sty := m.Style.Item
		if i == m.cursor {
			sty = m.Style.ItemSelected
		}
		lines[i] = sty.Render(label)
		width = max(width, lipgloss.Width(lines[i]))
	}

	var b strings.Builder
	if m.Header != "" {
		b.WriteString(m.Style.Header.Width(width).Render(m.Header) + "\n")
	}
	sep := m.Style.Separator.Render(strings.Repeat("─", width))
	for i, line := range lines {
		b.WriteString(line)
		if i != len(lines)-1 {
			b.WriteString("\n" + sep + "\n")
		}
	}
	return popup.Merge(m.Style.Content, m.ContentStyle).Width(width).Render(b.String())
}
