// Package selector provides a single-choice dropdown with a loading
// placeholder, controlled or uncontrolled value ownership and two fixed
// presentation variants.
package selector

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/internal/widget/popup"
	"github.com/zlovtnik/gshell/pkg/fp"
)

const (
	skeletonRune = "░"
	pointer      = "› "
	chevronDown  = "▾"
	chevronUp    = "▴"
	checkMark    = " ✓"
)

type Model struct {
	// Anchor positions the content relative to the trigger. Defaults to
	// bottom / start.
	Anchor popup.Anchor
	KeyMap popup.KeyMap

	cfg     Config
	bundle  Bundle
	ctrl    *popup.Controller
	options []Option
	value   fp.Option[string]
	loading bool
	cursor  int
	focused bool
}

// New builds a closed selector from cfg. signal closes the content on
// history traversal and may be nil.
func New(cfg Config, signal route.Signal) *Model {
	m := &Model{
		Anchor:  popup.Anchor{Align: popup.AlignStart, Side: popup.SideBottom},
		KeyMap:  popup.DefaultKeyMap(),
		cfg:     cfg,
		bundle:  bundleFor(cfg.Variant),
		ctrl:    popup.NewController(signal),
		value:   cfg.Value.initial(),
		loading: cfg.IsLoading,
	}
	m.SetOptions(cfg.Options)
	return m
}

func (m *Model) Init() tea.Cmd {
	m.Mount()
	return nil
}

// Mount subscribes the selector to navigation changes. Safe to call
// repeatedly.
func (m *Model) Mount() {
	m.ctrl.Mount()
}

// Unmount closes the selector and releases its navigation subscription.
func (m *Model) Unmount() {
	m.ctrl.Unmount()
}

// OnOpenChange registers fn to be called on every open/close transition.
func (m *Model) OnOpenChange(fn func(open bool)) {
	m.ctrl.Watch(fn)
}

func (m *Model) IsOpen() bool        { return m.ctrl.IsOpen() }
func (m *Model) Focused() bool       { return m.focused }
func (m *Model) Loading() bool       { return m.loading }
func (m *Model) Cursor() int         { return m.cursor }
func (m *Model) Variant() Variant    { return m.cfg.Variant }
func (m *Model) Controlled() bool    { return m.cfg.Value.IsControlled() }
func (m *Model) Options() []Option   { return m.options }
func (m *Model) Placeholder() string { return m.cfg.Placeholder }

// Value returns the current value, if any.
func (m *Model) Value() fp.Option[string] {
	return m.value
}

// SetValue feeds a value back in. This is how a controlled selector learns
// about a change it reported through OnChange. An empty string clears the
// value.
func (m *Model) SetValue(v string) {
	m.value = fp.FromNonZero(v)
}

// SetOptions replaces the generated options. Malformed entries are left out
// and reported to Config.OnDropped.
func (m *Model) SetOptions(opts []Option) {
	kept, dropped := Filter(opts)
	m.options = kept
	m.cursor = 0
	if dropped.HasErrors() && m.cfg.OnDropped != nil {
		m.cfg.OnDropped(dropped)
	}
}

// SetCustomOptions replaces the caller-rendered entries. A nil slice goes
// back to the generated list.
func (m *Model) SetCustomOptions(entries []Entry) {
	m.cfg.CustomOptions = entries
	m.cursor = 0
}

// SetLoading switches the loading placeholder on or off. Starting to load
// closes the content.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.ctrl.Close()
	}
}

func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus. An open selector treats this as a dismiss.
func (m *Model) Blur() {
	m.focused = false
	m.ctrl.Close()
}

// Open shows the content with the current value highlighted. It does
// nothing while loading.
func (m *Model) Open() {
	if m.loading {
		return
	}
	m.cursor = 0
	if v, ok := m.currentValue(); ok {
		for i, e := range m.entries() {
			if e.Value == v {
				m.cursor = i
			}
		}
	}
	m.ctrl.Open()
}

// Close dismisses the content.
func (m *Model) Close() {
	m.ctrl.Close()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused || m.loading {
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

	n := len(m.entries())
	switch {
	case m.KeyMap.Intent(kmsg, true) == popup.IntentClose:
		m.ctrl.Close()
	case n == 0:
	case key.Matches(kmsg, m.KeyMap.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = n - 1
		}
	case key.Matches(kmsg, m.KeyMap.Down):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(kmsg, m.KeyMap.Select):
		return m, m.Choose(m.cursor)
	}
	return m, nil
}

// Choose picks the entry at index i. The content closes before OnChange
// runs, and OnChange only runs when the choice differs from the current
// value. Focus stays on the trigger.
func (m *Model) Choose(i int) tea.Cmd {
	entries := m.entries()
	if m.loading || i < 0 || i >= len(entries) {
		return nil
	}
	chosen := entries[i].Value
	m.ctrl.Close()

	if cur, ok := m.currentValue(); ok && cur == chosen {
		return nil
	}
	if !m.cfg.Value.IsControlled() {
		m.value = fp.FromNonZero(chosen)
	}
	if m.cfg.OnChange != nil {
		return m.cfg.OnChange(chosen)
	}
	return nil
}

func (m *Model) currentValue() (string, bool) {
	v := fp.GetOrElseOpt("")(m.value)
	return v, fp.IsSome(m.value)
}

func (m *Model) entries() []Entry {
	if m.cfg.CustomOptions != nil {
		return m.cfg.CustomOptions
	}
	entries := make([]Entry, len(m.options))
	for i, o := range m.options {
		entries[i] = Entry{Value: o.Value, Content: o.Label}
	}
	return entries
}

// Display returns the text the trigger shows, and whether it is the
// placeholder.
func (m *Model) Display() (string, bool) {
	if fp.IsNone(m.value) {
		return m.cfg.Placeholder, true
	}
	v, _ := m.currentValue()
	if m.cfg.SelectedRenderer != nil {
		return m.cfg.SelectedRenderer(v), false
	}
	// the list on screen wins, custom or generated; last match wins
	label := v
	for _, e := range m.entries() {
		if e.Value == v {
			label = e.Content
		}
	}
	return label, false
}

// View renders the trigger with the content attached when open.
func (m *Model) View() string {
	return m.Anchor.Place(m.TriggerView(), m.ContentView())
}

// TriggerView renders the trigger, or the loading skeleton.
func (m *Model) TriggerView() string {
	width := m.cfg.width()
	if m.loading {
		sty := m.bundle.Skeleton
		inner := max(width-sty.GetHorizontalPadding(), 1)
		return sty.Width(width).Render(strings.Repeat(skeletonRune, inner))
	}

	sty := m.bundle.Trigger
	switch {
	case m.ctrl.IsOpen():
		sty = m.bundle.TriggerOpen
	case m.focused:
		sty = m.bundle.TriggerFocused
	}
	sty = popup.Merge(sty, m.cfg.TriggerStyle)

	chevron := chevronDown
	if m.ctrl.IsOpen() {
		chevron = chevronUp
	}
	text, isPlaceholder := m.Display()
	inner := max(width-sty.GetHorizontalPadding(), 3)
	text = ansi.Truncate(text, inner-2, "…")
	if isPlaceholder {
		text = m.bundle.Placeholder.Render(text)
	}
	gap := max(inner-ansi.StringWidth(text)-ansi.StringWidth(chevron), 1)
	return sty.Width(width).Render(text + strings.Repeat(" ", gap) + chevron)
}

// ContentView renders the open content, or "" while closed or loading.
func (m *Model) ContentView() string {
	if m.loading || !m.ctrl.IsOpen() {
		return ""
	}

	entries := m.entries()
	current, hasValue := m.currentValue()
	itemSty := popup.Merge(m.bundle.Item, m.cfg.ItemStyle)
	hiSty := popup.Merge(m.bundle.ItemHighlighted, m.cfg.ItemStyle)

	width := m.cfg.width()
	rows := make([]string, len(entries))
	for i, e := range entries {
		prefix := "  "
		if i == m.cursor {
			prefix = pointer
		}
		row := prefix + e.Content
		if hasValue && e.Value == current {
			row += checkMark
		}
		rows[i] = row
		width = max(width, lipgloss.Width(row)+itemSty.GetHorizontalFrameSize())
	}

	var blocks []string
	if m.cfg.Label != "" {
		blocks = append(blocks, m.bundle.Label.Width(width).Render(m.cfg.Label))
	}
	sep := m.bundle.Separator.Render(strings.Repeat("─", width))
	generated := m.cfg.CustomOptions == nil
	for i, row := range rows {
		sty := itemSty
		if i == m.cursor {
			sty = hiSty
		}
		blocks = append(blocks, sty.Width(width).Render(row))
		if generated && i != len(rows)-1 {
			blocks = append(blocks, sep)
		}
	}
	return popup.Merge(m.bundle.Content, m.cfg.ContentStyle).Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}
