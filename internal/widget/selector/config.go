package selector

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zlovtnik/gshell/pkg/fp"
)

// DefaultWidth is the minimum trigger width, in cells, when Config.Width is
// not set.
const DefaultWidth = 24

// Option is one choice of a selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Entry is a caller-rendered choice used by Config.CustomOptions.
type Entry struct {
	Value   string
	Content string
}

// Value says who owns the current value of a selector.
type Value struct {
	set        bool
	controlled bool
	value      fp.Option[string]
}

// Controlled hands ownership of the value to the caller. The selector never
// changes it; the caller reacts to OnChange and calls Model.SetValue.
func Controlled(v string) Value {
	return Value{set: true, controlled: true, value: fp.FromNonZero(v)}
}

// Uncontrolled lets the selector own its value, starting at initial.
func Uncontrolled(initial fp.Option[string]) Value {
	return Value{set: true, value: initial}
}

// IsControlled reports whether the caller owns the value.
func (v Value) IsControlled() bool {
	return v.controlled
}

func (v Value) initial() fp.Option[string] {
	if !v.set {
		return fp.None[string]()
	}
	return v.value
}

// Config is the full configuration surface of a selector.
type Config struct {
	Variant Variant
	// Width is the minimum width of the trigger and content, in cells.
	Width int
	// Placeholder is shown while no value is selected. Required.
	Placeholder string
	Options     []Option
	// Value defaults to Uncontrolled with no initial value.
	Value Value
	// OnChange is called with the chosen value when it differs from the
	// current one.
	OnChange func(value string) tea.Cmd
	// SelectedRenderer renders the current value in the trigger.
	SelectedRenderer func(value string) string
	// CustomOptions, when non-nil, replaces the list generated from Options.
	CustomOptions []Entry
	// Label is an optional group label shown above the choices.
	Label     string
	IsLoading bool
	// OnDropped receives a fp.ValidationErrors for entries of Options that
	// were left out because they are malformed.
	OnDropped func(error)

	TriggerStyle lipgloss.Style
	ContentStyle lipgloss.Style
	ItemStyle    lipgloss.Style
}

func (c Config) width() int {
	if c.Width <= 0 {
		return DefaultWidth
	}
	return c.Width
}
