package selector

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/gshell/internal/route"
	"github.com/zlovtnik/gshell/pkg/fp"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

var workspaces = []Option{
	{Value: "ws-1", Label: "Alpha"},
	{Value: "ws-2", Label: "Beta"},
	{Value: "ws-3", Label: "Gamma"},
}

func newSelector(t *testing.T, cfg Config, sig route.Signal) *Model {
	t.Helper()
	if cfg.Placeholder == "" {
		cfg.Placeholder = "Pick one"
	}
	m := New(cfg, sig)
	m.Init()
	m.Focus()
	return m
}

func rowsContaining(view string, labels ...string) []string {
	var found []string
	for _, line := range strings.Split(view, "\n") {
		for _, l := range labels {
			if strings.Contains(line, l) {
				found = append(found, l)
			}
		}
	}
	return found
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		in      []Option
		want    []Option
		dropped []string
	}{
		{"nil", nil, []Option{}, nil},
		{"all well formed", workspaces, workspaces, nil},
		{
			"mixed keeps order",
			[]Option{
				{Value: "", Label: "Ghost"},
				{Value: "a", Label: "A"},
				{Value: "b", Label: ""},
				{},
				{Value: "c", Label: "C"},
			},
			[]Option{{Value: "a", Label: "A"}, {Value: "c", Label: "C"}},
			[]string{"options[0]", "options[2]", "options[3]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := Filter(tt.in)
			assert.Equal(t, tt.want, got)
			var fields []string
			for _, d := range dropped {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.dropped, fields)
		})
	}
}

func TestValidate(t *testing.T) {
	ok := Validate(workspaces)
	require.False(t, fp.IsFailure(ok))
	assert.NoError(t, fp.GetError(ok))

	bad := Validate([]Option{{Value: "a", Label: "A"}, {Value: "b"}})
	require.True(t, fp.IsFailure(bad))
	var verrs fp.ValidationErrors
	require.True(t, errors.As(fp.GetError(bad), &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "options[1]", verrs[0].Field)
	assert.Equal(t, "missing label", verrs[0].Message)
}

func TestModel_GeneratedListRendersWellFormedOnly(t *testing.T) {
	for n := 0; n <= 3; n++ {
		for malformed := 0; malformed <= 2; malformed++ {
			t.Run(fmt.Sprintf("%d_good_%d_bad", n, malformed), func(t *testing.T) {
				var opts []Option
				var labels []string
				for i := 0; i < n; i++ {
					label := fmt.Sprintf("Item%d", i)
					labels = append(labels, label)
					opts = append(opts, Option{Value: fmt.Sprintf("v%d", i), Label: label})
					if i < malformed {
						opts = append(opts, Option{Value: fmt.Sprintf("bad%d", i)})
					}
				}
				for i := n; i < malformed; i++ {
					opts = append(opts, Option{Label: fmt.Sprintf("Ghost%d", i)})
				}

				var reported error
				m := newSelector(t, Config{
					Options:   opts,
					OnDropped: func(err error) { reported = err },
				}, nil)
				m.Open()
				require.True(t, m.IsOpen())

				view := m.ContentView()
				assert.Equal(t, labels, rowsContaining(view, "Item0", "Item1", "Item2"))
				assert.NotContains(t, view, "Ghost")
				assert.Len(t, m.Options(), n)

				if malformed == 0 {
					assert.NoError(t, reported)
				} else {
					var verrs fp.ValidationErrors
					require.True(t, errors.As(reported, &verrs))
					assert.Len(t, verrs, malformed)
				}
			})
		}
	}
}

func TestModel_LoadingIgnoresEverythingElse(t *testing.T) {
	rendered := 0
	cfg := Config{
		Placeholder:      "Pick one",
		Width:            10,
		Options:          workspaces,
		Value:            Controlled("ws-2"),
		SelectedRenderer: func(v string) string { rendered++; return "custom " + v },
		CustomOptions:    []Entry{{Value: "x", Content: "Custom X"}},
		Label:            "Workspaces",
		IsLoading:        true,
	}
	m := newSelector(t, cfg, nil)

	first := m.View()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.View(), "loading view is stable across renders")
	}
	assert.Contains(t, first, strings.Repeat(skeletonRune, 10))
	for _, s := range []string{"Pick one", "Beta", "ws-2", "custom", "Custom X", "Workspaces"} {
		assert.NotContains(t, first, s)
	}
	assert.Zero(t, rendered, "renderer is never consulted while loading")

	m.Update(keyEnter)
	assert.False(t, m.IsOpen(), "keys are ignored while loading")
	m.Open()
	assert.False(t, m.IsOpen())
	assert.Nil(t, m.Choose(0))
}

func TestModel_LoadingSkeletonPerVariant(t *testing.T) {
	auth := newSelector(t, Config{Variant: VariantAuth, Width: 12, IsLoading: true}, nil)
	others := newSelector(t, Config{Variant: VariantOthers, Width: 12, IsLoading: true}, nil)

	authLines := strings.Split(auth.View(), "\n")
	othersLines := strings.Split(others.View(), "\n")
	assert.True(t, strings.HasPrefix(authLines[0], "╭"), "auth skeleton uses a rounded border")
	assert.True(t, strings.HasPrefix(othersLines[0], "┌"))
	assert.Greater(t, len(othersLines), len(authLines), "others is taller than auth")
	assert.Equal(t, 14, lipgloss.Width(auth.View()))
}

func TestModel_StartLoadingClosesContent(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces}, nil)
	m.Update(keyEnter)
	require.True(t, m.IsOpen())

	m.SetLoading(true)
	assert.False(t, m.IsOpen())
	assert.Empty(t, m.ContentView())

	m.SetLoading(false)
	assert.Contains(t, m.TriggerView(), "Pick one")
}

func TestModel_Uncontrolled(t *testing.T) {
	var changes []string
	m := newSelector(t, Config{
		Options:  workspaces,
		Value:    Uncontrolled(fp.Some("ws-1")),
		OnChange: func(v string) tea.Cmd { changes = append(changes, v); return nil },
	}, nil)
	assert.Contains(t, m.TriggerView(), "Alpha")

	m.Update(keyEnter)
	require.True(t, m.IsOpen())
	assert.Equal(t, 0, m.Cursor(), "cursor starts on the current value")
	m.Update(keyDown)
	m.Update(keyEnter)

	assert.False(t, m.IsOpen())
	assert.True(t, m.Focused(), "focus stays on the trigger")
	assert.Equal(t, fp.Some("ws-2"), m.Value())
	assert.Equal(t, []string{"ws-2"}, changes)
	assert.Contains(t, m.TriggerView(), "Beta")
}

func TestModel_UncontrolledWithoutDefault(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces}, nil)
	assert.True(t, fp.IsNone(m.Value()))
	text, placeholder := m.Display()
	assert.True(t, placeholder)
	assert.Equal(t, "Pick one", text)

	m.Open()
	m.Choose(2)
	assert.Equal(t, fp.Some("ws-3"), m.Value())
}

func TestModel_ControlledNeverMutates(t *testing.T) {
	var changes []string
	var m *Model
	m = newSelector(t, Config{
		Options: workspaces,
		Value:   Controlled("ws-1"),
		OnChange: func(v string) tea.Cmd {
			changes = append(changes, v)
			assert.False(t, m.IsOpen(), "closed before OnChange runs")
			return nil
		},
	}, nil)
	require.True(t, m.Controlled())

	m.Open()
	m.Choose(1)
	assert.Equal(t, []string{"ws-2"}, changes)
	assert.Equal(t, fp.Some("ws-1"), m.Value(), "controlled value only changes through SetValue")
	assert.Contains(t, m.TriggerView(), "Alpha")

	m.SetValue("ws-2")
	assert.Contains(t, m.TriggerView(), "Beta")
}

func TestModel_ControlledValueNotInOptions(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces, Value: Controlled("ws-9")}, nil)
	text, placeholder := m.Display()
	assert.False(t, placeholder)
	assert.Equal(t, "ws-9", text)
}

func TestModel_OnChangeOnlyWhenDifferent(t *testing.T) {
	calls := 0
	m := newSelector(t, Config{
		Options:  workspaces,
		Value:    Uncontrolled(fp.Some("ws-1")),
		OnChange: func(string) tea.Cmd { calls++; return nil },
	}, nil)

	m.Open()
	m.Choose(0)
	assert.Zero(t, calls)
	assert.False(t, m.IsOpen())

	m.Open()
	m.Choose(1)
	assert.Equal(t, 1, calls)
}

func TestModel_OnChangeCommandIsReturned(t *testing.T) {
	type picked struct{ v string }
	m := newSelector(t, Config{
		Options: workspaces,
		OnChange: func(v string) tea.Cmd {
			return func() tea.Msg { return picked{v} }
		},
	}, nil)
	m.Update(keyEnter)
	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, picked{"ws-1"}, cmd())
}

func TestModel_DisplayRules(t *testing.T) {
	dup := append([]Option{}, workspaces...)
	dup = append(dup, Option{Value: "ws-2", Label: "Beta again"})

	tests := []struct {
		name     string
		cfg      Config
		want     string
		isPlaceh bool
	}{
		{"placeholder", Config{Options: workspaces}, "Pick one", true},
		{"label", Config{Options: workspaces, Value: Controlled("ws-3")}, "Gamma", false},
		{"last duplicate wins", Config{Options: dup, Value: Controlled("ws-2")}, "Beta again", false},
		{"raw value", Config{Value: Controlled("raw")}, "raw", false},
		{
			"renderer",
			Config{Options: workspaces, Value: Controlled("ws-1"), SelectedRenderer: strings.ToUpper},
			"WS-1",
			false,
		},
		{
			"renderer without value shows placeholder",
			Config{Options: workspaces, SelectedRenderer: strings.ToUpper},
			"Pick one",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSelector(t, tt.cfg, nil)
			got, isPlaceh := m.Display()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.isPlaceh, isPlaceh)
			assert.Contains(t, m.TriggerView(), tt.want)
		})
	}
}

func TestModel_CustomOptionsBypassOptions(t *testing.T) {
	var dropped error
	m := newSelector(t, Config{
		Options:       []Option{{Value: "a", Label: "From options"}, {Value: "bad"}},
		CustomOptions: []Entry{{Value: "x", Content: "[x] Custom"}, {Value: "y", Content: "[y] Other"}},
		OnDropped:     func(err error) { dropped = err },
	}, nil)
	m.Open()
	view := m.ContentView()
	assert.Contains(t, view, "[x] Custom")
	assert.Contains(t, view, "[y] Other")
	assert.NotContains(t, view, "From options")
	assert.NotContains(t, view, "─", "custom entries are rendered without separators")
	assert.Error(t, dropped, "malformed options are still reported")

	m.Update(keyDown)
	m.Update(keyEnter)
	assert.Equal(t, fp.Some("y"), m.Value())
}

func TestModel_CustomEntryContentShownOnTrigger(t *testing.T) {
	m := newSelector(t, Config{
		Options:       []Option{{Value: "x", Label: "Generated X"}},
		CustomOptions: []Entry{{Value: "x", Content: "Custom X"}, {Value: "x", Content: "Custom X again"}},
	}, nil)
	m.Open()
	m.Choose(0)

	got, isPlaceh := m.Display()
	assert.False(t, isPlaceh)
	assert.Equal(t, "Custom X again", got, "custom list replaces options; last match wins")
	assert.Contains(t, m.TriggerView(), "Custom X again")
}

func TestModel_CustomValueOutsideEntriesShowsRaw(t *testing.T) {
	m := newSelector(t, Config{
		Value:         Controlled("zz"),
		CustomOptions: []Entry{{Value: "x", Content: "Custom X"}},
	}, nil)
	got, _ := m.Display()
	assert.Equal(t, "zz", got)
}

func TestModel_ChoosingEmptyCustomValueKeepsPlaceholder(t *testing.T) {
	var changed []string
	m := newSelector(t, Config{
		CustomOptions: []Entry{{Value: "", Content: "(none)"}},
		OnChange: func(v string) tea.Cmd {
			changed = append(changed, v)
			return nil
		},
	}, nil)
	m.Open()
	m.Choose(0)

	assert.True(t, fp.IsNone(m.Value()))
	got, isPlaceh := m.Display()
	assert.True(t, isPlaceh)
	assert.Equal(t, "Pick one", got)
	assert.Equal(t, []string{""}, changed)
}

func TestModel_GroupLabelAndSeparators(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces, Label: "Workspaces"}, nil)
	m.Open()
	view := m.ContentView()

	assert.Less(t, strings.Index(view, "Workspaces"), strings.Index(view, "Alpha"))
	separators := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "─") {
			separators++
		}
	}
	assert.Equal(t, 2, separators)
	assert.Contains(t, view, pointer+"Alpha")
}

func TestModel_CursorWraps(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces}, nil)
	m.Update(keyEnter)
	m.Update(keyUp)
	assert.Equal(t, 2, m.Cursor())
	m.Update(keyDown)
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_EscapeAndBlurDismiss(t *testing.T) {
	m := newSelector(t, Config{Options: workspaces}, nil)
	m.Update(keyEnter)
	m.Update(keyEsc)
	assert.False(t, m.IsOpen())
	assert.True(t, m.Focused())

	m.Update(keyEnter)
	m.Blur()
	assert.False(t, m.IsOpen())
	assert.False(t, m.Focused())
}

func TestModel_BackNavigationCloses(t *testing.T) {
	h := route.NewHistory("/")
	h.Push("/about")
	m := newSelector(t, Config{Options: workspaces}, h)

	m.Update(keyEnter)
	require.True(t, m.IsOpen())
	h.Back()
	assert.False(t, m.IsOpen())
}

func TestModel_OpenChooseUnmount(t *testing.T) {
	h := route.NewHistory("/")
	transitions := 0
	m := newSelector(t, Config{Options: workspaces}, h)
	m.OnOpenChange(func(bool) { transitions++ })
	for i := 0; i < 3; i++ {
		m.Init()
		_ = m.View()
	}
	require.Equal(t, 1, h.Subscribers())

	m.Open()
	m.Unmount()
	assert.False(t, m.IsOpen())
	assert.Equal(t, 0, h.Subscribers())
	assert.Equal(t, 2, transitions)

	m.Unmount()
	m.Open()
	assert.False(t, m.IsOpen(), "a torn down selector stays closed")
	assert.Equal(t, 2, transitions)
}

func TestModel_StyleOverridesMerge(t *testing.T) {
	m := newSelector(t, Config{
		Variant:      VariantAuth,
		Width:        16,
		TriggerStyle: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()),
	}, nil)
	lines := strings.Split(m.TriggerView(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "╔"), "override border wins")
	assert.True(t, strings.HasPrefix(lines[1], "║ Pick one"), "variant padding kept")
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantAuth, ParseVariant("auth"))
	assert.Equal(t, VariantOthers, ParseVariant("others"))
	assert.Equal(t, VariantOthers, ParseVariant(""))
	assert.Equal(t, "auth", VariantAuth.String())
	assert.Equal(t, "others", Variant(7).String())
}
