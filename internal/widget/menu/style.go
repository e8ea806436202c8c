package menu

import "github.com/charmbracelet/lipgloss"

var (
	gray       = lipgloss.Color("#2d3748")
	mediumGray = lipgloss.Color("#4d5566")
	white      = lipgloss.Color("#f0f6fc")
	cyan       = lipgloss.Color("#00ffff")
	magenta    = lipgloss.Color("#ff00ff")
)

// minContentWidth is the narrowest the open menu gets, in cells.
const minContentWidth = 15

type Style struct {
	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	TriggerOpen    lipgloss.Style
	Content        lipgloss.Style
	Header         lipgloss.Style
	Item           lipgloss.Style
	ItemSelected   lipgloss.Style
	Icon           lipgloss.Style
	Separator      lipgloss.Style
}

func DefaultStyle() *Style {
	return &Style{
		Trigger: lipgloss.NewStyle().
			Foreground(white).
			Padding(0, 1),
		TriggerFocused: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true).
			Padding(0, 1),
		TriggerOpen: lipgloss.NewStyle().
			Background(gray).
			Foreground(cyan).
			Bold(true).
			Padding(0, 1),
		Content: lipgloss.NewStyle().
			Background(gray).
			Foreground(white).
			Padding(1, 0),
		Header: lipgloss.NewStyle().
			Foreground(magenta).
			Bold(true).
			Padding(0, 2, 1, 2).
			Align(lipgloss.Center),
		Item: lipgloss.NewStyle().
			Foreground(white).
			Padding(0, 1),
		ItemSelected: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true).
			Padding(0, 1),
		Icon: lipgloss.NewStyle().
			MarginRight(1),
		Separator: lipgloss.NewStyle().
			Foreground(mediumGray),
	}
}
