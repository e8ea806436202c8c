package selector

import "github.com/charmbracelet/lipgloss"

// Variant selects one fixed presentation bundle.
type Variant int

const (
	VariantOthers Variant = iota
	VariantAuth
)

func (v Variant) String() string {
	switch v {
	case VariantAuth:
		return "auth"
	default:
		return "others"
	}
}

// ParseVariant maps "auth" and "others" to a Variant. Anything else is others.
func ParseVariant(s string) Variant {
	if s == VariantAuth.String() {
		return VariantAuth
	}
	return VariantOthers
}

var (
	charcoal   = lipgloss.Color("#36454f")
	black      = lipgloss.Color("#0a0a0f")
	paper      = lipgloss.Color("#f0f6fc")
	white      = lipgloss.Color("#ffffff")
	smokyGray  = lipgloss.Color("#2d3748")
	dimWhite   = lipgloss.Color("#4d5566")
	lightHover = lipgloss.Color("#d0d7de")
	darkHover  = lipgloss.Color("#3b4456")
	muted      = lipgloss.Color("#8b949e")
)

// Bundle is the set of styles one variant applies.
type Bundle struct {
	Trigger         lipgloss.Style
	TriggerOpen     lipgloss.Style
	TriggerFocused  lipgloss.Style
	Placeholder     lipgloss.Style
	Content         lipgloss.Style
	Label           lipgloss.Style
	Item            lipgloss.Style
	ItemHighlighted lipgloss.Style
	Separator       lipgloss.Style
	Skeleton        lipgloss.Style
}

func bundleFor(v Variant) Bundle {
	switch v {
	case VariantAuth:
		return authBundle()
	case VariantOthers:
		return othersBundle()
	}
	return othersBundle()
}

func authBundle() Bundle {
	trigger := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(charcoal).
		Background(paper).
		Foreground(black).
		Padding(0, 1)
	return Bundle{
		Trigger:        trigger,
		TriggerOpen:    trigger,
		TriggerFocused: trigger.BorderForeground(black).Bold(true),
		Placeholder:    lipgloss.NewStyle().Foreground(muted),
		Content: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(charcoal).
			Background(paper).
			Foreground(black),
		Label: lipgloss.NewStyle().
			Foreground(black).
			Bold(true).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(black).
			Padding(0, 1),
		ItemHighlighted: lipgloss.NewStyle().
			Background(lightHover).
			Foreground(black).
			Padding(0, 1),
		Separator: lipgloss.NewStyle().Foreground(black),
		Skeleton: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(charcoal).
			Foreground(lightHover).
			Faint(true),
	}
}

func othersBundle() Bundle {
	trigger := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(white).
		Foreground(white).
		Padding(1, 1)
	return Bundle{
		Trigger: trigger,
		TriggerOpen: trigger.
			Border(lipgloss.HiddenBorder()).
			Background(smokyGray),
		TriggerFocused: trigger.BorderForeground(lipgloss.Color("#00ffff")),
		Placeholder:    lipgloss.NewStyle().Foreground(muted),
		Content: lipgloss.NewStyle().
			Background(smokyGray).
			Foreground(white),
		Label: lipgloss.NewStyle().
			Foreground(white).
			Bold(true).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(white).
			Padding(0, 1),
		ItemHighlighted: lipgloss.NewStyle().
			Background(darkHover).
			Foreground(white).
			Padding(0, 1),
		Separator: lipgloss.NewStyle().Foreground(dimWhite),
		Skeleton: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(white).
			Foreground(dimWhite).
			Padding(1, 0).
			Faint(true),
	}
}
