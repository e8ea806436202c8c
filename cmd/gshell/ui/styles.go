package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Message type constants for consistent UI messaging
const (
	// MessageTypeError indicates an error message style.
	MessageTypeError = "error"
	// MessageTypeSuccess indicates a success message style.
	MessageTypeSuccess = "success"
	// MessageTypeInfo indicates an informational message style.
	MessageTypeInfo = "info"
)

// ╔═══════════════════════════════════════════════════════════════════════════╗
// ║  NEON TERMINAL - shell theme                                               ║
// ╚═══════════════════════════════════════════════════════════════════════════╝
var (
	// ═══════════════════════════════════════════════════════════════════════════
	// CORE NEON PALETTE
	// ═══════════════════════════════════════════════════════════════════════════

	bgVoid      = lipgloss.Color("#0a0a0f") // deepest background
	bgSecondary = lipgloss.Color("#161b22") // header, footer
	bgSteel     = lipgloss.Color("#2d3748") // focused links

	neonCyan    = lipgloss.Color("#00ffff")
	neonMagenta = lipgloss.Color("#ff00ff")
	neonGreen   = lipgloss.Color("#39ff14")
	neonRed     = lipgloss.Color("#ff0055")
	neonBlue    = lipgloss.Color("#00d4ff")

	textPrimary   = lipgloss.Color("#f0f6fc")
	textSecondary = lipgloss.Color("#c9d1d9")
	textMuted     = lipgloss.Color("#8b949e")
	textDim       = lipgloss.Color("#4d5566")

	borderDefault = lipgloss.Color("#30363d")

	// ═══════════════════════════════════════════════════════════════════════════
	// LAYOUT DIMENSIONS
	// ═══════════════════════════════════════════════════════════════════════════

	// HeaderHeight is the header height in terminal rows, border included.
	HeaderHeight = 2
	// MinWidth is the narrowest layout the shell renders.
	MinWidth = 40

	// ═══════════════════════════════════════════════════════════════════════════
	// HEADER STYLES
	// ═══════════════════════════════════════════════════════════════════════════

	HeaderStyle = lipgloss.NewStyle().
			Background(bgSecondary).
			Foreground(textPrimary).
			Padding(0, 2).
			BorderBottom(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderBottomForeground(neonCyan)

	BrandStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true).
			MarginRight(2)

	LinkStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Padding(0, 1)

	LinkActiveStyle = lipgloss.NewStyle().
			Foreground(textPrimary).
			Underline(true).
			Padding(0, 1)

	LinkFocusedStyle = lipgloss.NewStyle().
				Background(bgSteel).
				Foreground(neonCyan).
				Bold(true).
				Padding(0, 1)

	// ═══════════════════════════════════════════════════════════════════════════
	// FOOTER STYLES
	// ═══════════════════════════════════════════════════════════════════════════

	FooterStyle = lipgloss.NewStyle().
			Background(bgVoid).
			Foreground(textSecondary).
			Padding(0, 2).
			BorderTop(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderTopForeground(neonCyan)

	FooterLocationStyle = lipgloss.NewStyle().
				Foreground(neonMagenta)

	// ═══════════════════════════════════════════════════════════════════════════
	// CONTENT AREA STYLES
	// ═══════════════════════════════════════════════════════════════════════════

	ContentStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(neonCyan).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(neonMagenta).
			MarginBottom(1)

	TextStyle = lipgloss.NewStyle().
			Foreground(textSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(textDim)

	// ═══════════════════════════════════════════════════════════════════════════
	// FORM STYLES
	// ═══════════════════════════════════════════════════════════════════════════

	LabelStyle = lipgloss.NewStyle().
			Foreground(neonMagenta)

	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderDefault).
			Foreground(textPrimary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(neonCyan).
				Foreground(textPrimary).
				Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(textPrimary).
			Background(bgSteel).
			Padding(0, 3)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(bgVoid).
				Background(neonCyan).
				Bold(true).
				Padding(0, 3)

	// ═══════════════════════════════════════════════════════════════════════════
	// MESSAGE STYLES
	// ═══════════════════════════════════════════════════════════════════════════

	ErrorStyle = lipgloss.NewStyle().
			Foreground(neonRed).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(neonGreen).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(neonBlue)
)

// FormatMessage styles a status line according to its message type.
func FormatMessage(msgType, text string) string {
	switch msgType {
	case MessageTypeError:
		return ErrorStyle.Render("✗ " + text)
	case MessageTypeSuccess:
		return SuccessStyle.Render("✓ " + text)
	case MessageTypeInfo:
		return InfoStyle.Render("● " + text)
	default:
		return text
	}
}

// Spread places left and right on one line of the given width, with at least
// one space between them.
func Spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
