package popup

import "github.com/charmbracelet/lipgloss"

// Merge layers override on top of base. Properties set on override win;
// everything else comes from base. Padding and margins merge per side, and a
// zero side on override keeps the base value.
func Merge(base, override lipgloss.Style) lipgloss.Style {
	s := override.Inherit(base)

	ot, or, ob, ol := override.GetPadding()
	bt, br, bb, bl := base.GetPadding()
	s = s.Padding(side(ot, bt), side(or, br), side(ob, bb), side(ol, bl))

	ot, or, ob, ol = override.GetMargin()
	bt, br, bb, bl = base.GetMargin()
	return s.Margin(side(ot, bt), side(or, br), side(ob, bb), side(ol, bl))
}

func side(override, base int) int {
	if override != 0 {
		return override
	}
	return base
}
