package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Align positions the content along the trigger's edge.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Side is the edge of the trigger the content is attached to.
type Side int

const (
	SideBottom Side = iota
	SideTop
	SideRight
	SideLeft
)

// Anchor describes where floating content sits relative to its trigger.
type Anchor struct {
	Align Align
	Side  Side
}

func (a Align) position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignEnd:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// Place joins trigger and content so that content hangs off the configured
// side. An empty content returns the trigger unchanged.
func (a Anchor) Place(trigger, content string) string {
	if content == "" {
		return trigger
	}
	// lipgloss.Left == lipgloss.Top and lipgloss.Right == lipgloss.Bottom.
	pos := a.Align.position()
	switch a.Side {
	case SideTop:
		return lipgloss.JoinVertical(pos, content, trigger)
	case SideRight:
		return lipgloss.JoinHorizontal(pos, trigger, content)
	case SideLeft:
		return lipgloss.JoinHorizontal(pos, content, trigger)
	default:
		return lipgloss.JoinVertical(pos, trigger, content)
	}
}

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y, W, H int
}

// Offset returns where content of size w x h goes for a trigger at r.
// Coordinates are clamped to be non-negative.
func (a Anchor) Offset(r Rect, w, h int) (x, y int) {
	along := func(start, triggerLen, contentLen int) int {
		switch a.Align {
		case AlignCenter:
			return start + (triggerLen-contentLen)/2
		case AlignEnd:
			return start + triggerLen - contentLen
		default:
			return start
		}
	}
	switch a.Side {
	case SideTop:
		x, y = along(r.X, r.W, w), r.Y-h
	case SideRight:
		x, y = r.X+r.W, along(r.Y, r.H, h)
	case SideLeft:
		x, y = r.X-w, along(r.Y, r.H, h)
	default:
		x, y = along(r.X, r.W, w), r.Y+r.H
	}
	return max(0, x), max(0, y)
}

// Overlay composites layer on top of base with its top-left corner at x, y.
// Lines of layer that fall outside base are dropped.
func Overlay(base, layer string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	layerLines := strings.Split(layer, "\n")
	layerWidth := 0
	for _, l := range layerLines {
		layerWidth = max(layerWidth, ansi.StringWidth(l))
	}

	for i, line := range layerLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := baseLines[row]
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		if w := ansi.StringWidth(line); w < layerWidth {
			line += strings.Repeat(" ", layerWidth-w)
		}
		right := ansi.TruncateLeft(target, x+layerWidth, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}
