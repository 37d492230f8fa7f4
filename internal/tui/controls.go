package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spistory/internal/nav"
	"spistory/internal/spi"
)

const backLabel = "← Back"

// span is a clickable run of columns on the control row.
type span struct {
	x0, x1  int // [x0, x1)
	gesture nav.Gesture
}

// controlBar is the filter selector row plus the back control.
type controlBar struct {
	text  string
	spans []span
}

func (b controlBar) hit(x int) (nav.Gesture, bool) {
	for _, s := range b.spans {
		if x >= s.x0 && x < s.x1 {
			return s.gesture, true
		}
	}
	return nav.Gesture{}, false
}

func selectorLabel(i int, sel string) string {
	if sel == spi.All {
		sel = "All"
	}
	return fmt.Sprintf("%d %s", i, sel)
}

// buildControls rebuilds the control row for state. Filters are dimmed
// outside the world view, where selecting one does nothing; the back
// control is shown only when a back step exists.
func buildControls(state nav.State, width int) controlBar {
	var b controlBar
	var parts []string
	x := 1
	for i, sel := range spi.Selectors() {
		label := " " + selectorLabel(i, sel) + " "
		style := filterStyle
		switch {
		case state.View != nav.World:
			style = dimStyle
		case sel == state.Continent:
			style = activeFilterStyle
		}
		parts = append(parts, style.Render(label))
		w := lipgloss.Width(label)
		b.spans = append(b.spans, span{x0: x, x1: x + w, gesture: nav.ContinentGesture(sel)})
		x += w + 1
	}
	left := " " + strings.Join(parts, " ")
	if !state.HasBack() {
		b.text = left
		return b
	}
	back := " " + backLabel + " "
	bw := lipgloss.Width(back)
	gap := max(1, width-lipgloss.Width(left)-bw)
	x0 := lipgloss.Width(left) + gap
	b.spans = append(b.spans, span{x0: x0, x1: x0 + bw, gesture: nav.BackGesture()})
	b.text = left + strings.Repeat(" ", gap) + backStyle.Render(back)
	return b
}
