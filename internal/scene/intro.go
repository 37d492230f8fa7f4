package scene

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spistory/internal/dataset"
	"spistory/internal/nav"
)

const introText = "The Social Progress Index (SPI) measures a country's social performance " +
	"independent of economic indicators. It assesses how well a society provides for the " +
	"needs of its citizens, creates foundations for wellbeing, and expands opportunity. " +
	"This story lets you explore the SPI data from a global overview down to the specific " +
	"factors that shape the lives of people around the world."

const beginLabel = "[ Begin the Journey ]"

func renderIntro(b *builder, data *dataset.Dataset) {
	w, _ := b.c.Size()
	b.s.Title = "What is Social Progress?"
	y := 1
	b.c.write(2, y, b.s.Title, -1, "#E6E6E6")
	y += 2
	wrapped := lipgloss.NewStyle().Width(max(10, min(w-4, 72))).Render(introText)
	for _, line := range strings.Split(wrapped, "\n") {
		b.c.write(2, y, strings.TrimRight(line, " "), -1, "")
		y++
	}
	y++

	switch {
	case b.opts.LoadErr != nil:
		b.c.write(2, y, "Data failed to load: "+b.opts.LoadErr.Error(), -1, "#e74c3c")
		b.s.Caption = "The data could not be loaded. The story cannot continue."
	case data == nil || b.opts.Loading:
		b.c.write(2, y, "Loading data...", -1, NeutralFill)
		b.s.Caption = "Welcome! The data is loading."
	default:
		t := b.target(Target{Label: "Begin", Tooltip: "Start the story", Gesture: nav.BeginGesture(), Clickable: true})
		b.c.write(2, y, beginLabel, t, HoverFill)
		b.bind(nav.BeginGesture(), "begin", "enter", " ")
		b.s.Caption = "Welcome! Press **enter** or click the button above to start exploring the Social Progress Index."
	}
}
