// Package scene renders one navigation state into a terminal scene: a
// canvas of styled cells, a markdown caption, and the gestures the scene
// offers. Rendering is a pure function of the state, the dataset and the
// options; nothing here mutates either.
package scene

import (
	"github.com/charmbracelet/bubbles/key"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

// Target is an interactive element of a scene. Canvas cells own targets by
// index.
type Target struct {
	Label     string
	Tooltip   string
	Gesture   nav.Gesture
	Clickable bool
}

// Binding maps a key to a gesture.
type Binding struct {
	Key     key.Binding
	Gesture nav.Gesture
}

// Table is tabular content shown below the canvas.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Ranked is one entry of a ranked list.
type Ranked struct {
	Country string
	Score   float64
}

// Bar is one sub-component bar.
type Bar struct {
	Metric spi.Metric
	Value  float64
	OK     bool
	Mean   float64 // peer mean within the continent filter
}

// Segment is one pillar segment of the country chart.
type Segment struct {
	Pillar spi.Pillar
	Value  float64
	OK     bool
	Radius float64 // outer radius in micro-pixels
}

// Derived is the data-derived content of a scene, kept apart from the
// drawing so it can be compared across renders.
type Derived struct {
	Fills    map[string]string
	Top      []Ranked
	Bottom   []Ranked
	Bars     []Bar
	Segments []Segment
	Standing *spi.Standing
}

// Scene is the rendered result for one state.
type Scene struct {
	View    nav.View
	Title   string
	Canvas  *Canvas
	Caption string // markdown
	Table   *Table
	Targets []Target
	Keys    []Binding
	Derived Derived
}

// Options carries presentation parameters. None of them change which
// gestures a scene offers.
type Options struct {
	Width, Height  int // canvas size in cells
	Zoom           float64
	PanX, PanY     int // map offset in cells
	Scale          Scale
	TopN           int
	SortComponents bool
	Loading        bool
	LoadErr        error
}

// Render builds the scene for state. Views that need data fall back to the
// intro while data is nil.
func Render(state nav.State, data *dataset.Dataset, opts Options) Scene {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	b := newBuilder(state.View, opts)
	if data == nil && state.View != nav.Intro {
		state.View = nav.Intro
		b.s.View = nav.Intro
	}
	switch state.View {
	case nav.Intro:
		renderIntro(b, data)
	case nav.World:
		renderWorld(b, state, data)
	case nav.Country:
		renderCountry(b, state, data)
	case nav.Component:
		renderComponent(b, state, data)
	case nav.SubComponent:
		renderSubComponent(b, state, data)
	}
	return b.s
}

// Hit resolves a canvas cell to its target.
func (s Scene) Hit(x, y int) (Target, bool) {
	i, ok := s.Canvas.Hit(x, y)
	if !ok || i >= len(s.Targets) {
		return Target{}, false
	}
	return s.Targets[i], true
}

// KeyMap returns the scene's key bindings for help rendering.
func (s Scene) KeyMap() []key.Binding {
	out := make([]key.Binding, len(s.Keys))
	for i, b := range s.Keys {
		out[i] = b.Key
	}
	return out
}

type builder struct {
	s    Scene
	c    *Canvas
	opts Options
}

func newBuilder(v nav.View, opts Options) *builder {
	c := NewCanvas(opts.Width, opts.Height)
	return &builder{
		s:    Scene{View: v, Canvas: c, Derived: Derived{Fills: map[string]string{}}},
		c:    c,
		opts: opts,
	}
}

func (b *builder) target(t Target) int {
	b.s.Targets = append(b.s.Targets, t)
	return len(b.s.Targets) - 1
}

func (b *builder) bind(g nav.Gesture, help string, keys ...string) {
	b.s.Keys = append(b.s.Keys, Binding{
		Key:     key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help)),
		Gesture: g,
	})
}

// missingCountry renders the placeholder for a state whose selection is gone.
func (b *builder) missingCountry() {
	b.s.Title = "No country selected"
	b.c.write(2, 1, "No country selected.", -1, NeutralFill)
	b.s.Caption = "Go back to the map and pick a country."
}
