// Package nav implements the drill-down navigation model: which view is
// shown, what is selected, and how gestures move between views.
package nav

import "spistory/internal/spi"

// View is the scene currently on screen.
type View int

const (
	Intro View = iota
	World
	Country
	Component
	SubComponent
)

func (v View) String() string {
	switch v {
	case Intro:
		return "intro"
	case World:
		return "world"
	case Country:
		return "country"
	case Component:
		return "component"
	case SubComponent:
		return "subcomponent"
	}
	return "unknown"
}

// State is the navigation state. Renderers receive copies; only Machine
// changes the value it owns.
type State struct {
	View      View
	Country   *spi.Record
	Pillar    spi.Pillar
	Metric    spi.Metric
	Continent string
}

// Initial is the state at startup.
func Initial() State {
	return State{View: Intro, Continent: spi.All}
}

// CountryName returns the selected country's name or "".
func (s State) CountryName() string {
	if s.Country == nil {
		return ""
	}
	return s.Country.Country
}

// HasBack reports whether the back control is shown for the state.
func (s State) HasBack() bool {
	return s.View != Intro && s.View != World
}

// Kind names a gesture.
type Kind int

const (
	Begin Kind = iota + 1
	SelectCountry
	SelectContinent
	SelectPillar
	SelectMetric
	Back
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case SelectCountry:
		return "select-country"
	case SelectContinent:
		return "select-continent"
	case SelectPillar:
		return "select-pillar"
	case SelectMetric:
		return "select-metric"
	case Back:
		return "back"
	}
	return "none"
}

// Gesture is a transition request emitted by a scene. Only the field
// matching Kind is read.
type Gesture struct {
	Kind      Kind
	Country   *spi.Record
	Continent string
	Pillar    spi.Pillar
	Metric    spi.Metric
}

func BeginGesture() Gesture { return Gesture{Kind: Begin} }
func BackGesture() Gesture { return Gesture{Kind: Back} }
func CountryGesture(r *spi.Record) Gesture { return Gesture{Kind: SelectCountry, Country: r} }
func ContinentGesture(name string) Gesture { return Gesture{Kind: SelectContinent, Continent: name} }
func PillarGesture(p spi.Pillar) Gesture { return Gesture{Kind: SelectPillar, Pillar: p} }
func MetricGesture(m spi.Metric) Gesture { return Gesture{Kind: SelectMetric, Metric: m} }

// Machine owns the navigation state.
type Machine struct {
	state State
}

// New returns a machine in the initial state.
func New() *Machine {
	return &Machine{state: Initial()}
}

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Apply runs the gesture against the current state and reports whether the
// state changed. Gestures that are not valid for the current view are
// ignored.
func (m *Machine) Apply(g Gesture) bool {
	next, ok := Transition(m.state, g)
	if !ok {
		return false
	}
	m.state = next
	return true
}

// Transition is the pure transition function behind Apply.
func Transition(s State, g Gesture) (State, bool) {
	switch s.View {
	case Intro:
		if g.Kind == Begin {
			s.View = World
			return s, true
		}
	case World:
		switch g.Kind {
		case SelectCountry:
			if g.Country == nil {
				return s, false
			}
			c := *g.Country
			s.Country = &c
			s.View = Country
			return s, true
		case SelectContinent:
			if g.Continent == "" || g.Continent == s.Continent {
				return s, false
			}
			s.Continent = g.Continent
			return s, true
		}
	case Country:
		switch g.Kind {
		case SelectPillar:
			if !g.Pillar.Valid() {
				return s, false
			}
			s.Pillar = g.Pillar
			s.View = Component
			return s, true
		case Back:
			s.Country = nil
			s.View = World
			return s, true
		}
	case Component:
		switch g.Kind {
		case SelectMetric:
			if !s.Pillar.Has(g.Metric) {
				return s, false
			}
			s.Metric = g.Metric
			s.View = SubComponent
			return s, true
		case Back:
			s.Pillar = spi.NoPillar
			s.View = Country
			return s, true
		}
	case SubComponent:
		if g.Kind == Back {
			s.Metric = ""
			s.View = Component
			return s, true
		}
	}
	return s, false
}
