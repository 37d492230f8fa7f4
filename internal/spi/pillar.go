package spi

// Pillar is one of the three top-level SPI categories. Its value is the
// dataset column holding the pillar score.
type Pillar string

const (
	NoPillar        Pillar = ""
	BasicHumanNeeds Pillar = "basic_human_needs"
	Wellbeing       Pillar = "wellbeing"
	Opportunity     Pillar = "opportunity"
)

var pillarComponents = map[Pillar][4]Metric{
	BasicHumanNeeds: {BasicNutriMedCare, WaterSanitation, Shelter, PersonalSafety},
	Wellbeing:       {AccessBasicKnowledge, AccessInfoComm, HealthWellness, EnvQuality},
	Opportunity:     {PersonalRights, PersonalFreedomChoice, Inclusiveness, AccessAdvEdu},
}

var pillarTitles = map[Pillar]string{
	BasicHumanNeeds: "Basic Human Needs",
	Wellbeing:       "Foundations of Wellbeing",
	Opportunity:     "Opportunity",
}

// Pillars returns the pillars in display order.
func Pillars() []Pillar {
	return []Pillar{BasicHumanNeeds, Wellbeing, Opportunity}
}

// Valid reports whether p is one of the three pillars.
func (p Pillar) Valid() bool {
	_, ok := pillarComponents[p]
	return ok
}

// Metric is the column holding the pillar score.
func (p Pillar) Metric() Metric { return Metric(p) }

// Components returns the four sub-components of p in dataset order.
// It returns nil for an invalid pillar.
func (p Pillar) Components() []Metric {
	c, ok := pillarComponents[p]
	if !ok {
		return nil
	}
	return c[:]
}

// Has reports whether m is a sub-component of p.
func (p Pillar) Has(m Metric) bool {
	for _, c := range p.Components() {
		if c == m {
			return true
		}
	}
	return false
}

// Title is the display name of the pillar.
func (p Pillar) Title() string {
	if t, ok := pillarTitles[p]; ok {
		return t
	}
	return Metric(p).Label()
}

// Short is the first word of the title, used for chart labels.
func (p Pillar) Short() string {
	t := p.Title()
	for i, r := range t {
		if r == ' ' {
			return t[:i]
		}
	}
	return t
}

// Columns lists every metric column the taxonomy refers to: the overall
// score and rank, the pillars and their sub-components.
func Columns() []Metric {
	cols := []Metric{Score, Rank}
	for _, p := range Pillars() {
		cols = append(cols, p.Metric())
		cols = append(cols, p.Components()...)
	}
	return cols
}
