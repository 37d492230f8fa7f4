package spi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rec(country, continent, score string) Record {
	return NewRecord(country, continent, map[string]string{"country": country, "continent": continent, "spi_score": score})
}

func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Country
	}
	return out
}

var sample = []Record{
	rec("Norway", "Europe", "94.2"),
	rec("Japan", "Asia", "89.9"),
	rec("Chad", "Africa", "32.5"),
	rec("Denmark", "Europe", "93.0"),
	rec("Canada", "North America", "89.9"),
	rec("Chile", "South America", "81.1"),
	rec("Fiji", "Oceania", "70.4"),
	rec("Somewhere", "Atlantis", "50"),
}

func TestFilterByContinent(t *testing.T) {
	for _, c := range Continents() {
		got := FilterByContinent(sample, c)
		if len(got) == 0 {
			t.Errorf("%s: expected at least one record", c)
		}
		for _, r := range got {
			if r.Continent != c {
				t.Errorf("%s: got record %s on %s", c, r.Country, r.Continent)
			}
		}
	}
	if diff := cmp.Diff(names(sample), names(FilterByContinent(sample, All))); diff != "" {
		t.Errorf("all filter changed order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Norway", "Denmark"}, names(FilterByContinent(sample, "Europe"))); diff != "" {
		t.Errorf("europe (-want +got):\n%s", diff)
	}
}

func TestFilterByContinent_Unknown(t *testing.T) {
	got := FilterByContinent(sample, "Antarctica")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := FilterByContinent(nil, All); len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
}

func TestFilterByContinent_DoesNotAlias(t *testing.T) {
	got := FilterByContinent(sample, All)
	got[0] = rec("Mutated", "Europe", "1")
	if sample[0].Country != "Norway" {
		t.Fatal("filter result aliases the input")
	}
}

func TestTopBottom(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]Record, Metric, int) []Record
		n    int
		want []string
	}{
		{"top3", Top, 3, []string{"Norway", "Denmark", "Japan"}},
		{"top ties keep order", Top, 4, []string{"Norway", "Denmark", "Japan", "Canada"}},
		{"bottom3", Bottom, 3, []string{"Chad", "Somewhere", "Fiji"}},
		{"more than len", Top, 50, []string{"Norway", "Denmark", "Japan", "Canada", "Chile", "Fiji", "Somewhere", "Chad"}},
		{"zero", Top, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(tt.fn(sample, Score, tt.n))); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTop_SkipsUnparsable(t *testing.T) {
	rs := []Record{rec("A", "Asia", "n/a"), rec("B", "Asia", "10"), rec("C", "Asia", "")}
	if diff := cmp.Diff([]string{"B"}, names(Top(rs, Score, 5))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTop_FullPrecision(t *testing.T) {
	rs := []Record{rec("A", "Asia", "80.004"), rec("B", "Asia", "80.006")}
	if diff := cmp.Diff([]string{"B", "A"}, names(Top(rs, Score, 2))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if FormatScore(80.004) != "80.00" || FormatScore(80.006) != "80.01" {
		t.Errorf("unexpected formatting: %s %s", FormatScore(80.004), FormatScore(80.006))
	}
}

func TestPillarComponents(t *testing.T) {
	want := map[Pillar][]Metric{
		BasicHumanNeeds: {BasicNutriMedCare, WaterSanitation, Shelter, PersonalSafety},
		Wellbeing:       {AccessBasicKnowledge, AccessInfoComm, HealthWellness, EnvQuality},
		Opportunity:     {PersonalRights, PersonalFreedomChoice, Inclusiveness, AccessAdvEdu},
	}
	for p, w := range want {
		if diff := cmp.Diff(w, p.Components()); diff != "" {
			t.Errorf("%s (-want +got):\n%s", p, diff)
		}
		for _, m := range w {
			if m.Pillar() != p {
				t.Errorf("%s: pillar = %q, want %q", m, m.Pillar(), p)
			}
		}
	}
	if NoPillar.Components() != nil || NoPillar.Valid() {
		t.Error("zero pillar should have no components")
	}
	if Score.Pillar() != NoPillar {
		t.Error("spi_score belongs to no pillar")
	}
	if got := len(Columns()); got != 17 {
		t.Errorf("expected 17 metric columns, got %d", got)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct{ in, want string }{
		{WaterSanitation.Label(), "Water Sanitation"},
		{AccessAdvEdu.Label(), "Access Adv Edu"},
		{Opportunity.Title(), "Opportunity"},
		{Wellbeing.Title(), "Foundations of Wellbeing"},
		{BasicHumanNeeds.Short(), "Basic"},
	}
	for _, tt := range tests {
		if tt.in != tt.want {
			t.Errorf("got %q, want %q", tt.in, tt.want)
		}
	}
}

func TestRecordCoercion(t *testing.T) {
	r := NewRecord("Norway", "Europe", map[string]string{"spi_score": " 94.2 ", "spi_rank": "1", "shelter": "x"})
	if v, ok := r.SPI(); !ok || v != 94.2 {
		t.Errorf("SPI = %v, %v", v, ok)
	}
	if p, ok := r.Position(); !ok || p != 1 {
		t.Errorf("Position = %v, %v", p, ok)
	}
	if _, ok := r.Value(Shelter); ok {
		t.Error("expected shelter not to parse")
	}
	if got := FormatValue(r, Shelter); got != "N/A" {
		t.Errorf("FormatValue = %q", got)
	}
}

func TestStandingOf(t *testing.T) {
	eu := FilterByContinent(sample, "Europe")
	st := StandingOf(eu, "Denmark", Score)
	if st.Position != 2 || st.Of != 2 {
		t.Errorf("standing = %+v", st)
	}
	if want := (94.2 + 93.0) / 2; st.Mean != want {
		t.Errorf("mean = %v, want %v", st.Mean, want)
	}
	if st := StandingOf(eu, "Chad", Score); st.Position != 0 {
		t.Errorf("outsider should have no position: %+v", st)
	}
}
