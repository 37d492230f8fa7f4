package scene

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

func loadData(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.NewLoader(dataset.Options{
		Countries: "../dataset/testdata/spi.csv",
		World:     "../dataset/testdata/world.geojson",
	}).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testOptions(t *testing.T) Options {
	t.Helper()
	sc, err := NewScale("plasma")
	if err != nil {
		t.Fatal(err)
	}
	return Options{Width: 100, Height: 30, Zoom: 1, Scale: sc, TopN: 5, SortComponents: true}
}

func findTarget(s Scene, label string) (Target, bool) {
	for _, t := range s.Targets {
		if t.Label == label {
			return t, true
		}
	}
	return Target{}, false
}

func keyGesture(t *testing.T, s Scene, k string) nav.Gesture {
	t.Helper()
	for _, b := range s.Keys {
		for _, kk := range b.Key.Keys() {
			if kk == k {
				return b.Gesture
			}
		}
	}
	t.Fatalf("no binding for %q in %s", k, s.View)
	return nav.Gesture{}
}

func TestRender_Idempotent(t *testing.T) {
	data := loadData(t)
	opts := testOptions(t)
	before := len(data.Countries)
	for _, st := range []nav.State{
		{View: nav.World, Continent: spi.All},
		{View: nav.World, Continent: "Europe"},
	} {
		a := Render(st, data, opts)
		b := Render(st, data, opts)
		if diff := cmp.Diff(a.Derived, b.Derived); diff != "" {
			t.Errorf("derived content changed (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(a.Canvas.Text(), b.Canvas.Text()); diff != "" {
			t.Errorf("canvas changed (-first +second):\n%s", diff)
		}
	}
	if len(data.Countries) != before || data.Countries[0].Country != "Norway" {
		t.Error("rendering mutated the dataset")
	}
}

func TestRender_NorwayStory(t *testing.T) {
	data := loadData(t)
	opts := testOptions(t)
	m := nav.New()

	s := Render(m.State(), data, opts)
	if !m.Apply(keyGesture(t, s, "enter")) {
		t.Fatal("begin did not move")
	}
	if !m.Apply(nav.ContinentGesture("Europe")) {
		t.Fatal("filter did not apply")
	}
	s = Render(m.State(), data, opts)
	norway, ok := findTarget(s, "Norway")
	if !ok || !norway.Clickable {
		t.Fatalf("Norway target = %+v, %v", norway, ok)
	}
	if !m.Apply(norway.Gesture) {
		t.Fatal("select country did not move")
	}
	s = Render(m.State(), data, opts)
	if s.View != nav.Country || s.Title != "Norway" {
		t.Fatalf("got %s %q", s.View, s.Title)
	}
	if !strings.Contains(s.Caption, "94.20") || !strings.Contains(s.Caption, "Rank: 1") {
		t.Errorf("country caption = %q", s.Caption)
	}
	if !m.Apply(keyGesture(t, s, "3")) {
		t.Fatal("select pillar did not move")
	}

	s = Render(m.State(), data, opts)
	if s.View != nav.Component {
		t.Fatalf("view = %s", s.View)
	}
	for _, want := range []string{"Opportunity", "Norway"} {
		if !strings.Contains(s.Title, want) || !strings.Contains(s.Caption, want) {
			t.Errorf("title %q / caption %q should mention %q", s.Title, s.Caption, want)
		}
	}
	var got []spi.Metric
	for _, b := range s.Derived.Bars {
		got = append(got, b.Metric)
	}
	want := []spi.Metric{spi.PersonalRights, spi.AccessAdvEdu, spi.PersonalFreedomChoice, spi.Inclusiveness}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bars (-want +got):\n%s", diff)
	}
}

func TestComponent_Unsorted(t *testing.T) {
	data := loadData(t)
	opts := testOptions(t)
	opts.SortComponents = false
	norway, _ := data.Lookup("Norway")
	s := Render(nav.State{View: nav.Component, Country: norway, Pillar: spi.Opportunity, Continent: spi.All}, data, opts)
	var got []spi.Metric
	for _, b := range s.Derived.Bars {
		got = append(got, b.Metric)
	}
	if diff := cmp.Diff(spi.Opportunity.Components(), got); diff != "" {
		t.Errorf("bars (-want +got):\n%s", diff)
	}
}

func TestWorld_UnmatchedBoundary(t *testing.T) {
	data := loadData(t)
	s := Render(nav.State{View: nav.World, Continent: spi.All}, data, testOptions(t))
	if fill := s.Derived.Fills["Greenland"]; fill != NeutralFill {
		t.Errorf("Greenland fill = %q", fill)
	}
	if fill := s.Derived.Fills["Norway"]; fill == NeutralFill || fill == "" {
		t.Errorf("Norway fill = %q", fill)
	}
	tg, ok := findTarget(s, "Greenland")
	if !ok || tg.Clickable || !strings.Contains(tg.Tooltip, "N/A") {
		t.Errorf("Greenland target = %+v", tg)
	}
	w, h := s.Canvas.Size()
	hovered := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if hit, ok := s.Hit(x, y); ok && hit.Label == "Greenland" {
				hovered = true
			}
		}
	}
	if !hovered {
		t.Error("Greenland should be drawn and hoverable")
	}
}

func TestWorld_Ranking(t *testing.T) {
	data := loadData(t)
	opts := testOptions(t)
	opts.TopN = 3
	s := Render(nav.State{View: nav.World, Continent: spi.All}, data, opts)
	want := []Ranked{{"Norway", 94.2}, {"Denmark", 93.8}, {"Canada", 90.2}}
	if diff := cmp.Diff(want, s.Derived.Top); diff != "" {
		t.Errorf("top (-want +got):\n%s", diff)
	}
	want = []Ranked{{"Chad", 33.9}, {"Chile", 82.5}, {"Japan", 89.1}}
	if diff := cmp.Diff(want, s.Derived.Bottom); diff != "" {
		t.Errorf("bottom (-want +got):\n%s", diff)
	}
	if !strings.Contains(strings.Join(s.Canvas.Text(), "\n"), "Top 3 in the World") {
		t.Error("panel header missing")
	}
}

func TestWorld_Filter(t *testing.T) {
	data := loadData(t)
	s := Render(nav.State{View: nav.World, Continent: "Asia"}, data, testOptions(t))
	if diff := cmp.Diff(map[string]string{"Japan": s.Derived.Fills["Japan"]}, s.Derived.Fills); diff != "" {
		t.Errorf("only Japan should be drawn (-want +got):\n%s", diff)
	}

	s = Render(nav.State{View: nav.World, Continent: "Atlantis"}, data, testOptions(t))
	if len(s.Derived.Top) != 0 || len(s.Derived.Bottom) != 0 || len(s.Derived.Fills) != 0 {
		t.Errorf("expected empty scene, got %+v", s.Derived)
	}
	if !strings.Contains(strings.Join(s.Canvas.Text(), "\n"), "No countries in Atlantis") {
		t.Error("empty panel message missing")
	}
}

func TestCountry_Segments(t *testing.T) {
	data := loadData(t)
	norway, _ := data.Lookup("Norway")
	s := Render(nav.State{View: nav.Country, Country: norway, Continent: spi.All}, data, testOptions(t))
	if len(s.Derived.Segments) != 3 {
		t.Fatalf("segments = %d", len(s.Derived.Segments))
	}
	bhn, wb, opp := s.Derived.Segments[0], s.Derived.Segments[1], s.Derived.Segments[2]
	if bhn.Pillar != spi.BasicHumanNeeds || !(bhn.Radius > opp.Radius && opp.Radius > wb.Radius) {
		t.Errorf("segments = %+v", s.Derived.Segments)
	}
	if g := keyGesture(t, s, "1"); g.Kind != nav.SelectPillar || g.Pillar != spi.BasicHumanNeeds {
		t.Errorf("key 1 = %+v", g)
	}
}

func TestRadial(t *testing.T) {
	if r := radial(0, 80, 180); r != 80 {
		t.Errorf("radial(0) = %v", r)
	}
	if r := radial(100, 80, 180); r != 180 {
		t.Errorf("radial(100) = %v", r)
	}
	want := math.Sqrt(80*80 + 0.5*(180*180-80*80))
	if r := radial(50, 80, 180); math.Abs(r-want) > 1e-9 {
		t.Errorf("radial(50) = %v, want %v", r, want)
	}
}

func TestSubComponent(t *testing.T) {
	data := loadData(t)
	norway, _ := data.Lookup("Norway")
	st := nav.State{View: nav.SubComponent, Country: norway, Pillar: spi.Opportunity, Metric: spi.Inclusiveness, Continent: "Europe"}
	s := Render(st, data, testOptions(t))
	if s.Derived.Standing == nil {
		t.Fatal("no standing")
	}
	if got := *s.Derived.Standing; got.Position != 1 || got.Of != 2 || math.Abs(got.Mean-88.1) > 1e-9 {
		t.Errorf("standing = %+v", got)
	}
	want := &Table{
		Columns: []string{"#", "Country", "Inclusiveness"},
		Rows:    [][]string{{"1", "▶ Norway", "88.30"}, {"2", "Denmark", "87.90"}},
	}
	if diff := cmp.Diff(want, s.Table); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
}

func TestIntro(t *testing.T) {
	opts := testOptions(t)
	opts.Loading = true
	s := Render(nav.Initial(), nil, opts)
	if len(s.Keys) != 0 || len(s.Targets) != 0 {
		t.Error("begin must not be offered while loading")
	}

	opts.Loading = false
	opts.LoadErr = errors.New("boom")
	s = Render(nav.Initial(), nil, opts)
	if len(s.Keys) != 0 || !strings.Contains(strings.Join(s.Canvas.Text(), "\n"), "boom") {
		t.Error("load error should be shown without a begin control")
	}

	s = Render(nav.State{View: nav.World, Continent: spi.All}, nil, opts)
	if s.View != nav.Intro {
		t.Errorf("data views need data, got %s", s.View)
	}

	s = Render(nav.Initial(), loadData(t), testOptions(t))
	begin, ok := findTarget(s, "Begin")
	if !ok || begin.Gesture.Kind != nav.Begin {
		t.Errorf("begin target = %+v", begin)
	}
}

func TestCanvas_FillKeepsHoles(t *testing.T) {
	c := NewCanvas(13, 7)
	outer := [][2]int{{0, 0}, {24, 0}, {24, 24}, {0, 24}}
	hole := [][2]int{{4, 4}, {20, 4}, {20, 20}, {4, 20}}
	c.fillPolygon([][][2]int{outer, hole}, 0, BarFill)
	if _, ok := c.Hit(0, 0); !ok {
		t.Error("outer ring should be filled")
	}
	if _, ok := c.Hit(6, 3); ok {
		t.Error("hole should stay empty")
	}
	if got := []rune(c.Text()[3])[6]; got != ' ' {
		t.Errorf("hole cell = %q", got)
	}
	if _, ok := c.Hit(-1, 0); ok {
		t.Error("out of range hit")
	}
}

func TestScale(t *testing.T) {
	sc, err := NewScale("plasma")
	if err != nil {
		t.Fatal(err)
	}
	if got := sc.Color(40); got != "#0d0887" {
		t.Errorf("Color(40) = %s", got)
	}
	if got := sc.Color(10); got != sc.Color(40) {
		t.Errorf("values below the domain should clamp, got %s", got)
	}
	if got := sc.Color(120); got != "#f0f921" {
		t.Errorf("Color(120) = %s", got)
	}
	if got := sc.Color(math.NaN()); got != NeutralFill {
		t.Errorf("Color(NaN) = %s", got)
	}
	if _, err := NewScale("jet"); err == nil {
		t.Error("unknown palette should fail")
	}
}
