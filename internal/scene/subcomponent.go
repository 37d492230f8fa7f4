package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

func renderSubComponent(b *builder, state nav.State, data *dataset.Dataset) {
	if state.Country == nil || !state.Pillar.Has(state.Metric) {
		b.missingCountry()
		return
	}
	rec := *state.Country
	m := state.Metric
	w, _ := b.c.Size()
	scope := state.Continent
	if scope == spi.All {
		scope = "the World"
	}
	b.s.Title = m.Label() + " in " + rec.Country

	peers := spi.FilterByContinent(data.Countries, state.Continent)
	st := spi.StandingOf(peers, rec.Country, m)
	b.s.Derived.Standing = &st

	val := spi.FormatValue(rec, m)
	pos := "N/A"
	if st.Position > 0 {
		pos = fmt.Sprintf("%d of %d", st.Position, st.Of)
	}
	b.c.write(0, 0, state.Pillar.Title()+" / "+m.Label(), -1, "#E6E6E6")
	b.c.write(0, 2, "Position in "+scope+": "+pos, -1, "")

	barW := max(10, w-labelWidth-10)
	row := func(y int, label string, v float64, ok bool, color string) {
		b.c.write(0, y, label, -1, "")
		n := 0
		if ok {
			n = int(math.Round(float64(barW) * math.Max(0, math.Min(100, v)) / 100))
		}
		b.c.write(labelWidth, y, strings.Repeat("█", n), -1, color)
		text := "N/A"
		if ok {
			text = spi.FormatScore(v)
		}
		b.c.write(labelWidth+barW+2, y, text, -1, "")
	}
	v, ok := rec.Value(m)
	row(4, rec.Country, v, ok, BarFill)
	row(6, "Mean of "+strconv.Itoa(st.Of)+" peers", st.Mean, st.Of > 0, MeanMarker)

	top := spi.Top(peers, m, b.opts.TopN)
	bottom := spi.Bottom(peers, m, b.opts.TopN)
	b.s.Derived.Top = valuesOf(top, m)
	b.s.Derived.Bottom = valuesOf(bottom, m)
	b.s.Table = peerTable(rec.Country, m, top, bottom, st.Of)

	b.s.Caption = fmt.Sprintf("### %s\n\n"+
		"%s scores **%s** on %s, part of the %s pillar. "+
		"The table lists the strongest and weakest performers in %s for comparison.",
		m.Label(), rec.Country, val, m.Label(), state.Pillar.Title(), scope)
}

// peerTable lists the top rows then the bottom rows not already shown. The
// selected country is marked.
func peerTable(country string, m spi.Metric, top, bottom []spi.Record, of int) *Table {
	t := &Table{Columns: []string{"#", "Country", m.Label()}}
	seen := map[string]bool{}
	add := func(pos int, r spi.Record) {
		if seen[r.Country] {
			return
		}
		seen[r.Country] = true
		name := r.Country
		if name == country {
			name = "▶ " + name
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(pos), name, spi.FormatValue(r, m)})
	}
	for i, r := range top {
		add(i+1, r)
	}
	for i := len(bottom) - 1; i >= 0; i-- {
		add(of-i, bottom[i])
	}
	return t
}

func valuesOf(rs []spi.Record, m spi.Metric) []Ranked {
	out := make([]Ranked, 0, len(rs))
	for _, r := range rs {
		v, _ := r.Value(m)
		out = append(out, Ranked{Country: r.Country, Score: v})
	}
	return out
}
