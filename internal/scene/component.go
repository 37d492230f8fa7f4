package scene

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

const labelWidth = 26

// componentBars returns the pillar's sub-component bars, sorted by value
// descending when sorted is set. Values that do not parse sort last.
func componentBars(rec spi.Record, peers []spi.Record, p spi.Pillar, sorted bool) []Bar {
	var bars []Bar
	for _, m := range p.Components() {
		v, ok := rec.Value(m)
		bars = append(bars, Bar{Metric: m, Value: v, OK: ok, Mean: spi.StandingOf(peers, rec.Country, m).Mean})
	}
	if sorted {
		sort.SliceStable(bars, func(i, j int) bool {
			if bars[i].OK != bars[j].OK {
				return bars[i].OK
			}
			return bars[i].Value > bars[j].Value
		})
	}
	return bars
}

func renderComponent(b *builder, state nav.State, data *dataset.Dataset) {
	if state.Country == nil || !state.Pillar.Valid() {
		b.missingCountry()
		return
	}
	rec := *state.Country
	p := state.Pillar
	w, _ := b.c.Size()
	b.s.Title = p.Title() + " in " + rec.Country

	peers := spi.FilterByContinent(data.Countries, state.Continent)
	bars := componentBars(rec, peers, p, b.opts.SortComponents)
	b.s.Derived.Bars = bars

	barW := max(10, w-labelWidth-10)
	y := 1
	for i, bar := range bars {
		val := spi.FormatValue(rec, bar.Metric)
		t := b.target(Target{
			Label:     bar.Metric.Label(),
			Tooltip:   fmt.Sprintf("%s\n%s (peer mean %s)", bar.Metric.Label(), val, spi.FormatScore(bar.Mean)),
			Gesture:   nav.MetricGesture(bar.Metric),
			Clickable: true,
		})
		b.bind(nav.MetricGesture(bar.Metric), bar.Metric.Label(), strconv.Itoa(i+1))

		b.c.write(0, y, fmt.Sprintf("%d %s", i+1, truncate(bar.Metric.Label(), labelWidth-3)), t, "")
		n := 0
		if bar.OK {
			n = int(math.Round(float64(barW) * math.Max(0, math.Min(100, bar.Value)) / 100))
		}
		b.c.write(labelWidth, y, strings.Repeat("█", n), t, BarFill)
		b.c.region(labelWidth, y, barW, 1, t)
		if bar.Mean > 0 {
			mx := labelWidth + int(math.Round(float64(barW)*math.Min(100, bar.Mean)/100))
			b.c.cell(min(mx, labelWidth+barW-1), y+1, '▲', t, MeanMarker)
		}
		b.c.write(labelWidth+barW+2, y, val, t, "")
		y += 3
	}
	b.c.write(labelWidth, y, "▲ peer mean", -1, MeanMarker)

	b.s.Caption = fmt.Sprintf("### Deep Dive: %s\n\n"+
		"This chart breaks down the **%s** score of %s into its core components. "+
		"It reveals the specific areas where %s is performing well and where there are challenges. "+
		"Markers show the mean across the countries in the current filter. "+
		"Select a bar to compare %s with its peers on that component.",
		p.Title(), p.Title(), rec.Country, rec.Country, rec.Country)
}
