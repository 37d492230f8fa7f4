package scene

import (
	"fmt"
	"math"
	"strings"

	"spistory/internal/dataset"
	"spistory/internal/geom"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

const (
	panelWidth    = 34
	panelMinWidth = 60 // canvases narrower than this get no side panel
)

func renderWorld(b *builder, state nav.State, data *dataset.Dataset) {
	w, h := b.c.Size()
	scope := state.Continent
	if scope == spi.All {
		scope = "the World"
	}
	b.s.Title = "Social Progress in " + scope
	b.s.Caption = "This world map shows the overall Social Progress Index score for each country. " +
		"Brighter shades indicate higher social progress. Click on a country, or press **tab** to pick one " +
		"from a list, to drill down and explore its detailed performance."

	mapW := w
	if w >= panelMinWidth {
		mapW = w - panelWidth - 1
	}

	var visible []geom.Feature
	for _, f := range data.Boundaries {
		rec, ok := data.Lookup(f.Name)
		if state.Continent != spi.All && (!ok || rec.Continent != state.Continent) {
			continue
		}
		visible = append(visible, f)
	}
	drawMap(b, visible, data, mapW, h)

	filtered := spi.FilterByContinent(data.Countries, state.Continent)
	b.s.Derived.Top = rankedOf(spi.Top(filtered, spi.Score, b.opts.TopN))
	b.s.Derived.Bottom = rankedOf(spi.Bottom(filtered, spi.Score, b.opts.TopN))
	if mapW < w {
		drawRankPanel(b, data, mapW+1, scope)
	}
}

func drawMap(b *builder, features []geom.Feature, data *dataset.Dataset, w, h int) {
	fit := geom.NewFit(geom.MercatorBBox(geom.Bounds(features)), w*2, h*4,
		b.opts.Zoom, b.opts.PanX*2, b.opts.PanY*4)
	if !fit.Valid() {
		return
	}
	// Cells right of the map column belong to the panel.
	clip := NewCanvas(w, h)
	for _, f := range features {
		rec, ok := data.Lookup(f.Name)
		fill := NeutralFill
		tip := f.Name + "\nSPI: N/A"
		if ok {
			if v, vok := rec.SPI(); vok {
				fill = b.opts.Scale.Color(v)
				tip = f.Name + "\nSPI: " + spi.FormatScore(v)
			}
		}
		b.s.Derived.Fills[f.Name] = fill
		t := Target{Label: f.Name, Tooltip: tip}
		if ok {
			t.Gesture = nav.CountryGesture(rec)
			t.Clickable = true
		}
		idx := b.target(t)
		for _, poly := range f.Polygons {
			var rings [][][2]int
			for _, ring := range poly {
				var pts [][2]int
				for _, p := range ring {
					x, y := fit.Apply(geom.Mercator(p[0], p[1]))
					pts = append(pts, [2]int{x, y})
				}
				if len(pts) >= 3 {
					rings = append(rings, pts)
				}
			}
			if len(rings) > 0 {
				clip.fillPolygon(rings, idx, fill)
			}
		}
	}
	b.c.blit(clip, 0, 0)
}

func drawRankPanel(b *builder, data *dataset.Dataset, x0 int, scope string) {
	_, h := b.c.Size()
	y := 0
	if len(b.s.Derived.Top) == 0 {
		b.c.write(x0, y, "No countries in "+scope, -1, NeutralFill)
		return
	}
	section := func(title string, rows []Ranked) {
		b.c.write(x0, y, title, -1, "#E6E6E6")
		y++
		for i, r := range rows {
			if y >= h {
				return
			}
			rec, _ := data.Lookup(r.Country)
			t := b.target(Target{
				Label:     r.Country,
				Tooltip:   r.Country + "\nSPI: " + spi.FormatScore(r.Score),
				Gesture:   nav.CountryGesture(rec),
				Clickable: rec != nil,
			})
			name := fmt.Sprintf("%d %-16s", i+1, truncate(r.Country, 16))
			b.c.write(x0, y, name, t, "")
			barW := panelWidth - len([]rune(name)) - 7
			n := int(math.Round(float64(barW) * r.Score / 100))
			b.c.write(x0+len([]rune(name)), y, strings.Repeat("█", max(0, n)), t, b.opts.Scale.Color(r.Score))
			b.c.write(x0+len([]rune(name))+barW+1, y, spi.FormatScore(r.Score), t, "")
			y++
		}
		y++
	}
	section(fmt.Sprintf("Top %d in %s", len(b.s.Derived.Top), scope), b.s.Derived.Top)
	section(fmt.Sprintf("Bottom %d in %s", len(b.s.Derived.Bottom), scope), b.s.Derived.Bottom)
}

func rankedOf(rs []spi.Record) []Ranked {
	out := make([]Ranked, 0, len(rs))
	for _, r := range rs {
		v, _ := r.SPI()
		out = append(out, Ranked{Country: r.Country, Score: v})
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
