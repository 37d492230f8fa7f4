package scene

import (
	"fmt"
	"math"
	"strconv"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/spi"
)

var pillarColors = map[spi.Pillar]string{
	spi.BasicHumanNeeds: "#e74c3c",
	spi.Wellbeing:       "#27ae60",
	spi.Opportunity:     "#8e44ad",
}

const trackColor = "#3a3a3a"

// innerRatio is the inner radius as a share of the outer one (80 of 180).
const innerRatio = 80.0 / 180.0

// radial maps a score in [0, 100] onto [inner, outer] so that area, not
// radius, is proportional to the score.
func radial(v, inner, outer float64) float64 {
	t := math.Max(0, math.Min(1, v/100))
	return math.Sqrt(inner*inner + t*(outer*outer-inner*inner))
}

func renderCountry(b *builder, state nav.State, data *dataset.Dataset) {
	if state.Country == nil {
		b.missingCountry()
		return
	}
	rec := *state.Country
	w, h := b.c.Size()
	b.s.Title = rec.Country

	chartW := w
	if w >= panelMinWidth {
		chartW = w - panelWidth - 1
	}
	cx, cy := float64(chartW), float64(h*2) // micro-pixel centre
	outer := math.Min(cx, cy) - 2
	inner := outer * innerRatio

	pillars := spi.Pillars()
	band := 2 * math.Pi / float64(len(pillars))
	idx := make([]int, len(pillars))
	for i, p := range pillars {
		v, ok := rec.Value(p.Metric())
		seg := Segment{Pillar: p, Value: v, OK: ok, Radius: inner}
		if ok {
			seg.Radius = radial(v, inner, outer)
		}
		b.s.Derived.Segments = append(b.s.Derived.Segments, seg)
		idx[i] = b.target(Target{
			Label:     p.Title(),
			Tooltip:   p.Title() + "\n" + spi.FormatValue(rec, p.Metric()),
			Gesture:   nav.PillarGesture(p),
			Clickable: true,
		})
		b.bind(nav.PillarGesture(p), p.Short(), strconv.Itoa(i+1))
	}

	if outer > 4 {
		for my := 0; my < h*4; my++ {
			for mx := 0; mx < chartW*2; mx++ {
				dx, dy := float64(mx)-cx, float64(my)-cy
				d := math.Hypot(dx, dy)
				if d < inner || d > outer {
					continue
				}
				// Angles run clockwise from twelve o'clock.
				theta := math.Atan2(dx, -dy)
				if theta < 0 {
					theta += 2 * math.Pi
				}
				i := min(int(theta/band), len(pillars)-1)
				off := theta - float64(i)*band
				if off*d < 1 || (band-off)*d < 1 {
					continue
				}
				seg := b.s.Derived.Segments[i]
				if d <= seg.Radius {
					b.c.setPixel(mx, my, idx[i], pillarColors[seg.Pillar])
				} else if d > outer-1 {
					b.c.setPixel(mx, my, -1, trackColor)
				}
			}
		}
		for i, seg := range b.s.Derived.Segments {
			mid := (float64(i) + 0.5) * band
			r := (inner + seg.Radius) / 2
			if !seg.OK || seg.Radius-inner < 4 {
				r = outer + 3
			}
			lx := int((cx + math.Sin(mid)*r) / 2)
			ly := int((cy - math.Cos(mid)*r) / 4)
			label := seg.Pillar.Short()
			b.c.write(lx-len(label)/2, ly, label, idx[i], "#ffffff")
			val := spi.FormatValue(rec, seg.Pillar.Metric())
			b.c.write(lx-len(val)/2, ly+1, val, idx[i], "#ffffff")
		}
	}

	score := spi.FormatValue(rec, spi.Score)
	rank := "N/A"
	if p, ok := rec.Position(); ok {
		rank = strconv.Itoa(p)
	}
	center := "SPI " + score
	b.c.write(int(cx/2)-len(center)/2, int(cy/4)-1, center, -1, "#E6E6E6")
	rankText := "Rank " + rank
	b.c.write(int(cx/2)-len(rankText)/2, int(cy/4), rankText, -1, NeutralFill)

	if chartW < w {
		x0 := chartW + 1
		b.c.write(x0, 0, "Pillars", -1, "#E6E6E6")
		for i, seg := range b.s.Derived.Segments {
			line := fmt.Sprintf("%d %-26s%s", i+1, seg.Pillar.Title(), spi.FormatValue(rec, seg.Pillar.Metric()))
			b.c.write(x0, 2+i, "■", idx[i], pillarColors[seg.Pillar])
			b.c.write(x0+2, 2+i, line, idx[i], "")
		}
	}

	b.s.Caption = fmt.Sprintf("### %s's Social Progress\n\n"+
		"Overall SPI Score: **%s** (Rank: %s)\n\n"+
		"This chart shows the three main pillars of social progress for %s. "+
		"Click on a coloured segment, or press **1**-**3**, to drill down into its sub-components "+
		"and see what drives this country's performance.",
		rec.Country, score, rank, rec.Country)
}
