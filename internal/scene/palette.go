package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour constants shared by the views.
const (
	NeutralFill = "#cccccc"
	BarFill     = "#3498db"
	HoverFill   = "#FFA500"
	MeanMarker  = "#f1c40f"
)

// ScoreDomain is the fixed input range of the map colour scale.
var ScoreDomain = [2]float64{40, 100}

var palettes = map[string][]string{
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
}

// Palettes lists the known palette names.
func Palettes() []string {
	out := make([]string, 0, len(palettes))
	for k := range palettes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Scale is a sequential colour scale over a numeric domain; values outside
// the domain clamp to the end colours.
type Scale struct {
	Name  string
	stops []colorful.Color
	lo    float64
	hi    float64
}

// NewScale builds the named palette over ScoreDomain.
func NewScale(name string) (Scale, error) {
	hexes, ok := palettes[name]
	if !ok {
		return Scale{}, fmt.Errorf("unknown palette %q", name)
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Scale{}, fmt.Errorf("palette %s: %w", name, err)
		}
		stops[i] = c
	}
	return Scale{Name: name, stops: stops, lo: ScoreDomain[0], hi: ScoreDomain[1]}, nil
}

// Color returns the hex colour for v.
func (s Scale) Color(v float64) string {
	if len(s.stops) == 0 {
		return NeutralFill
	}
	if math.IsNaN(v) {
		return NeutralFill
	}
	t := (v - s.lo) / (s.hi - s.lo)
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1].Hex()
	}
	return s.stops[i].BlendRgb(s.stops[i+1], pos-float64(i)).Hex()
}
