package geom

import "math"

// MaxLat is the latitude at which Mercator is clipped.
const MaxLat = 85.05112878

// Mercator projects lon/lat degrees onto the unit Mercator plane: x in
// [-pi, pi], y growing northwards.
func Mercator(lon, lat float64) (x, y float64) {
	lat = math.Max(-MaxLat, math.Min(MaxLat, lat))
	x = lon * math.Pi / 180
	y = math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
	return x, y
}

// MercatorBBox projects the corners of a lon/lat box.
func MercatorBBox(b BBox) BBox {
	x0, y0 := Mercator(b.MinX, b.MinY)
	x1, y1 := Mercator(b.MaxX, b.MaxY)
	return BBox{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// Fit maps projected coordinates into a w x h pixel box, preserving aspect
// ratio and centring the content, with zoom about the centre and a pan
// offset in pixels.
type Fit struct {
	scale  float64
	ox, oy float64
}

// NewFit builds a Fit for the projected box b.
func NewFit(b BBox, w, h int, zoom float64, panX, panY int) Fit {
	if !b.Valid() || w <= 1 || h <= 1 {
		return Fit{}
	}
	if zoom <= 0 {
		zoom = 1
	}
	sx := float64(w-1) / (b.MaxX - b.MinX)
	sy := float64(h-1) / (b.MaxY - b.MinY)
	s := math.Min(sx, sy) * zoom
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	return Fit{
		scale: s,
		ox:    float64(w-1)/2 - cx*s + float64(panX),
		oy:    float64(h-1)/2 + cy*s + float64(panY),
	}
}

// Valid reports whether the fit has a usable scale.
func (f Fit) Valid() bool { return f.scale > 0 }

// Apply maps a projected point to pixel coordinates; y grows downwards.
func (f Fit) Apply(x, y float64) (int, int) {
	return int(math.Round(x*f.scale + f.ox)), int(math.Round(f.oy - y*f.scale))
}
