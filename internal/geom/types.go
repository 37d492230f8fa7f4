package geom

import (
	"errors"
	"math"
)

// ErrNoFeatures is returned when a resource decodes but yields no polygons.
var ErrNoFeatures = errors.New("no polygon features found")

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns a box that any Extend call replaces.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Valid reports whether the box has positive width and height.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Extend grows the box to include pt.
func (b BBox) Extend(pt [2]float64) BBox {
	b.MinX = math.Min(b.MinX, pt[0])
	b.MinY = math.Min(b.MinY, pt[1])
	b.MaxX = math.Max(b.MaxX, pt[0])
	b.MaxY = math.Max(b.MaxY, pt[1])
	return b
}

// Union returns the smallest box containing both.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Feature is one named boundary: a country or territory.
type Feature struct {
	Name     string
	ID       string
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

func newFeature(name, id string, polys [][][][2]float64) Feature {
	f := Feature{Name: name, ID: id, Polygons: polys, BBox: EmptyBBox()}
	for _, poly := range polys {
		for _, ring := range poly {
			for _, p := range ring {
				f.BBox = f.BBox.Extend(p)
			}
		}
	}
	return f
}

// Bounds returns the union of the boxes of fs.
func Bounds(fs []Feature) BBox {
	b := EmptyBBox()
	for _, f := range fs {
		b = b.Union(f.BBox)
	}
	return b
}
