// Package dataset loads the SPI metrics table and the world boundaries and
// joins them by country name.
package dataset

import (
	"errors"
	"fmt"

	"spistory/internal/geom"
	"spistory/internal/spi"
)

var (
	// ErrMissingColumn is wrapped when the metrics header lacks a column the
	// pillar taxonomy refers to.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoRows is wrapped when the metrics table has a header but no usable rows.
	ErrNoRows = errors.New("no country rows")
)

// LoadError reports that one of the two input resources could not be read
// or decoded.
type LoadError struct {
	Resource string
	Source   string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Resource, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dataset is the read-only data the views render from.
type Dataset struct {
	Countries  []spi.Record
	Boundaries []geom.Feature
	Columns    []string

	byName map[string]int
	bounds geom.BBox
}

// New indexes records by country name. Records are expected to be unique by
// name; the first occurrence wins.
func New(countries []spi.Record, boundaries []geom.Feature, columns []string) *Dataset {
	d := &Dataset{
		Countries:  countries,
		Boundaries: boundaries,
		Columns:    columns,
		byName:     make(map[string]int, len(countries)),
		bounds:     geom.Bounds(boundaries),
	}
	for i, r := range countries {
		if _, dup := d.byName[r.Country]; !dup {
			d.byName[r.Country] = i
		}
	}
	return d
}

// Lookup returns a copy of the record for a country or boundary name.
func (d *Dataset) Lookup(name string) (*spi.Record, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	r := d.Countries[i]
	return &r, true
}

// Bounds is the lon/lat extent of all boundaries.
func (d *Dataset) Bounds() geom.BBox { return d.bounds }

// Misses lists boundary names with no metrics row, in boundary order.
func (d *Dataset) Misses() []string {
	var out []string
	for _, f := range d.Boundaries {
		if _, ok := d.byName[f.Name]; !ok {
			out = append(out, f.Name)
		}
	}
	return out
}

// Unmapped lists countries with no boundary feature.
func (d *Dataset) Unmapped() []string {
	seen := make(map[string]bool, len(d.Boundaries))
	for _, f := range d.Boundaries {
		seen[f.Name] = true
	}
	var out []string
	for _, r := range d.Countries {
		if !seen[r.Country] {
			out = append(out, r.Country)
		}
	}
	return out
}
