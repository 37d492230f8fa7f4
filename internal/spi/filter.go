package spi

import "sort"

// All is the synthetic continent selector matching every record.
const All = "all"

var continents = []string{"Asia", "Europe", "Africa", "North America", "South America", "Oceania"}

// Continents returns the closed continent set in display order, without All.
func Continents() []string {
	out := make([]string, len(continents))
	copy(out, continents)
	return out
}

// Selectors returns All followed by the continents.
func Selectors() []string {
	return append([]string{All}, continents...)
}

// KnownContinent reports whether name is in the closed set.
func KnownContinent(name string) bool {
	for _, c := range continents {
		if c == name {
			return true
		}
	}
	return false
}

// FilterByContinent returns the records on the given continent, keeping
// their order. All returns a copy of the input. Unknown names match nothing.
func FilterByContinent(records []Record, continent string) []Record {
	if continent == All {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	out := []Record{}
	for _, r := range records {
		if r.Continent == continent {
			out = append(out, r)
		}
	}
	return out
}

// Top returns the n records with the highest value of m, ties in input
// order. Records whose value does not parse are skipped.
func Top(records []Record, m Metric, n int) []Record {
	return ranked(records, m, n, true)
}

// Bottom returns the n records with the lowest value of m, ties in input
// order.
func Bottom(records []Record, m Metric, n int) []Record {
	return ranked(records, m, n, false)
}

type scored struct {
	rec Record
	v   float64
}

func ranked(records []Record, m Metric, n int, desc bool) []Record {
	if n <= 0 {
		return []Record{}
	}
	rows := make([]scored, 0, len(records))
	for _, r := range records {
		if v, ok := r.Value(m); ok {
			rows = append(rows, scored{rec: r, v: v})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return rows[i].v > rows[j].v
		}
		return rows[i].v < rows[j].v
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	out := make([]Record, len(rows))
	for i, s := range rows {
		out[i] = s.rec
	}
	return out
}

// Standing describes where one record sits among its peers for a metric.
type Standing struct {
	Position int // 1-based place in descending order, 0 if the record has no value
	Of       int // peers with a value
	Mean     float64
}

// StandingOf computes the standing of the named country among records.
func StandingOf(records []Record, country string, m Metric) Standing {
	all := Top(records, m, len(records))
	var st Standing
	sum := 0.0
	for i, r := range all {
		v, _ := r.Value(m)
		sum += v
		if r.Country == country {
			st.Position = i + 1
		}
	}
	st.Of = len(all)
	if st.Of > 0 {
		st.Mean = sum / float64(st.Of)
	}
	return st
}
