// Package spi holds the Social Progress Index data model: country records,
// the pillar/component taxonomy and the continent filter.
package spi

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Metric is a numeric column of the dataset.
type Metric string

const (
	Score Metric = "spi_score"
	Rank  Metric = "spi_rank"

	BasicNutriMedCare     Metric = "basic_nutri_med_care"
	WaterSanitation       Metric = "water_sanitation"
	Shelter               Metric = "shelter"
	PersonalSafety        Metric = "personal_safety"
	AccessBasicKnowledge  Metric = "access_basic_knowledge"
	AccessInfoComm        Metric = "access_info_comm"
	HealthWellness        Metric = "health_wellness"
	EnvQuality            Metric = "env_quality"
	PersonalRights        Metric = "personal_rights"
	PersonalFreedomChoice Metric = "personal_freedom_choice"
	Inclusiveness         Metric = "inclusiveness"
	AccessAdvEdu          Metric = "access_adv_edu"
)

// Label humanizes the column key: "water_sanitation" becomes "Water Sanitation".
func (m Metric) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(m), "_", " "))
}

// Pillar returns the pillar the metric belongs to, or the zero Pillar for
// the overall score, the rank and unknown columns.
func (m Metric) Pillar() Pillar {
	for _, p := range Pillars() {
		if p.Has(m) {
			return p
		}
	}
	return NoPillar
}

// Record is one row of the dataset. Values are kept as the text read from
// the source and coerced on access.
type Record struct {
	Country   string
	Continent string
	fields    map[string]string
}

// NewRecord builds a record from a column -> raw value map.
func NewRecord(country, continent string, fields map[string]string) Record {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Record{Country: country, Continent: continent, fields: cp}
}

// Field returns the raw text of a column.
func (r Record) Field(col string) string {
	return r.fields[col]
}

// Columns returns the raw column map keys in no particular order.
func (r Record) Columns() []string {
	out := make([]string, 0, len(r.fields))
	for k := range r.fields {
		out = append(out, k)
	}
	return out
}

// Value coerces the metric column to a float. ok is false for empty or
// non-numeric cells.
func (r Record) Value(m Metric) (float64, bool) {
	s := strings.TrimSpace(r.fields[string(m)])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SPI is shorthand for Value(Score).
func (r Record) SPI() (float64, bool) { return r.Value(Score) }

// Position coerces spi_rank. Ranks written as floats ("12.0") are accepted.
func (r Record) Position() (int, bool) {
	v, ok := r.Value(Rank)
	if !ok || v < 1 {
		return 0, false
	}
	return int(v), true
}

// FormatScore renders a score with two decimals.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatValue renders the metric of r with two decimals, or "N/A".
func FormatValue(r Record, m Metric) string {
	v, ok := r.Value(m)
	if !ok {
		return "N/A"
	}
	return FormatScore(v)
}
