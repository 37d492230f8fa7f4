package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"spistory/internal/spi"
)

const (
	colCountry   = "country"
	colContinent = "continent"
)

// RequiredColumns lists the header names the loader insists on.
func RequiredColumns() []string {
	cols := []string{colCountry, colContinent}
	for _, m := range spi.Columns() {
		cols = append(cols, string(m))
	}
	return cols
}

// ParseCountries reads the metrics CSV. Cells stay text; the header is
// validated against RequiredColumns. Rows without a country name are
// skipped and duplicate names keep the first row.
func ParseCountries(r io.Reader, log *slog.Logger) ([]spi.Record, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil, fmt.Errorf("csv: empty input: %w", ErrNoRows)
	}
	header := make([]string, len(recs[0]))
	idx := make(map[string]int, len(header))
	for i, h := range recs[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns() {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("csv: %w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	seen := make(map[string]bool)
	var out []spi.Record
	for n, row := range recs[1:] {
		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		name := cell(colCountry)
		if name == "" {
			continue
		}
		if seen[name] {
			log.Warn("duplicate country row dropped", "country", name, "line", n+2)
			continue
		}
		seen[name] = true
		fields := make(map[string]string, len(header))
		for _, h := range header {
			fields[h] = cell(h)
		}
		continent := cell(colContinent)
		if !spi.KnownContinent(continent) {
			log.Warn("continent outside the known set", "country", name, "continent", continent)
		}
		out = append(out, spi.NewRecord(name, continent, fields))
	}
	if len(out) == 0 {
		return nil, nil, fmt.Errorf("csv: %w", ErrNoRows)
	}
	return out, header, nil
}
