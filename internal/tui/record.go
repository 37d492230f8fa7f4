package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"spistory/internal/nav"
	"spistory/internal/spi"
)

const maxColW = 24

// refreshRecordTable rebuilds the record table. The world view lists the
// filtered countries; deeper views list every field of the selected
// country.
func (m *Model) refreshRecordTable() bool {
	cols, rows := m.buildRecordRows()
	// If there are no columns or rows, disable the table to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showRecord = false
		m.status = "no records for the current view"
		return false
	}
	setTable(&m.tbl, cols, rows, true)
	return true
}

func (m *Model) buildRecordRows() ([]string, [][]string) {
	if m.data == nil {
		return nil, nil
	}
	st := m.machine.State()
	if st.View == nav.World {
		cols := []string{"country", "continent", string(spi.Score), string(spi.Rank)}
		var rows [][]string
		for _, r := range spi.FilterByContinent(m.data.Countries, st.Continent) {
			rows = append(rows, []string{r.Country, r.Continent, spi.FormatValue(r, spi.Score), r.Field(string(spi.Rank))})
		}
		return cols, rows
	}
	if st.Country == nil {
		return nil, nil
	}
	rows := make([][]string, 0, len(m.data.Columns))
	for _, c := range m.data.Columns {
		v := st.Country.Field(c)
		if _, ok := st.Country.Value(spi.Metric(c)); ok && spi.Metric(c) != spi.Rank {
			v = spi.FormatValue(*st.Country, spi.Metric(c))
		}
		rows = append(rows, []string{c, v})
	}
	return []string{"field", "value"}, rows
}

// setTable maps columns and rows onto a bubbles table with a leading
// index column; rows are normalised to the column count.
func setTable(t *table.Model, cols []string, rows [][]string, index bool) {
	tcols := make([]table.Column, 0, len(cols)+1)
	if index {
		tcols = append(tcols, table.Column{Title: "#", Width: 4})
	}
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			if i < len(r) {
				w = max(w, len([]rune(r[i]))+2)
			}
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		if index {
			row = append(row, fmt.Sprintf("%d", i+1))
		}
		row = append(row, r...)
		// Normalize each row to match the number of table columns
		if len(row) < len(tcols) {
			row = append(row, make([]string, len(tcols)-len(row))...)
		} else if len(row) > len(tcols) {
			row = row[:len(tcols)]
		}
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	t.SetRows(nil)
	t.SetColumns(tcols)
	t.SetRows(trows)
}
