package tui

import (
	"sort"

	list "github.com/charmbracelet/bubbles/list"

	"spistory/internal/spi"
)

const pickerWidth = 28

type countryItem struct {
	rec         spi.Record
	title, desc string
}

func (c countryItem) Title() string       { return c.title }
func (c countryItem) Description() string { return c.desc }
func (c countryItem) FilterValue() string { return c.title }

// refreshPicker fills the country list with the records of the current
// continent filter, sorted by name.
func (m *Model) refreshPicker() {
	if m.data == nil {
		m.l.SetItems(nil)
		return
	}
	recs := spi.FilterByContinent(m.data.Countries, m.machine.State().Continent)
	items := make([]list.Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, countryItem{
			rec:   r,
			title: r.Country,
			desc:  r.Continent + " · SPI " + spi.FormatValue(r, spi.Score),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(countryItem).Title() < items[j].(countryItem).Title() })
	lo := m.layout()
	m.l.SetSize(pickerWidth-2, max(4, lo.canvasH+lo.tableH-2))
	m.l.SetItems(items)
	m.l.ResetFilter()
	if len(items) == 0 {
		m.status = "no countries for the current filter"
	}
}
