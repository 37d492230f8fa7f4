package tui

import (
	"errors"
	"fmt"
	"strings"

	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"spistory/internal/dataset"
	"spistory/internal/nav"
	"spistory/internal/scene"
	"spistory/internal/spi"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuild()
		return m, nil
	case loadedMsg:
		m.loading = false
		m.data = msg.data
		m.status = fmt.Sprintf("loaded %d countries, %d boundaries", len(m.data.Countries), len(m.data.Boundaries))
		m.rebuild()
		return m, nil
	case loadErrMsg:
		m.loading = false
		m.loadErr = msg.err
		m.status = "load failed: " + msg.err.Error()
		var le *dataset.LoadError
		if errors.As(msg.err, &le) {
			m.log.Error("load failed", "resource", le.Resource, "source", le.Source, "err", le.Err)
		}
		m.rebuild()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showPicker && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showPicker {
		switch {
		case key.Matches(msg, m.keys.Select):
			if it, ok := m.l.SelectedItem().(countryItem); ok {
				rec := it.rec
				m.showPicker = false
				m.apply(nav.CountryGesture(&rec))
			}
			return m, nil
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Picker):
			m.showPicker = false
			m.rebuild()
			return m, nil
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showRecord {
		if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Record) {
			m.showRecord = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	st := m.machine.State()
	switch {
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if st.HasBack() {
			m.apply(nav.BackGesture())
		}
		return m, nil
	case key.Matches(msg, m.keys.Record) && st.View != nav.Intro:
		m.showRecord = m.refreshRecordTable()
		return m, nil
	}

	if st.View == nav.World {
		switch {
		case key.Matches(msg, m.keys.Filter):
			sels := spi.Selectors()
			i := int(msg.String()[0] - '0')
			if i < len(sels) {
				m.apply(nav.ContinentGesture(sels[i]))
			}
			return m, nil
		case key.Matches(msg, m.keys.Picker):
			m.refreshPicker()
			m.showPicker = true
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.ZoomIn):
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
				m.rebuild()
			}
			return m, nil
		case key.Matches(msg, m.keys.ZoomOut):
			if m.zoom > 0.25 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
				m.rebuild()
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.zoom, m.offsetX, m.offsetY = 1.0, 0, 0
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.offsetY += 1
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.offsetY -= 1
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Left):
			m.offsetX += 2
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.offsetX -= 2
			m.rebuild()
			return m, nil
		}
	}

	for _, b := range m.sc.Keys {
		if key.Matches(msg, b.Key) {
			m.apply(b.Gesture)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	lo := m.layout()
	ev := tea.MouseEvent(msg)
	if m.showRecord {
		return m
	}
	switch {
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if ev.Y == 1 {
			if g, ok := m.bar.hit(ev.X); ok {
				m.apply(g)
			}
			return m
		}
		if t, ok := m.sc.Hit(ev.X-lo.canvasX, ev.Y-lo.canvasY); ok {
			if t.Clickable {
				m.apply(t.Gesture)
			} else {
				m.status = t.Label + ": no data"
			}
		}
		return m
	case ev.Action == tea.MouseActionPress && m.machine.State().View == nav.World &&
		(ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown):
		if ev.Button == tea.MouseButtonWheelUp && m.zoom < 64 {
			m.zoom *= 1.2
		} else if ev.Button == tea.MouseButtonWheelDown && m.zoom > 0.25 {
			m.zoom /= 1.2
		}
		m.rebuild()
		return m
	}
	// Motion only moves the tooltip.
	if i, ok := m.sc.Canvas.Hit(ev.X-lo.canvasX, ev.Y-lo.canvasY); ok && i < len(m.sc.Targets) {
		m.hovering = true
		m.hoverIdx = i
		m.tooltip = strings.ReplaceAll(m.sc.Targets[i].Tooltip, "\n", " · ")
	} else {
		m.hovering = false
		m.hoverIdx = -1
		m.tooltip = ""
	}
	return m
}

// apply requests a transition and rebuilds the scene when the state moved.
func (m *Model) apply(g nav.Gesture) {
	from := m.machine.State()
	if !m.machine.Apply(g) {
		if g.Kind == nav.SelectContinent && from.View != nav.World {
			m.status = "continent filters apply to the world map"
		}
		return
	}
	to := m.machine.State()
	m.log.Debug("transition", "gesture", g.Kind.String(), "from", from.View.String(), "to", to.View.String(),
		"country", to.CountryName(), "continent", to.Continent)
	m.status = to.View.String()
	if name := to.CountryName(); name != "" && to.View != nav.World {
		m.status += " · " + name
	}
	if to.Continent != spi.All {
		m.status += " · " + to.Continent
	}
	m.showRecord = false
	m.showPicker = false
	m.rebuild()
}

// rebuild discards the scene and renders the current state from scratch,
// together with the control row and any tables fed by the scene.
func (m *Model) rebuild() {
	lo := m.layout()
	st := m.machine.State()
	m.sc = scene.Render(st, m.data, scene.Options{
		Width:          lo.canvasW,
		Height:         lo.canvasH,
		Zoom:           m.zoom,
		PanX:           m.offsetX,
		PanY:           m.offsetY,
		Scale:          m.opts.Scale,
		TopN:           m.opts.TopN,
		SortComponents: m.opts.SortComponents,
		Loading:        m.loading,
		LoadErr:        m.loadErr,
	})
	m.bar = buildControls(st, lo.width)
	m.caption = m.captions.Render(m.sc.Caption, lo.width-2)
	m.hovering, m.hoverIdx, m.tooltip = false, -1, ""
	if m.sc.Table != nil {
		setTable(&m.peers, m.sc.Table.Columns, m.sc.Table.Rows, false)
		m.peers.SetHeight(max(2, lo.tableH-1))
	}
}
