package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spistory/internal/nav"
)

const (
	headerHeight = 2 // title + control row
	footerHeight = 2 // tooltip/status + help
	captionLines = 6
	peerRows     = 8 // canvas rows above the peer table
)

type layout struct {
	width    int
	canvasX  int
	canvasY  int
	canvasW  int
	canvasH  int
	tableH   int
	captionH int
}

// layout computes the screen regions. View and mouse handling must agree on
// it, so both go through here.
func (m Model) layout() layout {
	width := max(10, m.width)
	lo := layout{width: width, canvasY: headerHeight, captionH: captionLines}
	body := max(4, m.height-headerHeight-footerHeight-lo.captionH)
	lo.canvasW = width
	if m.showPicker {
		lo.canvasX = pickerWidth + 1
		lo.canvasW = max(10, width-lo.canvasX)
	}
	lo.canvasH = body
	if m.machine.State().View == nav.SubComponent && body > peerRows+3 {
		lo.canvasH = peerRows
		lo.tableH = body - peerRows
	}
	return lo
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := m.sc.Title
	if title == "" {
		title = "Social Progress Index"
	}
	header := titleStyle.Render(" spistory ─ " + title + " ")
	header = lipgloss.NewStyle().Width(lo.width).MaxWidth(lo.width).Render(header)
	controls := lipgloss.NewStyle().Width(lo.width).MaxWidth(lo.width).Render(m.bar.text)

	// Body
	var body string
	if m.showRecord {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.width, max(32, colW))
		bodyH := lo.canvasH + lo.tableH
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(max(3, min(bodyH-2, 20)))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		body = lipgloss.Place(lo.width, bodyH, lipgloss.Center, lipgloss.Center, box)
	} else {
		hl := -1
		if m.hovering {
			hl = m.hoverIdx
		}
		canvas := lipgloss.NewStyle().Width(lo.canvasW).Height(lo.canvasH).Render(m.sc.Canvas.Render(hl))
		if lo.tableH > 0 && m.sc.Table != nil {
			canvas = lipgloss.JoinVertical(lipgloss.Left, canvas,
				lipgloss.NewStyle().Height(lo.tableH).Render(m.peers.View()))
		}
		if m.showPicker {
			m.l.SetSize(pickerWidth-2, lo.canvasH+lo.tableH-2)
			sidebar := boxStyle.Width(pickerWidth).Height(lo.canvasH + lo.tableH - 2).Render(m.l.View())
			body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas)
		} else {
			body = canvas
		}
	}

	// Caption
	caption := clipLines(m.caption, lo.captionH)
	caption = lipgloss.NewStyle().Width(lo.width).Height(lo.captionH).MaxWidth(lo.width).Render(caption)

	// Footer: tooltip takes the status slot while hovering
	var line string
	switch {
	case m.hovering && m.tooltip != "":
		line = tooltipStyle.Render(" " + m.tooltip + " ")
	case m.loading:
		line = m.spin.View() + dimStyle.Render(" "+m.status)
	case m.loadErr != nil:
		line = errorStyle.Render(" " + m.status + " ")
	default:
		line = dimStyle.Render(" " + m.status + " ")
	}
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(lo.width).MaxWidth(lo.width).Render(line),
		lipgloss.NewStyle().Width(lo.width).MaxWidth(lo.width).Render(m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, controls, body, caption, footer)
	return appStyle.Width(lo.width).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.View(m.helpKeys())
}

func (m Model) helpKeys() viewKeys {
	k := viewKeys{scene: m.sc.KeyMap()}
	switch {
	case m.showPicker:
		k.scene = nil
		k.global = append(k.global, m.keys.Select, m.keys.Close)
	case m.showRecord:
		k.scene = nil
		k.global = append(k.global, m.keys.Close)
	}
	if !m.showPicker && !m.showRecord {
		st := m.machine.State()
		if st.HasBack() {
			k.global = append(k.global, m.keys.Back)
		}
		if st.View == nav.World {
			k.global = append(k.global, m.keys.Filter, m.keys.Picker, m.keys.Pan, m.keys.Zoom, m.keys.Reset)
		}
		if st.View != nav.Intro && m.data != nil {
			k.global = append(k.global, m.keys.Record)
		}
	}
	k.global = append(k.global, m.keys.Help, m.keys.Quit)
	return k
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
