package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch m.screen {
	case screenQuit:
		return ""
	case screenBrowse:
		return m.browser.View(m.width, m.height)
	case screenLoading:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.spinner.View()+" loading snapshots…",
		)
	default:
		return m.viewPicker()
	}
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("snapview"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())

	if m.picker.searching {
		b.WriteString("filter: " + m.picker.searchInput.View() + "\n")
	} else if m.picker.query != "" {
		b.WriteString("filter: " + m.picker.query + "\n")
	}

	n := m.pickerLen()
	if n == 0 {
		if m.picker.query != "" {
			b.WriteString(warnStyle.Render("no snapshots match the filter") + "\n")
		} else {
			b.WriteString(warnStyle.Render("no snapshots in repository") + "\n")
		}
	}
	for i := 0; i < n; i++ {
		sn := m.snapshots[m.pickerAt(i)]
		line := snapshotLine(snapshotRow{
			id:    sn.ID,
			time:  sn.Time.Format("2006-01-02 15:04:05"),
			host:  sn.Hostname,
			paths: sn.Paths,
		})
		if i == m.picker.index {
			line = cursorLineStyle.Width(max(10, m.width-2)).Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("j/k move | Enter browse | / filter | c clear filter | q quit"))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
