package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"snapview/internal/log"
)

// ---------- Snapshot Picker ----------

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.picker.searching {
		return m.handlePickerSearchKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		m.screen = screenQuit
		return m, tea.Quit
	case "j", "down":
		if m.picker.index < m.pickerLen()-1 {
			m.picker.index++
		}
	case "k", "up":
		if m.picker.index > 0 {
			m.picker.index--
		}
	case "g":
		m.picker.index = 0
	case "G":
		if n := m.pickerLen(); n > 0 {
			m.picker.index = n - 1
		}
	case "/", "f":
		m.picker.searching = true
		m.picker.searchInput.SetValue(m.picker.query)
		m.picker.searchInput.Focus()
	case "c":
		m.picker.query = ""
		m.picker.filteredIdx = nil
		m.picker.index = 0
	case "enter":
		return m.openBrowser()
	}
	return m, nil
}

func (m Model) handlePickerSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picker.searching = false
		m.picker.searchInput.Blur()
		m.picker.query = ""
		m.picker.filteredIdx = nil
		m.picker.index = 0
		return m, nil
	case "enter":
		m.picker.searching = false
		m.picker.searchInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.picker.searchInput, cmd = m.picker.searchInput.Update(msg)
		m.picker.query = m.picker.searchInput.Value()
		m.picker.filteredIdx = filterSnapshots(m.snapshots, m.picker.query)
		m.picker.index = 0
		return m, cmd
	}
}

// pickerLen returns the number of visible snapshot rows.
func (m Model) pickerLen() int {
	if m.picker.filteredIdx != nil {
		return len(m.picker.filteredIdx)
	}
	return len(m.snapshots)
}

// pickerAt maps a visible row back to the snapshots slice.
func (m Model) pickerAt(i int) int {
	if m.picker.filteredIdx != nil {
		return m.picker.filteredIdx[i]
	}
	return i
}

func (m Model) openBrowser() (Model, tea.Cmd) {
	if m.pickerLen() == 0 {
		return m, nil
	}
	sn := m.snapshots[m.pickerAt(m.picker.index)]
	b, err := NewBrowser(m.repo, sn, m.summaries, m.reporter)
	if err != nil {
		m.statusMsg = fmt.Sprintf("opening snapshot %s failed: %v", sn.ID, err)
		log.Errorf("open snapshot %s: %v", sn.ID, err)
		return m, nil
	}
	b.numeric = m.cfg.NumericIDs
	b.updateTable()
	b.SetSize(m.width, m.height)
	// the summary cache moves into the browser for this session
	m.summaries = nil
	m.browser = b
	m.screen = screenBrowse
	m.statusMsg = ""
	return m, nil
}

func snapshotLine(sn snapshotRow) string {
	return fmt.Sprintf("%-10s  %s  %-12s  %s",
		sn.id, sn.time, sn.host, strings.Join(sn.paths, ", "))
}

type snapshotRow struct {
	id    string
	time  string
	host  string
	paths []string
}
