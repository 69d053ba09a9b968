package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"snapview/internal/log"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.screen = screenQuit
			return m, tea.Quit
		}
		switch m.screen {
		case screenPicker:
			return m.handlePickerKey(msg)
		case screenBrowse:
			return m.handleBrowseKey(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.browser != nil {
			m.browser.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case snapshotsMsg:
		if msg.err != nil {
			m.statusMsg = "loading snapshots failed: " + msg.err.Error()
			log.Errorf("list snapshots: %v", msg.err)
			m.screen = screenPicker
			return m, nil
		}
		m.snapshots = msg.snaps
		m.picker.index = 0
		m.picker.filteredIdx = nil
		m.screen = screenPicker
		if len(m.snapshots) == 0 {
			m.statusMsg = "repository holds no snapshots - run 'snapview import' first"
		}
		return m, nil

	case spinner.TickMsg:
		if m.screen == screenLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleBrowseKey forwards everything to the browser and reacts to its
// result. Fetch errors surface on the status line, never as a crash.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	res, err := m.browser.Input(msg)
	if err != nil {
		m.statusMsg = err.Error()
		log.Errorf("browse: %v", err)
	}
	switch res {
	case BrowseExit:
		m.screen = screenQuit
		return m, tea.Quit
	case BrowseReturn:
		m.summaries = m.browser.TakeSummaries()
		m.browser = nil
		m.screen = screenPicker
	}
	return m, nil
}
