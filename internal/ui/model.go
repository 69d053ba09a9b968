package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snapview/internal/config"
	"snapview/internal/progress"
	"snapview/internal/repo"
	"snapview/internal/snap"
)

// --- UI Styles ---
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle     = lipgloss.NewStyle().Faint(true)
	warnStyle       = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	popupStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	popupTitleStyle = lipgloss.NewStyle().Bold(true)
)

// --- Model / State ---
type screen int

const (
	screenLoading screen = iota
	screenPicker
	screenBrowse
	screenQuit
)

type pickerState struct {
	index       int
	searching   bool
	searchInput textinput.Model
	query       string
	filteredIdx []int // visible index -> snapshots index; nil = unfiltered
}

// Model is the top-level bubbletea model: it hosts the snapshot picker
// and the browser screen, and is the long-lived owner of the aggregate
// summary cache across browser sessions.
type Model struct {
	repo     repo.Repository
	cfg      config.Config
	reporter progress.Reporter

	screen        screen
	width, height int
	statusMsg     string

	spinner   spinner.Model
	snapshots []snap.Snapshot
	picker    pickerState

	// summaries is handed to a browser on entry and taken back when the
	// browser returns past its root.
	summaries snap.SummaryMap
	browser   *Browser
}

func InitialModel(r repo.Repository, cfg config.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle

	si := textinput.New()
	si.Placeholder = "filter snapshots"
	si.CharLimit = 200
	si.Width = 40

	return Model{
		repo:      r,
		cfg:       cfg,
		reporter:  progress.Log(),
		screen:    screenLoading,
		spinner:   sp,
		picker:    pickerState{searchInput: si},
		summaries: make(snap.SummaryMap),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSnapshotsCmd())
}

type snapshotsMsg struct {
	snaps []snap.Snapshot
	err   error
}

func (m Model) loadSnapshotsCmd() tea.Cmd {
	return func() tea.Msg {
		snaps, err := m.repo.Snapshots()
		return snapshotsMsg{snaps: snaps, err: err}
	}
}
