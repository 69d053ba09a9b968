// Package restore implements the restore sub-flow the browser hands
// control to: pick a target path, confirm, then write the selected
// entry back to the local filesystem.
package restore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snapview/internal/log"
	"snapview/internal/progress"
	"snapview/internal/repo"
	"snapview/internal/snap"
)

type step int

const (
	stepTarget step = iota
	stepConfirm
	stepDone
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
	panelTitleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

// Model drives one restore of a single entry (file or subtree).
type Model struct {
	repo     repo.Repository
	node     snap.Node
	label    string
	reporter progress.Reporter

	step   step
	input  textinput.Model
	target string

	files uint64
	dirs  uint64
	bytes uint64
}

// New builds a restore flow for node, shown under the given display
// label, defaulting to target.
func New(r repo.Repository, node snap.Node, label, target string, reporter progress.Reporter) *Model {
	ti := textinput.New()
	ti.Placeholder = "restore target path"
	ti.SetValue(target)
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()
	return &Model{
		repo:     r,
		node:     node,
		label:    label,
		reporter: reporter,
		input:    ti,
	}
}

// Input processes one key event. It returns true when the flow is
// finished (completed or cancelled) and control goes back to browsing.
func (m *Model) Input(msg tea.KeyMsg) (bool, error) {
	switch m.step {
	case stepTarget:
		switch msg.String() {
		case "esc":
			return true, nil
		case "enter":
			target := strings.TrimSpace(m.input.Value())
			if target == "" {
				return false, nil
			}
			m.target = target
			m.step = stepConfirm
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			_ = cmd
		}
	case stepConfirm:
		switch msg.String() {
		case "y", "enter":
			if err := m.run(); err != nil {
				return true, err
			}
			m.step = stepDone
		case "n", "esc", "q":
			m.step = stepTarget
		}
	case stepDone:
		return true, nil
	}
	return false, nil
}

func (m *Model) run() error {
	c := m.reporter.Counter("restoring " + m.label)
	defer c.Finish()
	log.Infof("restore %s to %s", m.label, m.target)
	if err := os.MkdirAll(filepath.Dir(m.target), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	return m.restoreNode(&m.node, m.target, c)
}

func (m *Model) restoreNode(n *snap.Node, target string, c progress.Counter) error {
	c.Add(1)
	switch n.Type {
	case snap.TypeDir:
		if err := os.MkdirAll(target, n.Mode.Perm()); err != nil {
			return fmt.Errorf("create %s: %w", target, err)
		}
		m.dirs++
		tree, err := m.repo.Tree(n.Subtree)
		if err != nil {
			return err
		}
		for i := range tree.Nodes {
			child := &tree.Nodes[i]
			if err := m.restoreNode(child, filepath.Join(target, child.Name), c); err != nil {
				return err
			}
		}
	case snap.TypeFile:
		data, err := m.repo.ReadFile(n, 0, n.Size)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, n.Mode.Perm()); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		m.files++
		m.bytes += uint64(len(data))
	case snap.TypeSymlink:
		_ = os.Remove(target)
		if err := os.Symlink(n.LinkTarget, target); err != nil {
			return fmt.Errorf("symlink %s: %w", target, err)
		}
		m.files++
	default:
		log.Warnf("restore: skipping special entry %s", target)
		return nil
	}
	if n.ModTime != nil && n.Type != snap.TypeSymlink {
		_ = os.Chtimes(target, *n.ModTime, *n.ModTime)
	}
	return nil
}

// View renders the flow into the full drawable area.
func (m *Model) View(width, height int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("restore " + m.label))
	b.WriteString("\n\n")
	switch m.step {
	case stepTarget:
		b.WriteString("target: " + m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("(Enter) continue | (Esc) cancel"))
	case stepConfirm:
		b.WriteString(fmt.Sprintf("restore to %q? (y/n)", m.target))
	case stepDone:
		b.WriteString(fmt.Sprintf("restored %d files, %d dirs (%d bytes) to %s",
			m.files, m.dirs, m.bytes, m.target))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press any key to return"))
	}
	panel := panelStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
