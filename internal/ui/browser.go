package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snapview/internal/progress"
	"snapview/internal/repo"
	"snapview/internal/snap"
	"snapview/internal/ui/restore"
)

// maxViewBytes caps how much of a file the viewer reads.
const maxViewBytes = 1_000_000

// maxViewRows caps the viewer overlay height.
const maxViewRows = 40

const infoText = "(Esc) quit | (Enter) enter dir | (Backspace) return to parent | (v) view | (r) restore | (?) show all commands"

const helpText = `
Browse Commands:

          v : view file contents (text files only, up to 1MiB)
          r : restore selected item
          n : toggle numeric IDs
          s : compute information for (sub)-dirs

General Commands:

      q,Esc : exit
      Enter : enter dir
  Backspace : return to parent dir
          ? : show this help page
`

// browseMode is the sum type over the browser's five mutually exclusive
// interaction modes. Each variant carries only the state its mode needs.
type browseMode interface{ isBrowseMode() }

type modeBrowsing struct{}
type modeHelp struct{ popup popupText }
type modeConfirmExit struct{ prompt popupPrompt }
type modeViewFile struct{ popup popupScroll }
type modeRestore struct{ flow *restore.Model }

func (modeBrowsing) isBrowseMode()    {}
func (modeHelp) isBrowseMode()        {}
func (modeConfirmExit) isBrowseMode() {}
func (modeViewFile) isBrowseMode()    {}
func (modeRestore) isBrowseMode()     {}

// BrowseResult tells the hosting screen what to do after an input event.
type BrowseResult int

const (
	// BrowseNone keeps the browser active.
	BrowseNone BrowseResult = iota
	// BrowseExit quits the whole application (exit prompt accepted).
	BrowseExit
	// BrowseReturn leaves the browser past its root; the summary cache
	// is ready to be taken back via TakeSummaries.
	BrowseReturn
)

// navFrame is one saved step of the descent from the snapshot root:
// the parent tree value, its identifier, and the row that was selected
// when the user descended.
type navFrame struct {
	tree     *snap.Tree
	id       snap.ID
	selected int
}

// Browser is the navigation state machine for one snapshot. It owns the
// currently displayed tree, the navigation stack, the selection table
// and the summary cache for the duration of the browsing session.
type Browser struct {
	repo     repo.Repository
	snapshot snap.Snapshot
	reporter progress.Reporter

	mode    browseMode
	numeric bool

	table   table.Model
	tree    *snap.Tree
	treeID  snap.ID
	path    []string
	frames  []navFrame
	summary snap.Summary // aggregate of the displayed directory, for the footer

	summaries snap.SummaryMap

	width, height int
}

// NewBrowser fetches the snapshot's root tree and builds the browser in
// Browsing mode. The summary map is inherited from the hosting screen
// and handed back on exit.
func NewBrowser(r repo.Repository, sn snap.Snapshot, summaries snap.SummaryMap, reporter progress.Reporter) (*Browser, error) {
	tree, err := r.Tree(sn.Tree)
	if err != nil {
		return nil, fmt.Errorf("load root tree of snapshot %s: %w", sn.ID, err)
	}
	if summaries == nil {
		summaries = make(snap.SummaryMap)
	}
	t := table.New(
		table.WithColumns(browseColumns(80)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = cursorLineStyle
	t.SetStyles(s)

	b := &Browser{
		repo:      r,
		snapshot:  sn,
		reporter:  reporter,
		mode:      modeBrowsing{},
		table:     t,
		tree:      tree,
		treeID:    sn.Tree,
		summaries: summaries,
	}
	b.updateTable()
	return b, nil
}

func browseColumns(width int) []table.Column {
	nameW := width - 66
	if nameW < 12 {
		nameW = 12
	}
	return []table.Column{
		{Title: "Name", Width: nameW},
		{Title: "Size", Width: 10},
		{Title: "Mode", Width: 11},
		{Title: "User", Width: 10},
		{Title: "Group", Width: 10},
		{Title: "Time", Width: 19},
	}
}

// SetSize adapts the browser to the drawable area.
func (b *Browser) SetSize(width, height int) {
	b.width, b.height = width, height
	b.table.SetColumns(browseColumns(width))
	b.table.SetWidth(width)
	h := height - 4 // title, summary, footer, table header handled by widget
	if h < 3 {
		h = 3
	}
	b.table.SetHeight(h)
}

// TakeSummaries moves the summary cache out of the browser. The browser
// must not be used afterwards.
func (b *Browser) TakeSummaries() snap.SummaryMap {
	s := b.summaries
	b.summaries = nil
	return s
}

func (b *Browser) selectedNode() *snap.Node {
	i := b.table.Cursor()
	if b.tree == nil || i < 0 || i >= len(b.tree.Nodes) {
		return nil
	}
	return &b.tree.Nodes[i]
}

// nodePath is the slash-joined path of an entry of the current tree,
// relative to the snapshot root.
func (b *Browser) nodePath(name string) string {
	if len(b.path) == 0 {
		return name
	}
	return strings.Join(b.path, "/") + "/" + name
}

// lsRow projects one entry into its table row. For directories the size
// column shows the cached aggregate when known; size has already been
// substituted by updateTable in that case.
func (b *Browser) lsRow(n *snap.Node) table.Row {
	var user, group string
	if b.numeric {
		user, group = formatID(n.UID), formatID(n.GID)
	} else {
		user, group = orUnknown(n.User), orUnknown(n.Group)
	}
	mtime := "?"
	if n.ModTime != nil {
		mtime = n.ModTime.Format("2006-01-02 15:04:05")
	}
	return table.Row{n.Name, formatBytes(n.Size), n.ModeString(), user, group, mtime}
}

// updateTable recomputes all rows from the current tree, substituting
// cached aggregate sizes for directories and folding everything into
// the footer summary. The selected row survives the refresh unless the
// directory is empty.
func (b *Browser) updateTable() {
	old := b.table.Cursor()

	rows := make([]table.Row, 0, len(b.tree.Nodes))
	var sum snap.Summary
	for i := range b.tree.Nodes {
		n := b.tree.Nodes[i] // copy; the tree itself stays untouched
		if n.IsDir() && n.Subtree != "" {
			if cached, ok := b.summaries.Get(n.Subtree); ok {
				sum.AddSubtree(cached)
				n.Size = cached.Size
			} else {
				sum.Update(&n)
			}
		} else {
			sum.Update(&n)
		}
		rows = append(rows, b.lsRow(&n))
	}
	b.summary = sum
	b.table.SetRows(rows)

	if len(rows) == 0 {
		b.table.SetCursor(0)
		return
	}
	if old < 0 {
		old = 0
	}
	if old >= len(rows) {
		old = len(rows) - 1
	}
	b.table.SetCursor(old)
}

// enter descends into the selected directory. Anything else selected is
// a deliberate no-op.
func (b *Browser) enter() error {
	n := b.selectedNode()
	if n == nil || !n.IsDir() || n.Subtree == "" {
		return nil
	}
	child, err := b.repo.Tree(n.Subtree)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", n.Subtree.Short(), err)
	}
	b.frames = append(b.frames, navFrame{tree: b.tree, id: b.treeID, selected: b.table.Cursor()})
	b.path = append(b.path, n.Name)
	b.tree = child
	b.treeID = n.Subtree
	b.table.SetCursor(0)
	b.updateTable()
	return nil
}

// goback pops one navigation frame and restores the parent view
// bit-for-bit, including the previously selected row. It reports true
// when already at the root, meaning the browser should be left.
func (b *Browser) goback() bool {
	if len(b.path) > 0 {
		b.path = b.path[:len(b.path)-1]
	}
	if len(b.frames) == 0 {
		return true
	}
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	b.tree = f.tree
	b.treeID = f.id
	b.updateTable()
	b.table.SetCursor(f.selected)
	return false
}

func (b *Browser) toggleNumeric() {
	b.numeric = !b.numeric
	b.updateTable()
}

// computeSizes runs the full aggregate computation for the displayed
// subtree. It blocks until done; errors surface to the hosting screen.
func (b *Browser) computeSizes() error {
	c := b.reporter.Counter("computing (sub)-dir information")
	_, err := b.summaries.Compute(b.repo, b.treeID, c)
	c.Finish()
	if err != nil {
		return err
	}
	b.updateTable()
	return nil
}

// viewFile opens the text viewer for the selected file. Every refused
// precondition (cold repository, non-file, unreadable, binary) leaves
// the state untouched.
func (b *Browser) viewFile() {
	if b.repo.IsCold() {
		return
	}
	n := b.selectedNode()
	if n == nil || !n.IsFile() {
		return
	}
	length := n.Size
	if length > maxViewBytes {
		length = maxViewBytes
	}
	data, err := b.repo.ReadFile(n, 0, length)
	if err != nil {
		return
	}
	if !utf8.Valid(data) {
		return
	}
	content := string(data)
	height := countLines(content) + 1
	if height > maxViewRows {
		height = maxViewRows
	}
	width := b.width - 6
	if width < 20 || width > 100 {
		width = 80
	}
	title := fmt.Sprintf("%s:/%s", b.snapshot.ID, b.nodePath(n.Name))
	b.mode = modeViewFile{popup: newPopupScroll(title, content, width, height)}
}

// openRestore starts the restore sub-flow for the selected entry. The
// default target is absolute when the snapshot was taken from absolute
// source paths.
func (b *Browser) openRestore() {
	n := b.selectedNode()
	if n == nil {
		return
	}
	p := b.nodePath(n.Name)
	target := p
	if b.snapshot.AbsoluteSource() {
		target = "/" + p
	}
	label := fmt.Sprintf("%s:/%s", b.snapshot.ID, p)
	b.mode = modeRestore{flow: restore.New(b.repo, *n, label, target, b.reporter)}
}

// Input routes one key event to the active mode. Only Browsing mode
// sees the full keybindings; every other mode consumes only its own
// keys and returns control to Browsing when done.
func (b *Browser) Input(msg tea.KeyMsg) (BrowseResult, error) {
	switch mode := b.mode.(type) {
	case modeBrowsing:
		switch msg.String() {
		case "enter", "right":
			return BrowseNone, b.enter()
		case "backspace", "left":
			if b.goback() {
				return BrowseReturn, nil
			}
		case "esc", "q":
			b.mode = modeConfirmExit{prompt: newPopupPrompt("exit snapview", "do you want to exit? (y/n)")}
		case "?":
			b.mode = modeHelp{popup: newPopupText("help", helpText)}
		case "n":
			b.toggleNumeric()
		case "s":
			return BrowseNone, b.computeSizes()
		case "v":
			b.viewFile()
		case "r":
			b.openRestore()
		default:
			var cmd tea.Cmd
			b.table, cmd = b.table.Update(msg)
			_ = cmd
		}

	case modeHelp:
		switch msg.String() {
		case "q", " ", "?", "esc", "enter":
			b.mode = modeBrowsing{}
		}

	case modeConfirmExit:
		switch mode.prompt.input(msg) {
		case promptOk:
			return BrowseExit, nil
		case promptCancel:
			b.mode = modeBrowsing{}
		}

	case modeViewFile:
		switch msg.String() {
		case "esc", "q", "enter":
			b.mode = modeBrowsing{}
		default:
			var cmd tea.Cmd
			mode.popup.vp, cmd = mode.popup.vp.Update(msg)
			_ = cmd
			b.mode = mode
		}

	case modeRestore:
		done, err := mode.flow.Input(msg)
		if done {
			b.mode = modeBrowsing{}
			b.updateTable()
		}
		if err != nil {
			return BrowseNone, err
		}
	}
	return BrowseNone, nil
}

// View renders the browser. The restore sub-flow owns the whole area
// while active; overlays draw on top of the base table screen.
func (b *Browser) View(width, height int) string {
	if m, ok := b.mode.(modeRestore); ok {
		return m.flow.View(width, height)
	}

	title := fmt.Sprintf("%s:/%s", b.snapshot.ID, strings.Join(b.path, "/"))
	idMode := "ID names"
	if b.numeric {
		idMode = "numeric IDs"
	}
	summaryLine := fmt.Sprintf("total: %d, files: %d, dirs: %d, size: %s - %s",
		len(b.tree.Nodes), b.summary.Files, b.summary.Dirs, formatBytes(b.summary.Size), idMode)

	base := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		b.table.View(),
		subtleStyle.Render(summaryLine),
		helpStyle.Render(infoText),
	)

	switch mode := b.mode.(type) {
	case modeHelp:
		return overlayCenter(base, mode.popup.View(), width, height)
	case modeConfirmExit:
		return overlayCenter(base, mode.prompt.View(), width, height)
	case modeViewFile:
		return overlayCenter(base, mode.popup.View(), width, height)
	default:
		return base
	}
}
