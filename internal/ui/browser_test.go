package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snapview/internal/progress"
	"snapview/internal/repo/memory"
	"snapview/internal/snap"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// newTestBrowser builds a browser over the fixture
//
//	root: a.txt (10), b.txt (20), sub/ -> d.txt (5)
//
// rooted in a snapshot taken from an absolute source path.
func newTestBrowser(t *testing.T) (*Browser, *memory.Repo) {
	t.Helper()
	r := memory.New()

	sub := &snap.Tree{Nodes: []snap.Node{
		r.FileNode("d.txt", bytes.Repeat([]byte("d"), 5)),
	}}
	uid := uint32(1000)
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := r.FileNode("a.txt", bytes.Repeat([]byte("a"), 10))
	a.User, a.UID = "alice", &uid
	a.ModTime = &mtime
	root := &snap.Tree{Nodes: []snap.Node{
		a,
		r.FileNode("b.txt", bytes.Repeat([]byte("b"), 20)),
		r.DirNode("sub", sub),
	}}
	rootID := r.AddTree(root)
	sn := r.AddSnapshot("0123abcd", []string{"/home/alice"}, rootID)

	b, err := NewBrowser(r, sn, nil, progress.Discard())
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	b.SetSize(100, 30)
	return b, r
}

func (b *Browser) mustBrowse(t *testing.T) {
	t.Helper()
	if _, ok := b.mode.(modeBrowsing); !ok {
		t.Fatalf("expected browsing mode, got %T", b.mode)
	}
}

func TestEnterAndGoback(t *testing.T) {
	b, _ := newTestBrowser(t)
	rootID := b.treeID

	b.table.SetCursor(2) // sub/
	res, err := b.Input(key("enter"))
	if err != nil || res != BrowseNone {
		t.Fatalf("enter: res=%v err=%v", res, err)
	}
	if len(b.frames) != 1 || len(b.path) != 1 || b.path[0] != "sub" {
		t.Fatalf("descent not recorded: frames=%d path=%v", len(b.frames), b.path)
	}
	if b.treeID == rootID {
		t.Fatal("tree did not change on descent")
	}
	if b.table.Cursor() != 0 {
		t.Fatalf("cursor not reset on descent: %d", b.table.Cursor())
	}

	res, err = b.Input(key("backspace"))
	if err != nil || res != BrowseNone {
		t.Fatalf("backspace: res=%v err=%v", res, err)
	}
	if b.treeID != rootID || len(b.path) != 0 || len(b.frames) != 0 {
		t.Fatalf("parent view not restored: id=%s path=%v", b.treeID.Short(), b.path)
	}
	if b.table.Cursor() != 2 {
		t.Fatalf("previous selection not restored: %d", b.table.Cursor())
	}
}

func TestGobackAtRootLeavesBrowser(t *testing.T) {
	b, _ := newTestBrowser(t)
	res, err := b.Input(key("backspace"))
	if err != nil || res != BrowseReturn {
		t.Fatalf("backspace at root: res=%v err=%v", res, err)
	}
	if s := b.TakeSummaries(); s == nil {
		t.Fatal("summary cache must survive the session")
	}
	if b.summaries != nil {
		t.Fatal("TakeSummaries must move, not copy")
	}
}

func TestEnterOnFileIsNoop(t *testing.T) {
	b, _ := newTestBrowser(t)
	rootID := b.treeID
	b.table.SetCursor(0) // a.txt
	res, err := b.Input(key("enter"))
	if err != nil || res != BrowseNone {
		t.Fatalf("enter on file: res=%v err=%v", res, err)
	}
	if b.treeID != rootID || len(b.frames) != 0 || b.table.Cursor() != 0 {
		t.Fatal("state changed on file selection")
	}
}

func TestEnterFetchErrorKeepsState(t *testing.T) {
	b, r := newTestBrowser(t)
	rootID := b.treeID
	r.TreeErr = errors.New("backend down")

	b.table.SetCursor(2)
	_, err := b.Input(key("enter"))
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if b.treeID != rootID || len(b.frames) != 0 || len(b.path) != 0 {
		t.Fatal("failed descent must not alter the view")
	}
	b.mustBrowse(t)
}

func TestComputeSizes(t *testing.T) {
	b, _ := newTestBrowser(t)

	// before computing, the dir row shows its declared size
	if got := b.table.Rows()[2][1]; got != "0 B" {
		t.Fatalf("dir size before compute = %q", got)
	}
	if _, err := b.Input(key("s")); err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := snap.Summary{Files: 3, Dirs: 1, Size: 35}
	if b.summary != want {
		t.Fatalf("footer summary = %+v, want %+v", b.summary, want)
	}
	if got := b.table.Rows()[2][1]; got != "5 B" {
		t.Fatalf("dir size after compute = %q", got)
	}
	if _, ok := b.summaries.Get(b.treeID); !ok {
		t.Fatal("root aggregate not cached")
	}
}

func TestToggleNumericIDs(t *testing.T) {
	b, _ := newTestBrowser(t)

	if got := b.table.Rows()[0][3]; got != "alice" {
		t.Fatalf("user column = %q, want symbolic name", got)
	}
	if _, err := b.Input(key("n")); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := b.table.Rows()[0][3]; got != "1000" {
		t.Fatalf("user column after toggle = %q, want numeric ID", got)
	}
	if b.table.Cursor() != 0 {
		t.Fatal("toggle must not move the selection")
	}
	if _, err := b.Input(key("n")); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if got := b.table.Rows()[0][3]; got != "alice" {
		t.Fatalf("user column after second toggle = %q", got)
	}
}

func TestHelpModeIsExclusive(t *testing.T) {
	b, _ := newTestBrowser(t)
	if _, err := b.Input(key("?")); err != nil {
		t.Fatalf("open help: %v", err)
	}
	if _, ok := b.mode.(modeHelp); !ok {
		t.Fatalf("expected help mode, got %T", b.mode)
	}

	// browse bindings are inert while help is open
	if _, err := b.Input(key("n")); err != nil {
		t.Fatalf("key in help: %v", err)
	}
	if b.numeric {
		t.Fatal("browse binding leaked through the help overlay")
	}
	if _, ok := b.mode.(modeHelp); !ok {
		t.Fatalf("unrelated key closed the help overlay: %T", b.mode)
	}
}

func TestHelpCloseKeys(t *testing.T) {
	for _, k := range []string{"q", " ", "?", "esc", "enter"} {
		b, _ := newTestBrowser(t)
		b.Input(key("?"))
		if _, err := b.Input(key(k)); err != nil {
			t.Fatalf("close help with %q: %v", k, err)
		}
		if _, ok := b.mode.(modeBrowsing); !ok {
			t.Fatalf("help not closed by %q: %T", k, b.mode)
		}
	}
}

func TestConfirmExit(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.table.SetCursor(1)

	b.Input(key("q"))
	if _, ok := b.mode.(modeConfirmExit); !ok {
		t.Fatalf("expected exit prompt, got %T", b.mode)
	}
	res, err := b.Input(key("n"))
	if err != nil || res != BrowseNone {
		t.Fatalf("decline: res=%v err=%v", res, err)
	}
	b.mustBrowse(t)
	if b.table.Cursor() != 1 {
		t.Fatal("declined prompt must leave the selection alone")
	}

	b.Input(key("esc"))
	res, err = b.Input(key("y"))
	if err != nil || res != BrowseExit {
		t.Fatalf("accept: res=%v err=%v", res, err)
	}
}

func TestViewFileOpensAndCloses(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.table.SetCursor(0)
	if _, err := b.Input(key("v")); err != nil {
		t.Fatalf("view: %v", err)
	}
	if _, ok := b.mode.(modeViewFile); !ok {
		t.Fatalf("expected file viewer, got %T", b.mode)
	}
	b.Input(key("esc"))
	b.mustBrowse(t)
}

func TestViewFileReadsAtMostOneMegabyte(t *testing.T) {
	r := memory.New()
	big := r.FileNode("big.txt", bytes.Repeat([]byte("x"), maxViewBytes+1))
	rootID := r.AddTree(&snap.Tree{Nodes: []snap.Node{big}})
	sn := r.AddSnapshot("aaaa1111", []string{"/data"}, rootID)

	b, err := NewBrowser(r, sn, nil, progress.Discard())
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	b.SetSize(100, 30)

	b.Input(key("v"))
	if r.LastReadLen != maxViewBytes {
		t.Fatalf("viewer read %d bytes, cap is %d", r.LastReadLen, uint64(maxViewBytes))
	}
	if _, ok := b.mode.(modeViewFile); !ok {
		t.Fatalf("expected file viewer, got %T", b.mode)
	}
}

func TestViewFileRefusals(t *testing.T) {
	t.Run("cold repository", func(t *testing.T) {
		b, r := newTestBrowser(t)
		r.SetCold(true)
		b.table.SetCursor(0)
		b.Input(key("v"))
		b.mustBrowse(t)
	})

	t.Run("directory selected", func(t *testing.T) {
		b, _ := newTestBrowser(t)
		b.table.SetCursor(2)
		b.Input(key("v"))
		b.mustBrowse(t)
	})

	t.Run("binary content", func(t *testing.T) {
		r := memory.New()
		bin := r.FileNode("core", []byte{0xff, 0xfe, 0x00, 0x80})
		rootID := r.AddTree(&snap.Tree{Nodes: []snap.Node{bin}})
		sn := r.AddSnapshot("bbbb2222", []string{"/data"}, rootID)
		b, err := NewBrowser(r, sn, nil, progress.Discard())
		if err != nil {
			t.Fatalf("NewBrowser: %v", err)
		}
		b.Input(key("v"))
		b.mustBrowse(t)
	})
}

func TestRestoreModeOpensAndCancels(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.table.SetCursor(2)
	if _, err := b.Input(key("r")); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := b.mode.(modeRestore); !ok {
		t.Fatalf("expected restore flow, got %T", b.mode)
	}
	res, err := b.Input(key("esc"))
	if err != nil || res != BrowseNone {
		t.Fatalf("cancel: res=%v err=%v", res, err)
	}
	b.mustBrowse(t)
}

func TestRestoreDefaultTarget(t *testing.T) {
	t.Run("absolute source", func(t *testing.T) {
		b, _ := newTestBrowser(t) // snapshot taken from /home/alice
		b.table.SetCursor(2)
		b.Input(key("r"))
		mode, ok := b.mode.(modeRestore)
		if !ok {
			t.Fatalf("expected restore flow, got %T", b.mode)
		}
		if v := mode.flow.View(100, 30); !strings.Contains(v, "/sub") {
			t.Fatalf("absolute default target missing from view:\n%s", v)
		}
	})

	t.Run("relative source", func(t *testing.T) {
		r := memory.New()
		rootID := r.AddTree(&snap.Tree{Nodes: []snap.Node{
			r.FileNode("a.txt", []byte("x")),
		}})
		sn := r.AddSnapshot("cccc3333", []string{"data"}, rootID)
		b, err := NewBrowser(r, sn, nil, progress.Discard())
		if err != nil {
			t.Fatalf("NewBrowser: %v", err)
		}
		b.Input(key("r"))
		mode, ok := b.mode.(modeRestore)
		if !ok {
			t.Fatalf("expected restore flow, got %T", b.mode)
		}
		if v := mode.flow.View(100, 30); strings.Contains(v, "> /") {
			t.Fatalf("relative source must not default to an absolute target:\n%s", v)
		}
	})
}

func TestSummariesSharedAcrossSessions(t *testing.T) {
	b, r := newTestBrowser(t)
	if _, err := b.Input(key("s")); err != nil {
		t.Fatalf("compute: %v", err)
	}
	cache := b.TakeSummaries()

	// a fresh session over the same snapshot sees the cached aggregates
	// without touching the repository beyond the root tree
	snaps, _ := r.Snapshots()
	b2, err := NewBrowser(r, snaps[0], cache, progress.Discard())
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	if got := b2.table.Rows()[2][1]; got != "5 B" {
		t.Fatalf("cached dir size not shown: %q", got)
	}
	want := snap.Summary{Files: 3, Dirs: 1, Size: 35}
	if b2.summary != want {
		t.Fatalf("footer summary = %+v, want %+v", b2.summary, want)
	}
}
