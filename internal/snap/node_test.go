package snap

import (
	"os"
	"testing"
)

func TestNewIDIsDeterministic(t *testing.T) {
	a := NewID([]byte("payload"))
	b := NewID([]byte("payload"))
	if a != b {
		t.Fatal("same data must derive the same ID")
	}
	if len(a) != 64 {
		t.Fatalf("ID length = %d, want 64 hex chars", len(a))
	}
	if c := NewID([]byte("other")); c == a {
		t.Fatal("different data must derive different IDs")
	}
}

func TestIDShort(t *testing.T) {
	id := NewID([]byte("payload"))
	if got := id.Short(); got != string(id[:8]) {
		t.Fatalf("Short() = %q", got)
	}
	if got := ID("abc").Short(); got != "abc" {
		t.Fatalf("Short() of short ID = %q", got)
	}
}

func TestModeString(t *testing.T) {
	n := Node{Type: TypeDir, Mode: 0o755 | os.ModeDir}
	if got := n.ModeString(); got != "drwxr-xr-x" {
		t.Fatalf("dir mode = %q", got)
	}
	n = Node{Type: TypeFile, Mode: 0o644}
	if got := n.ModeString(); got != "-rw-r--r--" {
		t.Fatalf("file mode = %q", got)
	}
}

func TestTreeMarshalRoundtrip(t *testing.T) {
	tree := &Tree{Nodes: []Node{
		{Name: "a.txt", Type: TypeFile, Mode: 0o644, Size: 10, Content: []ID{NewID([]byte("a"))}},
		{Name: "sub", Type: TypeDir, Mode: 0o755 | os.ModeDir, Subtree: NewID([]byte("t"))},
	}}
	data, id, err := tree.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if id != NewID(data) {
		t.Fatal("tree ID must be derived from the serialized form")
	}
	got, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if len(got.Nodes) != 2 || got.Nodes[0].Name != "a.txt" || got.Nodes[1].Subtree != tree.Nodes[1].Subtree {
		t.Fatalf("roundtrip mismatch: %+v", got.Nodes)
	}
}
