// Package memory is an in-memory Repository used by tests and as a
// fixture builder for synthetic snapshots.
package memory

import (
	"fmt"
	"os"
	"sort"
	"time"

	"snapview/internal/repo"
	"snapview/internal/snap"
)

// Repo stores trees, blobs and snapshots in maps.
type Repo struct {
	trees map[snap.ID]*snap.Tree
	blobs map[snap.ID][]byte
	snaps []snap.Snapshot
	cold  bool

	// TreeErr, when set, makes every Tree call fail. Lets tests exercise
	// fetch-error paths.
	TreeErr error

	// LastReadLen records the length requested by the most recent
	// ReadFile call.
	LastReadLen uint64
}

func New() *Repo {
	return &Repo{
		trees: make(map[snap.ID]*snap.Tree),
		blobs: make(map[snap.ID][]byte),
	}
}

// SetCold marks the repository as archival-only.
func (r *Repo) SetCold(cold bool) { r.cold = cold }

func (r *Repo) IsCold() bool { return r.cold }

func (r *Repo) Tree(id snap.ID) (*snap.Tree, error) {
	if r.TreeErr != nil {
		return nil, r.TreeErr
	}
	t, ok := r.trees[id]
	if !ok {
		return nil, fmt.Errorf("tree %s: %w", id.Short(), repo.ErrNotFound)
	}
	return t, nil
}

func (r *Repo) ReadFile(node *snap.Node, offset, length uint64) ([]byte, error) {
	r.LastReadLen = length
	var data []byte
	for _, id := range node.Content {
		blob, ok := r.blobs[id]
		if !ok {
			return nil, fmt.Errorf("blob %s: %w", id.Short(), repo.ErrNotFound)
		}
		data = append(data, blob...)
	}
	if offset >= uint64(len(data)) {
		return nil, nil
	}
	data = data[offset:]
	if length < uint64(len(data)) {
		data = data[:length]
	}
	return data, nil
}

func (r *Repo) Snapshots() ([]snap.Snapshot, error) {
	out := append([]snap.Snapshot(nil), r.snaps...)
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out, nil
}

// AddTree stores a tree and returns its content-derived ID.
func (r *Repo) AddTree(t *snap.Tree) snap.ID {
	_, id, err := t.Marshal()
	if err != nil {
		panic(err)
	}
	r.trees[id] = t
	return id
}

// AddSnapshot records a snapshot for the given root tree.
func (r *Repo) AddSnapshot(id string, paths []string, root snap.ID) snap.Snapshot {
	sn := snap.Snapshot{ID: id, Time: time.Now(), Paths: paths, Tree: root}
	r.snaps = append(r.snaps, sn)
	return sn
}

// FileNode stores data as a single blob and returns a file node of the
// given name referencing it.
func (r *Repo) FileNode(name string, data []byte) snap.Node {
	id := snap.NewID(data)
	r.blobs[id] = data
	return snap.Node{
		Name:    name,
		Type:    snap.TypeFile,
		Mode:    0o644,
		Size:    uint64(len(data)),
		Content: []snap.ID{id},
	}
}

// DirNode stores tree and returns a directory node pointing at it.
func (r *Repo) DirNode(name string, tree *snap.Tree) snap.Node {
	id := r.AddTree(tree)
	return snap.Node{Name: name, Type: snap.TypeDir, Mode: 0o755 | os.ModeDir, Subtree: id}
}
