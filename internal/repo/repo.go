// Package repo defines the narrow repository interface the browser
// consumes and helpers shared by its implementations.
package repo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"snapview/internal/snap"
)

// ErrNotFound is returned when a tree, blob or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Repository is everything the browsing screens need from storage.
type Repository interface {
	// Tree fetches a tree by its identifier.
	Tree(id snap.ID) (*snap.Tree, error)
	// ReadFile reads length bytes of the node's content starting at
	// offset. Reads past the end return the available bytes.
	ReadFile(node *snap.Node, offset, length uint64) ([]byte, error)
	// IsCold reports whether the store is archival-only: file contents
	// cannot be read opportunistically, only restored.
	IsCold() bool
	// Snapshots lists all snapshot records, newest first.
	Snapshots() ([]snap.Snapshot, error)
}

// ForceCold wraps r so IsCold always reports true, regardless of the
// store's own flag. Used for the user-level config override.
func ForceCold(r Repository) Repository { return coldRepo{r} }

type coldRepo struct{ Repository }

func (coldRepo) IsCold() bool { return true }

// FindSnapshot resolves a snapshot by ID prefix, or by the literal
// "latest".
func FindSnapshot(r Repository, prefix string) (snap.Snapshot, error) {
	snaps, err := r.Snapshots()
	if err != nil {
		return snap.Snapshot{}, err
	}
	if len(snaps) == 0 {
		return snap.Snapshot{}, fmt.Errorf("snapshot %q: %w", prefix, ErrNotFound)
	}
	if prefix == "latest" {
		sort.Slice(snaps, func(i, j int) bool { return snaps[i].Time.After(snaps[j].Time) })
		return snaps[0], nil
	}
	var matches []snap.Snapshot
	for _, sn := range snaps {
		if strings.HasPrefix(sn.ID, prefix) {
			matches = append(matches, sn)
		}
	}
	switch len(matches) {
	case 0:
		return snap.Snapshot{}, fmt.Errorf("snapshot %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return snap.Snapshot{}, fmt.Errorf("snapshot %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
