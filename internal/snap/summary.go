package snap

import (
	"fmt"

	"snapview/internal/progress"
)

// Summary aggregates file count, directory count and total size for a
// set of entries.
type Summary struct {
	Files uint64 `json:"files"`
	Dirs  uint64 `json:"dirs"`
	Size  uint64 `json:"size"`
}

// Add merges another summary componentwise.
func (s *Summary) Add(o Summary) {
	s.Files += o.Files
	s.Dirs += o.Dirs
	s.Size += o.Size
}

// Update folds one entry into the summary using its declared metadata
// only. Directories count as one dir with their own declared size; no
// recursion happens here.
func (s *Summary) Update(n *Node) {
	if n.IsDir() {
		s.Dirs++
	} else {
		s.Files++
	}
	s.Size += n.Size
}

// AddSubtree folds a directory entry whose subtree aggregate is already
// known: the aggregate replaces the entry's declared size and the
// directory itself counts as one dir on top of its contents.
func (s *Summary) AddSubtree(sub Summary) {
	s.Add(sub)
	s.Dirs++
}

// TreeLoader is the slice of the repository the aggregator needs.
type TreeLoader interface {
	Tree(id ID) (*Tree, error)
}

// SummaryMap caches per-subtree aggregates by tree ID. Get never
// computes; Compute fills the map for a whole subtree. Entries are never
// recomputed within a session.
type SummaryMap map[ID]Summary

// Get returns the cached aggregate for id, if present.
func (m SummaryMap) Get(id ID) (Summary, bool) {
	s, ok := m[id]
	return s, ok
}

// Compute traverses the subtree rooted at id, caching the aggregate of
// every directory visited and reporting one tick per entry. Subtrees
// already present in the map are skipped without recursing into them, so
// a partially computed session never repeats work. Computation stops on
// the first fetch error.
func (m SummaryMap) Compute(r TreeLoader, id ID, p progress.Counter) (Summary, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	tree, err := r.Tree(id)
	if err != nil {
		return Summary{}, fmt.Errorf("load tree %s: %w", id.Short(), err)
	}
	var sum Summary
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		p.Add(1)
		if n.IsDir() && n.Subtree != "" {
			sub, err := m.Compute(r, n.Subtree, p)
			if err != nil {
				return Summary{}, err
			}
			sum.AddSubtree(sub)
		} else {
			sum.Update(n)
		}
	}
	m[id] = sum
	return sum, nil
}
