package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"snapview/internal/snap"
)

// filterSnapshots returns the indices of snapshots matching the query,
// fuzzy-matched against ID, hostname and source paths. An empty query
// yields nil, meaning "unfiltered".
func filterSnapshots(snaps []snap.Snapshot, q string) []int {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	base := make([]string, len(snaps))
	for i, sn := range snaps {
		base[i] = strings.ToLower(sn.ID + " " + sn.Hostname + " " + strings.Join(sn.Paths, " "))
	}
	matches := fuzzy.Find(strings.ToLower(q), base)
	idx := make([]int, 0, len(matches))
	for _, mt := range matches {
		idx = append(idx, mt.Index)
	}
	return idx
}
