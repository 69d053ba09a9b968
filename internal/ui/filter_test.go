package ui

import (
	"testing"

	"snapview/internal/snap"
)

func TestFilterSnapshots(t *testing.T) {
	snaps := []snap.Snapshot{
		{ID: "0123abcd", Hostname: "alpha", Paths: []string{"/home/alice"}},
		{ID: "4567efgh", Hostname: "bravo", Paths: []string{"/var/lib/postgres"}},
		{ID: "89abcdef", Hostname: "alpha", Paths: []string{"/etc"}},
	}

	if got := filterSnapshots(snaps, ""); got != nil {
		t.Fatalf("empty query must be unfiltered, got %v", got)
	}
	if got := filterSnapshots(snaps, "   "); got != nil {
		t.Fatalf("blank query must be unfiltered, got %v", got)
	}

	got := filterSnapshots(snaps, "postgres")
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("filter by path = %v, want [1]", got)
	}

	got = filterSnapshots(snaps, "BRAVO")
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("filter is not case-insensitive: %v", got)
	}

	if got := filterSnapshots(snaps, "zzzzzz"); len(got) != 0 {
		t.Fatalf("non-matching query = %v, want none", got)
	}
}
