package snap

import (
	"path/filepath"
	"time"
)

// Snapshot is a named, timestamped root tree plus the original source
// paths it was captured from.
type Snapshot struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Hostname string    `json:"hostname,omitempty"`
	Paths    []string  `json:"paths"`
	Tree     ID        `json:"tree"`
}

// AbsoluteSource reports whether any of the captured source paths was
// absolute. Restore targets default to absolute paths in that case.
func (sn *Snapshot) AbsoluteSource() bool {
	for _, p := range sn.Paths {
		if filepath.IsAbs(p) {
			return true
		}
	}
	return false
}
