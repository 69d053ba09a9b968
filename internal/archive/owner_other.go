//go:build !unix

package archive

import (
	"os"

	"snapview/internal/snap"
)

func fillOwner(*snap.Node, os.FileInfo) {}
