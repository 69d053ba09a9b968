// Package archive captures a local directory into the repository as a
// new snapshot: trees bottom-up, file contents chunked into blobs.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"snapview/internal/log"
	"snapview/internal/progress"
	"snapview/internal/snap"
)

// Writer is the write side of a repository.
type Writer interface {
	PutTree(t *snap.Tree) (snap.ID, error)
	PutBlob(data []byte) (snap.ID, error)
	PutSnapshot(sn snap.Snapshot) error
}

// chunkSize bounds the size of a single content blob.
const chunkSize = 1 << 20

// Archive walks dir and stores it as a snapshot. The source path is
// recorded as given, so importing a relative path yields relative
// restore targets later.
func Archive(w Writer, dir string, p progress.Counter) (snap.Snapshot, error) {
	root, err := archiveDir(w, dir, p)
	if err != nil {
		return snap.Snapshot{}, err
	}
	hostname, _ := os.Hostname()
	sn := snap.Snapshot{
		Time:     time.Now(),
		Hostname: hostname,
		Paths:    []string{dir},
		Tree:     root,
	}
	data, err := json.Marshal(sn)
	if err != nil {
		return snap.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	sn.ID = snap.NewID(data).Short()
	if err := w.PutSnapshot(sn); err != nil {
		return snap.Snapshot{}, err
	}
	return sn, nil
}

func archiveDir(w Writer, path string, p progress.Counter) (snap.ID, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", path, err)
	}
	tree := &snap.Tree{Nodes: make([]snap.Node, 0, len(entries))}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			log.Warnf("skip %s: %v", filepath.Join(path, entry.Name()), err)
			continue
		}
		p.Add(1)
		node := nodeFromFileInfo(entry.Name(), info)
		full := filepath.Join(path, entry.Name())
		switch node.Type {
		case snap.TypeDir:
			sub, err := archiveDir(w, full, p)
			if err != nil {
				return "", err
			}
			node.Subtree = sub
		case snap.TypeFile:
			if err := archiveFile(w, full, &node); err != nil {
				return "", err
			}
		case snap.TypeSymlink:
			target, err := os.Readlink(full)
			if err != nil {
				log.Warnf("skip symlink %s: %v", full, err)
				continue
			}
			node.LinkTarget = target
		}
		tree.Nodes = append(tree.Nodes, node)
	}
	return w.PutTree(tree)
}

func archiveFile(w Writer, path string, node *snap.Node) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var size uint64
	buf := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(f, buf)
		if n > 0 {
			id, perr := w.PutBlob(append([]byte(nil), buf[:n]...))
			if perr != nil {
				return perr
			}
			node.Content = append(node.Content, id)
			size += uint64(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	node.Size = size
	return nil
}

func nodeFromFileInfo(name string, info os.FileInfo) snap.Node {
	node := snap.Node{
		Name: name,
		Mode: info.Mode(),
		Size: uint64(info.Size()),
	}
	mtime := info.ModTime()
	node.ModTime = &mtime
	switch {
	case info.IsDir():
		node.Type = snap.TypeDir
		node.Size = 0
	case info.Mode()&os.ModeSymlink != 0:
		node.Type = snap.TypeSymlink
	case info.Mode().IsRegular():
		node.Type = snap.TypeFile
	default:
		node.Type = snap.TypeOther
	}
	fillOwner(&node, info)
	return node
}
