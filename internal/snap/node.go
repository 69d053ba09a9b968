// Package snap holds the snapshot domain model: trees of directory
// entries, content-derived identifiers, snapshot records and per-subtree
// aggregate summaries. Values are immutable once fetched; the browser
// treats them as data, never as live handles into storage.
package snap

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"
)

// ID is the opaque content-derived handle of a tree or blob.
type ID string

// NewID derives the ID for a chunk of serialized data.
func NewID(data []byte) ID {
	sum := sha256.Sum256(data)
	return ID(hex.EncodeToString(sum[:]))
}

// Short returns an abbreviated form for display.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// NodeType discriminates directory entries.
type NodeType string

const (
	TypeFile    NodeType = "file"
	TypeDir     NodeType = "dir"
	TypeSymlink NodeType = "symlink"
	TypeOther   NodeType = "other"
)

// Node is one child of a directory at snapshot time.
type Node struct {
	Name    string      `json:"name"`
	Type    NodeType    `json:"type"`
	Mode    os.FileMode `json:"mode"`
	Size    uint64      `json:"size"`
	UID     *uint32     `json:"uid,omitempty"`
	GID     *uint32     `json:"gid,omitempty"`
	User    string      `json:"user,omitempty"`
	Group   string      `json:"group,omitempty"`
	ModTime *time.Time  `json:"mtime,omitempty"`
	// Subtree identifies the tree of a directory node.
	Subtree ID `json:"subtree,omitempty"`
	// Content lists the blobs a file's data is assembled from, in order.
	Content []ID `json:"content,omitempty"`
	// LinkTarget is set for symlinks.
	LinkTarget string `json:"linktarget,omitempty"`
}

func (n *Node) IsDir() bool  { return n.Type == TypeDir }
func (n *Node) IsFile() bool { return n.Type == TypeFile }

// ModeString renders the permission/mode column, e.g. "drwxr-xr-x".
func (n *Node) ModeString() string { return n.Mode.String() }

// Tree is the ordered list of entries of one directory.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Marshal serializes the tree and returns its content-derived ID.
func (t *Tree) Marshal() ([]byte, ID, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, "", err
	}
	return data, NewID(data), nil
}

// UnmarshalTree parses a serialized tree.
func UnmarshalTree(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
