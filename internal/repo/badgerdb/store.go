// Package badgerdb implements the snapshot repository on BadgerDB.
// Trees and file blobs are stored content-addressed under namespaced key
// prefixes; snapshot records live under their own prefix.
package badgerdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"

	"snapview/internal/repo"
	"snapview/internal/snap"
)

// Key prefixes. Content-addressed data is keyed prefix + hex ID.
var (
	prefixTree     = []byte("tree:")
	prefixBlob     = []byte("blob:")
	prefixSnapshot = []byte("snapshot:")
	keyConfig      = []byte("config")
)

// storeConfig is the persistent per-repository configuration record.
type storeConfig struct {
	Cold bool `json:"cold"`
}

// Store is a Repository backed by a local BadgerDB instance.
type Store struct {
	db   *badger.DB
	cold bool
}

// Open opens (or creates) the repository at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	s := &Store{db: db}
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyConfig)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var cfg storeConfig
			if err := json.Unmarshal(val, &cfg); err != nil {
				return err
			}
			s.cold = cfg.Cold
			return nil
		})
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read repository config: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) IsCold() bool { return s.cold }

func (s *Store) get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repo.ErrNotFound
	}
	return out, err
}

func treeKey(id snap.ID) []byte { return append(append([]byte{}, prefixTree...), id...) }
func blobKey(id snap.ID) []byte { return append(append([]byte{}, prefixBlob...), id...) }
func snapshotKey(id string) []byte {
	return append(append([]byte{}, prefixSnapshot...), id...)
}

func (s *Store) Tree(id snap.ID) (*snap.Tree, error) {
	data, err := s.get(treeKey(id))
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", id.Short(), err)
	}
	t, err := snap.UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("decode tree %s: %w", id.Short(), err)
	}
	return t, nil
}

func (s *Store) ReadFile(node *snap.Node, offset, length uint64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	out := make([]byte, 0, length)
	skip := offset
	for _, id := range node.Content {
		blob, err := s.get(blobKey(id))
		if err != nil {
			return nil, fmt.Errorf("blob %s: %w", id.Short(), err)
		}
		if skip >= uint64(len(blob)) {
			skip -= uint64(len(blob))
			continue
		}
		blob = blob[skip:]
		skip = 0
		need := length - uint64(len(out))
		if need < uint64(len(blob)) {
			blob = blob[:need]
		}
		out = append(out, blob...)
		if uint64(len(out)) >= length {
			break
		}
	}
	return out, nil
}

func (s *Store) Snapshots() ([]snap.Snapshot, error) {
	var snaps []snap.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixSnapshot
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var sn snap.Snapshot
				if err := json.Unmarshal(val, &sn); err != nil {
					return err
				}
				snaps = append(snaps, sn)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Time.After(snaps[j].Time) })
	return snaps, nil
}
