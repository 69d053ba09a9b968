package badgerdb

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"snapview/internal/snap"
)

// setIfAbsent writes key only when it does not exist yet. Content-
// addressed values never change, so an existing key is already correct.
func (s *Store) setIfAbsent(key, val []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, val)
	})
}

// PutTree stores a tree and returns its content-derived ID.
func (s *Store) PutTree(t *snap.Tree) (snap.ID, error) {
	data, id, err := t.Marshal()
	if err != nil {
		return "", fmt.Errorf("encode tree: %w", err)
	}
	if err := s.setIfAbsent(treeKey(id), data); err != nil {
		return "", fmt.Errorf("store tree %s: %w", id.Short(), err)
	}
	return id, nil
}

// PutBlob stores a chunk of file content and returns its ID.
func (s *Store) PutBlob(data []byte) (snap.ID, error) {
	id := snap.NewID(data)
	if err := s.setIfAbsent(blobKey(id), data); err != nil {
		return "", fmt.Errorf("store blob %s: %w", id.Short(), err)
	}
	return id, nil
}

// PutSnapshot records a snapshot.
func (s *Store) PutSnapshot(sn snap.Snapshot) error {
	data, err := json.Marshal(sn)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(sn.ID), data)
	})
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", sn.ID, err)
	}
	return nil
}

// SetCold persists the archival-only flag.
func (s *Store) SetCold(cold bool) error {
	data, err := json.Marshal(storeConfig{Cold: cold})
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyConfig, data)
	})
	if err != nil {
		return fmt.Errorf("store repository config: %w", err)
	}
	s.cold = cold
	return nil
}
