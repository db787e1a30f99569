package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// bucketName is the single top-level bbolt bucket every reefdb key lives
// in; collection namespacing happens entirely at the key-byte level (see
// keyschema), not via separate buckets, since collection_bounds needs a
// single ordered key-space to scan.
var bucketName = []byte("reefdb")

// bboltStore is the concrete Store backing reefdb, an embedded pure-Go
// ordered key-value engine standing in for the original's external RocksDB
// collaborator.
type bboltStore struct {
	db *bolt.DB
}

// Open opens (creating if absent) a bbolt-backed Store rooted at path.
func Open(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}
	return &bboltStore{db: db}, nil
}

func (s *bboltStore) Put(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, value)
	})
}

func (s *bboltStore) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key)
		if v != nil {
			value = append([]byte(nil), v...) // bbolt's slice is only valid within the transaction
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

func (s *bboltStore) Scan(lower, upper []byte) (Iterator, error) {
	tx, err := s.db.Begin(false)
	if err != nil {
		return nil, err
	}
	return &bboltIterator{
		tx:    tx,
		c:     tx.Bucket(bucketName).Cursor(),
		lower: lower,
		upper: upper,
	}, nil
}

func (s *bboltStore) Close() error {
	return s.db.Close()
}

// bboltIterator adapts bbolt's Cursor.Seek/Next, which returns (nil, nil)
// at end of bucket, to the pull-based Iterator contract with an explicit
// upper bound.
type bboltIterator struct {
	tx          *bolt.Tx
	c           *bolt.Cursor
	lower, upper []byte
	started     bool
	key, value  []byte
}

func (it *bboltIterator) Next() bool {
	var k, v []byte
	if !it.started {
		it.started = true
		if it.lower == nil {
			k, v = it.c.First()
		} else {
			k, v = it.c.Seek(it.lower)
		}
	} else {
		k, v = it.c.Next()
	}
	if k == nil || (it.upper != nil && bytes.Compare(k, it.upper) >= 0) {
		it.key, it.value = nil, nil
		return false
	}
	it.key, it.value = k, v
	return true
}

func (it *bboltIterator) Key() []byte   { return it.key }
func (it *bboltIterator) Value() []byte { return it.value }
func (it *bboltIterator) Err() error    { return nil }

func (it *bboltIterator) Close() error {
	return it.tx.Rollback()
}
