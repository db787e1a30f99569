// Package store wraps an embedded ordered key-value engine behind a small
// interface the rest of reefdb depends on, plus a reference-counted handle
// so Database and every Collection spawned from it can share one open
// engine without reopening or leaking it.
package store

import "errors"

// ErrOpenFailure indicates the underlying store could not be opened or
// created at the given path.
var ErrOpenFailure = errors.New("store: failed to open store")

// Store is the ordered key-value contract reefdb needs: a single atomic
// put, and a forward range scan over [lower, upper).
type Store interface {
	// Put writes key/value in a single atomic write.
	Put(key, value []byte) error
	// Get returns the value stored at key, or found=false if key is absent.
	// Collection.Query uses this for the _id equality fast path instead of
	// a range scan.
	Get(key []byte) (value []byte, found bool, err error)
	// Scan returns an Iterator over every key k with lower <= k < upper,
	// visited in ascending byte order. A nil lower starts at the first key
	// in the store; a nil upper runs to the last, so Scan(nil, nil) walks
	// the entire key space (used by the debug dump).
	Scan(lower, upper []byte) (Iterator, error)
	// Close releases the underlying engine resources.
	Close() error
}

// Iterator is a pull-based cursor over a Scan's key range. The caller
// drives it with Next; Close must be called whether or not iteration ran
// to completion, to release any underlying engine cursor.
type Iterator interface {
	// Next advances to the next key, returning false at end of range or on
	// error (check Err to distinguish the two).
	Next() bool
	// Key returns the current key. Only valid after a Next that returned
	// true, and only until the next call to Next.
	Key() []byte
	// Value returns the current value, under the same validity rule as Key.
	Value() []byte
	// Err returns the first error encountered during iteration, if any.
	Err() error
	// Close releases the iterator's underlying resources.
	Close() error
}
