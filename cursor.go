package reefdb

import (
	"github.com/reefdb/reefdb/query"
	"github.com/reefdb/reefdb/store"
	"github.com/reefdb/reefdb/tson"
)

// Cursor is a pull-based iterator over a Query's matching documents. Query
// iteration is cancelled simply by dropping the Cursor without calling Next
// again; if the cursor wraps a store.Iterator, callers that do run it to
// exhaustion or abandon it early should still call Close to release the
// underlying engine cursor promptly.
//
// A Cursor is either pre-materialized (the point-lookup fast path, at most
// one document already in hand) or scan-backed (pulling raw candidates from
// a store.Iterator and filtering each one against op before surfacing it).
type Cursor struct {
	// docs, used when the iter field is unset, is the point-lookup fast
	// path: zero or one already-fetched TSON documents, no filtering.
	docs [][]byte
	pos  int

	// iter and op back the scan path: iter yields raw TSON value bytes in
	// key order, and Next skips any that don't satisfy op.
	iter store.Iterator
	op   query.LogicalOperation

	current []byte
	err     error
}

// Next advances the cursor to the next matching document, returning false
// once the cursor is exhausted or an error occurred (distinguish the two
// with Err).
func (c *Cursor) Next() bool {
	if c.iter == nil {
		if c.pos >= len(c.docs) {
			return false
		}
		c.current = c.docs[c.pos]
		c.pos++
		return true
	}

	for c.iter.Next() {
		candidate := c.iter.Value()
		ok, err := query.Evaluate(candidate, c.op)
		if err != nil {
			c.err = err
			return false
		}
		if ok {
			c.current = candidate
			return true
		}
	}
	c.err = c.iter.Err()
	return false
}

// Value returns the current document as TSON-encoded bytes. Only valid
// after a call to Next that returned true.
func (c *Cursor) Value() []byte {
	return c.current
}

// JSON decodes the current document back to JSON text. Only valid after a
// call to Next that returned true.
func (c *Cursor) JSON() ([]byte, error) {
	return tson.Decode(c.current)
}

// Err returns the first error encountered during iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the cursor's underlying store resources, if any. Safe to
// call on a point-lookup cursor, and safe to call more than once.
func (c *Cursor) Close() error {
	if c.iter == nil {
		return nil
	}
	return c.iter.Close()
}
