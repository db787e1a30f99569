// Package reefdb is an embedded document store: JSON documents are
// transcoded into TSON (see the tson package) and addressed by collection
// name and id through a shared ordered key-value store (see the store
// package). Queries are parsed once (see the query package) into a
// predicate tree evaluated against each candidate document.
package reefdb

import (
	"github.com/reefdb/reefdb/query"
	"github.com/reefdb/reefdb/store"
	"github.com/reefdb/reefdb/tson"
)

// Sentinel errors are re-exported here so callers of the reefdb facade
// never need to import tson, query, or store directly to use errors.Is.
var (
	ErrOpenFailure     = store.ErrOpenFailure
	ErrMalformedJSON   = tson.ErrMalformedJSON
	ErrMalformedTSON   = tson.ErrMalformedTSON
	ErrInvalidQuery    = query.ErrInvalidQuery
	ErrUnsupportedType = tson.ErrUnsupportedType
	ErrInvalidID       = tson.ErrInvalidID
)
