package query

import "errors"

// ErrInvalidQuery is returned for any query document that isn't a
// recognized operator, has a value kind that operator doesn't accept,
// nests an object without dot notation, or otherwise fails the shapes the
// parser accepts.
var ErrInvalidQuery = errors.New("query: invalid query")
