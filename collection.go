package reefdb

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/reefdb/reefdb/keyschema"
	"github.com/reefdb/reefdb/query"
	"github.com/reefdb/reefdb/store"
	"github.com/reefdb/reefdb/tson"
)

// Collection is a lightweight, shared-store-backed handle over one named
// collection of documents. Multiple Collection values constructed with the
// same name address the same underlying data.
type Collection struct {
	name   string
	handle *store.Handle
}

// GetName returns the collection's name.
func (c *Collection) GetName() string {
	return c.name
}

// Close releases this Collection's share of the Database's store handle.
// The underlying engine is only closed once every Database and Collection
// derived from the same Open call has been closed, so a Collection left
// unclosed delays that close indefinitely; callers that construct
// short-lived Collection values should Close them once done.
func (c *Collection) Close() error {
	return c.handle.Close()
}

// Insert transcodes json to TSON and writes it under its document id.
// If json's top-level object already has an "_id" key, that id is used and
// must be a string or number (ErrInvalidID otherwise); if it has none, a
// UUID-v4 string is generated and spliced in. The write is a single atomic
// put, so it never partially persists.
func (c *Collection) Insert(json string) (id string, err error) {
	plain, err := tson.Encode([]byte(json))
	if err != nil {
		return "", err
	}

	idValue, found, err := tson.ExtractPath(plain, [][]byte{[]byte("_id")})
	if err != nil {
		return "", err
	}

	var doc []byte
	if found {
		id, err = idString(idValue)
		if err != nil {
			return "", err
		}
		doc = plain
	} else {
		id = uuid.New().String()
		doc, err = tson.EncodeWithID(id, []byte(json))
		if err != nil {
			return "", err
		}
	}

	if err := c.handle.Store().Put(keyschema.ValueKey(c.name, id), doc); err != nil {
		return "", err
	}
	return id, nil
}

func idString(v tson.Value) (string, error) {
	switch v.Kind {
	case tson.KindString:
		return v.String, nil
	case tson.KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: _id must be a string or number", tson.ErrInvalidID)
	}
}

// Query parses queryJSON and returns a Cursor over the matching documents.
// An empty query object `{}` matches every document in the collection. A
// query that is a bare equality on "_id" against a string is served as a
// point lookup instead of a full scan; any other query, including one on a
// numeric "_id", scans the collection.
func (c *Collection) Query(queryJSON string) (*Cursor, error) {
	encoded, err := tson.Encode([]byte(queryJSON))
	if err != nil {
		return nil, err
	}
	op, err := query.Parse(encoded)
	if err != nil {
		return nil, err
	}

	if id, ok := idEqualityOnly(op); ok {
		return c.pointLookup(id)
	}
	return c.scan(op)
}

// idEqualityOnly reports whether op is exactly a single {"_id": <eq string>}
// operation, the shape that qualifies for the point-lookup fast path.
func idEqualityOnly(op query.LogicalOperation) (string, bool) {
	if op.Kind != query.LogicLeaf || len(op.Leaf) != 1 {
		return "", false
	}
	leaf := op.Leaf[0]
	if len(leaf.Namespace) != 1 || string(leaf.Namespace[0]) != "_id" {
		return "", false
	}
	if leaf.Operation.Kind != query.OpEq || leaf.Operation.Equality.Kind != query.EqString {
		return "", false
	}
	return leaf.Operation.Equality.String, true
}

func (c *Collection) pointLookup(id string) (*Cursor, error) {
	value, found, err := c.handle.Store().Get(keyschema.ValueKey(c.name, id))
	if err != nil {
		return nil, err
	}
	if !found {
		return &Cursor{docs: nil}, nil
	}
	return &Cursor{docs: [][]byte{value}}, nil
}

func (c *Collection) scan(op query.LogicalOperation) (*Cursor, error) {
	lower, upper := keyschema.ValueBounds(c.name)
	it, err := c.handle.Store().Scan(lower, upper)
	if err != nil {
		return nil, err
	}
	return &Cursor{iter: it, op: op}, nil
}
