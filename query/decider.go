package query

import (
	"fmt"

	"github.com/reefdb/reefdb/tson"
)

type queryForm int

const (
	formOperation queryForm = iota
	formLogic
)

// classify scans a query document's interior (the bytes between its outer
// OBJECT_BEGIN+length and its matching OBJECT_END) key by key. As soon as a
// top-level STRING key is $or, $and, or $not, the document is logic form; if
// no top-level key is one of those, it is operation form. Every other key
// visited along the way has its value skipped wholesale by tag and length,
// never decoded, since only the key names matter here.
func classify(interior []byte) (queryForm, error) {
	cur := tson.NewCursor(interior)
	for !cur.Done() {
		tag := cur.ReadNext()
		switch tag {
		case tson.String:
			key, err := readString(cur)
			if err != nil {
				return formOperation, err
			}
			switch string(key) {
			case "$or", "$and", "$not":
				return formLogic, nil
			}
			if cur.Done() {
				return formOperation, fmt.Errorf("%w: key with no value", ErrInvalidQuery)
			}
			cur.Skip(1) // PAIR
			if err := skipValue(cur); err != nil {
				return formOperation, err
			}
		case tson.Separator:
		default:
			return formOperation, fmt.Errorf("%w: unexpected tag 0x%02x at top level", ErrInvalidQuery, tag)
		}
	}
	return formOperation, nil
}
