package query

import (
	"fmt"

	"github.com/reefdb/reefdb/tson"
)

// skipValue advances cur past one complete TSON value (tag plus payload),
// without decoding it. Composite bodies are skipped in one step using their
// length prefix, which already spans their content through their matching
// END tag inclusive (see DESIGN.md's composite length back-patch note).
func skipValue(cur *tson.Cursor) error {
	if cur.Done() {
		return fmt.Errorf("%w: unexpected end of query document", ErrInvalidQuery)
	}
	switch tag := cur.ReadNext(); tag {
	case tson.ObjectBegin, tson.ArrayBegin:
		n := cur.ReadU32LE()
		cur.Skip(int(n))
	case tson.String:
		n := cur.ReadU32LE()
		cur.Skip(int(n))
	case tson.Number:
		cur.ReadF64LE()
	case tson.True, tson.False, tson.Null:
	default:
		return fmt.Errorf("%w: unrecognized tag 0x%02x", ErrInvalidQuery, tag)
	}
	return nil
}
