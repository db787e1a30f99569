// Package keyschema builds the byte keys reefdb stores documents and index
// entries under, and the range bounds that bracket one collection's whole
// key space inside the shared store.
package keyschema

// NSBegin and NSEnd are the UTF-8 encodings of two private-use-area
// sentinel code points. They sort above any realistic collection-name byte
// string but bound a single collection's key-space from its neighbors, so a
// [name+NSBegin, name+NSEnd) scan sees exactly that collection's keys.
const (
	NSBegin = "\U0010F41F"
	NSEnd   = "\U0010F420"
)

const (
	kindIndex = "0"
	kindValue = "1"
)

// ValueKey returns the key a document with the given id is stored under
// within collection name.
func ValueKey(name, id string) []byte {
	return concat(name, NSBegin, kindValue, id)
}

// IndexKey returns the key a single index entry (index name `index`, over
// document `id`) would be stored under within collection name. The "0" kind
// byte sorts below "1", so every collection's index entries precede its
// value entries in an ordered scan.
func IndexKey(name, index, id string) []byte {
	return concat(name, NSBegin, kindIndex, index, id)
}

// Bounds returns the [lower, upper) range that brackets exactly the keys
// belonging to collection name, both its index entries and its values.
func Bounds(name string) (lower, upper []byte) {
	return concat(name, NSBegin), concat(name, NSEnd)
}

// ValueBounds returns the [lower, upper) range that brackets exactly a
// collection's value entries, excluding its index entries. A full-scan
// query walks this range rather than Bounds, since index entries (when
// populated) are never query results.
func ValueBounds(name string) (lower, upper []byte) {
	return concat(name, NSBegin, kindValue), concat(name, NSBegin, "2")
}

func concat(parts ...string) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf
}
