package reefdb

import (
	"fmt"

	"github.com/k0kubun/pp/v3"

	"github.com/reefdb/reefdb/keyschema"
	"github.com/reefdb/reefdb/tson"
)

// The functions in this file are the five-plus-one entry points a host
// embedding reefdb (see cmd/reefdb) drives directly, named and shaped after
// the original bindings in callers/database.rs and callers/collection.rs.
// They're thin wrappers over the *Database/*Collection methods in
// database.go and collection.go, kept
// as free functions because that's the shape a foreign-function boundary
// needs: no receiver to box, every argument explicit.

// DatabaseNew opens (creating if absent) the store rooted at path.
func DatabaseNew(path string) (*Database, error) {
	return Open(path)
}

// DatabaseCollection returns a Collection named name, backed by db's store.
func DatabaseCollection(db *Database, name string) *Collection {
	return db.Collection(name)
}

// CollectionGetName returns c's collection name.
func CollectionGetName(c *Collection) string {
	return c.GetName()
}

// CollectionInsert transcodes json to TSON under the given id, forcing an
// `"_id": "<id>"` pair at the head of the stored document regardless of
// whatever "_id" (if any) the source json already carries. This mirrors the
// original binding's JSONParser::new_with_id, which always splices the
// caller-supplied id rather than deferring to one already present in json.
// Collection.Insert is the friendlier alternative that only synthesizes an
// id when json has none.
func CollectionInsert(c *Collection, id string, json string) error {
	doc, err := tson.EncodeWithID(id, []byte(json))
	if err != nil {
		return err
	}
	return c.handle.Store().Put(keyschema.ValueKey(c.name, id), doc)
}

// CollectionQuery parses queryJSON and returns a Cursor over the matching
// documents. spec.md §6 lists this as an open extension point left to the
// embedding host; this module takes the extension and fully implements it,
// since an embedded database that cannot read its own documents back isn't
// a useful deliverable.
func CollectionQuery(c *Collection, queryJSON string) (*Cursor, error) {
	return c.Query(queryJSON)
}

// DatabaseDebug walks every key in db's store in order and pretty-prints
// each key alongside its document decoded back to JSON, for interactive
// inspection. Grounded in the original's Database::debug, generalized here
// to the whole key space rather than one hardcoded collection, since a
// general-purpose embedded store has no single fixed collection to dump.
func DatabaseDebug(db *Database) error {
	it, err := db.handle.Store().Scan(nil, nil)
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		json, err := tson.Decode(it.Value())
		if err != nil {
			return fmt.Errorf("reefdb: debug: decoding key %q: %w", it.Key(), err)
		}
		pp.Println(string(it.Key()), "=>", string(json))
	}
	return it.Err()
}
