package reefdb

import (
	"github.com/reefdb/reefdb/store"
)

// Database is an owning handle to the shared store. Every Collection it
// spawns clones the same underlying Handle, so the store is only closed
// once every Database and Collection derived from it has been closed.
type Database struct {
	handle *store.Handle
}

// Open opens the store rooted at path, creating it if absent.
func Open(path string) (*Database, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Database{handle: store.NewHandle(s)}, nil
}

// Collection returns a Collection addressing name, sharing this Database's
// store handle. Collections are lightweight: calling Collection repeatedly
// with the same name yields independent values over the same underlying
// data.
func (db *Database) Collection(name string) *Collection {
	return &Collection{name: name, handle: db.handle.Clone()}
}

// Close releases this Database's reference to the shared store. The
// underlying engine is only closed once every Database and Collection
// handle derived from the same Open call has been closed.
func (db *Database) Close() error {
	return db.handle.Close()
}
