package reefdb

import (
	"path/filepath"
	"testing"
)

func TestHostAPIInsertForcesID(t *testing.T) {
	db, err := DatabaseNew(filepath.Join(t.TempDir(), "reefdb.db"))
	if err != nil {
		t.Fatalf("DatabaseNew: %v", err)
	}
	defer db.Close()

	c := DatabaseCollection(db, "users")
	defer c.Close()
	if got, want := CollectionGetName(c), "users"; got != want {
		t.Errorf("CollectionGetName = %q, want %q", got, want)
	}

	// The source json carries its own (different) _id. CollectionInsert
	// splices the explicit id argument ahead of the source's contents
	// without stripping its pre-existing _id pair, so queries against the
	// forced id resolve (first-match-wins) while the source's own _id
	// pair survives in the stored document, producing a duplicate key.
	if err := CollectionInsert(c, "forced-id", `{"_id":"other","name":"ada"}`); err != nil {
		t.Fatalf("CollectionInsert: %v", err)
	}

	cur, err := CollectionQuery(c, `{"_id":"forced-id"}`)
	if err != nil {
		t.Fatalf("CollectionQuery: %v", err)
	}
	defer cur.Close()

	if !cur.Next() {
		t.Fatalf("expected a document stored under the forced id")
	}
	json, err := cur.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got, want := string(json), `{"_id":"forced-id","_id":"other","name":"ada"}`; got != want {
		t.Errorf("stored document = %s, want %s", got, want)
	}

	if cur2, err := CollectionQuery(c, `{"_id":"other"}`); err != nil {
		t.Fatalf("CollectionQuery: %v", err)
	} else {
		defer cur2.Close()
		if cur2.Next() {
			t.Errorf("expected no document under the overridden id")
		}
	}
}

func TestDatabaseDebugWalksEveryKey(t *testing.T) {
	db, err := DatabaseNew(filepath.Join(t.TempDir(), "reefdb.db"))
	if err != nil {
		t.Fatalf("DatabaseNew: %v", err)
	}
	defer db.Close()

	c := DatabaseCollection(db, "users")
	defer c.Close()
	if _, err := c.Insert(`{"name":"ada"}`); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := c.Insert(`{"name":"bea"}`); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := DatabaseDebug(db); err != nil {
		t.Errorf("DatabaseDebug: %v", err)
	}
}
