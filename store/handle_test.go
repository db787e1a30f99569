package store

import "testing"

type fakeStore struct {
	closed bool
}

func (f *fakeStore) Put(key, value []byte) error                    { return nil }
func (f *fakeStore) Get(key []byte) ([]byte, bool, error)            { return nil, false, nil }
func (f *fakeStore) Scan(lower, upper []byte) (Iterator, error)      { return nil, nil }
func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func TestHandleClosesOnlyAfterLastClone(t *testing.T) {
	fs := &fakeStore{}
	h1 := NewHandle(fs)
	h2 := h1.Clone()
	h3 := h2.Clone()

	if err := h1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if fs.closed {
		t.Fatalf("store closed too early, after 1 of 3 handles closed")
	}

	if err := h2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if fs.closed {
		t.Fatalf("store closed too early, after 2 of 3 handles closed")
	}

	if err := h3.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fs.closed {
		t.Errorf("expected store to be closed after every handle closed")
	}
}

func TestHandleCloneSharesStore(t *testing.T) {
	fs := &fakeStore{}
	h1 := NewHandle(fs)
	h2 := h1.Clone()

	if h1.Store() != h2.Store() {
		t.Errorf("expected cloned handles to share the same Store")
	}
}
