package tson

import "testing"

func mustEncode(t *testing.T, json string) []byte {
	t.Helper()
	enc, err := Encode([]byte(json))
	if err != nil {
		t.Fatalf("Encode(%q): %v", json, err)
	}
	return enc
}

func TestExtractPathTopLevel(t *testing.T) {
	doc := mustEncode(t, `{"age":18,"name":"alice"}`)

	v, found, err := ExtractPath(doc, [][]byte{[]byte("age")})
	if err != nil {
		t.Fatalf("ExtractPath: %v", err)
	}
	if !found || v.Kind != KindNumber || v.Number != 18 {
		t.Errorf("expected age=18, got found=%v v=%+v", found, v)
	}

	v, found, err = ExtractPath(doc, [][]byte{[]byte("name")})
	if err != nil {
		t.Fatalf("ExtractPath: %v", err)
	}
	if !found || v.Kind != KindString || v.String != "alice" {
		t.Errorf("expected name=alice, got found=%v v=%+v", found, v)
	}
}

func TestExtractPathNested(t *testing.T) {
	doc := mustEncode(t, `{"a":{"b":{"c":1}},"sibling":true}`)

	v, found, err := ExtractPath(doc, [][]byte{[]byte("a"), []byte("b"), []byte("c")})
	if err != nil {
		t.Fatalf("ExtractPath: %v", err)
	}
	if !found || v.Kind != KindNumber || v.Number != 1 {
		t.Errorf("expected a.b.c=1, got found=%v v=%+v", found, v)
	}
}

func TestExtractPathMissing(t *testing.T) {
	doc := mustEncode(t, `{"a":{"b":1}}`)

	for _, ns := range [][][]byte{
		{[]byte("missing")},
		{[]byte("a"), []byte("missing")},
		{[]byte("a"), []byte("b"), []byte("too-deep")},
	} {
		_, found, err := ExtractPath(doc, ns)
		if err != nil {
			t.Fatalf("ExtractPath(%v): %v", ns, err)
		}
		if found {
			t.Errorf("expected %v to be missing", ns)
		}
	}
}

func TestExtractPathSkipsSiblingsByLength(t *testing.T) {
	// Many large sibling fields before the target; if skipValue mis-sized
	// any of them this would either fail to find "target" or find the wrong
	// value.
	doc := mustEncode(t, `{"a":"xxxxxxxxxxxxxxxxxxxx","b":[1,2,3,4,5],"c":{"d":{"e":1}},"target":"found"}`)

	v, found, err := ExtractPath(doc, [][]byte{[]byte("target")})
	if err != nil {
		t.Fatalf("ExtractPath: %v", err)
	}
	if !found || v.Kind != KindString || v.String != "found" {
		t.Errorf("expected target=found, got found=%v v=%+v", found, v)
	}
}
