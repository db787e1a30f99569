package tson

import (
	"fmt"
	"testing"
)

func TestEncodeScalarsRoundTrip(t *testing.T) {
	for _, input := range []string{
		`{}`,
		`{"x":true,"y":null,"z":[1,2]}`,
		`{"a":1}`,
		`[1,2,3]`,
		`{"nested":{"a":{"b":1}}}`,
		`{"s":"hello world"}`,
		`{"neg":-3.5}`,
	} {
		t.Run(input, func(t *testing.T) {
			enc, err := Encode([]byte(input))
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			dec, err := Decode(enc)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if string(dec) != input {
				t.Errorf("round trip mismatch: got %q want %q", dec, input)
			}
		})
	}
}

func TestEncodeMalformed(t *testing.T) {
	for _, input := range []string{
		`{`,
		`}`,
		`{"a":1`,
		`["a"`,
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := Encode([]byte(input)); err == nil {
				t.Errorf("expected error for %q, got none", input)
			}
		})
	}
}

// TestEncodeCompositeLength exercises invariant L1 directly: the length
// field patched by endComposite must equal the byte count from just after
// the field through the matching END tag, inclusive.
func TestEncodeCompositeLength(t *testing.T) {
	enc, err := Encode([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc[0] != ObjectBegin {
		t.Fatalf("expected leading OBJECT_BEGIN, got 0x%02x", enc[0])
	}
	length := le32(enc[1:5])
	contentStart := 5
	wantEnd := len(enc) - 1
	if enc[wantEnd] != ObjectEnd {
		t.Fatalf("expected trailing OBJECT_END, got 0x%02x", enc[wantEnd])
	}
	gotLength := int(length)
	wantLength := wantEnd - contentStart + 1
	if gotLength != wantLength {
		t.Errorf("L1 violated: length field says %d, actual content+END span is %d", gotLength, wantLength)
	}
}

func TestEncodeWithID(t *testing.T) {
	for _, tc := range []struct {
		id    string
		input string
	}{
		{"abc-123", `{}`},
		{"abc-123", `{"a":1}`},
	} {
		t.Run(fmt.Sprintf("%s/%s", tc.id, tc.input), func(t *testing.T) {
			enc, err := EncodeWithID(tc.id, []byte(tc.input))
			if err != nil {
				t.Fatalf("EncodeWithID: %v", err)
			}
			dec, err := Decode(enc)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			v, found, err := ExtractPath(enc, [][]byte{[]byte("_id")})
			if err != nil {
				t.Fatalf("ExtractPath: %v", err)
			}
			if !found {
				t.Fatalf("expected _id to be found in %s", dec)
			}
			if v.Kind != KindString || v.String != tc.id {
				t.Errorf("expected _id %q, got %+v", tc.id, v)
			}
		})
	}
}

func TestEncodeWithIDRejectsNonObject(t *testing.T) {
	if _, err := EncodeWithID("x", []byte(`[1,2]`)); err == nil {
		t.Errorf("expected error encoding forced id onto a non-object top level")
	}
}
