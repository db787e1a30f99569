package tson

import (
	"bytes"
	"fmt"
)

// ValueKind discriminates the leaf shapes ExtractPath can return.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is a decoded TSON leaf, used by the query package to compare a
// document's field against a query operator's operand without requiring a
// full Decode of the surrounding document.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	String string
	// Raw holds the untouched TSON bytes (tag through matching END tag
	// inclusive) for KindObject/KindArray, since those aren't comparable by
	// value under any operator this spec defines.
	Raw []byte
}

// ExtractPath descends doc — a complete TSON OBJECT document — along
// namespace, a dotted field path already split into byte segments, and
// returns the leaf value found there. found is false, with a zero Value and
// a nil error, whenever any segment of the path is absent or any
// intermediate value is not itself an object; per DESIGN.md this always
// means "does not match", never an error. It only walks the bytes strictly
// necessary to do so, skipping irrelevant sibling values by their length
// prefix rather than decoding them.
func ExtractPath(doc []byte, namespace [][]byte) (Value, bool, error) {
	if len(namespace) == 0 {
		return Value{}, false, fmt.Errorf("%w: empty namespace", ErrMalformedTSON)
	}
	return extractInObject(NewCursor(doc), namespace)
}

func extractInObject(cur *Cursor, namespace [][]byte) (Value, bool, error) {
	if cur.Done() {
		return Value{}, false, fmt.Errorf("%w: unexpected end of input", ErrMalformedTSON)
	}
	if tag := cur.ReadNext(); tag != ObjectBegin {
		return Value{}, false, nil
	}
	if cur.Len()-cur.Index() < lengthFieldSize {
		return Value{}, false, fmt.Errorf("%w: truncated length field", ErrMalformedTSON)
	}
	cur.Skip(lengthFieldSize)

	for {
		if cur.Done() {
			return Value{}, false, fmt.Errorf("%w: unterminated object", ErrMalformedTSON)
		}
		if cur.Peek() == ObjectEnd {
			cur.Skip(1)
			return Value{}, false, nil
		}

		key, err := readKey(cur)
		if err != nil {
			return Value{}, false, err
		}
		if pairTag := cur.ReadNext(); pairTag != Pair {
			return Value{}, false, fmt.Errorf("%w: expected pair tag, got 0x%02x", ErrMalformedTSON, pairTag)
		}

		if bytes.Equal(key, namespace[0]) {
			if len(namespace) == 1 {
				v, err := decodeValue(cur)
				if err != nil {
					return Value{}, false, err
				}
				return v, true, nil
			}
			return extractInObject(cur, namespace[1:])
		}

		if err := skipValue(cur); err != nil {
			return Value{}, false, err
		}
		if !cur.Done() && cur.Peek() == Separator {
			cur.Skip(1)
		}
	}
}

func readKey(cur *Cursor) ([]byte, error) {
	tag := cur.ReadNext()
	if tag != String {
		return nil, fmt.Errorf("%w: expected string key, got tag 0x%02x", ErrMalformedTSON, tag)
	}
	if cur.Len()-cur.Index() < lengthFieldSize {
		return nil, fmt.Errorf("%w: truncated key length", ErrMalformedTSON)
	}
	n := int(le32(cur.Read(lengthFieldSize)))
	if cur.Len()-cur.Index() < n {
		return nil, fmt.Errorf("%w: truncated key payload", ErrMalformedTSON)
	}
	return cur.Read(n), nil
}

// decodeValue decodes the value tag at the cursor's current position into a
// leaf Value, fully consuming it.
func decodeValue(cur *Cursor) (Value, error) {
	if cur.Done() {
		return Value{}, fmt.Errorf("%w: unexpected end of input", ErrMalformedTSON)
	}
	start := cur.Index()
	switch tag := cur.ReadNext(); tag {
	case String:
		if cur.Len()-cur.Index() < lengthFieldSize {
			return Value{}, fmt.Errorf("%w: truncated string length", ErrMalformedTSON)
		}
		n := int(le32(cur.Read(lengthFieldSize)))
		if cur.Len()-cur.Index() < n {
			return Value{}, fmt.Errorf("%w: truncated string payload", ErrMalformedTSON)
		}
		return Value{Kind: KindString, String: string(cur.Read(n))}, nil
	case Number:
		if cur.Len()-cur.Index() < floatFieldSize {
			return Value{}, fmt.Errorf("%w: truncated number", ErrMalformedTSON)
		}
		return Value{Kind: KindNumber, Number: le64f(cur.Read(floatFieldSize))}, nil
	case True:
		return Value{Kind: KindBool, Bool: true}, nil
	case False:
		return Value{Kind: KindBool, Bool: false}, nil
	case Null:
		return Value{Kind: KindNull}, nil
	case ObjectBegin, ArrayBegin:
		if cur.Len()-cur.Index() < lengthFieldSize {
			return Value{}, fmt.Errorf("%w: truncated length field", ErrMalformedTSON)
		}
		n := int(le32(cur.Read(lengthFieldSize)))
		if cur.Len()-cur.Index() < n {
			return Value{}, fmt.Errorf("%w: truncated composite payload", ErrMalformedTSON)
		}
		cur.Skip(n)
		kind := KindObject
		if tag == ArrayBegin {
			kind = KindArray
		}
		return Value{Kind: kind, Raw: cur.ReadRange(start, cur.Index())}, nil
	default:
		return Value{}, fmt.Errorf("%w: unrecognized tag 0x%02x", ErrMalformedTSON, tag)
	}
}

// skipValue advances the cursor past one complete value without decoding
// it, using each composite's length prefix to jump over its entire body
// and END tag in one step.
func skipValue(cur *Cursor) error {
	if cur.Done() {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformedTSON)
	}
	switch tag := cur.ReadNext(); tag {
	case ObjectBegin, ArrayBegin:
		if cur.Len()-cur.Index() < lengthFieldSize {
			return fmt.Errorf("%w: truncated length field", ErrMalformedTSON)
		}
		n := int(le32(cur.Read(lengthFieldSize)))
		if cur.Len()-cur.Index() < n {
			return fmt.Errorf("%w: truncated composite payload", ErrMalformedTSON)
		}
		cur.Skip(n)
	case String:
		if cur.Len()-cur.Index() < lengthFieldSize {
			return fmt.Errorf("%w: truncated string length", ErrMalformedTSON)
		}
		n := int(le32(cur.Read(lengthFieldSize)))
		if cur.Len()-cur.Index() < n {
			return fmt.Errorf("%w: truncated string payload", ErrMalformedTSON)
		}
		cur.Skip(n)
	case Number:
		if cur.Len()-cur.Index() < floatFieldSize {
			return fmt.Errorf("%w: truncated number", ErrMalformedTSON)
		}
		cur.Skip(floatFieldSize)
	case True, False, Null:
	default:
		return fmt.Errorf("%w: unrecognized tag 0x%02x", ErrMalformedTSON, tag)
	}
	return nil
}
