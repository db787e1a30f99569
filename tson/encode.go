package tson

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Encode transcodes minified JSON into TSON. If the top-level value is an
// object with no "_id" key, one is not synthesized here — callers that need
// a forced id should use EncodeWithID instead. Encode assumes json has no
// whitespace between tokens, per spec.
func Encode(json []byte) ([]byte, error) {
	e := &encoder{cur: NewCursor(json), sink: NewSink(len(json))}
	if err := e.run(); err != nil {
		return nil, err
	}
	return e.sink.Bytes(), nil
}

// EncodeWithID transcodes minified JSON into TSON, splicing an
// `"_id": "<id>",` pair at the head of the top-level object before the
// source JSON's own `{` is consumed. It does not check whether the source
// JSON has an _id key of its own; if it does, the output carries two _id
// pairs, the spliced one first.
func EncodeWithID(id string, json []byte) ([]byte, error) {
	e := &encoder{cur: NewCursor(json), sink: NewSink(len(json) + len(id) + 16)}

	if e.cur.Done() || e.cur.Peek() != '{' {
		return nil, fmt.Errorf("%w: forced id requires a top-level object", ErrMalformedJSON)
	}

	e.sink.Write(ObjectBegin)
	e.beginComposite()

	key := []byte("_id")
	e.sink.Write(String)
	e.sink.WriteU32LE(uint32(len(key)))
	e.sink.WriteSlice(key)
	e.sink.Write(Pair)

	idBytes := []byte(id)
	e.sink.Write(String)
	e.sink.WriteU32LE(uint32(len(idBytes)))
	e.sink.WriteSlice(idBytes)

	e.cur.Skip(1) // consume the source JSON's `{`
	if !e.cur.Done() && e.cur.Peek() != '}' {
		e.sink.Write(Separator)
	}

	if err := e.run(); err != nil {
		return nil, err
	}
	return e.sink.Bytes(), nil
}

type encoder struct {
	cur   *Cursor
	sink  *Sink
	stack []int
}

func (e *encoder) run() error {
	for !e.cur.Done() {
		if err := e.parseNext(); err != nil {
			return err
		}
	}
	if len(e.stack) != 0 {
		return fmt.Errorf("%w: unclosed object or array", ErrMalformedJSON)
	}
	return nil
}

func (e *encoder) parseNext() error {
	switch b := e.cur.ReadNext(); b {
	case '{':
		e.sink.Write(ObjectBegin)
		e.beginComposite()
	case '}':
		e.sink.Write(ObjectEnd)
		return e.endComposite()
	case '[':
		e.sink.Write(ArrayBegin)
		e.beginComposite()
	case ']':
		e.sink.Write(ArrayEnd)
		return e.endComposite()
	case '"':
		return e.writeString()
	case 't':
		e.sink.Write(True)
		e.cur.Skip(3) // "rue"
	case 'f':
		e.sink.Write(False)
		e.cur.Skip(4) // "alse"
	case 'n':
		e.sink.Write(Null)
		e.cur.Skip(3) // "ull"
	case ':':
		e.sink.Write(Pair)
	case ',':
		e.sink.Write(Separator)
	default:
		e.cur.SkipReverse(1)
		return e.writeNumber()
	}
	return nil
}

// beginComposite reserves the four-byte length field immediately following a
// BEGIN tag and remembers where it starts, so endComposite can come back and
// fill it in once the composite's true length is known.
func (e *encoder) beginComposite() {
	e.stack = append(e.stack, e.sink.Len())
	e.sink.WriteU32LE(0)
}

// endComposite patches the matching length field with the number of bytes
// from the byte immediately after the length field through the END tag just
// written, inclusive (invariant L1).
func (e *encoder) endComposite() error {
	if len(e.stack) == 0 {
		return fmt.Errorf("%w: unmatched closing brace", ErrMalformedJSON)
	}
	fieldOffset := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	contentStart := fieldOffset + lengthFieldSize
	length := uint32(e.sink.Len() - contentStart)
	var b [lengthFieldSize]byte
	binary.LittleEndian.PutUint32(b[:], length)
	e.sink.Patch(fieldOffset, b[:])
	return nil
}

func (e *encoder) writeString() error {
	start := e.cur.Index()
	for {
		if e.cur.Done() {
			return fmt.Errorf("%w: unterminated string", ErrMalformedJSON)
		}
		b := e.cur.ReadNext()
		if b == '\\' {
			if e.cur.Done() {
				return fmt.Errorf("%w: unterminated escape", ErrMalformedJSON)
			}
			e.cur.Skip(1)
			continue
		}
		if b == '"' {
			break
		}
	}
	end := e.cur.Index() - 1
	payload := e.cur.ReadRange(start, end)

	e.sink.Write(String)
	e.sink.WriteU32LE(uint32(len(payload)))
	e.sink.WriteSlice(payload)
	return nil
}

func (e *encoder) writeNumber() error {
	start := e.cur.Index()
	for {
		if e.cur.Done() {
			return fmt.Errorf("%w: unterminated number", ErrMalformedJSON)
		}
		switch e.cur.Peek() {
		case ',', '}', ']':
			goto done
		default:
			e.cur.Skip(1)
		}
	}
done:
	raw := e.cur.ReadRange(start, e.cur.Index())
	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	e.sink.Write(Number)
	e.sink.WriteF64LE(n)
	return nil
}
