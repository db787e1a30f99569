package tson

import (
	"fmt"
	"strconv"
)

// Decode transcodes TSON back into minified JSON. It is driven entirely by
// tag bytes: OBJECT_BEGIN/ARRAY_BEGIN discard their four-byte length prefix
// rather than use it to jump ahead, and recursion bottoms out on the
// matching END tag. The length prefix is load-bearing only for the
// skip-ahead paths (ExtractPath and the query parser), not for Decode itself.
//
// String bytes are copied through verbatim; Decode does not re-escape or
// validate escape sequences, mirroring Encode's refusal to normalize them
// (see DESIGN.md's open-question list).
func Decode(doc []byte) ([]byte, error) {
	d := &decoder{cur: NewCursor(doc), sink: NewSink(len(doc))}
	if err := d.value(); err != nil {
		return nil, err
	}
	if !d.cur.Done() {
		return nil, fmt.Errorf("%w: trailing bytes after top-level value", ErrMalformedTSON)
	}
	return d.sink.Bytes(), nil
}

type decoder struct {
	cur  *Cursor
	sink *Sink
}

func (d *decoder) value() error {
	if d.cur.Done() {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformedTSON)
	}
	switch tag := d.cur.ReadNext(); tag {
	case ObjectBegin:
		return d.composite(ObjectEnd, '{', '}')
	case ArrayBegin:
		return d.composite(ArrayEnd, '[', ']')
	case String:
		return d.string()
	case Number:
		return d.number()
	case True:
		d.sink.WriteSlice([]byte("true"))
		return nil
	case False:
		d.sink.WriteSlice([]byte("false"))
		return nil
	case Null:
		d.sink.WriteSlice([]byte("null"))
		return nil
	default:
		return fmt.Errorf("%w: unrecognized tag 0x%02x", ErrMalformedTSON, tag)
	}
}

// composite decodes the body of an OBJECT or ARRAY: it discards the
// four-byte length field, then alternates decoding values with expecting
// PAIR/SEPARATOR tags until it consumes the matching end tag.
func (d *decoder) composite(end byte, open, close byte) error {
	if d.cur.Len()-d.cur.Index() < lengthFieldSize {
		return fmt.Errorf("%w: truncated length field", ErrMalformedTSON)
	}
	d.cur.Skip(lengthFieldSize)

	d.sink.Write(open)
	first := true
	for {
		if d.cur.Done() {
			return fmt.Errorf("%w: unterminated composite", ErrMalformedTSON)
		}
		if d.cur.Peek() == end {
			d.cur.Skip(1)
			break
		}
		if !first {
			switch tag := d.cur.ReadNext(); tag {
			case Pair:
				d.sink.Write(':')
			case Separator:
				d.sink.Write(',')
			default:
				return fmt.Errorf("%w: expected pair or separator tag, got 0x%02x", ErrMalformedTSON, tag)
			}
		}
		if err := d.value(); err != nil {
			return err
		}
		first = false
	}
	d.sink.Write(close)
	return nil
}

func (d *decoder) string() error {
	if d.cur.Len()-d.cur.Index() < lengthFieldSize {
		return fmt.Errorf("%w: truncated string length", ErrMalformedTSON)
	}
	n := int(le32(d.cur.Read(lengthFieldSize)))
	if d.cur.Len()-d.cur.Index() < n {
		return fmt.Errorf("%w: truncated string payload", ErrMalformedTSON)
	}
	payload := d.cur.Read(n)
	d.sink.Write('"')
	d.sink.WriteSlice(payload)
	d.sink.Write('"')
	return nil
}

func (d *decoder) number() error {
	if d.cur.Len()-d.cur.Index() < floatFieldSize {
		return fmt.Errorf("%w: truncated number", ErrMalformedTSON)
	}
	v := le64f(d.cur.Read(floatFieldSize))
	d.sink.WriteSlice([]byte(strconv.FormatFloat(v, 'g', -1, 64)))
	return nil
}
