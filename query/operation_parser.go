package query

import (
	"fmt"

	"github.com/reefdb/reefdb/tson"
)

// operationParser walks an operation-form query document's interior bytes
// once, alternating between two states: reading a top-level field key
// (inObject == false), and reading operator names inside that key's
// sub-object (inObject == true). Each emitted operator becomes one
// NamespacedOperation, keyed by the current field's dot-split path.
type operationParser struct {
	cur        *tson.Cursor
	inObject   bool
	key        []byte
	operations []NamespacedOperation
}

func parseOperations(interior []byte) ([]NamespacedOperation, error) {
	p := &operationParser{cur: tson.NewCursor(interior)}
	for !p.cur.Done() {
		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}
	return p.operations, nil
}

func (p *operationParser) parseNext() error {
	if !p.inObject {
		switch tag := p.cur.ReadNext(); tag {
		case tson.String:
			return p.readKey()
		case tson.Separator:
			return nil
		default:
			return fmt.Errorf("%w: expected a field key, got tag 0x%02x", ErrInvalidQuery, tag)
		}
	}
	switch tag := p.cur.ReadNext(); tag {
	case tson.ObjectEnd:
		p.inObject = false
		p.key = nil
		return nil
	case tson.String:
		return p.readOperator()
	case tson.Separator:
		return nil
	default:
		return fmt.Errorf("%w: expected an operator name, got tag 0x%02x", ErrInvalidQuery, tag)
	}
}

func (p *operationParser) readKey() error {
	key, err := readString(p.cur)
	if err != nil {
		return err
	}
	if err := p.expectPair(); err != nil {
		return err
	}
	if p.cur.Done() {
		return fmt.Errorf("%w: key %q has no value", ErrInvalidQuery, key)
	}
	if p.cur.Peek() == tson.ObjectBegin {
		p.cur.Skip(1)
		p.cur.ReadU32LE() // sub-object length; its own OBJECT_END terminates it
		p.key = key
		p.inObject = true
		return nil
	}
	value, err := readEqualityValue(p.cur)
	if err != nil {
		return err
	}
	p.operations = append(p.operations, NamespacedOperation{
		Namespace: splitDotPath(key),
		Operation: Operation{Kind: OpEq, Equality: value},
	})
	return nil
}

func (p *operationParser) readOperator() error {
	name, err := readString(p.cur)
	if err != nil {
		return err
	}
	if err := p.expectPair(); err != nil {
		return err
	}

	var op Operation
	switch string(name) {
	case "$eq":
		v, err := readEqualityValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpEq, Equality: v}
	case "$ne":
		v, err := readEqualityValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpNe, Equality: v}
	case "$lt":
		v, err := readComparisonValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpLt, Comparison: v}
	case "$lte":
		v, err := readComparisonValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpLte, Comparison: v}
	case "$gt":
		v, err := readComparisonValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpGt, Comparison: v}
	case "$gte":
		v, err := readComparisonValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpGte, Comparison: v}
	case "$in":
		v, err := readSetValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpIn, Set: v}
	case "$nin":
		v, err := readSetValue(p.cur)
		if err != nil {
			return err
		}
		op = Operation{Kind: OpNin, Set: v}
	default:
		return fmt.Errorf("%w: unrecognized operator %q", ErrInvalidQuery, name)
	}

	p.operations = append(p.operations, NamespacedOperation{
		Namespace: splitDotPath(p.key),
		Operation: op,
	})
	return nil
}

func (p *operationParser) expectPair() error { return expectPair(p.cur) }

// expectPair consumes the PAIR tag between a key/operator name and its
// value. Shared by the operation and logic parsers.
func expectPair(cur *tson.Cursor) error {
	if cur.Done() {
		return fmt.Errorf("%w: unexpected end of query document", ErrInvalidQuery)
	}
	if tag := cur.ReadNext(); tag != tson.Pair {
		return fmt.Errorf("%w: expected pair tag, got 0x%02x", ErrInvalidQuery, tag)
	}
	return nil
}

func readString(cur *tson.Cursor) ([]byte, error) {
	if cur.Len()-cur.Index() < 4 {
		return nil, fmt.Errorf("%w: truncated string length", ErrInvalidQuery)
	}
	n := cur.ReadU32LE()
	if cur.Len()-cur.Index() < int(n) {
		return nil, fmt.Errorf("%w: truncated string payload", ErrInvalidQuery)
	}
	return cur.Read(int(n)), nil
}

func readEqualityValue(cur *tson.Cursor) (EqualityValue, error) {
	if cur.Done() {
		return EqualityValue{}, fmt.Errorf("%w: unexpected end of query document", ErrInvalidQuery)
	}
	switch tag := cur.ReadNext(); tag {
	case tson.String:
		s, err := readString(cur)
		if err != nil {
			return EqualityValue{}, err
		}
		return EqualityValue{Kind: EqString, String: string(s)}, nil
	case tson.Number:
		return EqualityValue{Kind: EqNumber, Number: cur.ReadF64LE()}, nil
	case tson.True:
		return EqualityValue{Kind: EqTrue}, nil
	case tson.False:
		return EqualityValue{Kind: EqFalse}, nil
	case tson.Null:
		return EqualityValue{Kind: EqNull}, nil
	default:
		return EqualityValue{}, fmt.Errorf("%w: invalid equality value, tag 0x%02x", ErrInvalidQuery, tag)
	}
}

func readComparisonValue(cur *tson.Cursor) (ComparisonValue, error) {
	if cur.Done() {
		return ComparisonValue{}, fmt.Errorf("%w: unexpected end of query document", ErrInvalidQuery)
	}
	switch tag := cur.ReadNext(); tag {
	case tson.String:
		s, err := readString(cur)
		if err != nil {
			return ComparisonValue{}, err
		}
		return ComparisonValue{Kind: CmpString, String: string(s)}, nil
	case tson.Number:
		return ComparisonValue{Kind: CmpNumber, Number: cur.ReadF64LE()}, nil
	default:
		return ComparisonValue{}, fmt.Errorf("%w: comparison operator requires string or number, got tag 0x%02x", ErrInvalidQuery, tag)
	}
}

func readSetValue(cur *tson.Cursor) ([]EqualityValue, error) {
	if cur.Done() || cur.ReadNext() != tson.ArrayBegin {
		return nil, fmt.Errorf("%w: set operator requires an array", ErrInvalidQuery)
	}
	if cur.Len()-cur.Index() < 4 {
		return nil, fmt.Errorf("%w: truncated array length", ErrInvalidQuery)
	}
	cur.ReadU32LE()

	var values []EqualityValue
	for {
		if cur.Done() {
			return nil, fmt.Errorf("%w: unterminated array", ErrInvalidQuery)
		}
		switch tag := cur.Peek(); tag {
		case tson.ArrayEnd:
			cur.Skip(1)
			return values, nil
		case tson.Separator:
			cur.Skip(1)
		default:
			v, err := readEqualityValue(cur)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
}

// splitDotPath splits key on ASCII '.', preserving empty components (spec's
// open question about a literal '.' inside a field name is left unresolved;
// see DESIGN.md).
func splitDotPath(key []byte) [][]byte {
	var segments [][]byte
	var cur []byte
	for _, b := range key {
		if b == '.' {
			segments = append(segments, cur)
			cur = nil
			continue
		}
		cur = append(cur, b)
	}
	return append(segments, cur)
}
