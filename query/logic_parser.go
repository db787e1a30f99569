package query

import (
	"fmt"

	"github.com/reefdb/reefdb/tson"
)

// logicParser walks a logic-form query document's interior bytes, one
// top-level $and/$or key at a time. Each key's array elements are
// themselves full query documents (operation or logic form); parseDocument
// recurses into them. Multiple top-level keys are an implicit $and over
// their individual results, matching operation-form's implicit-AND-of-keys
// convention.
type logicParser struct {
	cur   *tson.Cursor
	nodes []LogicalOperation
}

func parseLogic(interior []byte) (LogicalOperation, error) {
	p := &logicParser{cur: tson.NewCursor(interior)}
	for !p.cur.Done() {
		if err := p.parseNext(); err != nil {
			return LogicalOperation{}, err
		}
	}
	switch len(p.nodes) {
	case 0:
		return LogicalOperation{}, fmt.Errorf("%w: empty logic document", ErrInvalidQuery)
	case 1:
		return p.nodes[0], nil
	default:
		return LogicalOperation{Kind: LogicAnd, Nodes: p.nodes}, nil
	}
}

func (p *logicParser) parseNext() error {
	switch tag := p.cur.ReadNext(); tag {
	case tson.String:
		return p.readKey()
	case tson.Separator:
		return nil
	default:
		return fmt.Errorf("%w: expected a logic key, got tag 0x%02x", ErrInvalidQuery, tag)
	}
}

func (p *logicParser) readKey() error {
	name, err := readString(p.cur)
	if err != nil {
		return err
	}
	if err := expectPair(p.cur); err != nil {
		return err
	}
	switch string(name) {
	case "$and":
		items, err := p.readArrayOfDocuments()
		if err != nil {
			return err
		}
		p.nodes = append(p.nodes, LogicalOperation{Kind: LogicAnd, Nodes: items})
	case "$or":
		items, err := p.readArrayOfDocuments()
		if err != nil {
			return err
		}
		p.nodes = append(p.nodes, LogicalOperation{Kind: LogicOr, Nodes: items})
	case "$not":
		return fmt.Errorf("%w: $not: unimplemented", ErrInvalidQuery)
	default:
		return fmt.Errorf("%w: unrecognized logic key %q", ErrInvalidQuery, name)
	}
	return nil
}

// readArrayOfDocuments reads an ARRAY whose every element is an OBJECT,
// parsing each element as a standalone query document.
func (p *logicParser) readArrayOfDocuments() ([]LogicalOperation, error) {
	if p.cur.Done() || p.cur.ReadNext() != tson.ArrayBegin {
		return nil, fmt.Errorf("%w: $and/$or requires an array", ErrInvalidQuery)
	}
	if p.cur.Len()-p.cur.Index() < 4 {
		return nil, fmt.Errorf("%w: truncated array length", ErrInvalidQuery)
	}
	p.cur.ReadU32LE()

	var items []LogicalOperation
	for {
		if p.cur.Done() {
			return nil, fmt.Errorf("%w: unterminated array", ErrInvalidQuery)
		}
		switch tag := p.cur.Peek(); tag {
		case tson.ArrayEnd:
			p.cur.Skip(1)
			return items, nil
		case tson.Separator:
			p.cur.Skip(1)
		case tson.ObjectBegin:
			start := p.cur.Index()
			p.cur.Skip(1)
			n := p.cur.ReadU32LE()
			p.cur.Skip(int(n))
			doc := p.cur.ReadRange(start, p.cur.Index())

			parsed, err := parseDocument(doc)
			if err != nil {
				return nil, err
			}
			items = append(items, parsed)
		default:
			return nil, fmt.Errorf("%w: $and/$or elements must be objects, got tag 0x%02x", ErrInvalidQuery, tag)
		}
	}
}
