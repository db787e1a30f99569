package query

import (
	"fmt"

	"github.com/reefdb/reefdb/tson"
)

// Parse parses a complete TSON OBJECT query document into a LogicalOperation
// tree. doc must be a well-formed TSON value whose top-level tag is
// OBJECT_BEGIN.
func Parse(doc []byte) (LogicalOperation, error) {
	return parseDocument(doc)
}

// parseDocument parses a single complete query document: it strips the outer
// OBJECT_BEGIN+length and matching OBJECT_END, then classifies the interior
// as operation or logic form before dispatching.
func parseDocument(doc []byte) (LogicalOperation, error) {
	interior, err := stripObjectFraming(doc)
	if err != nil {
		return LogicalOperation{}, err
	}

	form, err := classify(interior)
	if err != nil {
		return LogicalOperation{}, err
	}
	switch form {
	case formLogic:
		return parseLogic(interior)
	default:
		ops, err := parseOperations(interior)
		if err != nil {
			return LogicalOperation{}, err
		}
		return LogicalOperation{Kind: LogicLeaf, Leaf: ops}, nil
	}
}

func stripObjectFraming(doc []byte) ([]byte, error) {
	if len(doc) < 6 {
		return nil, fmt.Errorf("%w: query document too short", ErrInvalidQuery)
	}
	if doc[0] != tson.ObjectBegin {
		return nil, fmt.Errorf("%w: query document must be a TSON object", ErrInvalidQuery)
	}
	if doc[len(doc)-1] != tson.ObjectEnd {
		return nil, fmt.Errorf("%w: query document is missing its closing OBJECT_END", ErrInvalidQuery)
	}
	return doc[5 : len(doc)-1], nil
}
