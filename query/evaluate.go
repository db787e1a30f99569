package query

import "github.com/reefdb/reefdb/tson"

// Evaluate reports whether doc — a complete TSON OBJECT document — matches
// the parsed query tree op.
func Evaluate(doc []byte, op LogicalOperation) (bool, error) {
	switch op.Kind {
	case LogicAnd:
		for _, node := range op.Nodes {
			ok, err := Evaluate(doc, node)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case LogicOr:
		for _, node := range op.Nodes {
			ok, err := Evaluate(doc, node)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		for _, nsOp := range op.Leaf {
			ok, err := evaluateOne(doc, nsOp)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

// evaluateOne evaluates a single NamespacedOperation against doc. A path
// that doesn't resolve in doc is always a non-match, for every operator
// including $ne and $nin — see DESIGN.md's open-question decision on
// missing-field comparisons.
func evaluateOne(doc []byte, nsOp NamespacedOperation) (bool, error) {
	leaf, found, err := tson.ExtractPath(doc, nsOp.Namespace)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return Compare(leaf, nsOp.Operation), nil
}

// Compare applies op against a single extracted document value. Comparisons
// between incompatible kinds (e.g. a string field against a numeric $gt)
// are non-matches, never errors, per spec.
func Compare(leaf tson.Value, op Operation) bool {
	switch op.Kind {
	case OpEq:
		return equalityMatches(leaf, op.Equality)
	case OpNe:
		return !equalityMatches(leaf, op.Equality)
	case OpLt:
		return compareOrdered(leaf, op.Comparison, func(c int) bool { return c < 0 })
	case OpLte:
		return compareOrdered(leaf, op.Comparison, func(c int) bool { return c <= 0 })
	case OpGt:
		return compareOrdered(leaf, op.Comparison, func(c int) bool { return c > 0 })
	case OpGte:
		return compareOrdered(leaf, op.Comparison, func(c int) bool { return c >= 0 })
	case OpIn:
		for _, v := range op.Set {
			if equalityMatches(leaf, v) {
				return true
			}
		}
		return false
	case OpNin:
		for _, v := range op.Set {
			if equalityMatches(leaf, v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalityMatches(leaf tson.Value, want EqualityValue) bool {
	switch want.Kind {
	case EqString:
		return leaf.Kind == tson.KindString && leaf.String == want.String
	case EqNumber:
		return leaf.Kind == tson.KindNumber && leaf.Number == want.Number
	case EqTrue:
		return leaf.Kind == tson.KindBool && leaf.Bool
	case EqFalse:
		return leaf.Kind == tson.KindBool && !leaf.Bool
	case EqNull:
		return leaf.Kind == tson.KindNull
	default:
		return false
	}
}

// compareOrdered compares leaf against want only when both are the same
// comparable kind (string or number); any other pairing is a non-match.
func compareOrdered(leaf tson.Value, want ComparisonValue, test func(int) bool) bool {
	switch want.Kind {
	case CmpString:
		if leaf.Kind != tson.KindString {
			return false
		}
		return test(stringCompare(leaf.String, want.String))
	case CmpNumber:
		if leaf.Kind != tson.KindNumber {
			return false
		}
		switch {
		case leaf.Number < want.Number:
			return test(-1)
		case leaf.Number > want.Number:
			return test(1)
		default:
			return test(0)
		}
	default:
		return false
	}
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
