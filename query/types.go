// Package query parses TSON query documents — the object a caller passes to
// Collection.Query — into a tree of operations that can be evaluated against
// a stored document without re-parsing it per document.
//
// A query document is either operation form (top-level keys are dotted
// field paths, values are scalars or {$op: value} sub-objects) or logic
// form (top-level keys are $and/$or, arrays of nested query documents).
// Go has no sum types, so each of the value shapes below is a Kind enum
// plus payload fields rather than a Rust-style enum.
package query

// EqualityKind discriminates the value shapes $eq and $ne accept.
type EqualityKind int

const (
	EqString EqualityKind = iota
	EqNumber
	EqTrue
	EqFalse
	EqNull
)

// EqualityValue is the operand of $eq, $ne, and each element of $in/$nin.
type EqualityValue struct {
	Kind   EqualityKind
	String string
	Number float64
}

// ComparisonKind discriminates the value shapes $lt/$lte/$gt/$gte accept.
type ComparisonKind int

const (
	CmpString ComparisonKind = iota
	CmpNumber
)

// ComparisonValue is the operand of $lt, $lte, $gt, and $gte.
type ComparisonValue struct {
	Kind   ComparisonKind
	String string
	Number float64
}

// OpKind names one of the eight operators an operation-form query may use.
type OpKind int

const (
	OpEq OpKind = iota
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	OpIn
	OpNin
)

// Operation is one parsed operator and its operand. Only the fields that
// match Kind are meaningful.
type Operation struct {
	Kind       OpKind
	Equality   EqualityValue   // Eq, Ne
	Comparison ComparisonValue // Lt, Lte, Gt, Gte
	Set        []EqualityValue // In, Nin
}

// NamespacedOperation pairs an operator with the dotted field path (already
// split into byte segments) it applies to.
type NamespacedOperation struct {
	Namespace [][]byte
	Operation Operation
}

// LogicKind discriminates a LogicalOperation's three shapes.
type LogicKind int

const (
	LogicLeaf LogicKind = iota
	LogicAnd
	LogicOr
)

// LogicalOperation is the parsed form of a query document: either a flat
// list of field-level operations implicitly ANDed together (LogicLeaf), or
// an explicit $and/$or over nested LogicalOperations.
type LogicalOperation struct {
	Kind  LogicKind
	Leaf  []NamespacedOperation
	Nodes []LogicalOperation
}
