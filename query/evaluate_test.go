package query_test

import (
	"testing"

	"github.com/reefdb/reefdb/query"
	"github.com/reefdb/reefdb/tson"
)

func mustDoc(t *testing.T, json string) []byte {
	t.Helper()
	enc, err := tson.Encode([]byte(json))
	if err != nil {
		t.Fatalf("Encode(%q): %v", json, err)
	}
	return enc
}

func evalQuery(t *testing.T, queryJSON, docJSON string) bool {
	t.Helper()
	op, err := query.Parse(mustDoc(t, queryJSON))
	if err != nil {
		t.Fatalf("Parse(%q): %v", queryJSON, err)
	}
	ok, err := query.Evaluate(mustDoc(t, docJSON), op)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return ok
}

func TestEvaluateComparisonOperators(t *testing.T) {
	for _, tc := range []struct {
		name     string
		query    string
		doc      string
		expected bool
	}{
		{"gt true", `{"age":{"$gt":18}}`, `{"age":21}`, true},
		{"gt false", `{"age":{"$gt":18}}`, `{"age":10}`, false},
		{"gte boundary", `{"age":{"$gte":18}}`, `{"age":18}`, true},
		{"lt", `{"age":{"$lt":18}}`, `{"age":10}`, true},
		{"lte boundary", `{"age":{"$lte":18}}`, `{"age":18}`, true},
		{"eq string", `{"name":"alice"}`, `{"name":"alice"}`, true},
		{"ne string true", `{"name":{"$ne":"bob"}}`, `{"name":"alice"}`, true},
		{"ne string false", `{"name":{"$ne":"alice"}}`, `{"name":"alice"}`, false},
		{"in match", `{"status":{"$in":["a","b"]}}`, `{"status":"b"}`, true},
		{"in no match", `{"status":{"$in":["a","b"]}}`, `{"status":"c"}`, false},
		{"nin match", `{"status":{"$nin":["a","b"]}}`, `{"status":"c"}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := evalQuery(t, tc.query, tc.doc); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestEvaluateMissingFieldAlwaysNonMatch(t *testing.T) {
	for _, tc := range []struct {
		name  string
		query string
	}{
		{"eq", `{"missing":"x"}`},
		{"ne", `{"missing":{"$ne":"x"}}`},
		{"nin", `{"missing":{"$nin":["x"]}}`},
		{"gt", `{"missing":{"$gt":1}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := evalQuery(t, tc.query, `{"present":1}`); got {
				t.Errorf("expected missing field to never match, got true")
			}
		})
	}
}

func TestEvaluateLogicalAndOr(t *testing.T) {
	doc := `{"a":1,"b":5}`
	if !evalQuery(t, `{"$and":[{"a":1},{"b":{"$gt":2}}]}`, doc) {
		t.Errorf("expected $and to match")
	}
	if evalQuery(t, `{"$and":[{"a":1},{"b":{"$gt":10}}]}`, doc) {
		t.Errorf("expected $and to fail when one branch fails")
	}
	if !evalQuery(t, `{"$or":[{"a":99},{"b":5}]}`, doc) {
		t.Errorf("expected $or to match on second branch")
	}
}

func TestEvaluateNestedDotPath(t *testing.T) {
	if !evalQuery(t, `{"a.b.c":1}`, `{"a":{"b":{"c":1}}}`) {
		t.Errorf("expected dotted path to match nested document")
	}
}

func TestEvaluateTypeMismatchIsNonMatch(t *testing.T) {
	// "$gt" against a string field when the query expects a number should
	// never match and never error, per spec's type-incompatible-is-non-match
	// rule, rather than panicking or coercing.
	if evalQuery(t, `{"age":{"$gt":18}}`, `{"age":"grown-up"}`) {
		t.Errorf("expected string vs numeric comparison to be a non-match")
	}
}
