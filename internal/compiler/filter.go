package compiler

import "encoding/json"

// Node is anything that can sit inside a Filter bucket: a leaf Condition or
// a nested Filter. The marker method keeps the union closed to this package.
type Node interface {
	isNode()
	json.Marshaler
}

// Filter is the tri-bucket shape every compiled WHERE clause reduces to.
// Buckets are nil (not empty slices) when unused, so omitempty drops them
// from the wire payload entirely rather than emitting "must": [].
type Filter struct {
	Must    []Node `json:"must,omitempty"`
	Should  []Node `json:"should,omitempty"`
	MustNot []Node `json:"must_not,omitempty"`
}

func (*Filter) isNode() {}

func (f *Filter) MarshalJSON() ([]byte, error) {
	type wire Filter
	return json.Marshal((*wire)(f))
}

// empty reports whether every bucket is empty, the case normalize.go strips
// from enclosing lists rather than emit a Filter{} placeholder.
func (f *Filter) empty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.Should) == 0 && len(f.MustNot) == 0)
}

// dedup drops pointer-identical duplicates while preserving order, matching
// _clean_filter_list's "keep first occurrence" behavior without needing a
// key function (conditions are compared by identity, not value equality).
func dedup(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[Node]struct{}, len(nodes))
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
