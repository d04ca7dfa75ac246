package compiler

// The functions below are a direct transliteration of the Python
// visitor's merge_filters/collect_conditions/flatten_should (AND/OR) and
// visit_factor (NOT), which is where the Boolean normalizer in §4.3
// actually lives: the grammar produces a flat left-fold of factors, and
// every fold step goes through mergeAnd/mergeOr. Operands are raw Nodes —
// a bare condition or an already-merged Filter — never pre-wrapped, so a
// lone condition ORed into a should bucket lands there directly instead
// of as a nested one-element Filter.

// isPureShould reports whether f only has a should bucket populated — the
// shape both merges treat specially (flatten into OR, nest whole into AND).
func isPureShould(f *Filter) bool {
	return f != nil && len(f.Must) == 0 && len(f.MustNot) == 0 && len(f.Should) > 0
}

// mergeAnd combines two operands under conjunction. A pure-should operand
// is nested whole under must (ORing it away would change its meaning); a
// bare condition or a pure must/must_not Filter has its content spliced
// into must/must_not directly so chained ANDs stay flat.
func mergeAnd(left, right Node) *Filter {
	result := &Filter{}
	appendAndOperand(result, left)
	appendAndOperand(result, right)
	result.Must = dedup(result.Must)
	result.MustNot = dedup(result.MustNot)
	return result
}

func appendAndOperand(result *Filter, operand Node) {
	f, ok := operand.(*Filter)
	if !ok {
		result.Must = append(result.Must, operand)
		return
	}
	if f.empty() {
		return
	}
	if isPureShould(f) || len(f.Should) > 0 {
		// Pure-should, or should mixed with must/must_not: nesting it
		// whole is the only shape that preserves its OR semantics.
		result.Must = append(result.Must, f)
		return
	}
	result.Must = append(result.Must, f.Must...)
	result.MustNot = append(result.MustNot, f.MustNot...)
}

// mergeOr combines two operands under disjunction. A bare condition or a
// pure-should Filter flattens into a single should list; anything with
// must/must_not content is nested whole.
func mergeOr(left, right Node) *Filter {
	result := &Filter{}
	appendOrOperand(result, left)
	appendOrOperand(result, right)
	result.Should = dedup(result.Should)
	return result
}

func appendOrOperand(result *Filter, operand Node) {
	f, ok := operand.(*Filter)
	if !ok {
		result.Should = append(result.Should, operand)
		return
	}
	if f.empty() {
		return
	}
	if isPureShould(f) {
		result.Should = append(result.Should, f.Should...)
		return
	}
	result.Should = append(result.Should, f)
}

// mergeNot applies a NOT to a compiled node. If the node is a Filter whose
// only populated bucket is must_not, the double negation cancels out —
// must_not becomes must directly rather than nesting — exactly
// visit_factor's `term.must_not and not term.must and not term.should`
// check. Otherwise the whole node is wrapped in a fresh must_not bucket.
func mergeNot(n Node) Node {
	if f, ok := n.(*Filter); ok {
		if len(f.Must) == 0 && len(f.Should) == 0 && len(f.MustNot) > 0 {
			return &Filter{Must: f.MustNot}
		}
	}
	return &Filter{MustNot: []Node{n}}
}
