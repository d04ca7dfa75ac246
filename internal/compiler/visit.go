package compiler

import "strings"

// compileQuery walks a parsed QueryAST into the final *Filter, wrapping a
// bare result (a single un-negated condition) in
// Filter{must: [...]} the way where2filter wraps whatever visit_expression
// returned when it isn't already a Filter — the spec's entry point always
// returns a Filter, never a naked Condition.
func compileQuery(ast *QueryAST) (*Filter, error) {
	n, err := compileExpression(ast.Expr)
	if err != nil {
		return nil, err
	}
	return wrapAsFilter(n), nil
}

// compileExpression folds "factor ((OR|AND) factor)*" left to right,
// exactly the flat, non-precedence-climbing grammar shape §4.1 requires.
// The accumulator stays a raw Node (not eagerly wrapped in a Filter) so a
// lone factor — e.g. the body of a parenthesized group with no AND/OR —
// flows into the enclosing merge as a bare condition, not a nested
// one-element Filter; mergeAnd/mergeOr decide how to treat each operand.
func compileExpression(ast *ExpressionAST) (Node, error) {
	acc, err := compileFactor(ast.First)
	if err != nil {
		return nil, err
	}
	for _, opFactor := range ast.Rest {
		rhs, err := compileFactor(opFactor.Factor)
		if err != nil {
			return nil, err
		}
		switch strings.ToUpper(opFactor.Op) {
		case "AND":
			acc = mergeAnd(acc, rhs)
		case "OR":
			acc = mergeOr(acc, rhs)
		}
	}
	return acc, nil
}

// compileFactor applies NOT, implementing the double-negation elimination
// and must_not-wrapping rules in mergeNot.
func compileFactor(ast *FactorAST) (Node, error) {
	term, err := compileTerm(ast.Term)
	if err != nil {
		return nil, err
	}
	if !ast.Not {
		return term, nil
	}
	return mergeNot(term), nil
}

// compileTerm dispatches a condition vs. a parenthesized nested expression.
func compileTerm(ast *TermAST) (Node, error) {
	if ast.Condition != nil {
		return compileCondition(ast.Condition)
	}
	return compileExpression(ast.Group)
}

// compileCondition dispatches on whichever ConditionAST branch parsed,
// mirroring convertStatement's style of checking each non-nil pointer
// field in turn.
func compileCondition(ast *ConditionAST) (Node, error) {
	switch {
	case ast.IsNull != nil:
		return wrapNotNode(&IsNull{Key: ast.IsNull.Ident}, ast.IsNull.Not), nil
	case ast.IsEmpty != nil:
		return &IsEmpty{Key: ast.IsEmpty.Ident}, nil
	case ast.IsEmptyArr != nil:
		return &IsEmpty{Key: ast.IsEmptyArr.Ident}, nil
	case ast.ValuesCount != nil:
		return compileValuesCount(ast.ValuesCount)
	case ast.Comparison != nil:
		return compileComparison(ast.Comparison)
	default:
		return nil, InvalidQuery("condition", "empty condition node")
	}
}

// wrapNotNode wraps n in a must_not Filter when negated, matching
// visit_is_null_condition's handling of the optional NOT.
func wrapNotNode(n Node, negated bool) Node {
	if !negated {
		return n
	}
	return &Filter{MustNot: []Node{n}}
}

func compileValuesCount(ast *ValuesCountAST) (Node, error) {
	bound, err := countBound(ast.Op)
	if err != nil {
		return nil, err
	}
	for _, v := range []*Value{bound.Gt, bound.Gte, bound.Lt, bound.Lte} {
		if v != nil && (v.Kind != IntValue || v.Int < 0) {
			return nil, InvalidQuery("values_count", "COUNT("+ast.Ident+") bound must be a non-negative integer")
		}
	}
	return &FieldValuesCount{Key: ast.Ident, Bound: bound}, nil
}

func countBound(ast *CountOpAST) (Bound, error) {
	numPtr := func(s string) *Value {
		v := decodeNumber(s)
		return &v
	}
	switch {
	case ast.Between != nil:
		return Bound{Gte: numPtr(ast.Between.Low), Lte: numPtr(ast.Between.High)}, nil
	case ast.Eq != nil:
		return Bound{Gte: numPtr(*ast.Eq), Lte: numPtr(*ast.Eq)}, nil
	case ast.Gte != nil:
		return Bound{Gte: numPtr(*ast.Gte)}, nil
	case ast.Lte != nil:
		return Bound{Lte: numPtr(*ast.Lte)}, nil
	case ast.Gt != nil:
		return Bound{Gt: numPtr(*ast.Gt)}, nil
	case ast.Lt != nil:
		return Bound{Lt: numPtr(*ast.Lt)}, nil
	default:
		return Bound{}, InvalidQuery("values_count", "missing comparison operator")
	}
}

// compileComparison handles the generic field comparison plus the
// special-cased `id` identifier (§4.2 has_id).
func compileComparison(ast *ComparisonAST) (Node, error) {
	if ast.Ident == "id" {
		return compileHasId(ast.Op)
	}

	op := ast.Op
	switch {
	case op.Eq != nil:
		v, err := decodeValueAST(op.Eq)
		if err != nil {
			return nil, err
		}
		return &FieldMatchValue{Key: ast.Ident, Value: v}, nil
	case op.NotEq != nil:
		v, err := decodeValueAST(op.NotEq)
		if err != nil {
			return nil, err
		}
		return &Filter{MustNot: []Node{&FieldMatchValue{Key: ast.Ident, Value: v}}}, nil
	case op.In != nil:
		v, err := decodeValueAST(op.In)
		if err != nil {
			return nil, err
		}
		return &FieldMatchAny{Key: ast.Ident, Values: flatten(v)}, nil
	case op.NotIn != nil:
		v, err := decodeValueAST(op.NotIn)
		if err != nil {
			return nil, err
		}
		return &FieldMatchExcept{Key: ast.Ident, Values: flatten(v)}, nil
	case op.Like != nil:
		v, err := decodeValueAST(op.Like)
		if err != nil {
			return nil, err
		}
		return &FieldMatchText{Key: ast.Ident, Pattern: v.Str}, nil
	case op.Gt != nil:
		return compareBound(ast.Ident, op.Gt, boundGt)
	case op.Gte != nil:
		return compareBound(ast.Ident, op.Gte, boundGte)
	case op.Lt != nil:
		return compareBound(ast.Ident, op.Lt, boundLt)
	case op.Lte != nil:
		return compareBound(ast.Ident, op.Lte, boundLte)
	case op.Between != nil:
		return compareBetween(ast.Ident, op.Between, false)
	case op.NotBetween != nil:
		return compareBetween(ast.Ident, op.NotBetween, true)
	default:
		return nil, InvalidQuery("comparison", "missing operator")
	}
}

type boundSlot int

const (
	boundGt boundSlot = iota
	boundGte
	boundLt
	boundLte
)

// compareBound builds a single-sided Range or DatetimeRange for one of
// >, >=, <, <=, choosing the datetime variant iff the operand is a string
// that parses as ISO-8601 (§4.2).
func compareBound(key string, valueAST *ValueAST, slot boundSlot) (Node, error) {
	v, err := decodeValueAST(valueAST)
	if err != nil {
		return nil, err
	}
	b := Bound{}
	switch slot {
	case boundGt:
		b.Gt = &v
	case boundGte:
		b.Gte = &v
	case boundLt:
		b.Lt = &v
	case boundLte:
		b.Lte = &v
	}
	if v.Kind == StringValue && isDatetime(v.Str) {
		return &FieldDatetimeRange{Key: key, Bound: b}, nil
	}
	return &FieldRange{Key: key, Bound: b}, nil
}

// compareBetween builds a two-sided range for BETWEEN / NOT BETWEEN. Both
// bound literals must independently parse as ISO-8601 datetimes for the
// pair to be treated as a datetime range; otherwise it falls back to a
// plain (numeric or string) Range, matching handle_between in the source.
func compareBetween(key string, ast *BetweenValAST, negated bool) (Node, error) {
	low, err := decodeValueAST(ast.Low)
	if err != nil {
		return nil, err
	}
	high, err := decodeValueAST(ast.High)
	if err != nil {
		return nil, err
	}
	b := Bound{Gte: &low, Lte: &high}

	var node Node
	if low.Kind == StringValue && high.Kind == StringValue && isDatetime(low.Str) && isDatetime(high.Str) {
		node = &FieldDatetimeRange{Key: key, Bound: b}
	} else {
		node = &FieldRange{Key: key, Bound: b}
	}
	if negated {
		return &Filter{MustNot: []Node{node}}, nil
	}
	return node, nil
}

// compileHasId maps the reserved `id` identifier's restricted operator
// set — =, !=, <>, IN, NOT IN — to a HasId condition. Values pass through
// with whatever type decodeValueAST gave them; a quoted UUID stays a
// string in its original textual form, matching visit_has_id_condition,
// which never parses or validates the id value it receives.
func compileHasId(op *ComparisonOpAST) (Node, error) {
	switch {
	case op.Eq != nil:
		v, err := decodeValueAST(op.Eq)
		if err != nil {
			return nil, err
		}
		return &HasId{Values: []Value{v}}, nil
	case op.NotEq != nil:
		v, err := decodeValueAST(op.NotEq)
		if err != nil {
			return nil, err
		}
		return &Filter{MustNot: []Node{&HasId{Values: []Value{v}}}}, nil
	case op.In != nil:
		v, err := decodeValueAST(op.In)
		if err != nil {
			return nil, err
		}
		return &HasId{Values: flatten(v)}, nil
	case op.NotIn != nil:
		v, err := decodeValueAST(op.NotIn)
		if err != nil {
			return nil, err
		}
		return &Filter{MustNot: []Node{&HasId{Values: flatten(v)}}}, nil
	default:
		return nil, InvalidQuery("has_id", "id only supports =, !=, <>, IN, NOT IN")
	}
}

func wrapAsFilter(n Node) *Filter {
	if f, ok := n.(*Filter); ok {
		return f
	}
	return &Filter{Must: []Node{n}}
}
