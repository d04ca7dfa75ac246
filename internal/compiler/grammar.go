package compiler

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// QueryAST is the entry production: a single expression consuming the
// whole input.
type QueryAST struct {
	Pos lexer.Position

	Expr *ExpressionAST `parser:"@@"`
}

// ExpressionAST := Factor ( (OR | AND) Factor )*
//
// AND and OR sit at the same grammar level and fold left to right; this is
// a deliberate deviation from SQL operator precedence (§4.1 of the spec)
// and must not be "fixed" into a precedence-climbing parser.
type ExpressionAST struct {
	Pos lexer.Position

	First *FactorAST     `parser:"@@"`
	Rest  []*OpFactorAST `parser:"@@*"`
}

type OpFactorAST struct {
	Pos lexer.Position

	Op     string     `parser:"@( \"OR\" | \"AND\" )"`
	Factor *FactorAST `parser:"@@"`
}

// FactorAST := NOT? Term
type FactorAST struct {
	Pos lexer.Position

	Not  bool     `parser:"@\"NOT\"?"`
	Term *TermAST `parser:"@@"`
}

// TermAST := condition | '(' expression ')'
type TermAST struct {
	Pos lexer.Position

	Condition *ConditionAST  `parser:"  @@"`
	Group     *ExpressionAST `parser:"| \"(\" @@ \")\""`
}

// ConditionAST dispatches on which condition form matched. Order mirrors
// the spec's ordered PEG alternation: is_null / is_empty / is_empty_array
// must be tried before the generic comparison because they share its
// "ident" prefix; values_count, which starts with the COUNT keyword, is
// listed before it as well.
type ConditionAST struct {
	Pos lexer.Position

	IsNull      *IsNullAST      `parser:"  @@"`
	IsEmpty     *IsEmptyAST     `parser:"| @@"`
	IsEmptyArr  *IsEmptyArrAST  `parser:"| @@"`
	ValuesCount *ValuesCountAST `parser:"| @@"`
	Comparison  *ComparisonAST  `parser:"| @@"`
}

// IsNullAST := ident IS NOT? NULL
type IsNullAST struct {
	Pos lexer.Position

	Ident string `parser:"@Ident \"IS\""`
	Not   bool   `parser:"@\"NOT\"? \"NULL\""`
}

// IsEmptyAST := ident IS EMPTY
type IsEmptyAST struct {
	Pos lexer.Position

	Ident string `parser:"@Ident \"IS\" \"EMPTY\""`
}

// IsEmptyArrAST := ident '=' '[]'
type IsEmptyArrAST struct {
	Pos lexer.Position

	Ident string `parser:"@Ident \"=\" \"[]\""`
}

// ValuesCountAST := COUNT '(' ident ')' cmp_num
type ValuesCountAST struct {
	Pos lexer.Position

	Ident string      `parser:"\"COUNT\" \"(\" @Ident \")\""`
	Op    *CountOpAST `parser:"@@"`
}

// CountOpAST is the restricted operator set for COUNT(...): {=, >, >=, <, <=, BETWEEN}.
type CountOpAST struct {
	Pos lexer.Position

	Between *BetweenNumAST `parser:"  @@"`
	Gte     *string        `parser:"| \">=\" @Number"`
	Lte     *string        `parser:"| \"<=\" @Number"`
	Gt      *string        `parser:"| \">\" @Number"`
	Lt      *string        `parser:"| \"<\" @Number"`
	Eq      *string        `parser:"| \"=\" @Number"`
}

type BetweenNumAST struct {
	Pos lexer.Position

	Low  string `parser:"\"BETWEEN\" @Number"`
	High string `parser:"\"AND\" @Number"`
}

// ComparisonAST := ident comparison_op
type ComparisonAST struct {
	Pos lexer.Position

	Ident string           `parser:"@Ident"`
	Op    *ComparisonOpAST `parser:"@@"`
}

// ComparisonOpAST enumerates the comparison operators in the order the
// spec's PEG requires: NOT IN before IN, NOT BETWEEN before BETWEEN.
type ComparisonOpAST struct {
	Pos lexer.Position

	NotIn      *ValueAST      `parser:"  \"NOT\" \"IN\" @@"`
	NotBetween *BetweenValAST `parser:"| \"NOT\" @@"`
	Gte        *ValueAST      `parser:"| \">=\" @@"`
	Lte        *ValueAST      `parser:"| \"<=\" @@"`
	Gt         *ValueAST      `parser:"| \">\" @@"`
	Lt         *ValueAST      `parser:"| \"<\" @@"`
	Eq         *ValueAST      `parser:"| \"=\" @@"`
	NotEq      *ValueAST      `parser:"| ( \"!=\" | \"<>\" ) @@"`
	In         *ValueAST      `parser:"| \"IN\" @@"`
	Like       *ValueAST      `parser:"| \"LIKE\" @@"`
	Between    *BetweenValAST `parser:"| @@"`
}

// BetweenValAST := value AND value. The leading BETWEEN keyword is consumed
// by whichever alternative in ComparisonOpAST references it (directly for
// the plain case, after a NOT for the negated case).
type BetweenValAST struct {
	Pos lexer.Position

	Low  *ValueAST `parser:"\"BETWEEN\" @@"`
	High *ValueAST `parser:"\"AND\" @@"`
}

// ValueAST := list_value | '[]' | string | number | boolean
type ValueAST struct {
	Pos lexer.Position

	List    *ListValueAST `parser:"  @@"`
	Empty   bool          `parser:"| @\"[]\""`
	Str     *string       `parser:"| @String"`
	Number  *string       `parser:"| @Number"`
	Boolean *string       `parser:"| @( \"TRUE\" | \"FALSE\" )"`
}

// ListValueAST := '(' ( value (',' value)* )? ')'
type ListValueAST struct {
	Pos lexer.Position

	Values []*ValueAST `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

var whereParser = participle.MustBuild[QueryAST](
	participle.Lexer(whereLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)
