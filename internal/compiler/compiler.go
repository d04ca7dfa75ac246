// Package compiler turns a SQL-like WHERE-clause string into a Filter
// tree suitable for submission to a vector-database payload index. See
// grammar.go for the surface syntax, visit.go for the semantic mapping of
// each condition form, and normalize.go for the Boolean rewriting that
// reduces an arbitrary expression down to the three-bucket Filter shape.
package compiler

import "context"

// Compile parses and compiles a single WHERE-clause expression into a
// Filter. A ParseError is returned for malformed input, an
// InvalidQueryError for input that parses but violates a semantic rule.
func Compile(where string) (*Filter, error) {
	ast, err := whereParser.ParseString("", where)
	if err != nil {
		return nil, newParseError(err)
	}
	return compileQuery(ast)
}

// CompileContext is Compile with an up-front context check, matching the
// guard style the teacher's Query.Execute methods use even though
// compilation itself never blocks or does I/O.
func CompileContext(ctx context.Context, where string) (*Filter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Compile(where)
}
