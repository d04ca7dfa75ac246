package compiler

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseError reports input that does not match the grammar. Unlike the
// teacher's dsl.SyntaxError, it carries enough position information for a
// caller to point at the offending byte without re-running the parser.
type ParseError struct {
	Kind    string
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%v) at %d:%d: %v", e.Kind, e.Line, e.Column, e.Message)
}

func (e *ParseError) ErrorKind() string { return e.Kind }

// newParseError wraps whatever participle returned into a ParseError,
// pulling position information out when the underlying error exposes it.
func newParseError(err error) *ParseError {
	pe := &ParseError{Kind: "syntax", Message: err.Error()}

	var perr participle.Error
	if errors.As(err, &perr) {
		pe.Message = perr.Message()
		setPosition(pe, perr.Position())
	}
	return pe
}

func setPosition(pe *ParseError, pos lexer.Position) {
	pe.Offset = pos.Offset
	pe.Line = pos.Line
	pe.Column = pos.Column
}

// InvalidQueryError reports input that parses but violates a semantic
// rule: a malformed id condition, a negative or non-integer values_count
// bound, and similar.
type InvalidQueryError struct {
	Kind    string
	Message string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query (%v): %v", e.Kind, e.Message)
}

func (e *InvalidQueryError) ErrorKind() string { return e.Kind }

// InvalidQuery constructs an *InvalidQueryError; kept as a function rather
// than a bare struct literal so call sites read like the teacher's
// graph.NodeAlreadyExists-style error constructors.
func InvalidQuery(kind, message string) *InvalidQueryError {
	return &InvalidQueryError{Kind: kind, Message: message}
}
