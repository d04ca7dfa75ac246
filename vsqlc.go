// Package vsqlc compiles SQL-like WHERE-clause expressions into filter
// objects for a vector-database payload index. It is a thin facade over
// internal/compiler, mirroring the teacher's pgraph.go: re-export the
// types callers need, wrap the one entry point they call.
package vsqlc

import (
	"context"

	"github.com/vsqlc/vsqlc/internal/compiler"
)

type (
	Filter             = compiler.Filter
	Node               = compiler.Node
	Condition          = compiler.Condition
	Value              = compiler.Value
	ParseError         = compiler.ParseError
	InvalidQueryError  = compiler.InvalidQueryError
	FieldMatchValue    = compiler.FieldMatchValue
	FieldMatchAny      = compiler.FieldMatchAny
	FieldMatchExcept   = compiler.FieldMatchExcept
	FieldMatchText     = compiler.FieldMatchText
	FieldRange         = compiler.FieldRange
	FieldDatetimeRange = compiler.FieldDatetimeRange
	FieldValuesCount   = compiler.FieldValuesCount
	IsNull             = compiler.IsNull
	IsEmpty            = compiler.IsEmpty
	HasId              = compiler.HasId
)

// Compile parses and compiles a single WHERE clause into a Filter.
func Compile(where string) (*Filter, error) {
	return compiler.Compile(where)
}

// CompileContext is Compile with an up-front context check.
func CompileContext(ctx context.Context, where string) (*Filter, error) {
	return compiler.CompileContext(ctx, where)
}
