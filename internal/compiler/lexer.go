package compiler

import "github.com/alecthomas/participle/v2/lexer"

// whereLexer tokenizes a WHERE clause. The Keyword pattern carries a trailing
// \b word-boundary assertion so "android = 1" lexes as the
// identifier "android", never as the keyword AND followed by "roid".
var whereLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT|IN|IS|NULL|EMPTY|TRUE|FALSE|BETWEEN|LIKE|COUNT)\b`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "String", Pattern: `'(?:[^'\\]|\\['\\])*'`},
	{Name: "EmptyList", Pattern: `\[\]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_\[\].]*`},
	{Name: "Op", Pattern: `!=|<>|>=|<=|>|<|=`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
