// Package syntax implements lexical and syntactic analysis for the
// Taipan programming language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of input

	// Literals
	_Name   // identifier: foo, total, _tmp
	_Number // number literal: 42, 3.14
	_String // string literal: "hello"

	// Operators (ordered by precedence, low to high)
	// Assignment
	_Assign // =

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic operators (additive)
	_Add // +
	_Sub // -

	// Arithmetic operators (multiplicative)
	_Mul // *
	_Div // /
	_Rem // %

	// Unary operators
	_Not // !

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;

	// Keywords
	_Else
	_Func
	_If
	_Input
	_Let
	_Print
	_Return
	_While

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:   "NAME",
	_Number: "NUMBER",
	_String: "STRING",

	_Assign: "=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Not: "!",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",

	_Else:   "else",
	_Func:   "func",
	_If:     "if",
	_Input:  "input",
	_Let:    "let",
	_Print:  "print",
	_Return: "return",
	_While:  "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + -
//	5: * / %
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub:
		return 4
	case _Mul, _Div, _Rem:
		return 5
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Else && t <= _While
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t == _Number || t == _String
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Not
}

// IsEOF reports whether t is the end-of-input token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// IsComparison reports whether t is a comparison operator.
func (t Token) IsComparison() bool {
	return t >= _Eql && t <= _Geq
}

// IsLogical reports whether t is a logical operator (&& or ||).
func (t Token) IsLogical() bool {
	return t == _AndAnd || t == _OrOr
}

// Exported tokens for analyzer, code generator, and driver access.
const (
	EOF Token = _EOF

	Not Token = _Not // !
	Sub Token = _Sub // -
	Rem Token = _Rem // %
)

// keywords maps keyword strings to their token type.
// Note: the type names number and string are NOT keywords - they are
// scanned as _Name and bound in the universe scope during analysis.
var keywords = map[string]Token{
	"else":   _Else,
	"func":   _Func,
	"if":     _If,
	"input":  _Input,
	"let":    _Let,
	"print":  _Print,
	"return": _Return,
	"while":  _While,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
