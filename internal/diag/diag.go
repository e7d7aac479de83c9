// Package diag defines the diagnostic values produced by the compiler
// pipeline. Stages report diagnostics into an ordered Bag instead of
// unwinding; the caller decides how to render them.
package diag

import (
	"fmt"

	"github.com/taipan-lang/taipan/internal/syntax"
)

// Severity classifies a diagnostic. The compiler currently only emits
// errors; the field exists so the wire shape does not change if
// warnings are added.
type Severity int

const (
	Error Severity = iota
	Warning
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code identifies the rule that produced a diagnostic.
type Code int

const (
	// Lexical and syntactic errors
	LexicalError Code = iota
	SyntaxError

	// Semantic errors
	UndefinedSymbol
	DuplicateDeclaration
	TypeMismatch
	ArityMismatch
	InvalidControlFlow

	// Internal invariant violations surfaced as diagnostics
	InternalError
)

// codeNames maps codes to their user-visible names.
var codeNames = [...]string{
	LexicalError:         "LexicalError",
	SyntaxError:          "SyntaxError",
	UndefinedSymbol:      "UndefinedSymbol",
	DuplicateDeclaration: "DuplicateDeclaration",
	TypeMismatch:         "TypeMismatch",
	ArityMismatch:        "ArityMismatch",
	InvalidControlFlow:   "InvalidControlFlow",
	InternalError:        "InternalError",
}

// String returns the name of the code.
func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Diagnostic is a single error with its source position.
// Diagnostics are values; they never cross stage boundaries as panics.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      syntax.Pos
	Msg      string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Code, d.Msg)
}

// Bag collects diagnostics in report order.
// The zero value is ready to use.
type Bag struct {
	diags []Diagnostic
}

// Errorf records an error diagnostic at pos.
func (b *Bag) Errorf(code Code, pos syntax.Pos, format string, args ...interface{}) {
	b.Add(Diagnostic{
		Severity: Error,
		Code:     code,
		Pos:      pos,
		Msg:      fmt.Sprintf(format, args...),
	})
}

// Add appends a diagnostic. Order is preserved; nothing is deduplicated.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Has reports whether any diagnostic with the given code was recorded.
func (b *Bag) Has(code Code) bool {
	for _, d := range b.diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// All returns the recorded diagnostics in report order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// Len returns the number of recorded diagnostics.
func (b *Bag) Len() int {
	return len(b.diags)
}
