// Package sema implements semantic analysis for the Taipan programming
// language: name resolution, type checking, and control-flow checks.
package sema

import (
	"fmt"

	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
)

// Error represents a semantic error.
type Error struct {
	Code diag.Code
	Pos  syntax.Pos
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each semantic error.
type ErrorHandler func(code diag.Code, pos syntax.Pos, msg string)

// errorf reports a semantic error at the given position.
func (c *Checker) errorf(code diag.Code, pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if c.errors == 0 {
		c.first = &Error{Code: code, Pos: pos, Msg: msg}
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(code, pos, msg)
	}
}
