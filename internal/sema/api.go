package sema

import (
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// Config specifies the configuration for semantic analysis.
type Config struct {
	// Error is called for each semantic error.
	// If nil, errors are silently ignored.
	Error ErrorHandler
}

// Info holds the results of semantic analysis.
type Info struct {
	// Types maps expressions to their type information.
	Types map[syntax.Expr]TypeAndValue

	// Defs maps defining identifiers to their declared objects.
	// For let declarations, this maps the Name to the Var.
	// For function declarations, this maps the Name to the FuncObj.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing identifiers to their referenced objects.
	// For each Name that references a previously declared object,
	// this maps the Name to that object.
	Uses map[*syntax.Name]types.Object

	// Scopes maps AST nodes to their scopes.
	// This includes File, FuncDecl bodies, and BlockStmt.
	Scopes map[syntax.Node]*types.Scope
}

// TypeAndValue holds the type information for an expression.
type TypeAndValue struct {
	Type types.Type  // expression type
	mode operandMode // operand mode
}

// IsVoid reports whether the expression has no value (void function call).
func (tv TypeAndValue) IsVoid() bool {
	return tv.mode == novalue
}

// IsType reports whether the expression is a type expression.
func (tv TypeAndValue) IsType() bool {
	return tv.mode == typexpr
}

// IsAddressable reports whether the expression is addressable (variable).
func (tv TypeAndValue) IsAddressable() bool {
	return tv.mode == variable
}

// IsValue reports whether the expression has a value.
func (tv TypeAndValue) IsValue() bool {
	return tv.mode == variable || tv.mode == value
}

// Check runs semantic analysis over a parsed file.
// It returns the first error encountered, if any.
func Check(file *syntax.File, conf *Config, info *Info) error {
	if conf == nil {
		conf = &Config{}
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]TypeAndValue)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Object)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Object)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*types.Scope)
		}
	}

	c := &Checker{
		conf: conf,
		info: info,
	}

	c.checkFile(file)

	if c.errors > 0 {
		return c.first
	}
	return nil
}
