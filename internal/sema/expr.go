package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// expr evaluates an expression in a value context and sets x to the
// result. Type names are rejected here; resolveType handles the type
// contexts.
func (c *Checker) expr(x *operand, e syntax.Expr) {
	c.exprInternal(x, e)

	if x.mode == typexpr {
		c.errorf(diag.TypeMismatch, x.pos, "%s is not an expression", x.typ)
		x.mode = invalid
		return
	}

	// Record type information
	if x.mode != invalid {
		c.recordType(e, x)
	}
}

// exprInternal is the main expression checking function.
func (c *Checker) exprInternal(x *operand, e syntax.Expr) {
	x.mode = invalid
	x.pos = e.Pos()
	x.expr = e

	switch e := e.(type) {
	case *syntax.Name:
		c.ident(x, e)
	case *syntax.NumberLit:
		x.setValue(e.Pos(), types.Typ[types.Number])
	case *syntax.StringLit:
		x.setValue(e.Pos(), types.Typ[types.String])
	case *syntax.Operation:
		if e.Y == nil {
			c.unary(x, e)
		} else {
			c.binary(x, e)
		}
	case *syntax.CallExpr:
		c.call(x, e)
	case *syntax.ParenExpr:
		c.exprInternal(x, e.X)
	default:
		c.errorf(diag.InternalError, e.Pos(), "unexpected expression %T", e)
	}
}

// ident evaluates an identifier.
func (c *Checker) ident(x *operand, name *syntax.Name) {
	obj := c.resolve(name)
	if obj == nil {
		x.setInvalid(name.Pos())
		return
	}

	switch obj := obj.(type) {
	case *types.Var:
		// A nil type means a global whose declaration has not been
		// reached yet while checking another global initializer.
		if obj.Type() == nil {
			c.errorf(diag.TypeMismatch, name.Pos(), "cannot use %s before its type is known", name.Value)
			x.setInvalid(name.Pos())
			return
		}
		x.setVar(name.Pos(), obj.Type())
	case *types.TypeName:
		x.mode = typexpr
		x.pos = name.Pos()
		x.typ = obj.Type()
	case *types.FuncObj:
		// Functions are not values; they may only be called
		c.errorf(diag.TypeMismatch, name.Pos(), "%s is a function, not a value", name.Value)
		x.setInvalid(name.Pos())
	default:
		c.errorf(diag.InternalError, name.Pos(), "unexpected object %T", obj)
		x.setInvalid(name.Pos())
	}
}

// unary evaluates a unary operation.
func (c *Checker) unary(x *operand, e *syntax.Operation) {
	c.expr(x, e.X)
	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.errorf(diag.TypeMismatch, e.Pos(), "operator %s requires a value", e.Op)
		x.mode = invalid
		return
	}

	switch e.Op {
	case syntax.Not, syntax.Sub:
		if !types.IsNumber(x.typ) {
			c.errorf(diag.TypeMismatch, e.Pos(), "operator %s requires a number operand, not %s", e.Op, x.typ)
			x.mode = invalid
			return
		}
		x.setValue(e.Pos(), types.Typ[types.Number])

	default:
		c.errorf(diag.InternalError, e.Pos(), "unknown unary operator %s", e.Op)
		x.mode = invalid
	}
}

// binary evaluates a binary operation.
func (c *Checker) binary(x *operand, e *syntax.Operation) {
	var y operand
	c.expr(x, e.X)
	c.expr(&y, e.Y)

	if x.mode == invalid || y.mode == invalid {
		x.mode = invalid
		return
	}
	if x.mode == novalue || y.mode == novalue {
		c.errorf(diag.TypeMismatch, e.Pos(), "operator %s requires values", e.Op)
		x.mode = invalid
		return
	}

	switch {
	case e.Op.IsComparison():
		c.comparison(x, &y, e.Op)
	case e.Op.IsLogical():
		c.logical(x, &y, e.Op)
	default:
		c.arithmetic(x, &y, e.Op)
	}
}

// comparison handles comparison operators (==, !=, <, <=, >, >=).
// Only numbers compare; strings are opaque values.
func (c *Checker) comparison(x, y *operand, op syntax.Token) {
	if !types.Identical(x.typ, y.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "mismatched types %s and %s", x.typ, y.typ)
		x.mode = invalid
		return
	}
	if !types.Comparable(x.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "operator %s not defined for %s", op, x.typ)
		x.mode = invalid
		return
	}

	// Comparisons yield a number: 1 for true, 0 for false
	x.setValue(x.pos, types.Typ[types.Number])
}

// logical handles logical operators (&& and ||).
func (c *Checker) logical(x, y *operand, op syntax.Token) {
	if !types.IsNumber(x.typ) || !types.IsNumber(y.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "operator %s requires number operands", op)
		x.mode = invalid
		return
	}

	x.setValue(x.pos, types.Typ[types.Number])
}

// arithmetic handles arithmetic operators (+, -, *, /, %).
func (c *Checker) arithmetic(x, y *operand, op syntax.Token) {
	if !types.IsNumber(x.typ) || !types.IsNumber(y.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "operator %s requires number operands", op)
		x.mode = invalid
		return
	}

	x.setValue(x.pos, types.Typ[types.Number])
}

// assignment checks whether x can be assigned to type T.
func (c *Checker) assignment(x *operand, T types.Type, context string) {
	if x.mode == invalid {
		return
	}

	if types.AssignableTo(x.typ, T) {
		return
	}

	c.errorf(diag.TypeMismatch, x.pos, "cannot use %s as %s in %s", x.typ, T, context)
	x.mode = invalid
}
