package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// call checks a function call expression.
func (c *Checker) call(x *operand, e *syntax.CallExpr) {
	obj := c.resolve(e.Fun)
	if obj == nil {
		// Still check the arguments for secondary errors
		for _, arg := range e.Args {
			var a operand
			c.expr(&a, arg)
		}
		x.setInvalid(e.Pos())
		return
	}

	fn, ok := obj.(*types.FuncObj)
	if !ok {
		c.errorf(diag.TypeMismatch, e.Fun.Pos(), "cannot call non-function %s", e.Fun.Value)
		x.setInvalid(e.Pos())
		return
	}

	sig := fn.Signature()
	if sig == nil {
		// Signature failed to resolve; already reported
		x.setInvalid(e.Pos())
		return
	}

	c.checkCallArgs(e, sig)

	// Set result
	if types.IsVoid(sig.Result()) {
		x.mode = novalue
		x.pos = e.Pos()
		x.typ = types.Typ[types.Void]
	} else {
		x.setValue(e.Pos(), sig.Result())
	}
}

// checkCallArgs checks function call arguments against the signature.
func (c *Checker) checkCallArgs(e *syntax.CallExpr, sig *types.Func) {
	want := sig.NumParams()
	got := len(e.Args)
	if got != want {
		c.errorf(diag.ArityMismatch, e.Pos(), "wrong number of arguments in call to %s: got %d, want %d", e.Fun.Value, got, want)
		// Continue checking what we can
	}

	for i, arg := range e.Args {
		var a operand
		c.expr(&a, arg)
		if a.mode == invalid {
			continue
		}
		if a.mode == novalue {
			c.errorf(diag.TypeMismatch, arg.Pos(), "cannot use no-value expression as argument")
			continue
		}

		if i < want {
			c.assignment(&a, sig.Params()[i].Type(), "argument")
		}
	}
}
