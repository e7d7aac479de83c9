package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// letDeclType determines the declared type of a let declaration from
// its explicit annotation, its initializer, or both. It returns nil if
// the type cannot be determined; errors have been reported in that case.
func (c *Checker) letDeclType(decl *syntax.LetDecl) types.Type {
	var typ types.Type
	var val operand

	if decl.Type != nil {
		typ = c.resolveType(decl.Type)
		if typ == nil {
			return nil
		}
	}

	if decl.Value != nil {
		c.expr(&val, decl.Value)
		if val.mode == invalid {
			return nil
		}
		if val.mode == novalue {
			c.errorf(diag.TypeMismatch, decl.Value.Pos(), "cannot use no-value expression as variable initializer")
			return nil
		}

		if typ == nil {
			// Type inference
			typ = val.typ
			if !types.IsNumber(typ) && !types.IsString(typ) {
				c.errorf(diag.TypeMismatch, decl.Value.Pos(), "cannot declare variable of type %s", typ)
				return nil
			}
		} else {
			// Check assignment
			c.assignment(&val, typ, "variable declaration")
		}
	}

	if typ == nil {
		c.errorf(diag.TypeMismatch, decl.Pos(), "missing type or initializer in let declaration")
		return nil
	}
	return typ
}

// checkGlobalLetDecl type-checks a top-level let declaration.
// The Var already exists in the file scope with a nil type.
func (c *Checker) checkGlobalLetDecl(decl *syntax.LetDecl) {
	obj := c.lookup(decl.Name.Value)
	if obj == nil {
		return
	}
	v, ok := obj.(*types.Var)
	if !ok {
		return
	}

	typ := c.letDeclType(decl)
	if typ == nil {
		return
	}
	v.SetType(typ)
}

// checkFuncSignature type-checks a function signature.
func (c *Checker) checkFuncSignature(decl *syntax.FuncDecl) {
	obj := c.lookup(decl.Name.Value)
	if obj == nil {
		return
	}
	fn, ok := obj.(*types.FuncObj)
	if !ok {
		return
	}

	// Resolve parameter types
	params := make([]*types.Var, len(decl.Params))
	for i, p := range decl.Params {
		ptype := c.resolveType(p.Type)
		if ptype == nil {
			return
		}
		params[i] = types.NewParam(p.Pos(), p.Name.Value, ptype)
		if c.info != nil {
			c.info.Defs[p.Name] = params[i]
		}
	}

	// Resolve result type; nil means void
	var result types.Type
	if decl.Result != nil {
		result = c.resolveType(decl.Result)
		if result == nil {
			return
		}
	}

	fn.SetSignature(types.NewFunc(params, result))
}

// checkFuncBody type-checks a function body.
func (c *Checker) checkFuncBody(decl *syntax.FuncDecl) {
	if decl.Body == nil {
		return
	}

	obj := c.lookup(decl.Name.Value)
	if obj == nil {
		return
	}
	fn, ok := obj.(*types.FuncObj)
	if !ok {
		return
	}

	sig := fn.Signature()
	if sig == nil {
		return
	}

	// Save function context
	oldFuncSig := c.funcSig
	c.funcSig = sig

	// Create function scope
	c.openScope(decl.Body, "function "+decl.Name.Value)

	// Add parameters to scope
	for _, p := range sig.Params() {
		if c.scope.Insert(p) != nil {
			c.errorf(diag.DuplicateDeclaration, p.Pos(), "%s redeclared in this block", p.Name())
		}
	}

	// Check body statements
	c.stmts(decl.Body.Stmts)

	// Every path through a non-void function must return
	if !types.IsVoid(sig.Result()) && !c.blockMustReturn(decl.Body.Stmts) {
		c.errorf(diag.InvalidControlFlow, decl.Body.Rbrace, "missing return statement")
	}

	c.closeScope()

	// Restore function context
	c.funcSig = oldFuncSig
}
