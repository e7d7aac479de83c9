package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// Nothing to check

	case *syntax.ExprStmt:
		c.exprStmt(s)

	case *syntax.AssignStmt:
		c.assignStmt(s)

	case *syntax.BlockStmt:
		c.blockStmt(s)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.WhileStmt:
		c.whileStmt(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.PrintStmt:
		c.printStmt(s)

	case *syntax.InputStmt:
		c.inputStmt(s)

	case *syntax.DeclStmt:
		c.declStmt(s)

	default:
		c.errorf(diag.InternalError, s.Pos(), "unexpected statement %T", s)
	}
}

// exprStmt checks an expression statement.
func (c *Checker) exprStmt(s *syntax.ExprStmt) {
	var x operand
	c.expr(&x, s.X)
	// Expression statements are function calls; the result is discarded
}

// blockStmt checks a block statement.
func (c *Checker) blockStmt(s *syntax.BlockStmt) {
	c.openScope(s, "block")
	c.stmts(s.Stmts)
	c.closeScope()
}

// ifStmt checks an if statement.
func (c *Checker) ifStmt(s *syntax.IfStmt) {
	// Check condition
	var cond operand
	c.expr(&cond, s.Cond)
	if cond.mode != invalid && !types.IsNumber(cond.typ) {
		c.errorf(diag.TypeMismatch, s.Cond.Pos(), "non-number condition in if statement")
	}

	// Check then branch
	c.openScope(s.Then, "if then")
	c.stmts(s.Then.Stmts)
	c.closeScope()

	// Check else branch
	if s.Else != nil {
		switch els := s.Else.(type) {
		case *syntax.BlockStmt:
			c.openScope(els, "if else")
			c.stmts(els.Stmts)
			c.closeScope()
		case *syntax.IfStmt:
			c.ifStmt(els)
		}
	}
}

// whileStmt checks a while statement.
func (c *Checker) whileStmt(s *syntax.WhileStmt) {
	// Cond is nil only after a syntax error; nothing useful to check then
	if s.Cond != nil {
		var cond operand
		c.expr(&cond, s.Cond)
		if cond.mode != invalid && !types.IsNumber(cond.typ) {
			c.errorf(diag.TypeMismatch, s.Cond.Pos(), "non-number condition in while statement")
		}
	}

	c.openScope(s.Body, "while")
	c.stmts(s.Body.Stmts)
	c.closeScope()
}

// returnStmt checks a return statement.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	if c.funcSig == nil {
		c.errorf(diag.InvalidControlFlow, s.Pos(), "return statement outside function")
		return
	}

	resultType := c.funcSig.Result()

	if s.Result == nil {
		// Bare return
		if !types.IsVoid(resultType) {
			c.errorf(diag.TypeMismatch, s.Pos(), "missing return value")
		}
		return
	}

	// Check return value
	var x operand
	c.expr(&x, s.Result)
	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.errorf(diag.TypeMismatch, s.Result.Pos(), "cannot return no-value expression")
		return
	}

	if types.IsVoid(resultType) {
		c.errorf(diag.TypeMismatch, s.Pos(), "unexpected return value in void function")
		return
	}

	c.assignment(&x, resultType, "return statement")
}

// printStmt checks a print statement.
// The printed value must be a number or a string; the code generator
// picks the runtime primitive from the static type.
func (c *Checker) printStmt(s *syntax.PrintStmt) {
	var x operand
	c.expr(&x, s.Value)
	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.errorf(diag.TypeMismatch, s.Value.Pos(), "cannot print no-value expression")
		return
	}
	if !types.IsNumber(x.typ) && !types.IsString(x.typ) {
		c.errorf(diag.TypeMismatch, s.Value.Pos(), "cannot print value of type %s", x.typ)
	}
}

// inputStmt checks an input statement.
// The target must name a number variable.
func (c *Checker) inputStmt(s *syntax.InputStmt) {
	obj := c.resolve(s.Target)
	if obj == nil {
		return
	}
	v, ok := obj.(*types.Var)
	if !ok {
		c.errorf(diag.TypeMismatch, s.Target.Pos(), "cannot read input into %s", s.Target.Value)
		return
	}
	if v.Type() == nil {
		c.errorf(diag.TypeMismatch, s.Target.Pos(), "cannot use %s before its type is known", s.Target.Value)
		return
	}
	if !types.IsNumber(v.Type()) {
		c.errorf(diag.TypeMismatch, s.Target.Pos(), "input requires a number variable, %s has type %s", s.Target.Value, v.Type())
	}
}

// declStmt checks a declaration statement (let inside a block).
func (c *Checker) declStmt(s *syntax.DeclStmt) {
	switch decl := s.Decl.(type) {
	case *syntax.LetDecl:
		c.localLetDecl(decl)
	default:
		c.errorf(diag.InternalError, s.Pos(), "unexpected declaration in statement context")
	}
}

// localLetDecl checks a local let declaration.
func (c *Checker) localLetDecl(decl *syntax.LetDecl) {
	typ := c.letDeclType(decl)
	if typ == nil {
		return
	}

	v := types.NewVar(decl.Name.Pos(), decl.Name.Value, typ)
	c.declare(decl.Name, v)
}

// assignStmt checks an assignment statement.
func (c *Checker) assignStmt(s *syntax.AssignStmt) {
	obj := c.resolve(s.Target)

	var x operand
	c.expr(&x, s.Value)

	if obj == nil {
		return
	}
	v, ok := obj.(*types.Var)
	if !ok {
		c.errorf(diag.TypeMismatch, s.Target.Pos(), "cannot assign to %s", s.Target.Value)
		return
	}
	if v.Type() == nil {
		c.errorf(diag.TypeMismatch, s.Target.Pos(), "cannot use %s before its type is known", s.Target.Value)
		return
	}

	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.errorf(diag.TypeMismatch, s.Value.Pos(), "cannot assign no-value expression")
		return
	}

	c.assignment(&x, v.Type(), "assignment")
}

// blockMustReturn reports whether all control-flow paths in this
// statement list return. This is conservative: while loops are treated
// as potentially non-executing paths even when the condition is a
// constant.
func (c *Checker) blockMustReturn(stmts []syntax.Stmt) bool {
	for _, s := range stmts {
		if c.stmtMustReturn(s) {
			return true
		}
	}
	return false
}

func (c *Checker) stmtMustReturn(s syntax.Stmt) bool {
	switch s := s.(type) {
	case *syntax.ReturnStmt:
		return true
	case *syntax.BlockStmt:
		return c.blockMustReturn(s.Stmts)
	case *syntax.IfStmt:
		if s.Else == nil {
			return false
		}
		thenReturns := c.blockMustReturn(s.Then.Stmts)
		switch els := s.Else.(type) {
		case *syntax.BlockStmt:
			return thenReturns && c.blockMustReturn(els.Stmts)
		case *syntax.IfStmt:
			return thenReturns && c.stmtMustReturn(els)
		default:
			return false
		}
	}
	return false
}
