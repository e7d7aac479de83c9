package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// collectDecls collects all top-level declarations and creates
// placeholder objects for them in the file scope.
func (c *Checker) collectDecls(body []syntax.Stmt) {
	for _, s := range body {
		ds, ok := s.(*syntax.DeclStmt)
		if !ok {
			continue
		}
		switch decl := ds.Decl.(type) {
		case *syntax.LetDecl:
			c.collectLetDecl(decl)
		case *syntax.FuncDecl:
			c.collectFuncDecl(decl)
		}
	}
}

// collectLetDecl collects a top-level let declaration.
func (c *Checker) collectLetDecl(decl *syntax.LetDecl) {
	// Create a Var object with nil type
	// The type will be resolved in checkGlobalLetDecl
	obj := types.NewVar(decl.Name.Pos(), decl.Name.Value, nil)
	obj.SetGlobal()
	c.declare(decl.Name, obj)
}

// collectFuncDecl collects a function declaration.
func (c *Checker) collectFuncDecl(decl *syntax.FuncDecl) {
	obj := types.NewFuncObj(decl.Name.Pos(), decl.Name.Value)
	c.declare(decl.Name, obj)
}

// resolve resolves a name to an object.
// Reports an error if the name is undefined.
func (c *Checker) resolve(name *syntax.Name) types.Object {
	obj := c.lookup(name.Value)
	if obj == nil {
		c.errorf(diag.UndefinedSymbol, name.Pos(), "undefined: %s", name.Value)
		return nil
	}
	c.recordUse(name, obj)
	return obj
}

// resolveType resolves a type name and returns the resulting type.
func (c *Checker) resolveType(name *syntax.Name) types.Type {
	obj := c.lookup(name.Value)
	if obj == nil {
		c.errorf(diag.UndefinedSymbol, name.Pos(), "undefined: %s", name.Value)
		return nil
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		c.errorf(diag.TypeMismatch, name.Pos(), "%s is not a type", name.Value)
		return nil
	}
	c.recordUse(name, tn)
	return tn.Type()
}
