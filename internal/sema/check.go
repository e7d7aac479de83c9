package sema

import (
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// Checker is the semantic analyzer.
type Checker struct {
	conf *Config
	info *Info

	// Current checking context
	scope *types.Scope // current scope

	// Function context
	funcSig *types.Func // current function signature; nil at top level

	// Error tracking
	errors int    // error count
	first  *Error // first error
}

// checkFile analyzes a single file.
//
// Top-level declarations are hoisted: a function body may refer to any
// global or function regardless of declaration order. Execution order
// of top-level statements is still the source order.
func (c *Checker) checkFile(file *syntax.File) {
	fileScope := types.NewScope(types.Universe, file.Pos(), file.Pos(), "file")
	c.scope = fileScope

	// Record file scope
	if c.info != nil {
		c.info.Scopes[file] = fileScope
	}

	// Phase 1: Collect all top-level declarations
	c.collectDecls(file.Body)

	// Phase 2: Check function signatures
	for _, s := range file.Body {
		if fd := funcDeclOf(s); fd != nil {
			c.checkFuncSignature(fd)
		}
	}

	// Phase 3: Check global let declarations in source order
	for _, s := range file.Body {
		if ld := letDeclOf(s); ld != nil {
			c.checkGlobalLetDecl(ld)
		}
	}

	// Phase 4: Check the remaining top-level statements in source order
	for _, s := range file.Body {
		if _, ok := s.(*syntax.DeclStmt); ok {
			continue
		}
		c.stmt(s)
	}

	// Phase 5: Check function bodies
	for _, s := range file.Body {
		if fd := funcDeclOf(s); fd != nil {
			c.checkFuncBody(fd)
		}
	}
}

// funcDeclOf unwraps a top-level function declaration, or returns nil.
func funcDeclOf(s syntax.Stmt) *syntax.FuncDecl {
	if ds, ok := s.(*syntax.DeclStmt); ok {
		if fd, ok := ds.Decl.(*syntax.FuncDecl); ok {
			return fd
		}
	}
	return nil
}

// letDeclOf unwraps a top-level let declaration, or returns nil.
func letDeclOf(s syntax.Stmt) *syntax.LetDecl {
	if ds, ok := s.(*syntax.DeclStmt); ok {
		if ld, ok := ds.Decl.(*syntax.LetDecl); ok {
			return ld
		}
	}
	return nil
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n syntax.Node, comment string) *types.Scope {
	end := n.Pos()
	if b, ok := n.(*syntax.BlockStmt); ok {
		end = b.Rbrace
	}
	s := types.NewScope(c.scope, n.Pos(), end, comment)
	c.scope = s
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) types.Object {
	obj, _ := c.scope.LookupParent(name)
	return obj
}

// declare declares an object in the current scope.
// Reports an error if the name is already declared.
func (c *Checker) declare(name *syntax.Name, obj types.Object) {
	if c.scope.Insert(obj) != nil {
		c.errorf(diag.DuplicateDeclaration, name.Pos(), "%s redeclared in this block", name.Value)
		return
	}
	if c.info != nil {
		c.info.Defs[name] = obj
	}
}

// recordType records the type information for an expression.
func (c *Checker) recordType(e syntax.Expr, x *operand) {
	if c.info == nil {
		return
	}
	c.info.Types[e] = TypeAndValue{
		Type: x.typ,
		mode: x.mode,
	}
}

// recordUse records a use of an object.
func (c *Checker) recordUse(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Uses[name] = obj
	}
}
