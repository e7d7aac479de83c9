// Package codegen translates the checked AST into C source text.
// The output is deterministic: the same input program always produces
// byte-identical C.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/taipan-lang/taipan/internal/rtabi"
	"github.com/taipan-lang/taipan/internal/sema"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// cKeywords are the C identifiers a Taipan name must not shadow.
// fmod is included because the generated code may call it.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true,
	"main": true, "fmod": true,
}

// generator lowers a checked file to C.
type generator struct {
	e    *emitter
	info *sema.Info

	names       map[types.Object]string // C name per object
	sourceNames map[string]bool         // every identifier in the program
	renamed     map[string]bool         // claimed rename targets
}

// Generate writes the C translation of file to w.
// The file must have been checked without errors; info supplies the
// recorded types and resolved objects.
func Generate(w io.Writer, file *syntax.File, info *sema.Info) error {
	g := &generator{
		e:           &emitter{w: w},
		info:        info,
		names:       make(map[types.Object]string),
		sourceNames: make(map[string]bool),
		renamed:     make(map[string]bool),
	}

	syntax.Inspect(file, func(n syntax.Node) bool {
		if name, ok := n.(*syntax.Name); ok {
			g.sourceNames[name.Value] = true
		}
		return true
	})

	g.genFile(file)
	return g.e.err
}

// genFile emits the whole translation unit: includes, runtime
// prototypes, globals, function prototypes, function definitions, and
// the main function running the top-level statements in source order.
func (g *generator) genFile(file *syntax.File) {
	if usesRem(file) {
		g.e.emit("#include <math.h>")
		g.e.emitLine()
	}

	for _, fn := range rtabi.RuntimeFunctions() {
		params := "void"
		if len(fn.ParamTypes) > 0 {
			params = strings.Join(fn.ParamTypes, ", ")
		}
		g.e.emit("extern %s %s(%s);", fn.ReturnType, fn.Name, params)
	}

	// Globals are hoisted to file scope with zero values; their
	// initializers run inside main in source order.
	var hasGlobals bool
	for _, s := range file.Body {
		ld := letDeclOf(s)
		if ld == nil {
			continue
		}
		if !hasGlobals {
			g.e.emitLine()
			hasGlobals = true
		}
		obj := g.def(ld.Name)
		g.e.emit("static %s = %s;", cParam(obj.Type(), g.cname(obj)), cZero(obj.Type()))
	}

	var funcs []*syntax.FuncDecl
	for _, s := range file.Body {
		if fd := funcDeclOf(s); fd != nil {
			funcs = append(funcs, fd)
		}
	}

	if len(funcs) > 0 {
		g.e.emitLine()
		for _, fd := range funcs {
			g.e.emit("static %s;", g.signature(fd))
		}
		for _, fd := range funcs {
			g.e.emitLine()
			g.genFunc(fd)
		}
	}

	g.e.emitLine()
	g.e.open("int main(void)")
	for _, s := range file.Body {
		if ld := letDeclOf(s); ld != nil {
			if ld.Value != nil {
				g.e.emit("%s = %s;", g.cname(g.def(ld.Name)), g.expr(ld.Value))
			}
			continue
		}
		if funcDeclOf(s) != nil {
			continue
		}
		g.genStmt(s)
	}
	g.e.emit("return 0;")
	g.e.close()
}

// signature renders a function's C signature without the trailing
// semicolon or body.
func (g *generator) signature(fd *syntax.FuncDecl) string {
	obj := g.def(fd.Name).(*types.FuncObj)
	sig := obj.Signature()

	params := "void"
	if len(fd.Params) > 0 {
		parts := make([]string, len(fd.Params))
		for i, p := range fd.Params {
			pv := g.def(p.Name)
			parts[i] = cParam(pv.Type(), g.cname(pv))
		}
		params = strings.Join(parts, ", ")
	}

	ret := cReturnType(sig)
	name := g.cname(obj)
	if strings.HasSuffix(ret, "*") {
		return fmt.Sprintf("%s%s(%s)", ret, name, params)
	}
	return fmt.Sprintf("%s %s(%s)", ret, name, params)
}

// genFunc emits a function definition.
func (g *generator) genFunc(fd *syntax.FuncDecl) {
	g.e.open("static %s", g.signature(fd))
	g.genStmts(fd.Body.Stmts)
	g.e.close()
}

// genStmts emits a statement list.
func (g *generator) genStmts(list []syntax.Stmt) {
	for _, s := range list {
		g.genStmt(s)
	}
}

// genStmt emits a single statement.
func (g *generator) genStmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// Nothing to emit

	case *syntax.DeclStmt:
		ld, ok := s.Decl.(*syntax.LetDecl)
		if !ok {
			return
		}
		obj := g.def(ld.Name)
		init := cZero(obj.Type())
		if ld.Value != nil {
			init = g.expr(ld.Value)
		}
		g.e.emit("%s = %s;", cParam(obj.Type(), g.cname(obj)), init)

	case *syntax.AssignStmt:
		g.e.emit("%s = %s;", g.use(s.Target), g.expr(s.Value))

	case *syntax.PrintStmt:
		fn := rtabi.FnPrintNumber
		if types.IsString(g.typeOf(s.Value)) {
			fn = rtabi.FnPrintString
		}
		g.e.emit("%s(%s);", fn, g.expr(s.Value))

	case *syntax.InputStmt:
		g.e.emit("%s(&%s);", rtabi.FnInputNumber, g.use(s.Target))

	case *syntax.ExprStmt:
		g.e.emit("%s;", g.expr(s.X))

	case *syntax.ReturnStmt:
		if s.Result == nil {
			g.e.emit("return;")
		} else {
			g.e.emit("return %s;", g.expr(s.Result))
		}

	case *syntax.BlockStmt:
		g.e.emit("{")
		g.e.indent++
		g.genStmts(s.Stmts)
		g.e.close()

	case *syntax.IfStmt:
		g.genIf(s)

	case *syntax.WhileStmt:
		g.e.open("while (%s)", g.expr(s.Cond))
		g.genStmts(s.Body.Stmts)
		g.e.close()
	}
}

// genIf emits an if statement with its else-if chain.
func (g *generator) genIf(s *syntax.IfStmt) {
	g.e.open("if (%s)", g.expr(s.Cond))
	g.genStmts(s.Then.Stmts)

	els := s.Else
	for els != nil {
		if ei, ok := els.(*syntax.IfStmt); ok {
			g.e.indent--
			g.e.emit("} else if (%s) {", g.expr(ei.Cond))
			g.e.indent++
			g.genStmts(ei.Then.Stmts)
			els = ei.Else
			continue
		}
		eb := els.(*syntax.BlockStmt)
		g.e.indent--
		g.e.emit("} else {")
		g.e.indent++
		g.genStmts(eb.Stmts)
		els = nil
	}

	g.e.close()
}

// expr renders an expression as C text. Binary operations are fully
// parenthesized so C precedence can never disagree with the parse.
func (g *generator) expr(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Name:
		return g.use(e)

	case *syntax.NumberLit:
		return cNumber(e.Text)

	case *syntax.StringLit:
		return cQuote(e.Value)

	case *syntax.Operation:
		if e.Y == nil {
			return fmt.Sprintf("%s(%s)", e.Op, g.expr(e.X))
		}
		if e.Op == syntax.Rem {
			return fmt.Sprintf("fmod(%s, %s)", g.expr(e.X), g.expr(e.Y))
		}
		return fmt.Sprintf("(%s %s %s)", g.expr(e.X), e.Op, g.expr(e.Y))

	case *syntax.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		return fmt.Sprintf("%s(%s)", g.use(e.Fun), strings.Join(args, ", "))

	case *syntax.ParenExpr:
		return g.expr(e.X)
	}
	return ""
}

// typeOf returns the recorded type of an expression.
func (g *generator) typeOf(e syntax.Expr) types.Type {
	return g.info.Types[e].Type
}

// def returns the object declared by name.
func (g *generator) def(name *syntax.Name) types.Object {
	return g.info.Defs[name]
}

// use returns the C name for a referencing identifier.
func (g *generator) use(name *syntax.Name) string {
	if obj := g.info.Uses[name]; obj != nil {
		return g.cname(obj)
	}
	return name.Value
}

// cname returns the C identifier for an object, renaming it when the
// source name collides with a C keyword, a runtime function, or main.
// Renames append underscores until the result cannot collide with any
// other identifier in the program.
func (g *generator) cname(obj types.Object) string {
	if name, ok := g.names[obj]; ok {
		return name
	}

	name := obj.Name()
	if cKeywords[name] || rtabi.IsRuntimeName(name) {
		for {
			name += "_"
			if !cKeywords[name] && !rtabi.IsRuntimeName(name) &&
				!g.sourceNames[name] && !g.renamed[name] {
				break
			}
		}
		g.renamed[name] = true
	}
	g.names[obj] = name
	return name
}

// cNumber renders a number literal as a C double constant. Literals
// without a decimal point get one appended; a bare integer with a
// leading zero would otherwise be an octal constant in C.
func cNumber(text string) string {
	if strings.Contains(text, ".") {
		return text
	}
	return text + ".0"
}

// cQuote renders a string value as a C string literal. The escape set
// mirrors the scanner's; everything else non-printable becomes a
// three-digit octal escape, which cannot swallow a following digit.
func cQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, "\\%03o", c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// usesRem reports whether the program contains a % operation.
func usesRem(file *syntax.File) bool {
	found := false
	syntax.Inspect(file, func(n syntax.Node) bool {
		if op, ok := n.(*syntax.Operation); ok && op.Op == syntax.Rem && op.Y != nil {
			found = true
		}
		return !found
	})
	return found
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

// funcDeclOf unwraps a top-level function declaration, or returns nil.
func funcDeclOf(s syntax.Stmt) *syntax.FuncDecl {
	if ds, ok := s.(*syntax.DeclStmt); ok {
		if fd, ok := ds.Decl.(*syntax.FuncDecl); ok {
			return fd
		}
	}
	return nil
}
