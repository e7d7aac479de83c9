package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	case *LetDecl:
		p.printf("LetDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if n.Type != nil {
			p.printf("Type: %s\n", n.Type.Value)
		}
		if n.Value != nil {
			p.printf("Value:\n")
			p.indent++
			p.print(n.Value)
			p.indent--
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Name.Value, f.Type.Value)
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", n.Result.Value)
		}
		if n.Body != nil {
			p.printf("Body:\n")
			p.indent++
			p.print(n.Body)
			p.indent--
		}
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond:\n")
		p.indent++
		p.print(n.Cond)
		p.indent--
		p.printf("Then:\n")
		p.indent++
		p.print(n.Then)
		p.indent--
		if n.Else != nil {
			p.printf("Else:\n")
			p.indent++
			p.print(n.Else)
			p.indent--
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.printf("Cond:\n")
		p.indent++
		p.print(n.Cond)
		p.indent--
		p.printf("Body:\n")
		p.indent++
		p.print(n.Body)
		p.indent--
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *AssignStmt:
		p.printf("AssignStmt %s\n", n.pos)
		p.indent++
		p.printf("Target: %s\n", n.Target.Value)
		p.printf("Value:\n")
		p.indent++
		p.print(n.Value)
		p.indent--
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *InputStmt:
		p.printf("InputStmt %s\n", n.pos)
		p.indent++
		p.printf("Target: %s\n", n.Target.Value)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s\n", n.pos)
		p.indent++
		p.print(n.Decl)
		p.indent--

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.pos)

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *NumberLit:
		p.printf("NumberLit %s %s\n", n.pos, n.Text)

	case *StringLit:
		p.printf("StringLit %s %q\n", n.pos, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.printf("X:\n")
			p.indent++
			p.print(n.X)
			p.indent--
			p.printf("Y:\n")
			p.indent++
			p.print(n.Y)
			p.indent--
			p.indent--
		}

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.printf("Fun: %s\n", n.Fun.Value)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Field:
		p.printf("Field %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		p.printf("Type: %s\n", n.Type.Value)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}
