package syntax

import (
	"io"
	"strconv"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on Taipan source code.
// It consumes the scanner's token sequence with one token of lookahead
// and builds the program AST. After an error it resynchronizes at the
// next statement boundary so several independent errors can be
// reported in one pass.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error // first error encountered
	abort  bool  // set to true when error limit reached
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{
		scanner: NewScanner(filename, src, errh),
		errh:    errh,
	}
	p.next() // prime the parser with first token
	return p
}

// SetASIEnabled passes the ASI setting to the underlying scanner.
func (p *Parser) SetASIEnabled(enabled bool) {
	p.scanner.SetASIEnabled(enabled)
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.abort {
		p.tok = _EOF
		return
	}
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error naming the expected token and the token
// actually found.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.describe())
		p.advance()
	}
}

// describe returns a user-readable description of the current token.
func (p *Parser) describe() string {
	switch p.tok {
	case _Name:
		return "identifier " + p.lit
	case _Number, _String:
		return "literal " + p.lit
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

// syntaxErrorAt reports a syntax error at a specific position.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	p.errorLimitCheck(pos)
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips tokens until it finds a synchronization point.
// This is used for error recovery.
func (p *Parser) advance() {
	sync := map[Token]bool{
		_Semi:   true, // statement terminator
		_Rbrace: true, // block end
		_Rparen: true, // param list end
		_Let:    true,
		_Func:   true,
		_If:     true,
		_While:  true,
		_Return: true,
		_Print:  true,
		_Input:  true,
		_EOF:    true,
	}

	for p.tok != _EOF && !sync[p.tok] {
		p.next()
	}

	// Consume sync point to avoid repeated errors at the same position
	if p.tok == _Semi || p.tok == _Rbrace || p.tok == _Rparen {
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete source file and returns the AST.
// A Taipan program is an ordered sequence of top-level statements;
// function declarations may only appear at this level.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos

	for !p.abort && p.tok != _EOF {
		// Skip stray semicolons between top-level items
		// (ASI inserts them after closing braces).
		if p.tok == _Semi {
			p.next()
			continue
		}

		var s Stmt
		if p.tok == _Func {
			d := p.funcDecl()
			ds := &DeclStmt{Decl: d}
			ds.pos = d.Pos()
			s = ds
		} else {
			s = p.stmt()
		}
		if s != nil {
			f.Body = append(f.Body, s)
		}
	}

	return f
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier, found " + p.describe())
		// Return a placeholder for error recovery
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Declarations

// letDecl parses: let Name [Type] [= Value]
func (p *Parser) letDecl() *LetDecl {
	d := &LetDecl{}
	d.pos = p.pos

	p.want(_Let)
	d.Name = p.name()

	// Optional explicit type name (number or string, resolved later)
	if p.tok == _Name {
		d.Type = p.name()
	}

	// Optional initializer
	if p.got(_Assign) {
		d.Value = p.expr()
	}

	if d.Type == nil && d.Value == nil {
		p.syntaxErrorAt(d.pos, "let declaration needs a type or an initializer")
	}

	p.want(_Semi)
	return d
}

// funcDecl parses: func Name(params) [result] { body }
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Func)
	d.Name = p.name()
	d.Params = p.paramList()

	// Optional result type name
	if p.tok == _Name {
		d.Result = p.name()
	}

	d.Body = p.blockStmt()
	return d
}

// paramList parses (p1 T1, p2 T2, ...)
func (p *Parser) paramList() []*Field {
	p.want(_Lparen)

	var params []*Field
	if p.tok != _Rparen {
		for {
			f := &Field{}
			f.pos = p.pos
			f.Name = p.name()
			f.Type = p.name()
			params = append(params, f)

			if !p.got(_Comma) {
				break
			}
		}
	}

	p.want(_Rparen)
	return params
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement. Returns nil after an unrecoverable
// statement-level error (the caller skips nil statements).
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Lbrace:
		return p.blockStmt()

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _Return:
		return p.returnStmt()

	case _Print:
		return p.printStmt()

	case _Input:
		return p.inputStmt()

	case _Let:
		d := p.letDecl()
		s := &DeclStmt{Decl: d}
		s.pos = d.Pos()
		return s

	case _Semi:
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s

	case _Name:
		return p.simpleStmt()

	case _Func:
		p.syntaxError("function declarations are only allowed at top level")
		p.funcDecl() // parse and drop, so following statements still check
		return nil

	default:
		p.syntaxError("expected statement, found " + p.describe())
		p.advance()
		return nil
	}
}

// simpleStmt parses an assignment or a call statement, both of which
// begin with an identifier.
func (p *Parser) simpleStmt() Stmt {
	target := p.name()

	switch p.tok {
	case _Assign:
		s := &AssignStmt{Target: target}
		s.pos = target.Pos()
		p.next() // consume =
		s.Value = p.expr()
		p.want(_Semi)
		return s

	case _Lparen:
		call := p.callExpr(target)
		s := &ExprStmt{X: call}
		s.pos = target.Pos()
		p.want(_Semi)
		return s

	default:
		p.syntaxError("expected = or ( after identifier, found " + p.describe())
		p.advance()
		return nil
	}
}

// blockStmt parses { stmts... }
func (p *Parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.pos

	p.want(_Lbrace)

	for p.tok != _Rbrace && p.tok != _EOF {
		if s := p.stmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}

	b.Rbrace = p.pos
	p.want(_Rbrace)
	// Note: ASI handles the semicolon after }

	return b
}

// ifStmt parses: if cond { then } [else { else }]
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.expr()
	s.Then = p.blockStmt()

	if p.got(_Else) {
		if p.tok == _If {
			s.Else = p.ifStmt() // else if
		} else {
			s.Else = p.blockStmt() // else
		}
	}

	return s
}

// whileStmt parses: while cond { body }
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.pos

	p.want(_While)

	if p.tok == _Lbrace {
		p.syntaxError("expected while condition")
	} else {
		s.Cond = p.expr()
	}

	s.Body = p.blockStmt()
	return s
}

// returnStmt parses: return [expr]
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)

	// Optional return value (check for statement terminators)
	if p.tok != _Semi && p.tok != _Rbrace && p.tok != _EOF {
		s.Result = p.expr()
	}

	p.want(_Semi)
	return s
}

// printStmt parses: print expr
func (p *Parser) printStmt() Stmt {
	s := &PrintStmt{}
	s.pos = p.pos

	p.want(_Print)
	s.Value = p.expr()
	p.want(_Semi)
	return s
}

// inputStmt parses: input name
func (p *Parser) inputStmt() Stmt {
	s := &InputStmt{}
	s.pos = p.pos

	p.want(_Input)
	s.Target = p.name()
	p.want(_Semi)
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		// Check if current token is a binary operator with sufficient precedence
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a unary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op

	default:
		return p.operand()
	}
}

// operand parses an operand: literal, identifier, call, or
// parenthesized expression.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := p.name()
		if p.tok == _Lparen {
			return p.callExpr(n)
		}
		return n

	case _Number:
		val, err := strconv.ParseFloat(p.lit, 64)
		if err != nil {
			p.syntaxError("invalid number literal " + p.lit)
		}
		lit := &NumberLit{Text: p.lit, Value: val}
		lit.pos = p.pos
		p.next()
		return lit

	case _String:
		lit := &StringLit{Value: p.lit}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	default:
		p.syntaxError("expected expression, found " + p.describe())
		n := &Name{Value: "_"} // error recovery
		n.pos = p.pos
		return n
	}
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = append(call.Args, p.expr())
		for p.got(_Comma) {
			call.Args = append(call.Args, p.expr())
		}
	}
	p.want(_Rparen)

	return call
}
