package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and
// Declarations. All nodes implement the Node interface. Expression,
// Statement, and Declaration nodes further implement their respective
// interfaces.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Files and Declarations

// File represents a complete source file: an ordered sequence of
// top-level statements. Function and variable declarations appear in
// the sequence wrapped in DeclStmt; the remaining statements form the
// program body, executed in source order.
type File struct {
	node
	Body []Stmt // top-level statements and declarations
}

// LetDecl represents a variable declaration: let Name [Type] [= Value]
// At least one of Type and Value is present in a well-formed program.
type LetDecl struct {
	decl
	Name  *Name // variable name
	Type  *Name // explicit type name (nil if inferred)
	Value Expr  // initial value (nil if none)
}

// FuncDecl represents a function declaration:
// func Name(Params) [Result] { Body }
type FuncDecl struct {
	decl
	Name   *Name      // function name
	Params []*Field   // parameter list
	Result *Name      // return type name (nil for void)
	Body   *BlockStmt // function body
}

// Field represents a named parameter: Name Type.
type Field struct {
	node
	Name *Name // parameter name
	Type *Name // parameter type name
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string // identifier string
}

// NumberLit represents a number literal.
// Both the source text and the parsed value are kept: the text so
// generated code reproduces the literal verbatim, the value for
// analysis.
type NumberLit struct {
	expr
	Text  string  // literal text as written (e.g. "3.14")
	Value float64 // parsed value
}

// StringLit represents a string literal.
// The value is the decoded content (escape sequences interpreted).
type StringLit struct {
	expr
	Value string
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  *Name  // called function name
	Args []Expr // argument list
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt represents an empty statement (just a semicolon).
type EmptyStmt struct {
	stmt
}

// ExprStmt represents a call used as a statement.
type ExprStmt struct {
	stmt
	X Expr // expression (a CallExpr in a well-formed program)
}

// AssignStmt represents an assignment: Target = Value
type AssignStmt struct {
	stmt
	Target *Name // assigned variable
	Value  Expr  // assigned value
}

// BlockStmt represents a block statement: { Stmts... }
// A block introduces a new lexical scope.
type BlockStmt struct {
	stmt
	Stmts  []Stmt // statements
	Rbrace Pos    // position of closing brace
}

// IfStmt represents an if statement: if Cond Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr       // condition expression
	Then *BlockStmt // then branch
	Else Stmt       // else branch (nil, *IfStmt, or *BlockStmt)
}

// WhileStmt represents a while statement: while Cond { Body }
type WhileStmt struct {
	stmt
	Cond Expr       // condition (nil only when recovering from syntax errors)
	Body *BlockStmt // loop body
}

// ReturnStmt represents a return statement: return [Result]
type ReturnStmt struct {
	stmt
	Result Expr // return value (nil for bare return)
}

// PrintStmt represents a print statement: print Value
// The runtime primitive is selected later from the static type of Value.
type PrintStmt struct {
	stmt
	Value Expr // printed expression
}

// InputStmt represents an input statement: input Target
// The target must name a number variable.
type InputStmt struct {
	stmt
	Target *Name // variable receiving the value
}

// DeclStmt wraps a declaration as a statement.
// Used for let declarations everywhere and for function declarations
// at top level.
type DeclStmt struct {
	stmt
	Decl Decl // the wrapped declaration
}
