package types

import "github.com/taipan-lang/taipan/internal/syntax"

// Object represents a declared entity: variable, type name, or function.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// Var represents a declared variable or function parameter.
type Var struct {
	object
	isParam bool // true if this is a function parameter
	global  bool // true if declared at top level
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewParam creates a new function parameter object.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, isParam: true}
}

// IsParam reports whether this variable is a function parameter.
func (v *Var) IsParam() bool {
	return v.isParam
}

// SetGlobal marks the variable as declared at top level.
func (v *Var) SetGlobal() {
	v.global = true
}

// IsGlobal reports whether this variable is declared at top level.
func (v *Var) IsGlobal() bool {
	return v.global
}

// SetType sets the variable's type.
// This is called during checking once the type is resolved.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// TypeName represents a declared type name (number, string).
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// FuncObj represents a declared function.
type FuncObj struct {
	object
	sig *Func // function signature (set after construction)
}

// NewFuncObj creates a new function object.
// The signature should be set later using SetSignature.
func NewFuncObj(pos syntax.Pos, name string) *FuncObj {
	return &FuncObj{object: object{name: name, pos: pos}}
}

// Signature returns the function signature.
func (f *FuncObj) Signature() *Func {
	return f.sig
}

// SetSignature sets the function signature.
// This is called during checking once the signature is resolved.
func (f *FuncObj) SetSignature(sig *Func) {
	f.sig = sig
	f.typ = sig
}
