package types

import "strings"

// Func represents a function signature.
type Func struct {
	typ
	params []*Var // parameters (order matters)
	result Type   // result type; Typ[Void] for functions with no result
}

// NewFunc creates a new function signature.
// A nil result is normalized to void.
func NewFunc(params []*Var, result Type) *Func {
	if result == nil {
		result = Typ[Void]
	}
	return &Func{params: params, result: result}
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Result returns the result type (Typ[Void] for no result).
func (f *Func) Result() Type {
	return f.result
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range f.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type().String())
	}
	sb.WriteString(")")
	if f.result != Typ[Void] {
		sb.WriteString(" ")
		sb.WriteString(f.result.String())
	}
	return sb.String()
}
