// Package rtabi defines the ABI shared between the compiler and the C
// runtime. These values must be kept in sync with runtime/std.h.
package rtabi

// Runtime function names
const (
	FnPrintNumber = "print_number"
	FnPrintString = "print_string"
	FnInputNumber = "input_number"
)

// FuncSignature describes a runtime function's C prototype for code
// generation.
type FuncSignature struct {
	Name       string   // function name
	ReturnType string   // C return type
	ParamTypes []string // C parameter types
}

// RuntimeFunctions returns the signatures of all runtime functions, in
// the order their prototypes are emitted.
func RuntimeFunctions() []FuncSignature {
	return []FuncSignature{
		{Name: FnPrintNumber, ReturnType: "void", ParamTypes: []string{"double"}},
		{Name: FnPrintString, ReturnType: "void", ParamTypes: []string{"const char *"}},
		{Name: FnInputNumber, ReturnType: "void", ParamTypes: []string{"double *"}},
	}
}

// IsRuntimeName reports whether name is one of the runtime function
// names. The code generator renames user identifiers that collide.
func IsRuntimeName(name string) bool {
	switch name {
	case FnPrintNumber, FnPrintString, FnInputNumber:
		return true
	}
	return false
}
