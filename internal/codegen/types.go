package codegen

import (
	"github.com/taipan-lang/taipan/internal/types"
)

// cType maps a Taipan type to its C type string.
func cType(t types.Type) string {
	if b, ok := t.(*types.Basic); ok {
		switch b.Kind() {
		case types.Number:
			return "double"
		case types.String:
			return "const char *"
		}
	}
	return "void"
}

// cReturnType returns the C return type for a function signature.
func cReturnType(sig *types.Func) string {
	if types.IsVoid(sig.Result()) {
		return "void"
	}
	return cType(sig.Result())
}

// cZero returns the C initializer for the zero value of a type.
// Numbers start at 0, strings at the empty string.
func cZero(t types.Type) string {
	if types.IsString(t) {
		return "\"\""
	}
	return "0.0"
}

// cParam formats a parameter declaration. "const char *" binds the
// pointer to the name without a separating space.
func cParam(t types.Type, name string) string {
	ct := cType(t)
	if ct[len(ct)-1] == '*' {
		return ct + name
	}
	return ct + " " + name
}
