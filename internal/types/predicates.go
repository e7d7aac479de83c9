package types

// Identical reports whether x and y are identical types.
// Taipan has no implicit conversions, so assignability, argument
// passing, and return values all reduce to identity.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// AssignableTo reports whether a value of type V is assignable to type T.
func AssignableTo(V, T Type) bool {
	return Identical(V, T)
}

// IsNumber reports whether T is the number type.
func IsNumber(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == Number
}

// IsString reports whether T is the string type.
func IsString(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == String
}

// IsVoid reports whether T is the void type.
func IsVoid(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == Void
}

// IsValid reports whether T is a valid, non-nil type.
func IsValid(T Type) bool {
	return T != nil
}

// Comparable reports whether values of type T can be compared with the
// comparison operators. Only numbers compare; strings are opaque.
func Comparable(T Type) bool {
	return IsNumber(T)
}
