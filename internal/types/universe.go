package types

import "github.com/taipan-lang/taipan/internal/syntax"

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Universe is the root scope containing all predeclared objects.
// In Taipan those are just the type names number and string; they are
// ordinary identifiers, so a program can shadow them.
var Universe *Scope

var (
	universeNumber *TypeName
	universeString *TypeName
)

func init() {
	Universe = NewScope(nil, NoPos, NoPos, "universe")
	defPredeclaredTypes()
}

// defPredeclaredTypes defines number and string in Universe.
func defPredeclaredTypes() {
	for _, kind := range []BasicKind{Number, String} {
		typ := Typ[kind]
		obj := NewTypeName(NoPos, typ.name, typ)
		Universe.Insert(obj)

		switch kind {
		case Number:
			universeNumber = obj
		case String:
			universeString = obj
		}
	}
}

// Predeclared type accessors
func UniverseNumber() *TypeName { return universeNumber }
func UniverseString() *TypeName { return universeString }
