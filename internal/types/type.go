// Package types implements the type system for the Taipan programming
// language. This package provides type representations without AST
// dependencies.
package types

// Type is the interface implemented by all types.
type Type interface {
	// Underlying returns the underlying type.
	// For all Taipan types this is the receiver; the method exists so
	// type predicates read uniformly.
	Underlying() Type

	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
