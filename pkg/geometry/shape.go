// Package geometry is a small teaching-grade shape library: a Shape
// interface, three concrete shapes with validated constructors, and a
// Calculator that aggregates over a mixed collection.
package geometry

import "errors"

// ErrInvalidDimensions is returned by constructors and setters when a
// dimension is not strictly positive or, for triangles, when the triangle
// inequality fails.
var ErrInvalidDimensions = errors.New("invalid shape dimensions")

// Shape is the contract every geometric shape satisfies.
type Shape interface {
	// Area returns the enclosed area.
	Area() float64
	// Perimeter returns the boundary length.
	Perimeter() float64
	// Name returns a human-readable shape name.
	Name() string
}
