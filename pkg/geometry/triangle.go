package geometry

import "math"

const triangleEpsilon = 1e-9

type Triangle struct {
	a, b, c float64
}

// NewTriangle returns a triangle with the given side lengths. All sides
// must be strictly positive and satisfy the triangle inequality.
func NewTriangle(a, b, c float64) (*Triangle, error) {
	if a <= 0 || b <= 0 || c <= 0 || !satisfiesTriangleInequality(a, b, c) {
		return nil, ErrInvalidDimensions
	}
	return &Triangle{a: a, b: b, c: c}, nil
}

func (t *Triangle) Sides() (a, b, c float64) {
	return t.a, t.b, t.c
}

// SetSides replaces all three sides, applying the same validation as the
// constructor.
func (t *Triangle) SetSides(a, b, c float64) error {
	if a <= 0 || b <= 0 || c <= 0 || !satisfiesTriangleInequality(a, b, c) {
		return ErrInvalidDimensions
	}
	t.a, t.b, t.c = a, b, c
	return nil
}

// IsEquilateral reports whether all three sides are equal within epsilon.
func (t *Triangle) IsEquilateral() bool {
	return math.Abs(t.a-t.b) < triangleEpsilon && math.Abs(t.b-t.c) < triangleEpsilon
}

// IsIsosceles reports whether at least two sides are equal within epsilon.
func (t *Triangle) IsIsosceles() bool {
	return math.Abs(t.a-t.b) < triangleEpsilon ||
		math.Abs(t.b-t.c) < triangleEpsilon ||
		math.Abs(t.a-t.c) < triangleEpsilon
}

// Area uses Heron's formula.
func (t *Triangle) Area() float64 {
	s := t.Perimeter() / 2
	return math.Sqrt(s * (s - t.a) * (s - t.b) * (s - t.c))
}

func (t *Triangle) Perimeter() float64 {
	return t.a + t.b + t.c
}

func (t *Triangle) Name() string {
	switch {
	case t.IsEquilateral():
		return "Equilateral Triangle"
	case t.IsIsosceles():
		return "Isosceles Triangle"
	default:
		return "Scalene Triangle"
	}
}

func satisfiesTriangleInequality(a, b, c float64) bool {
	return a+b > c && b+c > a && a+c > b
}
