package geometry

import "math"

type Circle struct {
	radius float64
}

// NewCircle returns a circle with the given radius. The radius must be
// strictly positive.
func NewCircle(radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Circle{radius: radius}, nil
}

func (c *Circle) Radius() float64 { return c.radius }

// SetRadius replaces the radius, rejecting non-positive values.
func (c *Circle) SetRadius(radius float64) error {
	if radius <= 0 {
		return ErrInvalidDimensions
	}
	c.radius = radius
	return nil
}

func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

func (c *Circle) Perimeter() float64 {
	return 2 * math.Pi * c.radius
}

func (c *Circle) Name() string { return "Circle" }
