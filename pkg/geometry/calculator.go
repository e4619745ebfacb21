package geometry

import (
	"fmt"
	"strings"
)

// Calculator aggregates area and perimeter over a collection of shapes.
// The zero value is ready to use.
type Calculator struct {
	shapes []Shape
}

// AddShape appends a shape. Nil shapes are ignored.
func (c *Calculator) AddShape(shape Shape) {
	if shape == nil {
		return
	}
	c.shapes = append(c.shapes, shape)
}

// ShapeCount returns the number of shapes held.
func (c *Calculator) ShapeCount() int {
	return len(c.shapes)
}

// TotalArea sums the areas of all shapes.
func (c *Calculator) TotalArea() float64 {
	var total float64
	for _, shape := range c.shapes {
		total += shape.Area()
	}
	return total
}

// TotalPerimeter sums the perimeters of all shapes.
func (c *Calculator) TotalPerimeter() float64 {
	var total float64
	for _, shape := range c.shapes {
		total += shape.Perimeter()
	}
	return total
}

// Shape returns the shape at index, or nil when out of range.
func (c *Calculator) Shape(index int) Shape {
	if index < 0 || index >= len(c.shapes) {
		return nil
	}
	return c.shapes[index]
}

// Clear removes all shapes.
func (c *Calculator) Clear() {
	c.shapes = nil
}

// ShapesInfo renders a report of every shape and the running totals.
func (c *Calculator) ShapesInfo() string {
	var b strings.Builder

	b.WriteString("=== Geometry Calculator Results ===\n")
	fmt.Fprintf(&b, "Total shapes: %d\n\n", len(c.shapes))

	for i, shape := range c.shapes {
		fmt.Fprintf(&b, "Shape %d: %s\n", i+1, shape.Name())
		fmt.Fprintf(&b, "  Area: %.2f\n", shape.Area())
		fmt.Fprintf(&b, "  Perimeter: %.2f\n\n", shape.Perimeter())
	}

	b.WriteString("Totals:\n")
	fmt.Fprintf(&b, "  Total Area: %.2f\n", c.TotalArea())
	fmt.Fprintf(&b, "  Total Perimeter: %.2f\n", c.TotalPerimeter())

	return b.String()
}
