package geometry

type Rectangle struct {
	width  float64
	height float64
}

// NewRectangle returns a rectangle with the given dimensions. Both must be
// strictly positive.
func NewRectangle(width, height float64) (*Rectangle, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Rectangle{width: width, height: height}, nil
}

func (r *Rectangle) Width() float64  { return r.width }
func (r *Rectangle) Height() float64 { return r.height }

// SetDimensions replaces both dimensions, rejecting non-positive values.
func (r *Rectangle) SetDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	r.width = width
	r.height = height
	return nil
}

func (r *Rectangle) Area() float64 {
	return r.width * r.height
}

func (r *Rectangle) Perimeter() float64 {
	return 2 * (r.width + r.height)
}

func (r *Rectangle) Name() string { return "Rectangle" }
