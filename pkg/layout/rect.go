package layout

// Rect is a rectangle in host units (pixels, terminal cells, points).
// X and Y are the top-left corner; Width and Height are dimensions.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// VerticalOverlap returns how far the two rectangles overlap along the
// y-axis. Rectangles that do not overlap vertically return 0.
func (r Rect) VerticalOverlap(other Rect) float64 {
	top := max(r.Y, other.Y)
	bottom := min(r.Bottom(), other.Bottom())
	if bottom <= top {
		return 0
	}
	return bottom - top
}
