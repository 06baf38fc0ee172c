package layout

// Box is the rendered geometry of one element as a host reports it.
//
// Rect is the border box. Margin sits outside it; Border and Padding sit
// inside it. ScrollWidth is the horizontal extent of the element's content
// when that content spills past the border box (0 when it does not).
type Box struct {
	Rect        Rect
	Margin      Edges
	Border      Edges
	Padding     Edges
	ScrollWidth float64
}

// NewBox creates a Box with the given border box and no edges.
func NewBox(x, y, width, height float64) Box {
	return Box{Rect: NewRect(x, y, width, height)}
}

// OuterWidth is the horizontal space the element occupies in a row: the
// border box widened to any overflowing content, plus horizontal margins.
// It is never smaller than the border box width.
func (b Box) OuterWidth() float64 {
	w := max(b.Rect.Width, b.ScrollWidth)
	return max(w+b.Margin.Horizontal(), 0)
}

// ContentWidth is the width available to children: the border box minus
// horizontal border and padding, floored at 0.
func (b Box) ContentWidth() float64 {
	return max(b.Rect.Width-b.Border.Horizontal()-b.Padding.Horizontal(), 0)
}

// LeadingEdge is the left margin edge.
func (b Box) LeadingEdge() float64 {
	return b.Rect.X - b.Margin.Left
}

// TrailingEdge is the right margin edge.
func (b Box) TrailingEdge() float64 {
	return b.Rect.Right() + b.Margin.Right
}

// SameRow reports whether two boxes were laid out on the same line: their
// border boxes overlap vertically by at least half of the shorter height.
func (b Box) SameRow(other Box) bool {
	shorter := min(b.Rect.Height, other.Rect.Height)
	if shorter <= 0 {
		return b.Rect.Y == other.Rect.Y
	}
	return b.Rect.VerticalOverlap(other.Rect) >= shorter/2
}

// PackingWidth returns the usable width for packing children of container.
//
// When packer is nil the container itself packs the children. Otherwise
// packer is an inner element that does the packing and its own margin,
// border and padding are subtracted as well. The result is floored at 0.
func PackingWidth(container Box, packer *Box) float64 {
	w := container.ContentWidth()
	if packer != nil {
		w -= packer.Margin.Horizontal() + packer.Border.Horizontal() + packer.Padding.Horizontal()
	}
	return max(w, 0)
}
