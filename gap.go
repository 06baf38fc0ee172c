package overflow

import "github.com/grindlemire/go-overflow/pkg/layout"

// GapInput holds what is known about item spacing for one recomputation.
type GapInput struct {
	// Override, when set, wins over everything else, including zero.
	Override *float64

	// First and Second are the rendered boxes of the first two items in
	// packing order. Either may be nil when fewer items exist or they
	// could not be measured.
	First, Second *layout.Box

	// Style is the spacing declared by the container's style. HasStyle is
	// false when the host could not provide it.
	Style    float64
	HasStyle bool
}

// ResolveGap returns the spacing to use between items on one row.
//
// The explicit override is used verbatim. Otherwise the gap is read from the
// rendered geometry of the first two items when they sit on the same row and
// do not overlap. Otherwise the style value is used, or 0 if there is none.
// The result is never negative.
func ResolveGap(in GapInput) float64 {
	if in.Override != nil {
		return max(*in.Override, 0)
	}

	if in.First != nil && in.Second != nil && in.First.SameRow(*in.Second) {
		a, b := in.First, in.Second
		if b.Rect.X > a.Rect.Right() {
			return max(b.LeadingEdge()-a.TrailingEdge(), 0)
		}
	}

	if in.HasStyle {
		return max(in.Style, 0)
	}
	return 0
}
