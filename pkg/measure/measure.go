// Package measure provides text width measurers for overflow hosts.
//
// Hosts render labels in some unit (terminal cells, pixels at a font size)
// and report their geometry to the engine as layout boxes. A Measurer turns
// a label into a width in that unit; Row lays a sequence of labels out the
// way a simple toolbar would.
package measure

import "github.com/grindlemire/go-overflow/pkg/layout"

// Measurer returns the advance width of a string.
type Measurer interface {
	Width(s string) float64
}

// Func adapts a function to the Measurer interface.
type Func func(s string) float64

// Width implements Measurer.
func (f Func) Width(s string) float64 {
	return f(s)
}

// Row lays labels out left to right on one line starting at x = 0.
//
// Each label becomes a box whose border box is the text width plus the
// horizontal padding, height tall. Consecutive boxes are gap apart, so a
// host can hand these boxes straight to the engine and gap inference reads
// the same spacing back.
func Row(m Measurer, labels []string, padding layout.Edges, gap, height float64) []layout.Box {
	boxes := make([]layout.Box, len(labels))
	x := 0.0
	for i, label := range labels {
		w := m.Width(label) + padding.Horizontal()
		boxes[i] = layout.Box{
			Rect:    layout.NewRect(x, 0, w, height),
			Padding: padding,
		}
		x += w + max(gap, 0)
	}
	return boxes
}

// Widths returns the outer width of each box.
func Widths(boxes []layout.Box) []float64 {
	ws := make([]float64, len(boxes))
	for i, b := range boxes {
		ws[i] = b.OuterWidth()
	}
	return ws
}
