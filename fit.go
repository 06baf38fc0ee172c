package overflow

import "sort"

// FitInput holds everything the fit algorithm needs. It is plain data: no
// host, no observers, no measurement.
type FitInput struct {
	// Widths are the outer widths of the items in packing order.
	Widths []float64

	// Gap is the spacing between two items on the same row.
	Gap float64

	// Capacity is the usable row width.
	Capacity float64

	// Reserve is withheld on the last usable row for an overflow indicator.
	// It only applies once the items do not all fit.
	Reserve float64

	// Rows is the number of rows the packer may fill. Values below 1 mean 1.
	Rows int

	// Pinned marks items that must stay visible. A slice shorter than
	// Widths leaves the remaining items unpinned.
	Pinned []bool

	// EvictLargest packs the smallest items first so the largest ones are
	// hidden, maximizing the number of visible items.
	EvictLargest bool
}

// Assignment is the visibility partition produced by Fit.
type Assignment struct {
	// Visible has one entry per item; false means the item is hidden.
	Visible []bool

	// Overflowing is true iff at least one item is hidden.
	Overflowing bool
}

// Hidden returns the indices of hidden items in ascending order.
func (a Assignment) Hidden() []int {
	var out []int
	for i, v := range a.Visible {
		if !v {
			out = append(out, i)
		}
	}
	return out
}

// Shown returns the indices of visible items in ascending order.
func (a Assignment) Shown() []int {
	var out []int
	for i, v := range a.Visible {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// HiddenCount returns the number of hidden items.
func (a Assignment) HiddenCount() int {
	n := 0
	for _, v := range a.Visible {
		if !v {
			n++
		}
	}
	return n
}

// Equal reports whether two assignments hide the same items.
func (a Assignment) Equal(b Assignment) bool {
	if len(a.Visible) != len(b.Visible) || a.Overflowing != b.Overflowing {
		return false
	}
	for i := range a.Visible {
		if a.Visible[i] != b.Visible[i] {
			return false
		}
	}
	return true
}

// Fit decides which items are visible.
//
// When every item fits on one row at full capacity nothing is hidden and
// no space is reserved. Otherwise items are packed greedily, pinned items
// first, into at most in.Rows rows, with in.Reserve withheld on the last
// row. Pinned items that do not fit are shown anyway.
//
// Fit never fails: negative sizes are treated as 0 and Rows below 1 as 1.
func Fit(in FitInput) Assignment {
	n := len(in.Widths)
	if n == 0 {
		return Assignment{Visible: []bool{}}
	}

	gap := max(in.Gap, 0)
	capacity := max(in.Capacity, 0)
	reserve := max(in.Reserve, 0)
	rows := max(in.Rows, 1)

	widths := make([]float64, n)
	total := gap * float64(n-1)
	for i, w := range in.Widths {
		widths[i] = max(w, 0)
		total += widths[i]
	}

	visible := make([]bool, n)
	if total <= capacity {
		for i := range visible {
			visible[i] = true
		}
		return Assignment{Visible: visible}
	}

	pinned := func(i int) bool {
		return i < len(in.Pinned) && in.Pinned[i]
	}

	order := priorityOrder(widths, pinned, in.EvictLargest)

	row := 1
	used := 0.0
	placed := 0
	limit := func() float64 {
		if row == rows {
			return capacity - reserve
		}
		return capacity
	}

	for _, i := range order {
		w := widths[i]
		g := gap
		if placed == 0 {
			g = 0
		}

		if used+g+w > limit() && row < rows {
			row++
			used, placed, g = 0, 0, 0
		}

		if used+g+w <= limit() || pinned(i) {
			visible[i] = true
			used += g + w
			placed++
			continue
		}

		if !in.EvictLargest {
			// Priority is original order, so nothing after i can fit either.
			break
		}
	}

	a := Assignment{Visible: visible}
	for _, v := range visible {
		if !v {
			a.Overflowing = true
			break
		}
	}
	return a
}

// priorityOrder returns item indices in packing order: pinned items in
// original order, then the rest either by ascending width or in original
// order.
func priorityOrder(widths []float64, pinned func(int) bool, bySize bool) []int {
	order := make([]int, 0, len(widths))
	rest := make([]int, 0, len(widths))
	for i := range widths {
		if pinned(i) {
			order = append(order, i)
		} else {
			rest = append(rest, i)
		}
	}
	if bySize {
		sort.SliceStable(rest, func(a, b int) bool {
			return widths[rest[a]] < widths[rest[b]]
		})
	}
	return append(order, rest...)
}
