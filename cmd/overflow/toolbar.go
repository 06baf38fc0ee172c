package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/grindlemire/go-overflow"
	"github.com/grindlemire/go-overflow/pkg/layout"
	"github.com/grindlemire/go-overflow/pkg/measure"
)

const (
	// toolSpacing is the number of blank cells between two items.
	toolSpacing = 1

	// toolPadding is the blank cells on each side of a label.
	toolPadding = 1
)

// toolItem is one labelled button of the toolbar.
type toolItem struct {
	label  string
	hidden bool
}

// toolbar is an overflow host drawing labelled items across the top rows of
// a tcell screen. Its width is the screen width. It must only be used from
// the loop goroutine.
type toolbar struct {
	screen tcell.Screen
	cells  *measure.Cells
	items  []*toolItem

	nextObs   int
	resizeObs map[int]func()
	itemsObs  map[int]func()
	itemObs   map[*toolItem]map[int]func(float64)
}

func newToolbar(screen tcell.Screen, labels []string) *toolbar {
	tb := &toolbar{
		screen:    screen,
		cells:     measure.NewCells(false),
		resizeObs: make(map[int]func()),
		itemsObs:  make(map[int]func()),
		itemObs:   make(map[*toolItem]map[int]func(float64)),
	}
	for _, l := range labels {
		tb.items = append(tb.items, &toolItem{label: l})
	}
	return tb
}

// layout returns every item's box on a single unbounded line, hidden items
// included, which is where each would sit if everything were shown.
func (tb *toolbar) layout() []layout.Box {
	labels := make([]string, len(tb.items))
	for i, it := range tb.items {
		labels[i] = it.label
	}
	return measure.Row(tb.cells, labels, layout.EdgeSymmetric(0, toolPadding), toolSpacing, 1)
}

func (tb *toolbar) Items() []overflow.ItemRef {
	refs := make([]overflow.ItemRef, len(tb.items))
	for i, it := range tb.items {
		refs[i] = it
	}
	return refs
}

func (tb *toolbar) ContentWidth() (float64, error) {
	w, _ := tb.screen.Size()
	return float64(w), nil
}

func (tb *toolbar) Measure(ref overflow.ItemRef) (layout.Box, error) {
	boxes := tb.layout()
	for i, it := range tb.items {
		if it == ref {
			return boxes[i], nil
		}
	}
	return layout.Box{}, fmt.Errorf("item %v is not on the toolbar", ref)
}

func (tb *toolbar) StyleGap() (float64, bool) {
	return toolSpacing, true
}

func (tb *toolbar) SetHidden(ref overflow.ItemRef, hidden bool) {
	if it, ok := ref.(*toolItem); ok {
		it.hidden = hidden
	}
}

func (tb *toolbar) ObserveResize(fn func()) func() {
	tb.nextObs++
	id := tb.nextObs
	tb.resizeObs[id] = fn
	return func() { delete(tb.resizeObs, id) }
}

func (tb *toolbar) ObserveItems(fn func()) func() {
	tb.nextObs++
	id := tb.nextObs
	tb.itemsObs[id] = fn
	return func() { delete(tb.itemsObs, id) }
}

func (tb *toolbar) ObserveItem(ref overflow.ItemRef, fn func(float64)) func() {
	it, ok := ref.(*toolItem)
	if !ok {
		return func() {}
	}
	tb.nextObs++
	id := tb.nextObs
	if tb.itemObs[it] == nil {
		tb.itemObs[it] = make(map[int]func(float64))
	}
	tb.itemObs[it][id] = fn
	return func() {
		delete(tb.itemObs[it], id)
		if len(tb.itemObs[it]) == 0 {
			delete(tb.itemObs, it)
		}
	}
}

// resized tells observers the screen changed size.
func (tb *toolbar) resized() {
	for _, fn := range tb.resizeObs {
		fn()
	}
}

// add appends a labelled item and returns it.
func (tb *toolbar) add(label string) *toolItem {
	it := &toolItem{label: label}
	tb.items = append(tb.items, it)
	for _, fn := range tb.itemsObs {
		fn()
	}
	return it
}

// setLabel changes an item's text and reports its new width.
func (tb *toolbar) setLabel(it *toolItem, label string) {
	if it.label == label {
		return
	}
	it.label = label
	w := tb.cells.Width(label) + 2*toolPadding
	for _, fn := range tb.itemObs[it] {
		fn(w)
	}
}

// render draws the visible items packed into rows the way the engine packed
// them, then the "+N" badge and a status line at the bottom.
func (tb *toolbar) render(note overflow.Notification, status string) {
	tb.screen.Clear()
	width, height := tb.screen.Size()

	item := tcell.StyleDefault.Reverse(true)
	x, y := 0, 0
	for _, it := range tb.items {
		if it.hidden {
			continue
		}
		text := fmt.Sprintf("%*s%s%*s", toolPadding, "", it.label, toolPadding, "")
		w := runewidth.StringWidth(text)
		if x > 0 && x+w > width {
			x, y = 0, y+1
		}
		drawText(tb.screen, x, y, item, text)
		x += w + toolSpacing
	}

	if note.Overflowing {
		badge := fmt.Sprintf(" +%d ", note.HiddenCount)
		bx := x
		if bx+runewidth.StringWidth(badge) > width {
			bx = max(width-runewidth.StringWidth(badge), 0)
		}
		drawText(tb.screen, bx, y, tcell.StyleDefault.Bold(true), badge)
	}

	if height > 1 {
		drawText(tb.screen, 0, height-1, tcell.StyleDefault.Dim(true), status)
	}
	tb.screen.Show()
}

// drawText writes s starting at (x, y) and returns the x after it. Wide
// runes take two cells.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
