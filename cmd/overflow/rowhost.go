package main

import (
	"fmt"

	"github.com/grindlemire/go-overflow"
	"github.com/grindlemire/go-overflow/pkg/layout"
)

// rowHost is a host over precomputed boxes. Item refs are box indices.
// Nothing about it changes after construction, so its observers never fire.
type rowHost struct {
	width   float64
	boxes   []layout.Box
	spacing float64
	hidden  map[int]bool
}

func newRowHost(width float64, boxes []layout.Box, spacing float64) *rowHost {
	return &rowHost{
		width:   width,
		boxes:   boxes,
		spacing: spacing,
		hidden:  make(map[int]bool),
	}
}

func (h *rowHost) Items() []overflow.ItemRef {
	items := make([]overflow.ItemRef, len(h.boxes))
	for i := range h.boxes {
		items[i] = i
	}
	return items
}

func (h *rowHost) ContentWidth() (float64, error) {
	return h.width, nil
}

func (h *rowHost) Measure(ref overflow.ItemRef) (layout.Box, error) {
	i, ok := ref.(int)
	if !ok || i < 0 || i >= len(h.boxes) {
		return layout.Box{}, fmt.Errorf("unknown item %v", ref)
	}
	return h.boxes[i], nil
}

func (h *rowHost) StyleGap() (float64, bool) {
	return h.spacing, true
}

func (h *rowHost) SetHidden(ref overflow.ItemRef, hidden bool) {
	if i, ok := ref.(int); ok {
		h.hidden[i] = hidden
	}
}

func (h *rowHost) ObserveResize(func()) func() {
	return func() {}
}

func (h *rowHost) ObserveItems(func()) func() {
	return func() {}
}

func (h *rowHost) ObserveItem(overflow.ItemRef, func(float64)) func() {
	return func() {}
}
