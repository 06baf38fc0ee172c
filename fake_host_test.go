package overflow

import (
	"errors"

	"github.com/grindlemire/go-overflow/pkg/layout"
)

var errGone = errors.New("item detached from tree")

// fakeHost is an in-memory row of items. Items are laid out left to right
// on one line, layoutGap apart, so gap inference has real geometry to read.
type fakeHost struct {
	items      []ItemRef
	widths     map[ItemRef]float64
	width      float64
	widthErr   error
	measureErr map[ItemRef]error
	layoutGap  float64
	styleGap   float64
	hasStyle   bool

	hidden         map[ItemRef]bool
	setHiddenCalls int
	measureCalls   int

	// onSetHidden runs inside SetHidden, to simulate hosts that emit
	// signals synchronously while being mutated.
	onSetHidden func(ref ItemRef, hidden bool)

	nextObs   int
	resizeObs map[int]func()
	itemsObs  map[int]func()
	itemObs   map[ItemRef]map[int]func(float64)
}

func newFakeHost(width float64, items ...ItemRef) *fakeHost {
	h := &fakeHost{
		widths:     make(map[ItemRef]float64),
		width:      width,
		measureErr: make(map[ItemRef]error),
		hidden:     make(map[ItemRef]bool),
		resizeObs:  make(map[int]func()),
		itemsObs:   make(map[int]func()),
		itemObs:    make(map[ItemRef]map[int]func(float64)),
	}
	h.items = append(h.items, items...)
	return h
}

// withWidths assigns widths to the items in order.
func (h *fakeHost) withWidths(ws ...float64) *fakeHost {
	for i, w := range ws {
		h.widths[h.items[i]] = w
	}
	return h
}

func (h *fakeHost) Items() []ItemRef {
	out := make([]ItemRef, len(h.items))
	copy(out, h.items)
	return out
}

func (h *fakeHost) ContentWidth() (float64, error) {
	if h.widthErr != nil {
		return 0, h.widthErr
	}
	return h.width, nil
}

func (h *fakeHost) Measure(ref ItemRef) (layout.Box, error) {
	h.measureCalls++
	if err := h.measureErr[ref]; err != nil {
		return layout.Box{}, err
	}
	x := 0.0
	for _, r := range h.items {
		if r == ref {
			return layout.NewBox(x, 0, h.widths[ref], 20), nil
		}
		x += h.widths[r] + h.layoutGap
	}
	return layout.Box{}, errGone
}

func (h *fakeHost) StyleGap() (float64, bool) {
	return h.styleGap, h.hasStyle
}

func (h *fakeHost) SetHidden(ref ItemRef, hidden bool) {
	h.setHiddenCalls++
	if hidden {
		h.hidden[ref] = true
	} else {
		delete(h.hidden, ref)
	}
	if h.onSetHidden != nil {
		h.onSetHidden(ref, hidden)
	}
}

func (h *fakeHost) ObserveResize(fn func()) func() {
	h.nextObs++
	id := h.nextObs
	h.resizeObs[id] = fn
	return func() { delete(h.resizeObs, id) }
}

func (h *fakeHost) ObserveItems(fn func()) func() {
	h.nextObs++
	id := h.nextObs
	h.itemsObs[id] = fn
	return func() { delete(h.itemsObs, id) }
}

func (h *fakeHost) ObserveItem(ref ItemRef, fn func(float64)) func() {
	h.nextObs++
	id := h.nextObs
	if h.itemObs[ref] == nil {
		h.itemObs[ref] = make(map[int]func(float64))
	}
	h.itemObs[ref][id] = fn
	return func() {
		delete(h.itemObs[ref], id)
		if len(h.itemObs[ref]) == 0 {
			delete(h.itemObs, ref)
		}
	}
}

// observers returns the number of live observers of every kind.
func (h *fakeHost) observers() int {
	n := len(h.resizeObs) + len(h.itemsObs)
	for _, m := range h.itemObs {
		n += len(m)
	}
	return n
}

func (h *fakeHost) resize(width float64) {
	h.width = width
	for _, fn := range h.resizeObs {
		fn()
	}
}

func (h *fakeHost) setItemWidth(ref ItemRef, width float64) {
	h.widths[ref] = width
	for _, fn := range h.itemObs[ref] {
		fn(width)
	}
}

func (h *fakeHost) add(ref ItemRef, width float64) {
	h.items = append(h.items, ref)
	h.widths[ref] = width
	for _, fn := range h.itemsObs {
		fn()
	}
}

func (h *fakeHost) remove(ref ItemRef) {
	for i, r := range h.items {
		if r == ref {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	for _, fn := range h.itemsObs {
		fn()
	}
}

func (h *fakeHost) hiddenRefs() []ItemRef {
	var out []ItemRef
	for _, r := range h.items {
		if h.hidden[r] {
			out = append(out, r)
		}
	}
	return out
}

// containerHost resolves pin targets that live inside an item.
type containerHost struct {
	*fakeHost
	children map[any]ItemRef
}

func (h *containerHost) ResolvePin(items []ItemRef, target any) (int, bool) {
	parent, ok := h.children[target]
	if !ok {
		parent = target
	}
	for i, r := range items {
		if r == parent {
			return i, true
		}
	}
	return 0, false
}

// manualFrames records frame requests so tests decide when they fire.
type manualFrames struct {
	raw       []func()
	pending   map[int]bool
	cancelled int
}

func (f *manualFrames) RequestFrame(fn func()) func() {
	if f.pending == nil {
		f.pending = make(map[int]bool)
	}
	f.raw = append(f.raw, fn)
	id := len(f.raw) - 1
	f.pending[id] = true
	return func() {
		if f.pending[id] {
			delete(f.pending, id)
			f.cancelled++
		}
	}
}

// fireAll runs every pending request in request order, including requests
// made by the callbacks it runs.
func (f *manualFrames) fireAll() {
	for id := 0; id < len(f.raw); id++ {
		if f.pending[id] {
			delete(f.pending, id)
			f.raw[id]()
		}
	}
}

// fireRaw runs request i even if it was cancelled, as a frame that was
// already dequeued when its owner went away would.
func (f *manualFrames) fireRaw(i int) {
	f.raw[i]()
}
