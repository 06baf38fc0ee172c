package overflow

import "github.com/grindlemire/go-overflow/pkg/layout"

// ItemRef identifies one item of a container. The engine only compares refs
// with ==, so the dynamic type must be comparable (pointers, ints, strings).
type ItemRef = any

// Host is the engine's view of one container and its items. A host adapts a
// concrete UI tree (terminal widgets, a retained scene, a test fake).
//
// All methods are called from the loop goroutine. Observer callbacks must be
// invoked from that goroutine too; background sources should go through
// Loop.QueueUpdate or a Watcher.
type Host interface {
	// Items returns the current item sequence in packing order.
	Items() []ItemRef

	// ContentWidth returns the usable packing width of the container.
	// See layout.PackingWidth for the usual computation.
	ContentWidth() (float64, error)

	// Measure returns the rendered geometry of one item. Its OuterWidth is
	// the width used for fitting. Hidden items must still report the box
	// they would have when shown.
	Measure(ref ItemRef) (layout.Box, error)

	// StyleGap returns the spacing declared by the container's style, and
	// false when none is available.
	StyleGap() (float64, bool)

	// SetHidden shows or hides one item. The engine only calls it when the
	// item's visibility actually changes.
	SetHidden(ref ItemRef, hidden bool)

	// ObserveResize calls fn whenever the container's size changes.
	ObserveResize(fn func()) (stop func())

	// ObserveItems calls fn whenever items are added or removed.
	ObserveItems(fn func()) (stop func())

	// ObserveItem calls fn with the item's new outer width whenever it
	// resizes. Signals for items the engine has hidden are ignored, since a
	// hidden item usually reports its collapsed size. A host whose hidden
	// items change content should call Engine.Remeasure instead.
	ObserveItem(ref ItemRef, fn func(width float64)) (stop func())
}

// PinResolver is an optional Host capability that maps a pin target to the
// index of the item that holds it. Hosts with nested trees implement it to
// pin an item when the target is one of its descendants. Without it a
// target only matches an item ref that is equal to it.
type PinResolver interface {
	ResolvePin(items []ItemRef, target any) (int, bool)
}

// resolvePin finds the pinned index for target among items.
func resolvePin(host Host, items []ItemRef, target any) (int, bool) {
	if target == nil {
		return 0, false
	}
	if r, ok := host.(PinResolver); ok {
		i, ok := r.ResolvePin(items, target)
		if !ok || i < 0 || i >= len(items) {
			return 0, false
		}
		return i, true
	}
	if !isComparable(target) {
		return 0, false
	}
	for i, ref := range items {
		if ref == target {
			return i, true
		}
	}
	return 0, false
}
