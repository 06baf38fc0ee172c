package overflow

import (
	"math"

	"github.com/grindlemire/go-overflow/internal/debug"
	"github.com/grindlemire/go-overflow/pkg/layout"
)

// measureFunc reads one item's rendered box.
type measureFunc func(ref ItemRef) (layout.Box, error)

// measureCache memoizes item widths for one engine.
//
// Widths stay valid until the item sequence changes, an item drifts by more
// than epsilon, or invalidate is called. lastKnown survives invalidation so
// a failed read can fall back to the previous width of the same item.
type measureCache struct {
	epsilon float64

	valid  bool
	refs   []ItemRef
	widths []float64
	// skipped marks items that could not be measured and had no previous
	// width. They take no part in the fit.
	skipped []bool

	// first and second are the boxes of the first two items, kept for gap
	// inference. Either is nil when that item could not be measured.
	first, second *layout.Box

	gapValid bool
	gap      float64

	lastKnown map[ItemRef]float64

	// measures counts full re-measurements.
	measures int
}

func newMeasureCache(epsilon float64) *measureCache {
	return &measureCache{
		epsilon:   epsilon,
		lastKnown: make(map[ItemRef]float64),
	}
}

// invalidate forces the next read to measure every item and resolve the
// gap again.
func (c *measureCache) invalidate() {
	if c.valid {
		debug.Log("measureCache: invalidated")
	}
	c.valid = false
	c.gapValid = false
}

// invalidateGap forces only the gap to be resolved again.
func (c *measureCache) invalidateGap() {
	c.gapValid = false
}

// resized records a new width reported for ref. It returns true when the
// width moved by more than epsilon from the cached value, in which case the
// cache is invalidated.
func (c *measureCache) resized(ref ItemRef, width float64) bool {
	prev, ok := c.lastKnown[ref]
	if ok && math.Abs(width-prev) <= c.epsilon {
		return false
	}
	c.lastKnown[ref] = width
	c.invalidate()
	return true
}

// sameSequence reports whether items is the sequence the cache was built for.
func (c *measureCache) sameSequence(items []ItemRef) bool {
	if len(items) != len(c.refs) {
		return false
	}
	for i := range items {
		if items[i] != c.refs[i] {
			return false
		}
	}
	return true
}

// read returns widths for items, measuring them when the cache is stale.
// The returned slices are owned by the cache and must not be modified.
func (c *measureCache) read(items []ItemRef, measure measureFunc) (widths []float64, skipped []bool) {
	if c.valid && c.sameSequence(items) {
		return c.widths, c.skipped
	}

	c.measures++
	c.refs = append(c.refs[:0], items...)
	c.widths = make([]float64, len(items))
	c.skipped = make([]bool, len(items))
	c.first, c.second = nil, nil
	c.gapValid = false

	seen := make(map[ItemRef]struct{}, len(items))
	for i, ref := range items {
		seen[ref] = struct{}{}
		box, err := measure(ref)
		if err != nil {
			if w, ok := c.lastKnown[ref]; ok {
				debug.Log("measureCache: measure item %d failed (%v), using cached width %v", i, err, w)
				c.widths[i] = w
				continue
			}
			debug.Log("measureCache: measure item %d failed (%v), no cached width, skipping", i, err)
			c.skipped[i] = true
			continue
		}

		w := box.OuterWidth()
		c.widths[i] = w
		c.lastKnown[ref] = w
		switch i {
		case 0:
			c.first = &box
		case 1:
			c.second = &box
		}
	}

	// Forget items that left the sequence.
	for ref := range c.lastKnown {
		if _, ok := seen[ref]; !ok {
			delete(c.lastKnown, ref)
		}
	}

	// A skipped item means the sequence may have changed under us; read the
	// live set again next time rather than trusting this snapshot.
	c.valid = true
	for _, s := range c.skipped {
		if s {
			c.valid = false
			break
		}
	}
	return c.widths, c.skipped
}

// resolveGap returns the cached gap, resolving it when stale.
func (c *measureCache) resolveGap(override *float64, style func() (float64, bool)) float64 {
	if c.gapValid {
		return c.gap
	}
	in := GapInput{Override: override, First: c.first, Second: c.second}
	if override == nil {
		in.Style, in.HasStyle = style()
	}
	c.gap = ResolveGap(in)
	c.gapValid = true
	return c.gap
}
