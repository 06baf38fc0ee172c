package overflow

import (
	"errors"

	"github.com/grindlemire/go-overflow/internal/debug"
)

// ErrDetached is returned when configuring an engine after Detach.
var ErrDetached = errors.New("overflow: engine is detached")

// Engine keeps the items of one container within its width.
//
// An Engine observes its host, coalesces change signals into one
// recomputation per frame, hides the items that do not fit and notifies
// bindings with the result. It must only be used from the loop goroutine.
type Engine struct {
	host  Host
	cfg   Config
	cache *measureCache
	sched *scheduler
	notes notifier

	// capacity is the last width the host reported.
	capacity float64

	// hidden holds the items this engine has hidden on the host.
	hidden map[ItemRef]bool

	items      []ItemRef
	assignment Assignment

	stopResize func()
	stopItems  func()
	itemStops  map[ItemRef]func()

	recomputes int
	detached   bool
}

// Attach starts managing host. The first recomputation runs on the next
// frame of frames, usually a *Loop.
func Attach(frames FrameRequester, host Host, opts ...Option) (*Engine, error) {
	if frames == nil {
		return nil, errors.New("overflow: nil frame requester")
	}
	if host == nil {
		return nil, errors.New("overflow: nil host")
	}

	e := &Engine{
		host:      host,
		cfg:       DefaultConfig().apply(opts...),
		cache:     newMeasureCache(ResizeEpsilon),
		hidden:    make(map[ItemRef]bool),
		itemStops: make(map[ItemRef]func()),
	}
	e.sched = newScheduler(frames, e.recompute)

	e.stopResize = host.ObserveResize(e.Signal)
	e.stopItems = host.ObserveItems(e.itemsChanged)
	e.observeItems(host.Items())

	debug.Log("Engine.Attach: reserve=%v rows=%d evictLargest=%v", e.cfg.Reserve, e.cfg.Rows, e.cfg.EvictLargest)
	e.sched.signal()
	return e, nil
}

// UpdateConfig applies opts on top of the current configuration. A
// recomputation is scheduled only if something changed or opts install a
// pin marker.
func (e *Engine) UpdateConfig(opts ...Option) error {
	if e.detached {
		return ErrDetached
	}

	prev := e.cfg
	e.cfg = prev.apply(opts...)
	if e.cfg.equal(prev) && !setsMarker(opts) {
		return nil
	}

	if (e.cfg.Gap == nil) != (prev.Gap == nil) || (e.cfg.Gap != nil && *e.cfg.Gap != *prev.Gap) {
		e.cache.invalidateGap()
	}
	debug.Log("Engine.UpdateConfig: reserve=%v rows=%d evictLargest=%v", e.cfg.Reserve, e.cfg.Rows, e.cfg.EvictLargest)
	e.sched.signal()
	return nil
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Signal reports that something affecting the fit changed. Container
// resizes arrive here; hosts without observers may call it directly.
func (e *Engine) Signal() {
	e.sched.signal()
}

// Remeasure drops cached measurements and schedules a recomputation. Use it
// when item content changed in a way the host cannot observe.
func (e *Engine) Remeasure() {
	if e.detached {
		return
	}
	e.cache.invalidate()
	e.sched.signal()
}

// OnOverflow registers fn to be called after every recomputation.
func (e *Engine) OnOverflow(fn func(Notification)) Unbind {
	return e.notes.bind(fn)
}

// Assignment returns the result of the last recomputation.
func (e *Engine) Assignment() Assignment {
	return e.assignment
}

// Pending reports whether a recomputation is scheduled.
func (e *Engine) Pending() bool {
	return e.sched.pending()
}

// Detach stops observing the host, cancels any scheduled recomputation and
// shows every item this engine hid. Detach is idempotent.
func (e *Engine) Detach() {
	if e.detached {
		return
	}
	e.detached = true
	e.sched.dispose()

	if e.stopResize != nil {
		e.stopResize()
	}
	if e.stopItems != nil {
		e.stopItems()
	}
	for ref, stop := range e.itemStops {
		if stop != nil {
			stop()
		}
		delete(e.itemStops, ref)
	}

	// Restore in packing order first, then anything that already left.
	for _, ref := range e.items {
		if e.hidden[ref] {
			delete(e.hidden, ref)
			e.host.SetHidden(ref, false)
		}
	}
	for ref := range e.hidden {
		delete(e.hidden, ref)
		e.host.SetHidden(ref, false)
	}
	e.notes.clear()
	debug.Log("Engine.Detach: after %d recomputations", e.recomputes)
}

func (e *Engine) itemsChanged() {
	if e.detached {
		return
	}
	e.cache.invalidate()
	e.sched.signal()
}

func (e *Engine) itemResized(ref ItemRef) func(float64) {
	return func(width float64) {
		// Hidden items report their collapsed size; their natural width is
		// read again on the next full measurement.
		if e.detached || e.hidden[ref] {
			return
		}
		if e.cache.resized(ref, width) {
			e.sched.signal()
		}
	}
}

// observeItems keeps exactly one item observer per current item.
func (e *Engine) observeItems(items []ItemRef) {
	current := make(map[ItemRef]struct{}, len(items))
	for _, ref := range items {
		current[ref] = struct{}{}
		if _, ok := e.itemStops[ref]; ok {
			continue
		}
		e.itemStops[ref] = e.host.ObserveItem(ref, e.itemResized(ref))
	}
	for ref, stop := range e.itemStops {
		if _, ok := current[ref]; ok {
			continue
		}
		if stop != nil {
			stop()
		}
		delete(e.itemStops, ref)
	}
}

// recompute measures, fits, applies and notifies. It never fails: anything
// the host cannot report falls back to the last known value.
func (e *Engine) recompute() {
	if e.detached {
		return
	}
	e.recomputes++

	items := e.host.Items()
	e.observeItems(items)

	widths, skipped := e.cache.read(items, e.host.Measure)
	gap := e.cache.resolveGap(e.cfg.Gap, e.host.StyleGap)

	if w, err := e.host.ContentWidth(); err != nil {
		debug.Log("Engine.recompute: container width failed (%v), using %v", err, e.capacity)
	} else {
		e.capacity = max(w, 0)
	}

	pinIdx, pinOK := resolvePin(e.host, items, e.cfg.PinTarget)

	live := make([]int, 0, len(items))
	in := FitInput{
		Gap:          gap,
		Capacity:     e.capacity,
		Reserve:      e.cfg.Reserve,
		Rows:         e.cfg.Rows,
		EvictLargest: e.cfg.EvictLargest,
	}
	for i, ref := range items {
		if skipped[i] {
			continue
		}
		live = append(live, i)
		in.Widths = append(in.Widths, widths[i])
		pinned := (pinOK && pinIdx == i) || (e.cfg.PinMarker != nil && e.cfg.PinMarker(ref))
		in.Pinned = append(in.Pinned, pinned)
	}
	fit := Fit(in)

	// Unmeasurable items keep whatever visibility they had.
	visible := make([]bool, len(items))
	for i, ref := range items {
		visible[i] = !e.hidden[ref]
	}
	for k, i := range live {
		visible[i] = fit.Visible[k]
	}

	e.apply(items, visible)

	note := Notification{HiddenItems: []ItemRef{}}
	for i, v := range visible {
		if !v {
			note.HiddenItems = append(note.HiddenItems, items[i])
		}
	}
	note.HiddenCount = len(note.HiddenItems)
	note.Overflowing = note.HiddenCount > 0

	e.items = append(e.items[:0], items...)
	e.assignment = Assignment{Visible: visible, Overflowing: note.Overflowing}

	debug.Log("Engine.recompute #%d: items=%d capacity=%v gap=%v hidden=%d",
		e.recomputes, len(items), e.capacity, gap, note.HiddenCount)
	e.notes.emit(note)
}

// apply pushes visibility changes to the host. Items that left the sequence
// while hidden are shown again so no trace of the engine remains on them.
func (e *Engine) apply(items []ItemRef, visible []bool) {
	current := make(map[ItemRef]struct{}, len(items))
	for i, ref := range items {
		current[ref] = struct{}{}
		hide := !visible[i]
		if hide == e.hidden[ref] {
			continue
		}
		if hide {
			e.hidden[ref] = true
		} else {
			delete(e.hidden, ref)
		}
		e.host.SetHidden(ref, hide)
	}
	for ref := range e.hidden {
		if _, ok := current[ref]; ok {
			continue
		}
		delete(e.hidden, ref)
		e.host.SetHidden(ref, false)
	}
}
