// Package overflow keeps a row of items within the width of its container.
//
// An Engine attaches to a Host (a container and its ordered items), watches
// it for resizes and membership changes, and on each frame decides which
// items stay visible and which are hidden. Bindings registered with
// OnOverflow learn the outcome, typically to render a "+N more" control.
//
// The fitting rule itself is the pure function Fit. Everything else runs on
// a single-threaded Loop: change signals are coalesced into at most one
// recomputation per frame, and background sources reach the loop through
// QueueUpdate or a Watcher.
//
//	loop, _ := overflow.NewLoop()
//	e, _ := overflow.Attach(loop, host, overflow.WithReserve(40))
//	e.OnOverflow(func(n overflow.Notification) {
//	    badge.SetCount(n.HiddenCount)
//	})
//	loop.Run()
package overflow
