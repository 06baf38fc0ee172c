package overflow

import (
	"time"

	"github.com/grindlemire/go-overflow/internal/debug"
)

// Watcher is a background source of change signals, such as terminal
// resize events or a polling timer. It runs on its own goroutine and hands
// every signal to the loop through eventQueue, so handlers (and the engine
// calls they make) always run on the loop goroutine.
type Watcher interface {
	// Start begins the watcher goroutine. Called by Loop.Watch.
	Start(eventQueue chan<- func(), stopCh <-chan struct{})
}

// ChannelWatcher forwards each value received on a channel to a handler
// running on the loop.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// NewChannelWatcher creates a watcher that calls fn on the loop for each
// value received on ch. It exits when ch is closed or the loop stops.
//
// Example:
//
//	widths := make(chan float64)
//	loop.Watch(overflow.NewChannelWatcher(widths, func(w float64) {
//	    host.setWidth(w) // host notifies its resize observers
//	}))
func NewChannelWatcher[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: fn}
}

// Watch is shorthand for NewChannelWatcher returning the Watcher interface.
func Watch[T any](ch <-chan T, handler func(T)) Watcher {
	return NewChannelWatcher(ch, handler)
}

// Start implements Watcher.
func (w *ChannelWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				if !forward(eventQueue, stopCh, func() { w.handler(v) }) {
					return
				}
			}
		}
	}()
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a watcher that calls handler on the loop every interval.
// Hosts without resize notifications use it to poll their container and
// call Engine.Signal; content that changes on a clock uses it to drive
// Engine.Remeasure.
func OnTimer(interval time.Duration, handler func()) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start implements Watcher.
func (w *timerWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		debug.Log("timerWatcher: started, interval=%v", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				if !forward(eventQueue, stopCh, w.handler) {
					return
				}
			}
		}
	}()
}

// forward enqueues fn unless the loop stops first. It reports whether fn
// was enqueued.
func forward(eventQueue chan<- func(), stopCh <-chan struct{}, fn func()) bool {
	select {
	case eventQueue <- fn:
		return true
	case <-stopCh:
		return false
	}
}
