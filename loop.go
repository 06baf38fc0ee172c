package overflow

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/grindlemire/go-overflow/internal/debug"
)

// FrameRequester defers a callback to the end of the current turn.
//
// RequestFrame schedules fn to run once, after every event already queued
// has been handled. The returned cancel removes fn if it has not run yet;
// calling it later is a no-op.
type FrameRequester interface {
	RequestFrame(fn func()) (cancel func())
}

// Loop is a single-threaded cooperative event loop. Each turn drains the
// event queue and then runs the frame callbacks requested so far, so a
// burst of events is always followed by one settled frame.
//
// Engines attached to a Loop must only be touched from the goroutine that
// runs it. Other goroutines hand work over with QueueUpdate or a Watcher.
type Loop struct {
	eventQueue     chan func()
	eventQueueSize int
	stopCh         chan struct{}
	stopOnce       sync.Once
	frameDuration  time.Duration

	mu        sync.Mutex
	frames    []*frameCallback
	nextFrame uint64
}

type frameCallback struct {
	id uint64
	fn func()
}

// LoopOption is a functional option for configuring a Loop.
type LoopOption func(*Loop) error

// WithFrameRate sets how often the loop runs frames while idle.
// Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) LoopOption {
	return func(l *Loop) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		l.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithEventQueueSize sets the capacity of the event queue buffer.
// Default is 256. Must be at least 1.
func WithEventQueueSize(size int) LoopOption {
	return func(l *Loop) error {
		if size < 1 {
			return fmt.Errorf("event queue size must be at least 1")
		}
		l.eventQueueSize = size
		return nil
	}
}

// NewLoop creates a loop ready to Run or Flush.
func NewLoop(opts ...LoopOption) (*Loop, error) {
	l := &Loop{
		eventQueueSize: 256,
		frameDuration:  time.Second / 60,
		stopCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.eventQueue = make(chan func(), l.eventQueueSize)
	return l, nil
}

// Run processes events and frames until Stop is called or SIGINT received.
func (l *Loop) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			l.Stop()
		case <-l.stopCh:
		}
		signal.Stop(sigCh)
	}()

	for {
		frameStart := time.Now()

		// Process events for up to half the frame budget.
		eventDeadline := frameStart.Add(l.frameDuration / 2)
	events:
		for time.Now().Before(eventDeadline) {
			select {
			case handler := <-l.eventQueue:
				handler()
			case <-l.stopCh:
				return nil
			default:
				break events
			}
		}

		l.runFrames()

		elapsed := time.Since(frameStart)
		if elapsed < l.frameDuration {
			select {
			case <-time.After(l.frameDuration - elapsed):
			case handler := <-l.eventQueue:
				// Wake early so the handler's frame is not delayed a full tick.
				handler()
			case <-l.stopCh:
				return nil
			}
		}
	}
}

// Stop signals Run to exit and stops all watchers. Stop is idempotent.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		debug.Log("Loop.Stop")
		close(l.stopCh)
	})
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.stopCh
}

// QueueUpdate enqueues fn to run on the loop. Safe to call from any
// goroutine, including the loop's own. It never blocks: fn is dropped when
// the queue is full or the loop is stopped.
func (l *Loop) QueueUpdate(fn func()) {
	select {
	case l.eventQueue <- fn:
	case <-l.stopCh:
	default:
		debug.Log("Loop.QueueUpdate: event queue full, update dropped")
	}
}

// Watch starts w with this loop's event queue and stop channel.
func (l *Loop) Watch(w Watcher) {
	w.Start(l.eventQueue, l.stopCh)
}

// RequestFrame implements FrameRequester. Callbacks requested while a frame
// is running are deferred to the next frame.
func (l *Loop) RequestFrame(fn func()) (cancel func()) {
	l.mu.Lock()
	l.nextFrame++
	id := l.nextFrame
	l.frames = append(l.frames, &frameCallback{id: id, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, f := range l.frames {
			if f.id == id {
				l.frames = append(l.frames[:i], l.frames[i+1:]...)
				return
			}
		}
	}
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// runFrames runs the callbacks requested before this call.
func (l *Loop) runFrames() {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, f := range frames {
		f.fn()
	}
}

// Flush runs one turn on the calling goroutine: every queued event, then
// the pending frame callbacks. Hosts that drive their own loop, and tests,
// use it instead of Run.
func (l *Loop) Flush() {
	for {
		select {
		case handler := <-l.eventQueue:
			handler()
		default:
			l.runFrames()
			return
		}
	}
}
