package overflow

import "github.com/grindlemire/go-overflow/internal/debug"

type schedState int

const (
	schedIdle schedState = iota
	schedPending
	schedDisposed
)

func (s schedState) String() string {
	switch s {
	case schedIdle:
		return "idle"
	case schedPending:
		return "pending"
	case schedDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// scheduler coalesces change signals into at most one outstanding run.
//
// A signal moves idle -> pending and requests a frame. Further signals while
// pending are absorbed. When the frame fires the state returns to idle
// before run is called, so signals raised by run itself schedule a fresh
// frame instead of being lost.
type scheduler struct {
	frames FrameRequester
	run    func()
	state  schedState
	cancel func()

	// signals counts every signal, including coalesced ones.
	signals int
}

func newScheduler(frames FrameRequester, run func()) *scheduler {
	return &scheduler{frames: frames, run: run}
}

// signal records a change. It is a no-op once disposed.
func (s *scheduler) signal() {
	s.signals++
	switch s.state {
	case schedDisposed:
		return
	case schedPending:
		return
	}

	s.state = schedPending
	s.cancel = s.frames.RequestFrame(s.fire)
}

// fire is the frame callback. It may be called after dispose when the frame
// was already dequeued; that call does nothing.
func (s *scheduler) fire() {
	if s.state != schedPending {
		debug.Log("scheduler: frame fired in state %s, ignoring", s.state)
		return
	}
	s.state = schedIdle
	s.cancel = nil
	s.run()
}

// pending reports whether a run is scheduled.
func (s *scheduler) pending() bool {
	return s.state == schedPending
}

// dispose cancels any scheduled run. Later signals are ignored.
func (s *scheduler) dispose() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = schedDisposed
}
