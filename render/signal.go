package render

import "sync/atomic"

// Invalidator requests an asynchronous repaint. Implementations must be safe
// to call from any goroutine and must not block.
type Invalidator interface {
	Invalidate()
}

// InvalidatorFunc adapts a function to the Invalidator interface.
type InvalidatorFunc func()

// Invalidate calls f.
func (f InvalidatorFunc) Invalidate() { f() }

// RedrawSignal is a coalescing, cross-goroutine repaint request.
//
// At most one redraw is ever outstanding: Invalidate calls made before the
// consumer takes the pending redraw collapse into it.
type RedrawSignal struct {
	ch       chan struct{}
	requests atomic.Uint64
}

// NewRedrawSignal creates a signal with no redraw pending.
func NewRedrawSignal() *RedrawSignal {
	return &RedrawSignal{ch: make(chan struct{}, 1)}
}

// Invalidate marks a redraw as pending. It never blocks.
func (s *RedrawSignal) Invalidate() {
	s.requests.Add(1)
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that becomes readable while a redraw is pending.
// Receiving from it consumes the pending redraw.
func (s *RedrawSignal) C() <-chan struct{} {
	return s.ch
}

// Consume takes the pending redraw, if any, and reports whether there was one.
func (s *RedrawSignal) Consume() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Pending reports whether a redraw is pending without consuming it.
func (s *RedrawSignal) Pending() bool {
	return len(s.ch) > 0
}

// Requests returns how many times Invalidate has been called.
func (s *RedrawSignal) Requests() uint64 {
	return s.requests.Load()
}
