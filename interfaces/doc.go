// Package interfaces defines the capabilities the presentation surface
// exchanges with its external collaborators.
//
// The video pipeline consumes a [FrameSource] and registers a [VideoSink]
// against it; the signaling layer consumes a [MainWindowObserver] that the
// window notifies when the user asks to log in, call a peer, hang up or
// close. Neither side owns a wire protocol; both are plain Go interfaces so
// that a capture device, a WebRTC track, or the simulation in the testing
// package can stand behind them interchangeably.
//
// # Frame Delivery
//
// A source delivers frames on its own goroutine. A sink is registered once
// and removed before it releases any resources it uses in OnFrame:
//
//	source.AddOrUpdateSink(renderer, interfaces.SinkWants{})
//	defer source.RemoveSink(renderer)
//
// RemoveSink waits for an in-progress OnFrame on that sink; after it
// returns the source must not call OnFrame on that sink again.
//
// # Observer
//
// Every observer method is invoked on the UI goroutine. An observer that
// also implements [UIThreadCallbackObserver] receives the callbacks queued
// with the window's QueueUIThreadCallback.
package interfaces
