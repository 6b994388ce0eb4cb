// Package testing provides a simulated video frame source for deterministic
// testing and for running the application without a call.
//
// # Overview
//
// SimulatedFrameSource implements interfaces.FrameSource entirely
// in-memory. Tests push frames with DeliverFrame; demos and headless runs
// call Start to run a producer goroutine that emits a moving test pattern
// at a fixed interval, standing in for a capture track or a decoded remote
// track.
//
// # Usage
//
//	src := testing.NewSimulatedFrameSource(&testing.FrameSourceConfig{
//	    Width:         320,
//	    Height:        240,
//	    Rotation:      video.Rotation90,
//	    FrameInterval: 33 * time.Millisecond,
//	})
//	renderer.Attach(src)
//	src.Start(ctx)
//	defer src.Stop()
//
// # Delivery Logs
//
// Every delivered frame is recorded in a DeliveryRecord with its
// dimensions, rotation, the number of sinks that received it, and the
// number that skipped it because a rotated or downscaled copy could not be
// made. Frames larger than a sink's pixel budget are downscaled. Use
// GetDeliveryLog to retrieve the log and ClearDeliveryLog to reset it
// between test cases.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Deliveries are serialized, so a
// sink never sees concurrent OnFrame calls, and RemoveSink waits for a
// delivery in progress.
package testing
