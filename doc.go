// Package callwindow is the presentation surface of a peer-to-peer video
// call: a main window that walks the user from connecting to a signaling
// server, through picking a peer, to showing the call's video.
//
// # Architecture
//
// Frames from a local capture source and a remote peer's decoded track
// arrive on producer goroutines. Each output has a render.Renderer that
// converts the newest frame into an RGBA buffer under its own lock and
// signals a redraw; the window's message loop paints on its own goroutine,
// so producers never block on painting and the painter never sees a
// half-written frame.
//
// The window package holds the UI state machine and message router; the
// service package installs, removes and runs the process as a system
// service. Application wires them together with the configuration:
//
//	cfg, _ := config.Load(path)
//	app, err := callwindow.New(callwindow.Options{Config: cfg, NoUI: true})
//	if err != nil {
//	    return err
//	}
//	return app.Run(ctx)
//
// # Loopback
//
// Signaling and media transport are outside this module. Without an
// observer of its own, an Application uses a LoopbackObserver that answers
// every login with a fixed peer list and every call with simulated frame
// sources, which exercises the full state machine with no network.
package callwindow
