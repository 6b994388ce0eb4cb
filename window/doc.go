// Package window implements the main window's UI state machine and its
// message router.
//
// # States
//
// The window is always in exactly one [UIState]:
//
//	ConnectingToServer → ListingPeers → Streaming
//	        ↑______________|_______________|   (disconnect)
//
// Transitions are requested explicitly by the signaling layer through
// [MainWindow.EnterConnectState], [MainWindow.EnterPeerListState] and
// [MainWindow.EnterStreamingState]; paint and timer activity never change
// state. Which controls are visible is a pure function of the state.
//
// # Messages
//
// A [Backend] (the native window system, or [HeadlessBackend]) delivers
// messages with [Route], which looks the target up in a generation-tagged
// handle [Registry] instead of storing pointers in native window slots. The
// message loop in [MainWindow.Run] runs [MainWindow.PreTranslateMessage] for
// the universal Tab, Enter and Escape gestures before routing.
//
// Message handlers may cause further messages to be dispatched before they
// return. The router tracks its nesting depth and defers the window's
// destruction work until the outermost dispatch returns, so no handler
// still on the stack observes a half-destroyed window.
//
// All MainWindow methods except Post, QueueUIThreadCallback and the
// renderers' frame delivery must be called on the UI goroutine.
package window
