package interfaces

// MainWindowObserver is notified of the actions the user takes in the main
// window. It is implemented by the call signaling layer.
type MainWindowObserver interface {
	// StartLogin asks to sign in to the signaling server at address:port.
	StartLogin(address string, port int)

	// ConnectToPeer asks to call the peer with the given identifier.
	ConnectToPeer(peerID int64)

	// DisconnectFromServer asks to sign out of the signaling server.
	DisconnectFromServer()

	// DisconnectFromCurrentPeer asks to hang up the active call.
	DisconnectFromCurrentPeer()

	// Close reports that the user closed the window.
	Close()
}

// UIThreadCallbackObserver is an optional extension of MainWindowObserver
// receiving work queued for the UI goroutine.
type UIThreadCallbackObserver interface {
	UIThreadCallback(msgID int, data any)
}
