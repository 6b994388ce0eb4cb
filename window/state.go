package window

// UIState is the screen the main window is showing.
type UIState int

const (
	// ConnectingToServer shows the server address form
	ConnectingToServer UIState = iota
	// ListingPeers shows the list of peers signed in to the server
	ListingPeers
	// Streaming shows the video canvas
	Streaming
)

func (s UIState) String() string {
	switch s {
	case ConnectingToServer:
		return "ConnectingToServer"
	case ListingPeers:
		return "ListingPeers"
	case Streaming:
		return "Streaming"
	default:
		return "Unknown"
	}
}

// Peer is one entry of the peer list, in the order it was announced.
type Peer struct {
	ID   int64
	Name string
}
