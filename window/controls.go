package window

// ControlID identifies a child control of the main window. Zero is the main
// window itself.
type ControlID int

const (
	NoControl ControlID = iota
	ServerLabelID
	ServerEditID
	PortLabelID
	PortEditID
	ConnectButtonID
	PeerListID
)

// ControlKind is the native class of a control.
type ControlKind int

const (
	KindLabel ControlKind = iota
	KindEdit
	KindButton
	KindListBox
)

// ListItem is one row of a list box with its opaque item data.
type ListItem struct {
	Text string
	Data int64
}

// Control is the window's model of one child control. The backend mirrors
// it on screen; user edits come back as MsgSetText and MsgSelect.
type Control struct {
	ID        ControlID
	Kind      ControlKind
	Visible   bool
	TabStop   bool
	Text      string
	Items     []ListItem
	Selection int
}

func (c *Control) focusable() bool {
	return c.Visible && c.TabStop
}

// peerListHeader is the first, non-selectable row of the peer list.
const peerListHeader = "List of currently connected peers:"

// noPeer is the item data of list rows that do not name a peer.
const noPeer int64 = -1

type controlDef struct {
	id      ControlID
	kind    ControlKind
	tabStop bool
	caption string
}

// controlLayout lists the child controls in tab order.
var controlLayout = []controlDef{
	{ServerLabelID, KindLabel, false, "Server"},
	{ServerEditID, KindEdit, true, ""},
	{PortLabelID, KindLabel, false, ":"},
	{PortEditID, KindEdit, true, ""},
	{ConnectButtonID, KindButton, true, "Connect"},
	{PeerListID, KindListBox, false, ""},
}

// visibleIn reports whether control id is shown in state s.
func visibleIn(id ControlID, s UIState) bool {
	switch id {
	case ServerLabelID, ServerEditID, PortLabelID, PortEditID, ConnectButtonID:
		return s == ConnectingToServer
	case PeerListID:
		return s == ListingPeers
	}
	return false
}

// primaryControl returns the control that receives focus in state s.
func primaryControl(s UIState) ControlID {
	switch s {
	case ConnectingToServer:
		return ServerEditID
	case ListingPeers:
		return PeerListID
	}
	return NoControl
}
