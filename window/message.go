package window

// MessageKind identifies a window message.
type MessageKind int

const (
	MsgCreate MessageKind = iota + 1
	MsgChar
	MsgCommand
	MsgSize
	MsgSetFocus
	MsgPaint
	MsgEraseBackground
	MsgCtlColorStatic
	MsgClose
	MsgDestroy
	MsgSetText
	MsgSelect
	MsgUIThreadCallback
	MsgQuit
)

var messageKindNames = map[MessageKind]string{
	MsgCreate:           "Create",
	MsgChar:             "Char",
	MsgCommand:          "Command",
	MsgSize:             "Size",
	MsgSetFocus:         "SetFocus",
	MsgPaint:            "Paint",
	MsgEraseBackground:  "EraseBackground",
	MsgCtlColorStatic:   "CtlColorStatic",
	MsgClose:            "Close",
	MsgDestroy:          "Destroy",
	MsgSetText:          "SetText",
	MsgSelect:           "Select",
	MsgUIThreadCallback: "UIThreadCallback",
	MsgQuit:             "Quit",
}

func (k MessageKind) String() string {
	if name, ok := messageKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Key is a character delivered with MsgChar.
type Key rune

const (
	KeyTab    Key = '\t'
	KeyEnter  Key = '\r'
	KeyEscape Key = 0x1b
)

// Notification qualifies a MsgCommand sent by a control.
type Notification int

const (
	NotifyNone Notification = iota
	NotifyClicked
	NotifyDoubleClicked
)

// Message is one window message. Which fields are meaningful depends on Kind.
type Message struct {
	Handle Handle
	Kind   MessageKind

	// MsgChar
	Key   Key
	Shift bool

	// MsgCommand, MsgSetText, MsgSelect
	Control      ControlID
	Notification Notification
	Text         string
	Index        int

	// MsgSize
	Width  int
	Height int

	// MsgUIThreadCallback
	CallbackID int
	Data       any
}
