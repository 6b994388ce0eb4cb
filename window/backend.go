package window

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/callwindow/render"
)

// ClassName is the window class every main window is created with.
const ClassName = "WebRTC_MainWindow"

// WindowConfig describes the top-level window a backend creates.
type WindowConfig struct {
	ClassName string
	Title     string
	Width     int
	Height    int
	Visible   bool
}

// Backend is the native window system. A backend delivers every message it
// generates for a window to [Route]; it may do so synchronously from inside
// CreateWindow, DestroyWindow and DefaultProc.
type Backend interface {
	RegisterClass(name string) error
	CreateWindow(h Handle, cfg WindowConfig) error
	CreateControl(parent Handle, c *Control) error
	UpdateControl(parent Handle, c *Control)
	SetFocus(parent Handle, id ControlID)
	ClientRect(h Handle) image.Rectangle
	// BeginPaint returns the surface to draw the client area on, or nil
	// when the window has nothing to paint into.
	BeginPaint(h Handle) render.Surface
	EndPaint(h Handle)
	DestroyWindow(h Handle) error
	// DefaultProc performs the system's default handling of msg. Closing a
	// window by default destroys it.
	DefaultProc(msg Message) int64
	MessageBox(owner Handle, caption, text string, isError bool)
}

var (
	classMu         sync.Mutex
	classRegistered atomic.Bool
)

// RegisterWindowClass registers ClassName with the backend once per process.
// A failed attempt is retried on the next call.
func RegisterWindowClass(b Backend) error {
	if classRegistered.Load() {
		return nil
	}
	classMu.Lock()
	defer classMu.Unlock()
	if classRegistered.Load() {
		return nil
	}
	if err := b.RegisterClass(ClassName); err != nil {
		return err
	}
	classRegistered.Store(true)
	return nil
}

// windows maps live window handles to their owners.
var windows Registry[MainWindow]

// Route delivers msg to the window msg.Handle names. Messages for handles
// that are not, or are no longer, registered get the backend's default
// handling.
func Route(b Backend, msg Message) int64 {
	if w, ok := windows.Lookup(msg.Handle); ok {
		return w.Dispatch(msg)
	}
	return b.DefaultProc(msg)
}
