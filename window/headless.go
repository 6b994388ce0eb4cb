package window

import (
	"fmt"
	"image"
	"sync"

	"github.com/opd-ai/callwindow/render"
)

// MessageBoxRecord is a message box shown by a HeadlessBackend.
type MessageBoxRecord struct {
	Owner   Handle
	Caption string
	Text    string
	IsError bool
}

type headlessWindow struct {
	cfg      WindowConfig
	surface  *image.RGBA
	controls map[ControlID]Control
	focus    ControlID
	paints   int
}

// HeadlessBackend is a Backend that keeps windows in memory and paints into
// RGBA images. It is used for hidden service runs and in tests.
type HeadlessBackend struct {
	// FailControl, when set, makes CreateControl fail for that control.
	FailControl ControlID

	mu      sync.Mutex
	classes []string
	windows map[Handle]*headlessWindow
	boxes   []MessageBoxRecord
}

// NewHeadlessBackend creates an empty headless backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{windows: make(map[Handle]*headlessWindow)}
}

// RegisterClass records the class name.
func (b *HeadlessBackend) RegisterClass(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.classes = append(b.classes, name)
	return nil
}

// CreateWindow creates an in-memory window and delivers MsgCreate to it.
func (b *HeadlessBackend) CreateWindow(h Handle, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	b.mu.Lock()
	b.windows[h] = &headlessWindow{
		cfg:      cfg,
		surface:  image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		controls: make(map[ControlID]Control),
	}
	b.mu.Unlock()

	Route(b, Message{Handle: h, Kind: MsgCreate})
	return nil
}

// CreateControl records a copy of c.
func (b *HeadlessBackend) CreateControl(parent Handle, c *Control) error {
	if b.FailControl != NoControl && c.ID == b.FailControl {
		return fmt.Errorf("control %d refused", c.ID)
	}
	return b.storeControl(parent, c)
}

// UpdateControl records the new state of c.
func (b *HeadlessBackend) UpdateControl(parent Handle, c *Control) {
	_ = b.storeControl(parent, c)
}

func (b *HeadlessBackend) storeControl(parent Handle, c *Control) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	win, ok := b.windows[parent]
	if !ok {
		return ErrUnknownWindow
	}
	cp := *c
	cp.Items = append([]ListItem(nil), c.Items...)
	win.controls[c.ID] = cp
	return nil
}

// SetFocus records the focused control.
func (b *HeadlessBackend) SetFocus(parent Handle, id ControlID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[parent]; ok {
		win.focus = id
	}
}

// ClientRect returns the bounds of the window's surface.
func (b *HeadlessBackend) ClientRect(h Handle) image.Rectangle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[h]; ok {
		return win.surface.Bounds()
	}
	return image.Rectangle{}
}

// BeginPaint returns a surface over the window's image.
func (b *HeadlessBackend) BeginPaint(h Handle) render.Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	win, ok := b.windows[h]
	if !ok {
		return nil
	}
	return render.NewImageSurface(win.surface)
}

// EndPaint counts a completed paint.
func (b *HeadlessBackend) EndPaint(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[h]; ok {
		win.paints++
	}
}

// DestroyWindow delivers MsgDestroy to the window and forgets it.
func (b *HeadlessBackend) DestroyWindow(h Handle) error {
	b.mu.Lock()
	_, ok := b.windows[h]
	b.mu.Unlock()
	if !ok {
		return ErrUnknownWindow
	}

	Route(b, Message{Handle: h, Kind: MsgDestroy})

	b.mu.Lock()
	delete(b.windows, h)
	b.mu.Unlock()
	return nil
}

// DefaultProc destroys windows on MsgClose and ignores everything else.
func (b *HeadlessBackend) DefaultProc(msg Message) int64 {
	if msg.Kind == MsgClose {
		if err := b.DestroyWindow(msg.Handle); err != nil {
			return -1
		}
	}
	return 0
}

// MessageBox records the message box.
func (b *HeadlessBackend) MessageBox(owner Handle, caption, text string, isError bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boxes = append(b.boxes, MessageBoxRecord{
		Owner:   owner,
		Caption: caption,
		Text:    text,
		IsError: isError,
	})
}

// Resize changes the window's client size and delivers MsgSize.
func (b *HeadlessBackend) Resize(h Handle, width, height int) error {
	b.mu.Lock()
	win, ok := b.windows[h]
	if ok {
		win.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	b.mu.Unlock()
	if !ok {
		return ErrUnknownWindow
	}
	Route(b, Message{Handle: h, Kind: MsgSize, Width: width, Height: height})
	return nil
}

// Exists reports whether the backend still holds the window.
func (b *HeadlessBackend) Exists(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.windows[h]
	return ok
}

// Visible reports whether the window was created visible.
func (b *HeadlessBackend) Visible(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	win, ok := b.windows[h]
	return ok && win.cfg.Visible
}

// Control returns the last recorded state of a control.
func (b *HeadlessBackend) Control(h Handle, id ControlID) (Control, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	win, ok := b.windows[h]
	if !ok {
		return Control{}, false
	}
	c, ok := win.controls[id]
	return c, ok
}

// Focus returns the last focused control of a window.
func (b *HeadlessBackend) Focus(h Handle) ControlID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[h]; ok {
		return win.focus
	}
	return NoControl
}

// Surface returns the window's image.
func (b *HeadlessBackend) Surface(h Handle) *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[h]; ok {
		return win.surface
	}
	return nil
}

// PaintCount returns how many paints have completed on a window.
func (b *HeadlessBackend) PaintCount(h Handle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if win, ok := b.windows[h]; ok {
		return win.paints
	}
	return 0
}

// MessageBoxes returns the message boxes shown so far.
func (b *HeadlessBackend) MessageBoxes() []MessageBoxRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]MessageBoxRecord(nil), b.boxes...)
}

// Classes returns the registered class names.
func (b *HeadlessBackend) Classes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.classes...)
}
