package window

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/callwindow/interfaces"
	"github.com/opd-ai/callwindow/render"
)

// Default window geometry and title.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultTitle  = "WebRTC"
)

// Options configures a MainWindow.
type Options struct {
	// Server and Port prefill the connect form.
	Server string
	Port   int

	// AutoConnect submits the connect form as soon as it is shown.
	AutoConnect bool
	// AutoCall calls the most recently listed peer as soon as the peer list
	// is shown.
	AutoCall bool
	// NoUI creates the window hidden.
	NoUI bool

	Title  string
	Width  int
	Height int

	// Background fills the client area when no video is being shown.
	Background color.Color

	// OnDestroyed runs once, after the window's destruction has been
	// finalized.
	OnDestroyed func()

	Logger *logrus.Entry
}

func (o *Options) setDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Logger == nil {
		o.Logger = logrus.WithField("component", "main_window")
	}
}

// MainWindow is the application's single top-level window.
type MainWindow struct {
	opts       Options
	backend    Backend
	observer   interfaces.MainWindowObserver
	logger     *logrus.Entry
	compositor *render.Compositor
	redraw     *render.RedrawSignal

	handle   Handle
	state    UIState
	controls []*Control
	focus    ControlID

	nesting   int
	destroyed bool
	deferred  []func()

	local  *render.Renderer
	remote *render.Renderer

	queueMu sync.Mutex
	queue   []Message
	wake    chan struct{}
}

// NewMainWindow returns a window that will be created on backend.
func NewMainWindow(backend Backend, opts Options) *MainWindow {
	opts.setDefaults()
	return &MainWindow{
		opts:       opts,
		backend:    backend,
		logger:     opts.Logger,
		compositor: render.NewCompositor(),
		redraw:     render.NewRedrawSignal(),
		wake:       make(chan struct{}, 1),
	}
}

// Create registers the window class if needed, creates the window and its
// child controls, and enters ConnectingToServer.
func (w *MainWindow) Create() error {
	if w.handle != 0 {
		return ErrAlreadyCreated
	}
	if err := RegisterWindowClass(w.backend); err != nil {
		return fmt.Errorf("%w: %v", ErrClassRegistration, err)
	}

	w.destroyed = false
	w.state = ConnectingToServer
	w.focus = NoControl
	w.handle = windows.Register(w)

	cfg := WindowConfig{
		ClassName: ClassName,
		Title:     w.opts.Title,
		Width:     w.opts.Width,
		Height:    w.opts.Height,
		Visible:   !w.opts.NoUI,
	}
	if err := w.backend.CreateWindow(w.handle, cfg); err != nil {
		windows.Release(w.handle)
		w.handle = 0
		return fmt.Errorf("%w: %v", ErrCreateWindow, err)
	}

	if err := w.createControls(); err != nil {
		h := w.handle
		windows.Release(h)
		w.handle = 0
		if derr := w.backend.DestroyWindow(h); derr != nil {
			w.logger.WithError(derr).Warn("Failed to tear down partially created window")
		}
		return err
	}

	w.logger.WithFields(logrus.Fields{
		"handle": uint64(w.handle),
		"hidden": w.opts.NoUI,
	}).Info("Main window created")

	return w.EnterConnectState()
}

func (w *MainWindow) createControls() error {
	w.controls = w.controls[:0]
	for _, def := range controlLayout {
		c := &Control{
			ID:        def.id,
			Kind:      def.kind,
			TabStop:   def.tabStop,
			Text:      def.caption,
			Selection: -1,
		}
		switch def.id {
		case ServerEditID:
			c.Text = w.opts.Server
		case PortEditID:
			if w.opts.Port > 0 {
				c.Text = strconv.Itoa(w.opts.Port)
			}
		}
		if err := w.backend.CreateControl(w.handle, c); err != nil {
			return fmt.Errorf("%w: control %d: %v", ErrCreateControl, def.id, err)
		}
		w.controls = append(w.controls, c)
	}
	return nil
}

// Destroy asks the backend to destroy the window. Destruction is finalized
// through the message router.
func (w *MainWindow) Destroy() error {
	if !w.IsWindow() {
		return ErrNoWindow
	}
	return w.backend.DestroyWindow(w.handle)
}

// IsWindow reports whether the window exists.
func (w *MainWindow) IsWindow() bool {
	return w.handle != 0
}

// Handle returns the window's handle, or zero when it does not exist.
func (w *MainWindow) Handle() Handle {
	return w.handle
}

// RegisterObserver sets the receiver of user intents. A nil observer
// silently drops them.
func (w *MainWindow) RegisterObserver(observer interfaces.MainWindowObserver) {
	w.observer = observer
}

// CurrentUI returns the current state.
func (w *MainWindow) CurrentUI() UIState {
	return w.state
}

// Focus returns the focused control, NoControl when the window itself has
// focus.
func (w *MainWindow) Focus() ControlID {
	return w.focus
}

// Control returns a copy of the control model for id.
func (w *MainWindow) Control(id ControlID) (Control, bool) {
	c := w.control(id)
	if c == nil {
		return Control{}, false
	}
	cp := *c
	cp.Items = append([]ListItem(nil), c.Items...)
	return cp, true
}

func (w *MainWindow) control(id ControlID) *Control {
	for _, c := range w.controls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EnterConnectState shows the server address form.
func (w *MainWindow) EnterConnectState() error {
	if !w.IsWindow() {
		return ErrNoWindow
	}
	w.transition(ConnectingToServer)

	if w.opts.AutoConnect {
		w.Post(Message{
			Handle:       w.handle,
			Kind:         MsgCommand,
			Control:      ConnectButtonID,
			Notification: NotifyClicked,
		})
	}
	return nil
}

// EnterPeerListState shows peers in announcement order below a header row.
// Calling it again with the same peers yields the same list.
func (w *MainWindow) EnterPeerListState(peers []Peer) error {
	if !w.IsWindow() {
		return ErrNoWindow
	}

	list := w.control(PeerListID)
	items := make([]ListItem, 0, len(peers)+1)
	items = append(items, ListItem{Text: peerListHeader, Data: noPeer})
	for _, p := range peers {
		items = append(items, ListItem{Text: p.Name, Data: p.ID})
	}
	list.Items = items
	list.Selection = -1

	w.transition(ListingPeers)

	if w.opts.AutoCall && len(peers) > 0 {
		list.Selection = len(items) - 1
		w.backend.UpdateControl(w.handle, list)
		w.Post(Message{
			Handle:       w.handle,
			Kind:         MsgCommand,
			Control:      PeerListID,
			Notification: NotifyDoubleClicked,
		})
	}
	return nil
}

// EnterStreamingState hides all controls and shows the video canvas.
func (w *MainWindow) EnterStreamingState() error {
	if !w.IsWindow() {
		return ErrNoWindow
	}
	w.transition(Streaming)
	w.redraw.Invalidate()
	return nil
}

// transition hides the old state's controls, switches state, shows the new
// state's controls and focuses its primary control.
func (w *MainWindow) transition(next UIState) {
	prev := w.state
	for _, c := range w.controls {
		if c.Visible && !visibleIn(c.ID, next) {
			c.Visible = false
			w.backend.UpdateControl(w.handle, c)
		}
	}
	w.state = next
	for _, c := range w.controls {
		if visibleIn(c.ID, next) {
			c.Visible = true
			w.backend.UpdateControl(w.handle, c)
		}
	}
	w.setFocus(primaryControl(next))
	if prev == ListingPeers && next != ListingPeers {
		w.redraw.Invalidate()
	}

	w.logger.WithFields(logrus.Fields{
		"from": prev.String(),
		"to":   next.String(),
	}).Debug("UI state changed")
}

func (w *MainWindow) setFocus(id ControlID) {
	w.focus = id
	w.backend.SetFocus(w.handle, id)
}

// handleTabbing moves focus to the next focusable control in tab order,
// wrapping at either end. It does nothing when no control is focusable.
func (w *MainWindow) handleTabbing(reverse bool) {
	n := len(w.controls)
	if n == 0 {
		return
	}
	start := -1
	if reverse {
		start = n
	}
	for i, c := range w.controls {
		if c.ID == w.focus {
			start = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		idx := (start + step) % n
		if reverse {
			idx = ((start-step)%n + n) % n
		}
		if c := w.controls[idx]; c.focusable() {
			w.setFocus(c.ID)
			return
		}
	}
}

// onDefaultAction performs the current state's primary action.
func (w *MainWindow) onDefaultAction() {
	if w.observer == nil {
		return
	}
	switch w.state {
	case ConnectingToServer:
		server := w.control(ServerEditID).Text
		port := parsePort(w.control(PortEditID).Text)
		w.observer.StartLogin(server, port)
	case ListingPeers:
		list := w.control(PeerListID)
		if list.Selection < 0 || list.Selection >= len(list.Items) {
			return
		}
		if id := list.Items[list.Selection].Data; id != noPeer {
			w.observer.ConnectToPeer(id)
		}
	}
}

// parsePort returns the port typed into the form, zero when it is not a
// number.
func parsePort(text string) int {
	port, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return port
}

// MessageBox shows a modal message box owned by the window.
func (w *MainWindow) MessageBox(caption, text string, isError bool) {
	w.logger.WithFields(logrus.Fields{
		"caption": caption,
		"error":   isError,
	}).Info(text)
	w.backend.MessageBox(w.handle, caption, text, isError)
}

// StartLocalRenderer starts showing frames from the local camera source.
func (w *MainWindow) StartLocalRenderer(source interfaces.FrameSource) error {
	r, err := w.startRenderer("local", source)
	if err != nil {
		return err
	}
	w.StopLocalRenderer()
	w.local = r
	return nil
}

// StopLocalRenderer stops showing local frames.
func (w *MainWindow) StopLocalRenderer() {
	w.stopRenderer(&w.local)
}

// StartRemoteRenderer starts showing frames from the remote peer's source.
func (w *MainWindow) StartRemoteRenderer(source interfaces.FrameSource) error {
	r, err := w.startRenderer("remote", source)
	if err != nil {
		return err
	}
	w.StopRemoteRenderer()
	w.remote = r
	return nil
}

// StopRemoteRenderer stops showing remote frames.
func (w *MainWindow) StopRemoteRenderer() {
	w.stopRenderer(&w.remote)
}

func (w *MainWindow) startRenderer(name string, source interfaces.FrameSource) (*render.Renderer, error) {
	r := render.NewRenderer(name, w.redraw, render.WithLogger(w.logger.WithField("renderer", name)))
	if err := r.Attach(source); err != nil {
		return nil, err
	}
	return r, nil
}

func (w *MainWindow) stopRenderer(slot **render.Renderer) {
	if *slot == nil {
		return
	}
	if err := (*slot).Detach(); err != nil {
		w.logger.WithError(err).Warn("Failed to detach renderer")
	}
	*slot = nil
	w.redraw.Invalidate()
}

// QueueUIThreadCallback posts a callback to be delivered on the UI
// goroutine to the observer's UIThreadCallback. Safe for concurrent use.
func (w *MainWindow) QueueUIThreadCallback(msgID int, data any) {
	w.Post(Message{Kind: MsgUIThreadCallback, CallbackID: msgID, Data: data})
}

// LocalRenderer returns the local renderer, nil when stopped.
func (w *MainWindow) LocalRenderer() *render.Renderer {
	return w.local
}

// RemoteRenderer returns the remote renderer, nil when stopped.
func (w *MainWindow) RemoteRenderer() *render.Renderer {
	return w.remote
}
