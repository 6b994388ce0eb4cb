package window

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/callwindow/interfaces"
)

// Dispatch handles one message addressed to the window and returns the
// message result. It may be re-entered from inside a handler; destruction
// is finalized exactly once, after the outermost Dispatch returns.
func (w *MainWindow) Dispatch(msg Message) int64 {
	outermost := w.nesting == 0
	w.nesting++

	var result int64
	handled := w.onMessage(msg, &result)
	if msg.Kind == MsgDestroy {
		if !w.destroyed {
			w.destroyed = true
			w.deferred = append(w.deferred, w.onDestroyed)
		}
	} else if !handled {
		result = w.backend.DefaultProc(msg)
	}

	w.nesting--
	if outermost {
		w.runDeferred()
	}
	return result
}

// Nesting returns the current dispatch depth.
func (w *MainWindow) Nesting() int {
	return w.nesting
}

func (w *MainWindow) runDeferred() {
	for len(w.deferred) > 0 {
		fn := w.deferred[0]
		w.deferred = w.deferred[1:]
		fn()
	}
}

// onMessage reports whether msg was fully handled.
func (w *MainWindow) onMessage(msg Message, result *int64) bool {
	switch msg.Kind {
	case MsgEraseBackground:
		*result = 1
		return true

	case MsgPaint:
		w.onPaint()
		return true

	case MsgSetFocus:
		w.setFocus(primaryControl(w.state))
		return true

	case MsgSize:
		// Controls keep their layout; the canvas is repainted to the new
		// client area.
		w.redraw.Invalidate()
		return false

	case MsgCtlColorStatic:
		return true

	case MsgCommand:
		switch {
		case msg.Control == ConnectButtonID && msg.Notification == NotifyClicked,
			msg.Control == PeerListID && msg.Notification == NotifyDoubleClicked:
			w.onDefaultAction()
		}
		return true

	case MsgSetText:
		if c := w.control(msg.Control); c != nil {
			c.Text = msg.Text
		}
		return true

	case MsgSelect:
		if c := w.control(msg.Control); c != nil && msg.Index >= -1 && msg.Index < len(c.Items) {
			c.Selection = msg.Index
		}
		return true

	case MsgClose:
		if w.observer != nil {
			w.observer.Close()
		}
		return false
	}
	return false
}

func (w *MainWindow) onPaint() {
	surface := w.backend.BeginPaint(w.handle)
	if surface == nil {
		return
	}
	defer w.backend.EndPaint(w.handle)

	client := w.backend.ClientRect(w.handle)
	if w.state == Streaming && (w.remote != nil || w.local != nil) {
		w.compositor.Paint(surface, client, w.remote, w.local)
		return
	}
	surface.Fill(client, w.opts.Background)
}

// onDestroyed finalizes destruction. It runs once per created window.
func (w *MainWindow) onDestroyed() {
	w.StopLocalRenderer()
	w.StopRemoteRenderer()

	h := w.handle
	windows.Release(h)
	w.handle = 0

	w.logger.WithField("handle", uint64(h)).Info("Main window destroyed")

	w.Post(Message{Kind: MsgQuit})
	if w.opts.OnDestroyed != nil {
		w.opts.OnDestroyed()
	}
}

// PreTranslateMessage intercepts messages before they are routed. It
// handles Tab, Enter and Escape in every state and delivers queued UI
// callbacks, and reports whether msg was consumed.
func (w *MainWindow) PreTranslateMessage(msg Message) bool {
	switch msg.Kind {
	case MsgChar:
		switch msg.Key {
		case KeyTab:
			w.handleTabbing(msg.Shift)
			return true
		case KeyEnter:
			w.onDefaultAction()
			return true
		case KeyEscape:
			if w.observer != nil {
				if w.state == Streaming {
					w.observer.DisconnectFromCurrentPeer()
				} else {
					w.observer.DisconnectFromServer()
				}
			}
			return true
		}

	case MsgUIThreadCallback:
		if msg.Handle != 0 {
			return false
		}
		if cb, ok := w.observer.(interfaces.UIThreadCallbackObserver); ok {
			cb.UIThreadCallback(msg.CallbackID, msg.Data)
		} else {
			w.logger.WithFields(logrus.Fields{
				"msg_id": msg.CallbackID,
			}).Debug("Dropping UI thread callback with no receiver")
		}
		return true
	}
	return false
}
