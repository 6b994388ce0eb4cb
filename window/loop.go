package window

import (
	"context"
)

// Post appends msg to the window's message queue. Safe for concurrent use.
func (w *MainWindow) Post(msg Message) {
	w.queueMu.Lock()
	w.queue = append(w.queue, msg)
	w.queueMu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *MainWindow) popMessage() (Message, bool) {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()
	if len(w.queue) == 0 {
		return Message{}, false
	}
	msg := w.queue[0]
	w.queue[0] = Message{}
	w.queue = w.queue[1:]
	return msg, true
}

// HandleMessage runs msg through PreTranslateMessage and, unless consumed,
// the router. It reports false for MsgQuit.
func (w *MainWindow) HandleMessage(msg Message) bool {
	if msg.Kind == MsgQuit {
		return false
	}
	if w.PreTranslateMessage(msg) {
		return true
	}
	if msg.Handle == 0 {
		w.logger.WithField("kind", msg.Kind.String()).Debug("Dropping message with no target")
		return true
	}
	Route(w.backend, msg)
	return true
}

// Run is the UI goroutine's message loop. It drains posted messages and
// repaints whenever a renderer or the window requests it. Run returns nil
// once the window has been destroyed, or ctx.Err() when ctx is done.
func (w *MainWindow) Run(ctx context.Context) error {
	for {
		for {
			msg, ok := w.popMessage()
			if !ok {
				break
			}
			if !w.HandleMessage(msg) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.wake:
		case <-w.redraw.C():
			if w.IsWindow() {
				Route(w.backend, Message{Handle: w.handle, Kind: MsgPaint})
			}
		}
	}
}
