package window

import (
	"sync"
	"testing"

	"github.com/opd-ai/callwindow/av/video"
	"github.com/opd-ai/callwindow/interfaces"
	"github.com/stretchr/testify/require"
)

type loginCall struct {
	server string
	port   int
}

type callbackCall struct {
	id   int
	data any
}

// recordingObserver records every intent the window raises.
type recordingObserver struct {
	logins            []loginCall
	peers             []int64
	serverDisconnects int
	peerDisconnects   int
	closes            int
	callbacks         []callbackCall
}

func (o *recordingObserver) StartLogin(server string, port int) {
	o.logins = append(o.logins, loginCall{server, port})
}

func (o *recordingObserver) ConnectToPeer(peerID int64) { o.peers = append(o.peers, peerID) }
func (o *recordingObserver) DisconnectFromServer()      { o.serverDisconnects++ }
func (o *recordingObserver) DisconnectFromCurrentPeer() { o.peerDisconnects++ }
func (o *recordingObserver) Close()                     { o.closes++ }

func (o *recordingObserver) UIThreadCallback(msgID int, data any) {
	o.callbacks = append(o.callbacks, callbackCall{msgID, data})
}

// intentsOnly implements only the required observer methods.
type intentsOnly struct {
	logins int
}

func (o *intentsOnly) StartLogin(string, int)     { o.logins++ }
func (o *intentsOnly) ConnectToPeer(int64)        {}
func (o *intentsOnly) DisconnectFromServer()      {}
func (o *intentsOnly) DisconnectFromCurrentPeer() {}
func (o *intentsOnly) Close()                     {}

// frameSource delivers frames synchronously to its sinks.
type frameSource struct {
	mu    sync.Mutex
	sinks map[interfaces.VideoSink]interfaces.SinkWants
}

func newFrameSource() *frameSource {
	return &frameSource{sinks: make(map[interfaces.VideoSink]interfaces.SinkWants)}
}

func (s *frameSource) AddOrUpdateSink(sink interfaces.VideoSink, wants interfaces.SinkWants) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks[sink] = wants
}

func (s *frameSource) RemoveSink(sink interfaces.VideoSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sinks, sink)
}

func (s *frameSource) deliver(frame *video.VideoFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sink := range s.sinks {
		sink.OnFrame(frame)
	}
}

func (s *frameSource) sinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sinks)
}

func grayFrame(width, height int) *video.VideoFrame {
	frame := video.NewVideoFrame(width, height)
	for i := range frame.Y {
		frame.Y[i] = 126
	}
	for i := range frame.U {
		frame.U[i] = 128
		frame.V[i] = 128
	}
	return frame
}

// newTestWindow creates a window on a headless backend and destroys it when
// the test ends.
func newTestWindow(t *testing.T, opts Options) (*MainWindow, *HeadlessBackend, *recordingObserver) {
	t.Helper()
	backend := NewHeadlessBackend()
	w := NewMainWindow(backend, opts)
	observer := &recordingObserver{}
	w.RegisterObserver(observer)
	require.NoError(t, w.Create())
	t.Cleanup(func() {
		if w.IsWindow() {
			_ = w.Destroy()
		}
	})
	return w, backend, observer
}

// drain handles every posted message.
func drain(w *MainWindow) {
	for {
		msg, ok := w.popMessage()
		if !ok {
			return
		}
		w.HandleMessage(msg)
	}
}

func key(k Key) Message {
	return Message{Kind: MsgChar, Key: k}
}
