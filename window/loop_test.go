package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAsync(ctx context.Context, w *MainWindow) <-chan error {
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("message loop did not exit")
		return nil
	}
}

func TestRun_ExitsAfterClose(t *testing.T) {
	backend := NewHeadlessBackend()
	w := NewMainWindow(backend, Options{})
	observer := &recordingObserver{}
	w.RegisterObserver(observer)
	require.NoError(t, w.Create())
	h := w.Handle()

	done := runAsync(context.Background(), w)
	w.QueueUIThreadCallback(3, "hello")
	w.Post(Message{Handle: h, Kind: MsgClose})

	require.NoError(t, waitRun(t, done))
	assert.False(t, w.IsWindow())
	assert.Equal(t, 1, observer.closes)
	assert.Equal(t, []callbackCall{{3, "hello"}}, observer.callbacks)
}

func TestRun_ContextCancel(t *testing.T) {
	w, _, _ := newTestWindow(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := runAsync(ctx, w)
	cancel()

	assert.ErrorIs(t, waitRun(t, done), context.Canceled)
	assert.True(t, w.IsWindow())
}

func TestRun_RepaintsOnNewFrame(t *testing.T) {
	backend := NewHeadlessBackend()
	w := NewMainWindow(backend, Options{})
	require.NoError(t, w.Create())
	h := w.Handle()
	source := newFrameSource()
	require.NoError(t, w.StartRemoteRenderer(source))
	require.NoError(t, w.EnterStreamingState())
	w.redraw.Consume()
	img := backend.Surface(h)

	done := runAsync(context.Background(), w)
	source.deliver(grayFrame(64, 48))

	assert.Eventually(t, func() bool {
		return backend.PaintCount(h) > 0
	}, 5*time.Second, 5*time.Millisecond)

	w.Post(Message{Handle: h, Kind: MsgClose})
	require.NoError(t, waitRun(t, done))
	assert.Equal(t, gray, img.RGBAAt(320, 240))
	assert.Zero(t, source.sinkCount(), "destruction detaches renderers")
}

func TestHandleMessage_DropsUntargetedMessages(t *testing.T) {
	w, _, _ := newTestWindow(t, Options{})
	assert.True(t, w.HandleMessage(Message{Kind: MsgPaint}))
	assert.False(t, w.HandleMessage(Message{Kind: MsgQuit}))
}
