package testing

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/callwindow/av/video"
	"github.com/opd-ai/callwindow/interfaces"
)

// countingSink records frames and flags overlapping OnFrame calls.
type countingSink struct {
	frames   atomic.Int64
	inFlight atomic.Int32
	overlap  atomic.Bool
	last     atomic.Pointer[video.VideoFrame]
	delay    time.Duration
}

func (s *countingSink) OnFrame(frame *video.VideoFrame) {
	if s.inFlight.Add(1) > 1 {
		s.overlap.Store(true)
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.last.Store(frame)
	s.frames.Add(1)
	s.inFlight.Add(-1)
}

func TestNewSimulatedFrameSourceDefaults(t *testing.T) {
	src := NewSimulatedFrameSource(nil)

	if src.config.Width != 320 || src.config.Height != 240 {
		t.Errorf("default size = %dx%d, want 320x240", src.config.Width, src.config.Height)
	}
	if src.config.FrameInterval <= 0 {
		t.Error("default frame interval should be positive")
	}
	if src.SinkCount() != 0 || len(src.GetDeliveryLog()) != 0 {
		t.Error("new source should have no sinks and an empty log")
	}
}

func TestDeliverFrame(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	a, b := &countingSink{}, &countingSink{}
	src.AddOrUpdateSink(a, interfaces.SinkWants{})
	src.AddOrUpdateSink(b, interfaces.SinkWants{})
	src.AddOrUpdateSink(b, interfaces.SinkWants{})

	if got := src.DeliverFrame(TestPattern(8, 6, 0)); got != 2 {
		t.Fatalf("DeliverFrame reached %d sinks, want 2", got)
	}
	if a.frames.Load() != 1 || b.frames.Load() != 1 {
		t.Error("each sink should receive the frame once")
	}

	src.RemoveSink(a)
	src.DeliverFrame(TestPattern(8, 6, 1))
	if a.frames.Load() != 1 || b.frames.Load() != 2 {
		t.Error("removed sink received a frame")
	}

	log := src.GetDeliveryLog()
	if len(log) != 2 || log[0].Sinks != 2 || log[1].Sinks != 1 {
		t.Errorf("unexpected delivery log %+v", log)
	}
	if len(log) == 2 && (log[0].TraceID == "" || log[0].TraceID == log[1].TraceID) {
		t.Error("each delivery should carry its own trace ID")
	}
}

func TestDeliverFrameHonorsWants(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	raw := &countingSink{}
	upright := &countingSink{}
	small := &countingSink{}
	src.AddOrUpdateSink(raw, interfaces.SinkWants{})
	src.AddOrUpdateSink(upright, interfaces.SinkWants{RotationApplied: true})
	src.AddOrUpdateSink(small, interfaces.SinkWants{MaxPixelCount: 10})

	frame := TestPattern(8, 6, 0)
	frame.Rotation = video.Rotation90
	if got := src.DeliverFrame(frame); got != 3 {
		t.Fatalf("DeliverFrame reached %d sinks, want 3", got)
	}

	if f := raw.last.Load(); f != frame {
		t.Error("sink without wants should receive the original frame")
	}
	f := upright.last.Load()
	if f == nil || f.Width != 6 || f.Height != 8 || f.Rotation != video.Rotation0 {
		t.Errorf("sink wanting rotation applied got %+v", f)
	}
	f = small.last.Load()
	if f == nil || f.Width != 3 || f.Height != 2 || f.Rotation != video.Rotation90 {
		t.Errorf("sink with a pixel budget got %+v", f)
	}
	if stats := src.GetStats(); stats.SinkSkips != 0 || stats.SinkDeliveries != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestInvalidWantsAreReset(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	sink := &countingSink{}
	src.AddOrUpdateSink(sink, interfaces.SinkWants{MaxPixelCount: -1})

	if src.DeliverFrame(TestPattern(4, 4, 0)) != 1 {
		t.Error("sink with reset wants should receive frames")
	}
}

func TestDeliveriesAreSerialized(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	sink := &countingSink{delay: time.Millisecond}
	src.AddOrUpdateSink(sink, interfaces.SinkWants{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				src.DeliverFrame(TestPattern(4, 4, index*5+i))
			}
		}(g)
	}
	wg.Wait()

	if sink.overlap.Load() {
		t.Error("OnFrame was called concurrently for one sink")
	}
	if sink.frames.Load() != 40 {
		t.Errorf("got %d frames, want 40", sink.frames.Load())
	}
}

func TestRemoveSinkWaitsForDelivery(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	sink := &countingSink{delay: 20 * time.Millisecond}
	src.AddOrUpdateSink(sink, interfaces.SinkWants{})

	started := make(chan struct{})
	go func() {
		close(started)
		src.DeliverFrame(TestPattern(4, 4, 0))
	}()
	<-started
	for sink.inFlight.Load() == 0 && sink.frames.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	src.RemoveSink(sink)
	if sink.inFlight.Load() != 0 {
		t.Error("RemoveSink returned while OnFrame was running")
	}
}

func TestStartStop(t *testing.T) {
	src := NewSimulatedFrameSource(&FrameSourceConfig{
		Width:         16,
		Height:        8,
		Rotation:      video.Rotation270,
		FrameInterval: time.Millisecond,
	})
	sink := &countingSink{}
	src.AddOrUpdateSink(sink, interfaces.SinkWants{})

	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := src.Start(context.Background()); err != ErrAlreadyRunning {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}
	if !src.Running() {
		t.Error("source should be running")
	}

	deadline := time.Now().Add(5 * time.Second)
	for sink.frames.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	src.Stop()
	src.Stop()

	if src.Running() {
		t.Error("source should be stopped")
	}
	n := sink.frames.Load()
	if n < 3 {
		t.Fatalf("got %d frames, want at least 3", n)
	}
	time.Sleep(5 * time.Millisecond)
	if sink.frames.Load() != n {
		t.Error("frames delivered after Stop returned")
	}
	if f := sink.last.Load(); f.Rotation != video.Rotation270 || f.Width != 16 {
		t.Errorf("unexpected frame %dx%d rotation %v", f.Width, f.Height, f.Rotation)
	}
}

func TestStartStopsWithContext(t *testing.T) {
	src := NewSimulatedFrameSource(&FrameSourceConfig{FrameInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	src.Stop()

	if src.Running() {
		t.Error("source should be stopped")
	}
}

func TestClearDeliveryLog(t *testing.T) {
	src := NewSimulatedFrameSource(nil)
	src.DeliverFrame(TestPattern(4, 4, 0))
	src.ClearDeliveryLog()

	if len(src.GetDeliveryLog()) != 0 {
		t.Error("log should be empty after clearing")
	}
}

func TestPatternIsValid(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {64, 48}} {
		frame := TestPattern(size[0], size[1], 7)
		if err := frame.Validate(); err != nil {
			t.Errorf("TestPattern(%d, %d) invalid: %v", size[0], size[1], err)
		}
	}
	a := TestPattern(8, 8, 0)
	b := TestPattern(8, 8, 1)
	if a.Y[0] == b.Y[0] {
		t.Error("pattern should move between frames")
	}
}
