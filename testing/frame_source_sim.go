package testing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opd-ai/callwindow/av/video"
	"github.com/opd-ai/callwindow/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning indicates Start was called while the producer runs.
var ErrAlreadyRunning = errors.New("frame source already running")

// FrameSourceConfig configures the producer goroutine.
type FrameSourceConfig struct {
	Width         int
	Height        int
	Rotation      video.Rotation
	FrameInterval time.Duration
}

// DeliveryRecord represents one delivered frame for test verification.
// TraceID is unique per delivery and appears in the debug log line.
type DeliveryRecord struct {
	TraceID   string
	Width     int
	Height    int
	Rotation  video.Rotation
	Sinks     int
	Skipped   int
	Timestamp int64
}

// FrameSourceStats summarizes the delivery log.
type FrameSourceStats struct {
	Sinks           int
	FramesDelivered int
	SinkDeliveries  int
	SinkSkips       int
	Running         bool
}

// SimulatedFrameSource implements interfaces.FrameSource for testing.
type SimulatedFrameSource struct {
	config *FrameSourceConfig

	// mu serializes deliveries with sink changes.
	mu    sync.Mutex
	sinks map[interfaces.VideoSink]interfaces.SinkWants

	logMu       sync.RWMutex
	deliveryLog []DeliveryRecord

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulatedFrameSource creates a simulated source. A nil config uses a
// 320x240 upright pattern at 30 frames per second.
func NewSimulatedFrameSource(config *FrameSourceConfig) *SimulatedFrameSource {
	if config == nil {
		config = &FrameSourceConfig{}
	}
	cfg := *config
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 33 * time.Millisecond
	}

	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedFrameSource",
		"width":    cfg.Width,
		"height":   cfg.Height,
		"rotation": cfg.Rotation.String(),
		"interval": cfg.FrameInterval.String(),
	}).Info("Creating simulated frame source")

	return &SimulatedFrameSource{
		config:      &cfg,
		sinks:       make(map[interfaces.VideoSink]interfaces.SinkWants),
		deliveryLog: make([]DeliveryRecord, 0),
	}
}

// AddOrUpdateSink implements interfaces.FrameSource.
func (s *SimulatedFrameSource) AddOrUpdateSink(sink interfaces.VideoSink, wants interfaces.SinkWants) {
	if err := wants.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "SimulatedFrameSource.AddOrUpdateSink",
			"error":    err.Error(),
		}).Warn("Ignoring invalid sink wants")
		wants = interfaces.SinkWants{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks[sink] = wants
}

// RemoveSink implements interfaces.FrameSource. It blocks until a delivery
// in progress has finished.
func (s *SimulatedFrameSource) RemoveSink(sink interfaces.VideoSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sinks, sink)
}

// SinkCount returns the number of registered sinks.
func (s *SimulatedFrameSource) SinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sinks)
}

// DeliverFrame hands frame to every sink and returns how many received it.
// Sinks that want rotation applied get an upright copy. Sinks with a pixel
// budget smaller than the frame get a downscaled copy of the same aspect.
func (s *SimulatedFrameSource) DeliverFrame(frame *video.VideoFrame) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var upright *video.VideoFrame
	delivered, skipped := 0, 0
	for sink, wants := range s.sinks {
		out := frame
		if wants.RotationApplied && frame.Rotation != video.Rotation0 {
			if upright == nil {
				rotated, err := video.Rotate(frame, frame.Rotation)
				if err != nil {
					skipped++
					continue
				}
				upright = rotated
			}
			out = upright
		}
		if w, h := video.FitPixelCount(out.Width, out.Height, wants.MaxPixelCount); w != out.Width || h != out.Height {
			scaled, err := video.Scale(out, w, h)
			if err != nil {
				skipped++
				continue
			}
			out = scaled
		}
		sink.OnFrame(out)
		delivered++
	}

	traceID := uuid.New().String()
	s.logMu.Lock()
	s.deliveryLog = append(s.deliveryLog, DeliveryRecord{
		TraceID:   traceID,
		Width:     frame.Width,
		Height:    frame.Height,
		Rotation:  frame.Rotation,
		Sinks:     delivered,
		Skipped:   skipped,
		Timestamp: time.Now().UnixNano(),
	})
	s.logMu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":  "SimulatedFrameSource.DeliverFrame",
		"trace_id":  traceID,
		"width":     frame.Width,
		"height":    frame.Height,
		"delivered": delivered,
		"skipped":   skipped,
	}).Debug("Frame delivered")

	return delivered
}

// Start runs a producer goroutine that delivers a test pattern every frame
// interval until ctx is done or Stop is called.
func (s *SimulatedFrameSource) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedFrameSource.Start",
		"interval": s.config.FrameInterval.String(),
	}).Info("Starting simulated frame producer")

	go s.produce(ctx, s.done)
	return nil
}

func (s *SimulatedFrameSource) produce(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.config.FrameInterval)
	defer ticker.Stop()

	for index := 0; ; index++ {
		frame := TestPattern(s.config.Width, s.config.Height, index)
		frame.Rotation = s.config.Rotation
		s.DeliverFrame(frame)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the producer goroutine and waits for it. It is a no-op when
// the producer is not running.
func (s *SimulatedFrameSource) Stop() {
	s.runMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedFrameSource.Stop",
	}).Info("Simulated frame producer stopped")
}

// Running reports whether the producer goroutine is running.
func (s *SimulatedFrameSource) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.cancel != nil
}

// GetDeliveryLog returns a copy of the delivery log.
func (s *SimulatedFrameSource) GetDeliveryLog() []DeliveryRecord {
	s.logMu.RLock()
	defer s.logMu.RUnlock()

	log := make([]DeliveryRecord, len(s.deliveryLog))
	copy(log, s.deliveryLog)
	return log
}

// ClearDeliveryLog clears the delivery log.
func (s *SimulatedFrameSource) ClearDeliveryLog() {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.deliveryLog = make([]DeliveryRecord, 0)
}

// GetStats summarizes the simulation.
func (s *SimulatedFrameSource) GetStats() FrameSourceStats {
	stats := FrameSourceStats{
		Sinks:   s.SinkCount(),
		Running: s.Running(),
	}

	s.logMu.RLock()
	defer s.logMu.RUnlock()
	stats.FramesDelivered = len(s.deliveryLog)
	for _, record := range s.deliveryLog {
		stats.SinkDeliveries += record.Sinks
		stats.SinkSkips += record.Skipped
	}
	return stats
}

// TestPattern returns a width x height frame with a diagonal luma gradient
// that shifts with index and neutral chroma.
func TestPattern(width, height, index int) *video.VideoFrame {
	frame := video.NewVideoFrame(width, height)
	for y := 0; y < height; y++ {
		row := frame.Y[y*frame.YStride:]
		for x := 0; x < width; x++ {
			row[x] = byte(16 + (x+y+index)%220)
		}
	}
	for i := range frame.U {
		frame.U[i] = 128
	}
	for i := range frame.V {
		frame.V[i] = 128
	}
	frame.Timestamp = time.Now()
	return frame
}
