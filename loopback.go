package callwindow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/callwindow/av/video"
	simulation "github.com/opd-ai/callwindow/testing"
	"github.com/opd-ai/callwindow/window"
)

// DefaultLoopbackPeers are announced to every loopback login.
var DefaultLoopbackPeers = []window.Peer{
	{ID: 1, Name: "loopback@localhost"},
}

// LoopbackObserver answers the window's intents locally: logins list a
// fixed set of peers and calls show simulated local and remote video. Its
// methods run on the UI goroutine.
type LoopbackObserver struct {
	window *window.MainWindow
	peers  []window.Peer
	local  *simulation.SimulatedFrameSource
	remote *simulation.SimulatedFrameSource
	inCall bool
	logger *logrus.Entry
}

// NewLoopbackObserver returns an observer driving w. A nil peers uses
// DefaultLoopbackPeers.
func NewLoopbackObserver(w *window.MainWindow, peers []window.Peer) *LoopbackObserver {
	if peers == nil {
		peers = DefaultLoopbackPeers
	}
	return &LoopbackObserver{
		window: w,
		peers:  append([]window.Peer(nil), peers...),
		local: simulation.NewSimulatedFrameSource(&simulation.FrameSourceConfig{
			Width:  320,
			Height: 240,
		}),
		remote: simulation.NewSimulatedFrameSource(&simulation.FrameSourceConfig{
			Width:    480,
			Height:   640,
			Rotation: video.Rotation90,
		}),
		logger: logrus.WithField("component", "loopback"),
	}
}

// Local returns the simulated camera.
func (o *LoopbackObserver) Local() *simulation.SimulatedFrameSource {
	return o.local
}

// Remote returns the simulated remote peer's track.
func (o *LoopbackObserver) Remote() *simulation.SimulatedFrameSource {
	return o.remote
}

// StartLogin lists the loopback peers.
func (o *LoopbackObserver) StartLogin(server string, port int) {
	log := o.logger.WithFields(logrus.Fields{
		"function": "StartLogin",
		"server":   server,
		"port":     port,
	})
	if server == "" || port <= 0 {
		log.Warn("Rejecting login with incomplete address")
		o.window.MessageBox("Error", fmt.Sprintf("Invalid server address %q:%d", server, port), true)
		return
	}
	log.Info("Signed in")
	o.showPeers()
}

// ConnectToPeer starts a simulated call.
func (o *LoopbackObserver) ConnectToPeer(peerID int64) {
	log := o.logger.WithFields(logrus.Fields{
		"function": "ConnectToPeer",
		"peer_id":  peerID,
	})
	if !o.knownPeer(peerID) {
		log.Warn("Unknown peer")
		o.window.MessageBox("Error", fmt.Sprintf("Peer %d is not connected", peerID), true)
		return
	}
	if o.inCall {
		log.Warn("Already in a call")
		return
	}

	if err := o.window.StartLocalRenderer(o.local); err != nil {
		log.WithError(err).Error("Failed to start local renderer")
		return
	}
	if err := o.window.StartRemoteRenderer(o.remote); err != nil {
		log.WithError(err).Error("Failed to start remote renderer")
		o.window.StopLocalRenderer()
		return
	}
	for _, src := range []*simulation.SimulatedFrameSource{o.local, o.remote} {
		if err := src.Start(context.Background()); err != nil {
			log.WithError(err).Warn("Frame source already running")
		}
	}
	o.inCall = true
	if err := o.window.EnterStreamingState(); err != nil {
		log.WithError(err).Error("Failed to show video")
	}
	log.Info("Call started")
}

// DisconnectFromCurrentPeer ends the call and returns to the peer list.
func (o *LoopbackObserver) DisconnectFromCurrentPeer() {
	if !o.inCall {
		return
	}
	o.hangUp()
	o.showPeers()
}

// DisconnectFromServer ends any call and returns to the connect form.
func (o *LoopbackObserver) DisconnectFromServer() {
	o.hangUp()
	if err := o.window.EnterConnectState(); err != nil {
		o.logger.WithError(err).Error("Failed to show connect form")
	}
}

// Close ends any call; the window then destroys itself.
func (o *LoopbackObserver) Close() {
	o.hangUp()
}

// UIThreadCallback logs callbacks queued from other goroutines.
func (o *LoopbackObserver) UIThreadCallback(msgID int, data any) {
	o.logger.WithFields(logrus.Fields{
		"function": "UIThreadCallback",
		"msg_id":   msgID,
	}).Debug("UI thread callback")
}

func (o *LoopbackObserver) showPeers() {
	if err := o.window.EnterPeerListState(o.peers); err != nil {
		o.logger.WithError(err).Error("Failed to show peer list")
	}
}

func (o *LoopbackObserver) hangUp() {
	o.local.Stop()
	o.remote.Stop()
	o.window.StopLocalRenderer()
	o.window.StopRemoteRenderer()
	if o.inCall {
		o.inCall = false
		o.logger.WithField("function", "hangUp").Info("Call ended")
	}
}

func (o *LoopbackObserver) knownPeer(id int64) bool {
	for _, p := range o.peers {
		if p.ID == id {
			return true
		}
	}
	return false
}
