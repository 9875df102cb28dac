package core

import (
	"github.com/telamesh/hwmp/device"
	"github.com/telamesh/hwmp/frame"
	"github.com/telamesh/hwmp/perf"
	"github.com/telamesh/hwmp/state"
)

// Mesh binds the path selection engine to the lab medium. It lifts
// frames off the device onto the dispatch loop and flushes outbound
// queues back down.
type Mesh struct {
	dev *device.UdpDevice
}

func (m *Mesh) Init(s *state.State) error {
	s.Log.Debug("init mesh", "listen", s.Listen, "peers", len(s.Peers))
	dev, err := device.NewUdpDevice(s.Listen, s.Peers)
	if err != nil {
		return err
	}
	m.dev = dev
	go readLoop(s.Env, dev)

	for _, target := range s.Discover {
		s.Dispatch(func(s *state.State) error {
			var pq state.PacketQueue
			if err := InitiatePathDiscovery(s, target, &pq); err != nil {
				return err
			}
			return transmit(s, &pq)
		})
	}
	return nil
}

func (m *Mesh) Cleanup(s *state.State) error {
	return m.dev.Close()
}

func readLoop(e *state.Env, dev *device.UdpDevice) {
	for in := range dev.Frames() {
		data := in.Data
		e.Dispatch(func(s *state.State) error {
			return handleFrame(s, data)
		})
	}
	e.Log.Debug("device read loop stopped")
}

func handleFrame(s *state.State, f []byte) error {
	perf.FramesReceived.Add(1)
	transmitter, receiver, ies, err := frame.ExtractMeshAction(f)
	if err != nil {
		perf.FramesDropped.Add(1)
		s.Log.Debug("undecodable frame", "err", err)
		return nil
	}
	if transmitter == s.Addr {
		// our own transmission echoed back by the shared medium
		return nil
	}
	if receiver != s.Addr && !receiver.IsGroup() {
		return nil
	}
	var pq state.PacketQueue
	HandleMeshAction(s, transmitter, ies, s.LinkMetric, &pq)
	return transmit(s, &pq)
}
