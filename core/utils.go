package core

import (
	"reflect"

	"github.com/telamesh/hwmp/perf"
	"github.com/telamesh/hwmp/state"
)

func Get[T state.MeshModule](s *state.State) T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return s.Modules[t.String()].(T)
}

// transmit flushes the packet queue to the medium. Without a transport
// module registered the queue is simply discarded.
func transmit(s *state.State, pq *state.PacketQueue) error {
	if pq.Len() == 0 {
		return nil
	}
	mesh, ok := s.Modules[reflect.TypeOf((**Mesh)(nil)).Elem().String()].(*Mesh)
	if !ok {
		pq.Drain()
		return nil
	}
	for _, pkt := range pq.Drain() {
		if err := mesh.dev.Send(pkt.Frame); err != nil {
			perf.FramesDropped.Add(1)
			s.Log.Debug("send failed", "dest", pkt.Dest, "err", err)
			continue
		}
		perf.FramesSent.Add(1)
	}
	return nil
}
