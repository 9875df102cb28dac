package core

import (
	"time"

	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/frame"
	"github.com/telamesh/hwmp/perf"
	"github.com/telamesh/hwmp/state"
)

// Hwmp owns the per-interface path selection state.
type Hwmp struct{}

func (h *Hwmp) Init(s *state.State) error {
	s.Log.Debug("init hwmp")
	s.Hwmp = state.NewHwmpState(state.NewDispatchTimers(s.Env, handleTimerFired))
	s.Paths = state.NewPathTable()
	s.Proxy = state.NewProxyTable()
	if state.DBG_log_paths {
		s.RepeatTask(dbgPrintPathTable, 5*time.Second)
	}
	return nil
}

func dbgPrintPathTable(s *state.State) error {
	s.Log.Debug("path table", "len", s.Paths.Len())
	s.Paths.Range(func(dest state.MacAddr, path *state.MeshPath) bool {
		s.Log.Debug("path", "dest", dest, "nh", path.NextHop, "met", path.Metric, "hops", path.HopCount, "exp", path.ExpirationTime)
		return true
	})
	return nil
}

func (h *Hwmp) Cleanup(s *state.State) error {
	s.Proxy.Stop()
	return nil
}

func handleTimerFired(s *state.State, now time.Time, payload any, id state.TimerId) error {
	var pq state.PacketQueue
	if err := HandleHwmpTimeout(s, now, payload, id, &pq); err != nil {
		return err
	}
	return transmit(s, &pq)
}

// HandleMeshAction dispatches the HWMP elements of one received mesh
// path selection action body. The element set is closed; unknown or
// undecodable elements were already filtered by the codec.
func HandleMeshAction(s *state.State, transmitter state.MacAddr, ies []byte, lastHopMetric uint32, pq *state.PacketQueue) {
	elems, err := elements.ParseElements(ies)
	if err != nil {
		perf.ElementsDropped.Add(1)
		s.Log.Debug("broken element framing", "from", transmitter, "err", err)
		// decoded prefix is still processed
	}
	for _, e := range elems {
		switch v := e.(type) {
		case *elements.Preq:
			perf.PreqProcessed.Add(1)
			HandlePreq(s, v, transmitter, lastHopMetric, pq)
		case *elements.Prep:
			perf.PrepProcessed.Add(1)
			HandlePrep(s, v, transmitter, lastHopMetric, pq)
		case *elements.Perr:
			perf.PerrProcessed.Add(1)
			HandlePerr(s, v, transmitter, pq)
		}
	}
}

// enqueueElement builds a mesh action frame around e and queues it.
// Construction failure drops this one packet and nothing else.
func enqueueElement(s *state.State, pq *state.PacketQueue, dest state.MacAddr, e elements.Element) {
	ie, err := elements.Marshal(e)
	if err != nil {
		perf.FramesDropped.Add(1)
		s.Log.Debug("element marshal failed", "dest", dest, "err", err)
		return
	}
	f, err := frame.BuildMeshAction(s.Addr, dest, ie)
	if err != nil {
		perf.FramesDropped.Add(1)
		s.Log.Debug("frame construction failed", "dest", dest, "err", err)
		return
	}
	if state.DBG_log_elements {
		s.Log.Debug("tx element", "dest", dest, "elem", e)
	}
	pq.Enqueue(state.OutPacket{Dest: dest, Frame: f})
}

func dbgPrintPathChange(s *state.State, dest state.MacAddr, path *state.MeshPath) {
	if state.DBG_log_path_changes {
		seqno := int64(-1)
		if path.HwmpSeqno != nil {
			seqno = int64(*path.HwmpSeqno)
		}
		s.Log.Debug("path updated", "dest", dest, "nh", path.NextHop, "met", path.Metric, "hops", path.HopCount, "seqno", seqno)
	}
}
