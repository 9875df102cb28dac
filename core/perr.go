package core

import (
	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/perf"
	"github.com/telamesh/hwmp/state"
)

// HandlePerr processes one received Path Error element. Destination
// entries are evaluated independently; entries that invalidate a local
// path are re-broadcast in one consolidated, rate limited PERR.
func HandlePerr(s *state.State, perr *elements.Perr, transmitter state.MacAddr, pq *state.PacketQueue) {
	forward := make([]elements.PerrDestination, 0, state.PerrMaxDestinations)
	for i := range perr.Destinations {
		entry := perr.Destinations[i]

		if entry.ExtAddr != nil {
			// A proxied address never carries forwarding info of its own,
			// only the proxy binding is affected.
			if proxy, ok := s.Proxy.Get(*entry.ExtAddr); ok && proxy == entry.DestAddr {
				s.Proxy.Remove(*entry.ExtAddr)
			}
			continue
		}

		path := s.Paths.GetPath(entry.DestAddr)
		if path == nil || path.NextHop != transmitter {
			// only the neighbour we forward through can break the path
			continue
		}

		invalidate := false
		newSeqno := entry.HwmpSeqno
		switch entry.ReasonCode {
		case elements.ReasonMeshPathErrorNoForwardingInformation:
			if entry.HwmpSeqno == 0 {
				// The reporter had nothing at all for this destination. Mint a
				// replacement seqno one past ours so the seqno space stays
				// monotonic for downstream receivers.
				invalidate = true
				if path.HwmpSeqno != nil {
					newSeqno = *path.HwmpSeqno + 1
				} else {
					newSeqno = 0
				}
			} else if path.HwmpSeqno == nil || HwmpSeqnoLt(*path.HwmpSeqno, entry.HwmpSeqno) {
				invalidate = true
			}
		case elements.ReasonMeshPathErrorDestinationUnreachable:
			if path.HwmpSeqno == nil || HwmpSeqnoLt(*path.HwmpSeqno, entry.HwmpSeqno) {
				invalidate = true
			}
		}
		if !invalidate {
			continue
		}

		s.Paths.RemovePath(entry.DestAddr)
		s.Log.Debug("path invalidated", "dest", entry.DestAddr, "via", transmitter, "reason", entry.ReasonCode)
		if len(forward) < state.PerrMaxDestinations {
			entry.HwmpSeqno = newSeqno
			forward = append(forward, entry)
		}
	}

	if len(forward) == 0 || perr.ElementTTL <= 1 {
		return
	}
	// PERR is unsolicited and cascades; pace our own transmissions to keep
	// a flapping link from turning into a broadcast storm.
	if !s.Hwmp.PerrLimiter.AllowN(s.Hwmp.Timer.Now(), 1) {
		perf.PerrSuppressed.Add(1)
		return
	}
	enqueueElement(s, pq, state.BroadcastAddr, &elements.Perr{
		ElementTTL:   perr.ElementTTL - 1,
		Destinations: forward,
	})
}

// OnMissingForwardingPath is invoked by the forwarding layer when it was
// handed a frame it has no route for. The peer that sent us the frame is
// told with a unicast PERR so it stops using us for that destination.
func OnMissingForwardingPath(s *state.State, peer, missingDest state.MacAddr, pq *state.PacketQueue) {
	if !s.Hwmp.PerrLimiter.AllowN(s.Hwmp.Timer.Now(), 1) {
		perf.PerrSuppressed.Add(1)
		return
	}
	enqueueElement(s, pq, peer, &elements.Perr{
		ElementTTL: state.InitialElementTTL,
		Destinations: []elements.PerrDestination{{
			DestAddr:   missingDest,
			HwmpSeqno:  0,
			ReasonCode: elements.ReasonMeshPathErrorNoForwardingInformation,
		}},
	})
}
