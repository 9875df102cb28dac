package core

import (
	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/state"
)

// HandlePrep processes one received Path Reply element.
func HandlePrep(s *state.State, prep *elements.Prep, transmitter state.MacAddr, lastHopMetric uint32, pq *state.PacketQueue) {
	if prep.TargetAddr == s.Addr {
		// a relayed copy of our own reply
		return
	}
	lifetime := elements.TUToDuration(prep.Lifetime)

	path := UpdateForwardingInfo(s, transmitter, prep.TargetAddr, prep.TargetSeqno,
		prep.Metric, lastHopMetric, prep.HopCount, lifetime)
	if path == nil {
		return
	}

	if ts, ok := s.Hwmp.StateByTarget[prep.TargetAddr.Key()]; ok {
		// discovery answered, stop retrying
		s.Hwmp.Timer.Cancel(ts.NextAttempt)
		delete(s.Hwmp.StateByTarget, prep.TargetAddr.Key())
		s.Log.Debug("path established", "target", prep.TargetAddr, "nh", path.NextHop, "met", path.Metric)
	}

	if prep.OriginatorAddr == s.Addr || prep.ElementTTL <= 1 {
		return
	}
	origPath := s.Paths.GetPath(prep.OriginatorAddr)
	if origPath == nil {
		// nobody to relay to; the originator will retry
		return
	}
	fwd := *prep
	fwd.HopCount++
	fwd.ElementTTL--
	fwd.Metric = prep.Metric + lastHopMetric
	enqueueElement(s, pq, origPath.NextHop, &fwd)
}
