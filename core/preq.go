package core

import (
	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/state"
)

// HandlePreq processes one received Path Request element.
func HandlePreq(s *state.State, preq *elements.Preq, transmitter state.MacAddr, lastHopMetric uint32, pq *state.PacketQueue) {
	if preq.OriginatorAddr == s.Addr {
		// a relayed copy of our own request
		return
	}
	lifetime := elements.TUToDuration(preq.Lifetime)

	path := UpdateForwardingInfo(s, transmitter, preq.OriginatorAddr, preq.OriginatorSeqno,
		preq.Metric, lastHopMetric, preq.HopCount, lifetime)
	if path == nil {
		// The element did not improve our info about the originator, so any
		// reply would travel over a path we just refused to install. The
		// whole element is dropped, targets included. 11.44.4.2 can be read
		// as still allowing per-target forwarding here; we deliberately do
		// not (see DESIGN.md, open questions).
		return
	}

	now := s.Hwmp.Timer.Now()
	forward := make([]elements.PreqPerTarget, 0, state.PreqMaxTargets)
	for i := range preq.Targets {
		target := preq.Targets[i]

		if target.TargetAddr == s.Addr {
			// Requested seqno may be ahead of ours (USN aside); advertise
			// something strictly newer than both.
			s.Hwmp.OurHwmpSeqno = MaxHwmpSeqno(s.Hwmp.OurHwmpSeqno, target.TargetSeqno) + 1
			enqueueElement(s, pq, transmitter, &elements.Prep{
				HopCount:        0,
				ElementTTL:      state.InitialElementTTL,
				TargetAddr:      s.Addr,
				TargetSeqno:     s.Hwmp.OurHwmpSeqno,
				Lifetime:        preq.Lifetime,
				Metric:          0,
				OriginatorAddr:  preq.OriginatorAddr,
				OriginatorSeqno: preq.OriginatorSeqno,
			})
			continue
		}

		replied := false
		if !target.TargetOnly() {
			cached := s.Paths.GetPath(target.TargetAddr)
			if cached != nil && cached.HwmpSeqno != nil && cached.ExpirationTime.After(now) {
				// intermediate reply on the target's behalf
				enqueueElement(s, pq, transmitter, &elements.Prep{
					HopCount:        cached.HopCount,
					ElementTTL:      state.InitialElementTTL,
					TargetAddr:      target.TargetAddr,
					TargetSeqno:     *cached.HwmpSeqno,
					Lifetime:        preq.Lifetime,
					Metric:          cached.Metric,
					OriginatorAddr:  preq.OriginatorAddr,
					OriginatorSeqno: preq.OriginatorSeqno,
				})
				replied = true
			}
		}

		if preq.ElementTTL > 1 && len(forward) < state.PreqMaxTargets {
			if replied {
				// keep downstream nodes from replying a second time
				target.Flags |= elements.TargetFlagTargetOnly
			}
			forward = append(forward, target)
		}
	}

	if len(forward) > 0 {
		fwd := *preq
		fwd.HopCount++
		fwd.ElementTTL--
		fwd.Metric = preq.Metric + lastHopMetric
		fwd.Targets = forward
		enqueueElement(s, pq, state.BroadcastAddr, &fwd)
	}
}
