package core

import (
	"time"

	"github.com/telamesh/hwmp/state"
)

// shouldUpdatePath decides whether forwarding info carried by a control
// element replaces the existing path. Fresher sequence numbers always
// win regardless of metric; at equal freshness (or when the stored path
// never had a seqno) only a strict metric improvement replaces, so that
// equal-cost candidates do not flap the next hop back and forth.
func shouldUpdatePath(existing *state.MeshPath, remoteSeqno uint32, candidateMetric uint32) bool {
	if existing == nil {
		return true
	}
	if existing.HwmpSeqno != nil && HwmpSeqnoLt(*existing.HwmpSeqno, remoteSeqno) {
		return true
	}
	if existing.HwmpSeqno == nil || *existing.HwmpSeqno == remoteSeqno {
		return candidateMetric < existing.Metric
	}
	// stored info is fresher than the element
	return false
}

// UpdateForwardingInfo folds a received PREQ/PREP into the path table:
// once for the remote station the element reports on (the PREQ
// originator or PREP target) and, on multi-hop receptions, once for the
// transmitting neighbour itself. The returned path is the stored entry
// for the remote station, or nil if the element did not improve on what
// is known; callers treat nil as the signal to drop the element.
//
// The element is authoritative about the remote station but only
// circumstantial about the transmitter: it proves the transmitter is
// directly reachable at lastHopMetric, nothing about its freshness. The
// transmitter's path therefore keeps its previously known seqno and is
// only replaced on a strict metric improvement; remoteSeqno is never
// compared against it.
func UpdateForwardingInfo(
	s *state.State,
	transmitter, remote state.MacAddr,
	remoteSeqno uint32,
	metric, lastHopMetric uint32,
	hopCount uint8,
	lifetime time.Duration,
) *state.MeshPath {
	now := s.Hwmp.Timer.Now()
	expiry := now.Add(lifetime)

	var updated *state.MeshPath
	total := metric + lastHopMetric
	if existing := s.Paths.GetPath(remote); shouldUpdatePath(existing, remoteSeqno, total) {
		prevExpiry := time.Time{}
		if existing != nil {
			prevExpiry = existing.ExpirationTime
		}
		seqno := remoteSeqno
		updated = s.Paths.AddOrUpdatePath(remote, state.MeshPath{
			NextHop:        transmitter,
			HwmpSeqno:      &seqno,
			ExpirationTime: laterOf(prevExpiry, expiry),
			Metric:         total,
			HopCount:       hopCount + 1,
		})
		dbgPrintPathChange(s, remote, updated)
	}

	if transmitter != remote {
		existing := s.Paths.GetPath(transmitter)
		if existing == nil || lastHopMetric < existing.Metric {
			var prevSeqno *uint32
			prevExpiry := time.Time{}
			if existing != nil {
				prevSeqno = existing.HwmpSeqno
				prevExpiry = existing.ExpirationTime
			}
			neigh := s.Paths.AddOrUpdatePath(transmitter, state.MeshPath{
				NextHop:        transmitter,
				HwmpSeqno:      prevSeqno,
				ExpirationTime: laterOf(prevExpiry, expiry),
				Metric:         lastHopMetric,
				HopCount:       1,
			})
			dbgPrintPathChange(s, transmitter, neigh)
		}
	}
	return updated
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
