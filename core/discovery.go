package core

import (
	"fmt"
	"time"

	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/state"
)

// discoveryRetry is the timer payload of a pending PREQ retry.
type discoveryRetry struct {
	Target state.MacAddr
}

// InitiatePathDiscovery starts resolving a path to target. If a
// discovery is already in flight its retry budget is refreshed instead
// of starting a duplicate. The only propagated failure is timer
// scheduling exhaustion.
func InitiatePathDiscovery(s *state.State, target state.MacAddr, pq *state.PacketQueue) error {
	key := target.Key()
	if ts, ok := s.Hwmp.StateByTarget[key]; ok {
		ts.AttemptsLeft = state.MaxPreqRetries
		return nil
	}
	ts := &state.TargetState{AttemptsLeft: state.MaxPreqRetries}
	s.Hwmp.StateByTarget[key] = ts
	return emitOriginalPreq(s, target, ts, pq)
}

func emitOriginalPreq(s *state.State, target state.MacAddr, ts *state.TargetState, pq *state.PacketQueue) error {
	now := s.Hwmp.Timer.Now()
	id, err := s.Hwmp.Timer.Schedule(now.Add(state.MinPreqInterval), discoveryRetry{Target: target})
	if err != nil {
		return fmt.Errorf("schedule preq retry for %s: %w", target, err)
	}
	ts.NextAttempt = id
	ts.AttemptsLeft--
	s.Hwmp.OurHwmpSeqno++
	s.Hwmp.NextPathDiscoveryId++

	t := elements.PreqPerTarget{TargetAddr: target}
	if cached := s.Paths.GetPath(target); cached != nil && cached.HwmpSeqno != nil {
		t.TargetSeqno = *cached.HwmpSeqno
	} else {
		t.Flags |= elements.TargetFlagUsn
	}
	if state.TargetOnlyDefault {
		t.Flags |= elements.TargetFlagTargetOnly
	}

	enqueueElement(s, pq, state.BroadcastAddr, &elements.Preq{
		HopCount:        0,
		ElementTTL:      state.InitialElementTTL,
		PathDiscoveryId: s.Hwmp.NextPathDiscoveryId,
		OriginatorAddr:  s.Addr,
		OriginatorSeqno: s.Hwmp.OurHwmpSeqno,
		Lifetime:        elements.DurationToTU(state.ActivePathTimeout),
		Metric:          0,
		Targets:         []elements.PreqPerTarget{t},
	})
	return nil
}

// HandleHwmpTimeout is the engine's timeout callback. A fired timer is
// acted on only if its id still matches the live discovery state; a
// superseded or already answered discovery ignores it.
func HandleHwmpTimeout(s *state.State, now time.Time, payload any, id state.TimerId, pq *state.PacketQueue) error {
	retry, ok := payload.(discoveryRetry)
	if !ok {
		return nil
	}
	key := retry.Target.Key()
	ts, ok := s.Hwmp.StateByTarget[key]
	if !ok || ts.NextAttempt != id {
		return nil // stale timer
	}
	if ts.AttemptsLeft == 0 {
		delete(s.Hwmp.StateByTarget, key)
		s.Log.Debug("path discovery abandoned", "target", retry.Target)
		return nil
	}
	return emitOriginalPreq(s, retry.Target, ts, pq)
}
