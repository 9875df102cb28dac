package state

import (
	"time"

	"golang.org/x/time/rate"
)

// TimerId identifies a scheduled timeout. Ids are never reused within
// the lifetime of a TimerManager.
type TimerId uint64

// TimerManager schedules deferred work for the path selection engine.
// Cancel is idempotent and safe on an already fired or unknown id; a
// timer that fires after being superseded is filtered by the timeout
// handler's id revalidation, never here.
type TimerManager interface {
	Now() time.Time
	// Schedule fails only on resource exhaustion.
	Schedule(deadline time.Time, payload any) (TimerId, error)
	Cancel(id TimerId)
}

// TargetState tracks one in-flight path discovery.
type TargetState struct {
	NextAttempt  TimerId
	AttemptsLeft int
}

// HwmpState is the per-interface mutable state of the HWMP engine. It
// is owned by the state goroutine together with the PathTable.
type HwmpState struct {
	// OurHwmpSeqno is this node's own sequence counter. Only ever moves
	// forward (mod 2^32).
	OurHwmpSeqno uint32
	// NextPathDiscoveryId distinguishes locally originated PREQs.
	NextPathDiscoveryId uint32
	// PerrLimiter paces PERR origination and forwarding.
	PerrLimiter *rate.Limiter
	// StateByTarget holds in-flight discoveries, keyed by MacAddr.Key.
	StateByTarget map[uint64]*TargetState
	Timer         TimerManager
}

func NewHwmpState(timer TimerManager) *HwmpState {
	return &HwmpState{
		PerrLimiter:   rate.NewLimiter(rate.Every(MinPerrInterval), PerrBurstSize),
		StateByTarget: make(map[uint64]*TargetState),
		Timer:         timer,
	}
}
