package mock

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/telamesh/hwmp/state"
)

// ManualTimers is a TimerManager driven by hand. Time only moves when
// Advance is called, and fired timers are handed back to the test
// instead of being dispatched.
type ManualTimers struct {
	Clock   time.Time
	Pending map[state.TimerId]PendingTimer
	// FailSchedule makes the next Schedule call report exhaustion.
	FailSchedule bool
	nextId       state.TimerId
}

type PendingTimer struct {
	Deadline time.Time
	Payload  any
}

// Fired is one timer popped by Advance, in deadline order.
type Fired struct {
	Id      state.TimerId
	Payload any
}

func NewManualTimers() *ManualTimers {
	return &ManualTimers{
		Clock:   time.Unix(1700000000, 0),
		Pending: make(map[state.TimerId]PendingTimer),
	}
}

func (m *ManualTimers) Now() time.Time {
	return m.Clock
}

func (m *ManualTimers) Schedule(deadline time.Time, payload any) (state.TimerId, error) {
	if m.FailSchedule {
		return 0, errors.New("timer capacity exhausted")
	}
	m.nextId++
	m.Pending[m.nextId] = PendingTimer{Deadline: deadline, Payload: payload}
	return m.nextId, nil
}

func (m *ManualTimers) Cancel(id state.TimerId) {
	delete(m.Pending, id)
}

// Advance moves the clock forward and pops every timer now due.
func (m *ManualTimers) Advance(d time.Duration) []Fired {
	m.Clock = m.Clock.Add(d)
	var fired []Fired
	for id, pt := range m.Pending {
		if !pt.Deadline.After(m.Clock) {
			fired = append(fired, Fired{Id: id, Payload: pt.Payload})
			delete(m.Pending, id)
		}
	}
	slices.SortFunc(fired, func(a, b Fired) int {
		return int(a.Id) - int(b.Id)
	})
	return fired
}

// NewState builds a single-node engine state around manual timers. The
// caller owns the proxy table and should Stop it when done.
func NewState(addr state.MacAddr) (*state.State, *ManualTimers) {
	timers := NewManualTimers()
	ctx, cancel := context.WithCancelCause(context.Background())
	s := &state.State{
		Modules: make(map[string]state.MeshModule),
		Env: &state.Env{
			Context: ctx,
			Cancel:  cancel,
			Log:     slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
			LocalCfg: state.LocalCfg{
				Id:         "test",
				Addr:       addr,
				LinkMetric: 1,
			},
		},
		Hwmp:  state.NewHwmpState(timers),
		Paths: state.NewPathTable(),
		Proxy: state.NewProxyTable(),
	}
	return s, timers
}
