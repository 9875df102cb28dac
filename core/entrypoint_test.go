package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telamesh/hwmp/state"
	"go.uber.org/goleak"
)

// startNode assembles and runs a full node the way Start does, minus
// the process-level signal handling.
func startNode(t *testing.T, cfg state.LocalCfg) (*state.State, chan error) {
	t.Helper()
	require.NoError(t, state.NodeConfigValidator(&cfg))

	ctx, cancel := context.WithCancelCause(context.Background())
	dispatch := make(chan func(*state.State) error, state.DispatchQueueLen)
	s := &state.State{
		Modules: make(map[string]state.MeshModule),
		Env: &state.Env{
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			LocalCfg:        cfg,
			Log:             slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
		},
	}
	require.NoError(t, initModules(s))

	done := make(chan error, 1)
	go func() {
		done <- MainLoop(s, dispatch)
	}()
	return s, done
}

func stopNode(t *testing.T, s *state.State, done chan error) {
	t.Helper()
	s.Cancel(errors.New("test over"))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("node did not shut down")
	}
}

func TestStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)
	s, done := startNode(t, state.LocalCfg{
		Id:     "solo",
		Addr:   state.MacAddr{0x02, 0, 0, 0, 0, 0x31},
		Listen: "127.0.0.1:22191",
	})
	require.NotNil(t, Get[*Mesh](s).dev)
	require.NotNil(t, Get[*Hwmp](s))
	stopNode(t, s, done)
}

func TestTwoNodeDiscovery(t *testing.T) {
	defer goleak.VerifyNone(t)

	addrA := state.MacAddr{0x02, 0, 0, 0, 0, 0x41}
	addrB := state.MacAddr{0x02, 0, 0, 0, 0, 0x42}

	b, doneB := startNode(t, state.LocalCfg{
		Id:     "b",
		Addr:   addrB,
		Listen: "127.0.0.1:22193",
		Peers:  []string{"127.0.0.1:22192"},
	})
	a, doneA := startNode(t, state.LocalCfg{
		Id:       "a",
		Addr:     addrA,
		Listen:   "127.0.0.1:22192",
		Peers:    []string{"127.0.0.1:22193"},
		Discover: []state.MacAddr{addrB},
	})

	hasPath := func(s *state.State, dest state.MacAddr) bool {
		found, err := s.DispatchWait(func(s *state.State) (any, error) {
			return s.Paths.GetPath(dest) != nil, nil
		})
		require.NoError(t, err)
		return found.(bool)
	}

	deadline := time.After(5 * time.Second)
	for !hasPath(a, addrB) || !hasPath(b, addrA) {
		select {
		case <-deadline:
			t.Fatal("path discovery did not converge")
		case <-time.After(10 * time.Millisecond):
		}
	}

	stopNode(t, a, doneA)
	stopNode(t, b, doneB)
}
