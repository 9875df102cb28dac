package state

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type MeshModule interface {
	Init(s *State) error
	Cleanup(s *State) error
}

// State access must be done only on a single Goroutine
type State struct {
	*Env
	Modules map[string]MeshModule
	Hwmp    *HwmpState
	Paths   *PathTable
	Proxy   *ProxyTable
}

// Env can be read from any Goroutine
type Env struct {
	DispatchChannel chan<- func(s *State) error
	LocalCfg
	Context context.Context
	Cancel  context.CancelCauseFunc
	Log     *slog.Logger

	Started  atomic.Bool
	Stopping atomic.Bool
}
