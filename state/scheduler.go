package state

import (
	"fmt"
	"time"
)

type dispatchResult struct {
	res any
	err error
}

// Dispatch Dispatches the function to run on the state goroutine without waiting for it to complete
func (e *Env) Dispatch(fun func(*State) error) {
	defer func() {
		if r := recover(); r != nil {
			e.Cancel(fmt.Errorf("panic: %v", r))
		}
	}()
	select {
	case e.DispatchChannel <- fun:
	case <-e.Context.Done():
		// dropped during shutdown
	}
}

// DispatchWait Dispatches the function to run on the state goroutine and wait for it to complete
func (e *Env) DispatchWait(fun func(*State) (any, error)) (any, error) {
	ret := make(chan dispatchResult, 1)
	e.Dispatch(func(s *State) error {
		res, err := fun(s)
		ret <- dispatchResult{res, err}
		return err
	})
	select {
	case res := <-ret:
		return res.res, res.err
	case <-e.Context.Done():
		return nil, e.Context.Err()
	}
}

func (e *Env) ScheduleTask(fun func(*State) error, delay time.Duration) {
	time.AfterFunc(delay, func() {
		e.Dispatch(fun)
	})
}

func (e *Env) repeatedTask(fun func(*State) error, delay time.Duration) {
	for e.Context.Err() == nil {
		e.Dispatch(fun)
		time.Sleep(delay)
	}
}

func (e *Env) RepeatTask(fun func(*State) error, delay time.Duration) {
	go e.repeatedTask(fun, delay)
}
