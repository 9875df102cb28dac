package state

import (
	"time"
)

// TimeoutFunc is invoked on the state goroutine for every timer that
// fires and was not cancelled first. It must revalidate the id against
// live state before acting.
type TimeoutFunc func(s *State, now time.Time, payload any, id TimerId) error

// dispatchTimers is the production TimerManager. Timers are armed with
// time.AfterFunc and delivered back onto the state goroutine, so all of
// its bookkeeping is single threaded by construction.
type dispatchTimers struct {
	env    *Env
	onFire TimeoutFunc
	nextId TimerId
	live   map[TimerId]struct{}
}

func NewDispatchTimers(env *Env, onFire TimeoutFunc) TimerManager {
	return &dispatchTimers{
		env:    env,
		onFire: onFire,
		live:   make(map[TimerId]struct{}),
	}
}

func (d *dispatchTimers) Now() time.Time {
	return time.Now()
}

func (d *dispatchTimers) Schedule(deadline time.Time, payload any) (TimerId, error) {
	d.nextId++
	id := d.nextId
	d.live[id] = struct{}{}
	d.env.ScheduleTask(func(s *State) error {
		if _, ok := d.live[id]; !ok {
			return nil // cancelled before delivery
		}
		delete(d.live, id)
		return d.onFire(s, time.Now(), payload, id)
	}, time.Until(deadline))
	return id, nil
}

func (d *dispatchTimers) Cancel(id TimerId) {
	delete(d.live, id)
}
