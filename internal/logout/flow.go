// Package logout runs the sign-out countdown: end the session once, count
// down once per second, then send the visitor home.
package logout

import (
	"context"
	"log"
	"time"

	"usermgmt/portal-service/internal/nav"
)

const DefaultSeconds = 5

// Clock creates the two timers the flow needs. Each stop func is safe to
// call more than once.
type Clock interface {
	NewTicker(d time.Duration) (<-chan time.Time, func())
	NewTimer(d time.Duration) (<-chan time.Time, func())
}

type systemClock struct{}

func (systemClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func (systemClock) NewTimer(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}

// Hooks connects one run of the flow to its view.
type Hooks struct {
	Logout   func(ctx context.Context) error
	Tick     func(remaining int)
	Navigate nav.Navigator
}

type Flow struct {
	seconds int
	clock   Clock
}

func New(seconds int, clock Clock) *Flow {
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Flow{seconds: seconds, clock: clock}
}

func (f *Flow) Seconds() int {
	return f.seconds
}

// Run blocks until the visitor has been sent home (true) or ctx is done
// (false). Cancelling ctx stops both timers; no tick or navigation is
// delivered afterwards. A failed logout is logged and the countdown proceeds.
func (f *Flow) Run(ctx context.Context, hooks Hooks) bool {
	if hooks.Logout != nil {
		if err := hooks.Logout(ctx); err != nil {
			log.Printf("logout failed, continuing countdown err=%v", err)
		}
	}

	remaining := f.seconds
	emit(hooks, remaining)

	ticks, stopTicker := f.clock.NewTicker(time.Second)
	defer stopTicker()
	done, stopTimer := f.clock.NewTimer(time.Duration(f.seconds) * time.Second)
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticks:
			if remaining > 0 {
				remaining--
				emit(hooks, remaining)
			}
		case <-done:
			if ctx.Err() != nil {
				return false
			}
			if hooks.Navigate != nil {
				hooks.Navigate.Navigate(nav.HomePath)
			}
			return true
		}
	}
}

func emit(hooks Hooks, remaining int) {
	if hooks.Tick != nil {
		hooks.Tick(remaining)
	}
}
