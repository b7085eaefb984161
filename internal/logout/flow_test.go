package logout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"usermgmt/portal-service/internal/nav"
)

type manualClock struct {
	ticks   chan time.Time
	timer   chan time.Time
	stopped chan string
}

func newManualClock() *manualClock {
	return &manualClock{
		ticks:   make(chan time.Time),
		timer:   make(chan time.Time),
		stopped: make(chan string, 2),
	}
}

func (c *manualClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	if d != time.Second {
		panic("unexpected tick interval")
	}
	return c.ticks, func() { c.stopped <- "ticker" }
}

func (c *manualClock) NewTimer(d time.Duration) (<-chan time.Time, func()) {
	return c.timer, func() { c.stopped <- "timer" }
}

type recorder struct {
	mu        sync.Mutex
	logouts   int
	ticks     []int
	navigated []string
}

func (r *recorder) hooks(logoutErr error) Hooks {
	return Hooks{
		Logout: func(ctx context.Context) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.logouts++
			return logoutErr
		},
		Tick: func(remaining int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ticks = append(r.ticks, remaining)
		},
		Navigate: nav.NavigatorFunc(func(path string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.navigated = append(r.navigated, path)
		}),
	}
}

func (r *recorder) snapshot() (int, []int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logouts, append([]int(nil), r.ticks...), append([]string(nil), r.navigated...)
}

func TestRunCountsDownAndNavigatesHome(t *testing.T) {
	clock := newManualClock()
	rec := &recorder{}
	flow := New(5, clock)

	result := make(chan bool, 1)
	go func() { result <- flow.Run(context.Background(), rec.hooks(nil)) }()

	for i := 0; i < 5; i++ {
		clock.ticks <- time.Now()
	}
	clock.timer <- time.Now()

	if !<-result {
		t.Fatalf("expected flow to finish by navigating")
	}
	logouts, ticks, navigated := rec.snapshot()
	if logouts != 1 {
		t.Fatalf("expected logout exactly once, got %d", logouts)
	}
	want := []int{5, 4, 3, 2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("expected ticks %v, got %v", want, ticks)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("expected ticks %v, got %v", want, ticks)
		}
	}
	if len(navigated) != 1 || navigated[0] != nav.HomePath {
		t.Fatalf("expected one navigation home, got %v", navigated)
	}
}

func TestRunCancelStopsTimers(t *testing.T) {
	clock := newManualClock()
	rec := &recorder{}
	flow := New(5, clock)
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan bool, 1)
	go func() { result <- flow.Run(ctx, rec.hooks(nil)) }()

	clock.ticks <- time.Now()
	clock.ticks <- time.Now()
	cancel()

	if <-result {
		t.Fatalf("expected cancelled flow to report false")
	}
	stopped := map[string]bool{<-clock.stopped: true, <-clock.stopped: true}
	if !stopped["ticker"] || !stopped["timer"] {
		t.Fatalf("expected both timers stopped, got %v", stopped)
	}
	_, ticks, navigated := rec.snapshot()
	if len(ticks) != 3 {
		t.Fatalf("expected initial value plus two ticks, got %v", ticks)
	}
	if len(navigated) != 0 {
		t.Fatalf("expected no navigation after cancel, got %v", navigated)
	}
}

func TestRunIgnoresLogoutFailure(t *testing.T) {
	clock := newManualClock()
	rec := &recorder{}
	flow := New(2, clock)

	result := make(chan bool, 1)
	go func() { result <- flow.Run(context.Background(), rec.hooks(errors.New("backend unavailable"))) }()
	clock.timer <- time.Now()

	if !<-result {
		t.Fatalf("expected navigation despite logout failure")
	}
	logouts, _, navigated := rec.snapshot()
	if logouts != 1 || len(navigated) != 1 {
		t.Fatalf("expected one logout and one navigation, got %d and %v", logouts, navigated)
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New(0, nil).Seconds(); got != DefaultSeconds {
		t.Fatalf("expected default %d seconds, got %d", DefaultSeconds, got)
	}
}

func TestRunWithSystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("uses real timers")
	}
	rec := &recorder{}
	flow := New(1, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if !flow.Run(ctx, rec.hooks(nil)) {
		t.Fatalf("expected flow to navigate within the timeout")
	}
	_, _, navigated := rec.snapshot()
	if len(navigated) != 1 {
		t.Fatalf("expected one navigation, got %v", navigated)
	}
}
