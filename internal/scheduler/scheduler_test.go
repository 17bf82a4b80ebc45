package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"hoteai/internal/app"
)

type stubSweeper struct {
	runs int32
	fn   func() (app.SweepResult, error)
}

func (s *stubSweeper) RunOnce(context.Context) (app.SweepResult, error) {
	atomic.AddInt32(&s.runs, 1)
	if s.fn != nil {
		return s.fn()
	}
	return app.SweepResult{}, nil
}

func waitForRuns(t *testing.T, s *stubSweeper, n int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&s.runs) >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("sweeper ran %d times, want at least %d", atomic.LoadInt32(&s.runs), n)
}

func TestScheduler_RunsAtBoot(t *testing.T) {
	sw := &stubSweeper{}
	s := New(sw, time.Hour, zerolog.Nop())
	s.Start()
	defer func() { <-s.Stop().Done() }()

	// The interval is an hour out; the boot-time run must fire regardless.
	waitForRuns(t, sw, 1)
}

func TestScheduler_SweepErrorIsContained(t *testing.T) {
	sw := &stubSweeper{fn: func() (app.SweepResult, error) {
		return app.SweepResult{}, errors.New("db gone")
	}}
	s := New(sw, time.Hour, zerolog.Nop())
	s.Start()
	waitForRuns(t, sw, 1)
	<-s.Stop().Done()
}

func TestScheduler_PanicIsContained(t *testing.T) {
	sw := &stubSweeper{fn: func() (app.SweepResult, error) {
		panic("boom")
	}}
	s := New(sw, time.Hour, zerolog.Nop())
	s.Start()
	waitForRuns(t, sw, 1)

	// The panic must not have killed the scheduler goroutine.
	<-s.Stop().Done()
}

func TestScheduler_DefaultInterval(t *testing.T) {
	s := New(&stubSweeper{}, 0, zerolog.Nop())
	if s.interval != 10*time.Minute {
		t.Fatalf("interval = %v", s.interval)
	}
}
