package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"hoteai/internal/app"
)

// Sweeper is one full scoring run over the currently-unscored candidates.
type Sweeper interface {
	RunOnce(ctx context.Context) (app.SweepResult, error)
}

// Scheduler runs the sweeper once at startup and then on a fixed interval.
// Every run is wrapped in a recover + error boundary: a failing or panicking
// sweep is logged and the next tick still fires. A tick that lands while the
// previous sweep is still running is skipped, not queued, so two sweeps
// never race on the same review.
type Scheduler struct {
	cron     *cron.Cron
	job      cron.Job
	interval time.Duration
	system   zerolog.Logger
}

func New(sweeper Sweeper, interval time.Duration, system zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	s := &Scheduler{
		cron:     cron.New(),
		interval: interval,
		system:   system,
	}
	lg := cronLogger{system}
	s.job = cron.NewChain(
		cron.SkipIfStillRunning(lg),
		cron.Recover(lg),
	).Then(cron.FuncJob(func() { s.sweep(sweeper) }))
	return s
}

// Start fires the boot-time sweep and begins the recurring schedule.
func (s *Scheduler) Start() {
	go s.job.Run()
	s.cron.Schedule(cron.Every(s.interval), s.job)
	s.cron.Start()
	s.system.Info().Dur("interval", s.interval).Msg("sweep scheduler started")
}

// Stop halts future ticks; the returned context is done when any in-flight
// sweep has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) sweep(sweeper Sweeper) {
	res, err := sweeper.RunOnce(context.Background())
	if err != nil {
		// Whole-sweep failure (candidate fetch): contained here, the
		// next tick retries everything.
		s.system.Error().Err(err).Msg("scoring sweep failed")
		return
	}
	s.system.Info().Int("scored", res.Scored).Int("failed", res.Failed).Msg("scoring sweep ok")
}

// cronLogger adapts zerolog to cron's logger interface.
type cronLogger struct{ l zerolog.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Info().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
