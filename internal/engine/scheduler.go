package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs engine cycles on a fixed interval.
type Scheduler struct {
	cron       *cron.Cron
	engine     *Engine
	log        *slog.Logger
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithRunOnStart makes Start trigger one cycle immediately.
func WithRunOnStart(on bool) SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = on
	}
}

// NewScheduler creates a Scheduler that runs a cycle every interval. A tick
// that fires while the previous cycle is still running is skipped.
func NewScheduler(
	eng *Engine,
	interval time.Duration,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("schedule interval must be positive, got %s", interval)
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{log}),
		cron.SkipIfStillRunning(cronLogger{log}),
	))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runCycle); err != nil {
		cancel()
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled cycles.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runCycle()
		}()
	}
}

// Stop cancels any in-flight cycle and returns a context that is done once
// running jobs have returned.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	s.cancel()
	cronDone := s.cron.Stop()

	ctx, done := context.WithCancel(context.Background())
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		done()
	}()
	return ctx
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runCycle() {
	s.log.Info("scheduled run starting")
	_, err := s.engine.RunCycle(s.ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.log.Info("scheduled run skipped, another run is in progress")
	case err != nil:
		s.log.Error("scheduled run failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
