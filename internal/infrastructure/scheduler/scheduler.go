// Package scheduler runs job-feed ingestion on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

const defaultRunTimeout = 2 * time.Minute

// ObserveFunc is told the outcome of every scheduled run.
type ObserveFunc func(ingested int, err error, took time.Duration)

// Scheduler wraps robfig/cron and owns the ingest loop.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ingest     ports.IngestService
	observe    ObserveFunc
	runTimeout time.Duration
	log        zerolog.Logger
}

// New builds a scheduler for spec (e.g. "@every 24h"). Overlapping runs are
// skipped; the Redis lock additionally guards against other instances.
func New(spec string, ingest ports.IngestService, observe ObserveFunc, log zerolog.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		spec:       spec,
		ingest:     ingest,
		observe:    observe,
		runTimeout: defaultRunTimeout,
		log:        log,
	}
}

// Start registers the job and starts the cron goroutine. ctx bounds every run.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("ingest scheduler started")
	return nil
}

// Stop halts the schedule and returns a context that is done once any
// in-flight run has finished.
func (s *Scheduler) Stop() context.Context {
	done := s.cron.Stop()
	s.log.Info().Msg("ingest scheduler stopped")
	return done
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	jobs, err := s.ingest.Ingest(ctx)
	took := time.Since(start)
	if s.observe != nil {
		s.observe(len(jobs), err, took)
	}

	switch {
	case errors.Is(err, domain.ErrIngestInProgress):
		s.log.Info().Msg("scheduled ingest skipped, another run holds the lock")
	case err != nil:
		s.log.Error().Err(err).Dur("took", took).Msg("scheduled ingest failed")
	default:
		s.log.Info().Int("count", len(jobs)).Dur("took", took).Msg("scheduled ingest complete")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
