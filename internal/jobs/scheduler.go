package jobs

import (
	"context"
	"fmt"
	"time"

	"salon-booking/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

type ReminderSender interface {
	SendReminders(ctx context.Context) (int, error)
}

type SessionCleaner interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs in the salon time zone.
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderSender
	sessions  SessionCleaner
	log       *zap.Logger
}

// NewScheduler registers every job that has a cron expression.
func NewScheduler(
	config utils.SchedulerConfig,
	loc *time.Location,
	reminders ReminderSender,
	sessions SessionCleaner,
	log *zap.Logger,
) (*Scheduler, error) {
	log = log.With(zap.String("component", "scheduler"))
	cl := cronLogger{log: log}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		reminders: reminders,
		sessions:  sessions,
		log:       log,
	}

	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{"booking reminders", config.ReminderSpec, s.sendReminders},
		{"session cleanup", config.SessionCleanupSpec, s.cleanSessions},
	}

	for _, job := range jobs {
		if job.spec == "" {
			log.Info("Job disabled", zap.String("job", job.name))
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", job.name, job.spec, err)
		}
		log.Info("Job scheduled", zap.String("job", job.name), zap.String("spec", job.spec))
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	queued, err := s.reminders.SendReminders(ctx)
	if err != nil {
		s.log.Error("Reminder job failed", zap.Error(err))
		return
	}
	s.log.Info("Reminder job finished", zap.Int("queued", queued))
}

func (s *Scheduler) cleanSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}
	s.log.Info("Session cleanup finished", zap.Int64("removed", removed))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
