package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
)

const jobTimeout = 30 * time.Second

// Job refreshes every live widget of Types on a cron schedule.
type Job struct {
	Spec  string                 `yaml:"spec"`
	Types []dashboard.WidgetType `yaml:"types"`
}

// DefaultJobs refreshes weather every 10 minutes and news every 30 minutes.
func DefaultJobs() []Job {
	return []Job{
		{Spec: "@every 10m", Types: []dashboard.WidgetType{dashboard.WidgetWeather}},
		{Spec: "@every 30m", Types: []dashboard.WidgetType{dashboard.WidgetNews}},
	}
}

// Options configures a RefreshScheduler.
type Options struct {
	Jobs    []Job
	Refresh gocommand.Commander[commands.RefreshTypesInput]
	Logger  *zap.Logger
}

// RefreshScheduler drives periodic feed refreshes through the refresh command.
type RefreshScheduler struct {
	cron    *cron.Cron
	refresh gocommand.Commander[commands.RefreshTypesInput]
	logger  *zap.Logger
}

// New validates every job spec and registers it. Nil Jobs means DefaultJobs.
func New(opts Options) (*RefreshScheduler, error) {
	if opts.Refresh == nil {
		return nil, errors.New("scheduler: refresh command is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Jobs == nil {
		opts.Jobs = DefaultJobs()
	}
	s := &RefreshScheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger))),
		refresh: opts.Refresh,
		logger:  opts.Logger.Named("scheduler"),
	}
	for _, job := range opts.Jobs {
		if len(job.Types) == 0 {
			return nil, fmt.Errorf("scheduler: job %q has no widget types", job.Spec)
		}
		types := append([]dashboard.WidgetType(nil), job.Types...)
		if _, err := s.cron.AddFunc(job.Spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := s.Trigger(ctx, types...); err != nil {
				s.logger.Warn("scheduled refresh failed", zap.Error(err))
			}
		}); err != nil {
			return nil, fmt.Errorf("scheduler: invalid spec %q: %w", job.Spec, err)
		}
	}
	return s, nil
}

// Trigger runs a refresh immediately.
func (s *RefreshScheduler) Trigger(ctx context.Context, types ...dashboard.WidgetType) error {
	s.logger.Debug("refreshing widgets", zap.Any("types", types))
	return s.refresh.Execute(ctx, commands.RefreshTypesInput{Types: types})
}

// Jobs returns the number of registered schedules.
func (s *RefreshScheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *RefreshScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs or ctx, whichever ends first.
func (s *RefreshScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
