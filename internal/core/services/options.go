package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type options struct {
	metrics *Metrics
	logger  *slog.Logger
	clock   func() time.Time
}

type Option func(*options)

func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides how the services learn "today" when callers omit it.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// loadUserData fetches habits and the vacation schedule concurrently.
func loadUserData(ctx context.Context, habitRepo domain.HabitRepository, vacationRepo domain.VacationRepository, userID string) ([]*domain.HabitSnapshot, domain.VacationOracle, error) {
	var (
		habits   []*domain.HabitSnapshot
		vacation *domain.VacationSchedule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		habits, err = habitRepo.ListByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		if vacationRepo == nil {
			return nil
		}
		var err error
		vacation, err = vacationRepo.GetByUserID(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if vacation == nil {
		return habits, domain.NoVacation, nil
	}
	return habits, vacation, nil
}
