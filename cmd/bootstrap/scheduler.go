package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartScheduler),
)

// Scheduler drives the periodic sweeps off a one-minute ticker. Each tick is
// matched against the sweep cadences, so a missed tick skips a run rather
// than queuing one up.
type Scheduler struct {
	sweeps commands.SweepCommands
	cfg    config.SweepConfig
	clock  clock.Clock
	logger *slog.Logger
}

func NewScheduler(sweeps commands.SweepCommands, cfg config.SweepConfig, clk clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeps: sweeps,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

func StartScheduler(lc fx.Lifecycle, sweeps commands.SweepCommands, cfg config.Config, clk clock.Clock, logger *slog.Logger) {
	s := NewScheduler(sweeps, cfg.Sweep, clk, logger)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go s.run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func (s *Scheduler) run(ctx context.Context) {
	s.logger.Info("sweep scheduler started")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweep scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.clock.Now()
	minute := now.Minute()

	if minute%5 == 0 {
		s.runSweep(ctx, "check_in_reminders", s.sweeps.CheckInReminders)
	}
	if minute == 0 {
		s.runSweep(ctx, "reservation_reminders", s.sweeps.ReservationReminders)
		s.runSweep(ctx, "waitlist_promotion", s.sweeps.PromoteWaitlist)
	}
	if minute == 0 && now.Hour() == 0 {
		s.runSweep(ctx, "due_soon_reminders", s.sweeps.DueSoonReminders)
	}
	if minute == 0 && now.Hour() == s.cfg.OverdueHour {
		s.runSweep(ctx, "overdue_reminders", s.sweeps.OverdueReminders)
	}
}

func (s *Scheduler) runSweep(ctx context.Context, name string, fn func(context.Context) (int, error)) {
	count, err := fn(ctx)
	if err != nil {
		s.logger.Error("sweep failed", "sweep", name, "error", err.Error())
		return
	}
	if count > 0 {
		s.logger.Info("sweep completed", "sweep", name, "notifications", count)
	}
}
