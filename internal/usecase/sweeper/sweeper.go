// Package sweeper expires listings whose end time has passed.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"auction-house/internal/pkg/clock"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/metrics"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/shared"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Interval    time.Duration
	BatchSize   int
	ItemTimeout time.Duration
	Workers     int
}

// Report summarizes one sweep.
type Report struct {
	Scanned int
	Expired int
	// Skipped counts listings another workflow finished first.
	Skipped int
	Failed  int
}

type Sweeper struct {
	listings shared.ListingStore
	commands commands.ListingCommands
	clock    clock.Clock
	opts     Options
	logger   *slog.Logger
}

func New(listings shared.ListingStore, cmds commands.ListingCommands, clk clock.Clock, opts Options, logger *slog.Logger) *Sweeper {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{listings: listings, commands: cmds, clock: clk, opts: opts, logger: logger}
}

// Tick expires one batch of overdue listings. Items that fail are left active
// and picked up again on the next tick.
func (s *Sweeper) Tick(ctx context.Context) (Report, error) {
	started := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(started).Seconds()) }()

	due, err := s.listings.FindExpiredUpTo(ctx, s.clock.Now(), s.opts.BatchSize)
	if err != nil {
		return Report{}, errs.Mark(errs.Wrap(err, "find expired listings"), errs.ErrPersistenceFailure)
	}

	var (
		mu     sync.Mutex
		report = Report{Scanned: len(due)}
		failed error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, l := range due {
		id := l.ID()
		g.Go(func() error {
			itemCtx, cancel := s.itemContext(gctx)
			defer cancel()

			res, err := s.commands.Expire(itemCtx, id)
			result := classify(res, err)
			metrics.SweepItems.WithLabelValues(result).Inc()

			mu.Lock()
			defer mu.Unlock()
			switch result {
			case "expired":
				report.Expired++
			case "skipped":
				report.Skipped++
			default:
				report.Failed++
				failed = multierr.Append(failed, errs.Wrapf(err, "expire %s", id))
				s.logger.WarnContext(ctx, "failed to expire listing",
					slog.String("listing_id", id.String()),
					slog.String("error", err.Error()),
				)
			}
			// Shutdown stops the batch. Other failures only affect their own listing.
			if errors.Is(err, errs.ErrShuttingDown) {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if report.Scanned > 0 {
		s.logger.InfoContext(ctx, "expiry sweep finished",
			slog.Int("scanned", report.Scanned),
			slog.Int("expired", report.Expired),
			slog.Int("skipped", report.Skipped),
			slog.Int("failed", report.Failed),
		)
	}
	return report, failed
}

// Run ticks every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.Ticker(s.opts.Interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "expiry sweeper started", slog.Duration("interval", s.opts.Interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(context.WithoutCancel(ctx), "expiry sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				s.logger.ErrorContext(ctx, "expiry sweep had failures", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *Sweeper) itemContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.ItemTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.ItemTimeout)
}

func classify(res *commands.TransitionResult, err error) string {
	switch {
	case err == nil && res.Committed():
		return "expired"
	case err == nil:
		return "skipped"
	case errs.IsAny(err, errs.ErrNotActive, errs.ErrNotFound, commands.ErrNotYetExpired):
		return "skipped"
	default:
		return "failed"
	}
}
