package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"auction-house/internal/pkg/clock"
	"auction-house/internal/pkg/config"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/shared"
	"auction-house/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(startSweeper),
)

func NewSweeper(cfg config.Config, listings shared.ListingStore, cmds commands.ListingCommands, clk clock.Clock, logger *slog.Logger) *sweeper.Sweeper {
	return sweeper.New(listings, cmds, clk, sweeper.Options{
		Interval:    cfg.Sweeper.Interval,
		BatchSize:   cfg.Sweeper.BatchSize,
		ItemTimeout: cfg.Sweeper.ItemTimeout,
		Workers:     cfg.Sweeper.Workers,
	}, logger.With(slog.String("component", "sweeper")))
}

func startSweeper(lc fx.Lifecycle, cfg config.Config, s *sweeper.Sweeper, logger *slog.Logger) {
	if !cfg.Sweeper.Enabled {
		logger.Info("expiry sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
