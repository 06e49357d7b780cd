package components

import (
	"context"
	"log/slog"

	"auction-house/internal/pkg/clock"
	"auction-house/internal/pkg/config"
	"auction-house/internal/pkg/keylock"
	"auction-house/internal/usecase"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/queries"
	"auction-house/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewLockCoordinator,
	NewPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewListingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewListingQueries,
		queries.NewAccountQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewLockCoordinator closes the coordinator on shutdown so waiting workflows
// fail with ErrShuttingDown instead of starting.
func NewLockCoordinator(lc fx.Lifecycle) *keylock.Coordinator {
	c := keylock.NewCoordinator()
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			c.Close()
			return nil
		},
	})
	return c
}

func NewPolicy(cfg config.Config) commands.Policy {
	p := commands.DefaultPolicy()
	p.TaxRate = cfg.Auction.TaxRate
	p.MaxDuration = cfg.Auction.MaxDuration
	p.MaxActivePerSeller = cfg.Auction.MaxActivePerSeller
	p.CommitTimeout = cfg.Auction.CommitTimeout
	p.RetryAttempts = cfg.Auction.CompensationAttempts
	return p
}

type listingCommandsParams struct {
	fx.In

	Listings       shared.ListingStore
	Log            shared.TransactionLog
	Funds          shared.FundsProvider
	Goods          shared.GoodsTransfer
	Reconciliation shared.ReconciliationSink
	Locks          *keylock.Coordinator
	Clock          clock.Clock
	Logger         *slog.Logger
	Policy         commands.Policy
}

func NewListingCommands(p listingCommandsParams) commands.ListingCommands {
	return commands.NewListingCommands(commands.Deps{
		Listings:       p.Listings,
		Log:            p.Log,
		Funds:          p.Funds,
		Goods:          p.Goods,
		Reconciliation: p.Reconciliation,
		Locks:          p.Locks,
		Clock:          p.Clock,
		Logger:         p.Logger.With(slog.String("component", "orchestrator")),
	}, p.Policy)
}
