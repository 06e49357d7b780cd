package components

import (
	"log/slog"

	"auction-house/internal/infra/db"
	"auction-house/internal/infra/memory"
	"auction-house/internal/infra/repository"
	"auction-house/internal/pkg/config"
	"auction-house/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores binds every collaborator port to the adapter chosen by STORE_DRIVER.
type Stores struct {
	fx.Out

	Listings       shared.ListingStore
	Log            shared.TransactionLog
	Funds          shared.FundsProvider
	Goods          shared.GoodsTransfer
	Reconciliation shared.ReconciliationSink
}

func NewStores(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) Stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, state is lost on restart")
		return Stores{
			Listings:       memory.NewListingStore(),
			Log:            memory.NewTransactionLog(),
			Funds:          memory.NewWallet(cfg.Auction.Currency),
			Goods:          memory.NewDelivery(cfg.Delivery.InventoryCapacity),
			Reconciliation: memory.NewReconciliationLog(logger),
		}
	}

	repoLogger := logger.With(slog.String("layer", "repository"))
	return Stores{
		Listings:       repository.NewListingRepository(pool, repoLogger),
		Log:            repository.NewTransactionLogRepository(pool, repoLogger),
		Funds:          repository.NewWalletRepository(pool, cfg.Auction.Currency, repoLogger),
		Goods:          repository.NewDeliveryRepository(db.NewTxRunner(pool, repoLogger), cfg.Delivery.InventoryCapacity, repoLogger),
		Reconciliation: repository.NewReconciliationRepository(pool, repoLogger),
	}
}
