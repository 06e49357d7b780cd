package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/mock_ports.go -package=sharedmock

import (
	"context"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"

	"github.com/google/uuid"
)

// ListingStore persists listings. UpdateIfVersionMatches is the only write to an
// existing listing and must compare and swap atomically on the stored version.
type ListingStore interface {
	Insert(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	FindActive(ctx context.Context, filter ActiveFilter, sort SortOrder, page Page) ([]*listing.Listing, error)
	FindBySeller(ctx context.Context, seller uuid.UUID, includeInactive bool, page Page) ([]*listing.Listing, error)
	FindExpiredUpTo(ctx context.Context, now time.Time, limit int) ([]*listing.Listing, error)
	CountActiveBySeller(ctx context.Context, seller uuid.UUID) (int, error)
	UpdateIfVersionMatches(ctx context.Context, l *listing.Listing, expectedVersion int64) (bool, error)
}

// TransactionLog is append-only. Recording the same listing twice keeps the first record.
type TransactionLog interface {
	Record(ctx context.Context, r *transaction.Record) error
	History(ctx context.Context, actor uuid.UUID, page HistoryPage) ([]*transaction.Record, error)
}

// FundsProvider moves money. Withdraw returns false without moving anything when
// the balance is too low.
type FundsProvider interface {
	Withdraw(ctx context.Context, actor uuid.UUID, amount listing.Money) (bool, error)
	Deposit(ctx context.Context, actor uuid.UUID, amount listing.Money) error
	Balance(ctx context.Context, actor uuid.UUID) (listing.Money, error)
	Format(amount listing.Money) string
}

// GoodsTransfer hands goods to an actor, parking them for later pickup when they
// cannot be delivered now. An error means nothing was delivered.
type GoodsTransfer interface {
	GiveOrDefer(ctx context.Context, actor uuid.UUID, good listing.Good, reason DeliveryReason) (DeliveryMode, error)
}

type ReconciliationSink interface {
	Escalate(ctx context.Context, event ReconciliationEvent) error
}
