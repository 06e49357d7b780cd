package commands

//go:generate mockgen -source=listing.go -destination=../../../tests/mock/commands/mock_listing.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/infra"
	"auction-house/internal/pkg/clock"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/keylock"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDurationTooLong = errs.New("listing duration exceeds the maximum")
	ErrNotYetExpired   = errs.New("listing has not reached its end time")
	ErrListingEnded    = errs.New("listing has ended")
)

// Outcome distinguishes a committed workflow from one whose final
// compare-and-swap lost against a concurrent writer.
type Outcome string

const (
	OutcomeCommitted       Outcome = "committed"
	OutcomeVersionConflict Outcome = "version_conflict"
)

type CreateListingInput struct {
	Seller       uuid.UUID
	GoodKind     string
	Quantity     int
	GoodData     []byte
	Price        int64
	BuyNowPrice  *int64
	ReservePrice *int64
	Duration     time.Duration
}

type CreateListingResult struct {
	Listing *listing.Listing
	Message string
}

type PurchaseResult struct {
	Outcome      Outcome
	Listing      *listing.Listing
	Record       *transaction.Record
	SellerAmount listing.Money
	Delivery     shared.DeliveryMode
	Message      string
}

func (r *PurchaseResult) Committed() bool { return r != nil && r.Outcome == OutcomeCommitted }

type TransitionResult struct {
	Outcome  Outcome
	Listing  *listing.Listing
	Record   *transaction.Record
	Delivery shared.DeliveryMode
	Message  string
}

func (r *TransitionResult) Committed() bool { return r != nil && r.Outcome == OutcomeCommitted }

// ListingCommands runs every state-changing workflow on a listing. Each call holds
// the listing's lock for its whole duration.
type ListingCommands interface {
	Create(ctx context.Context, in CreateListingInput) (*CreateListingResult, error)
	Purchase(ctx context.Context, buyer, listingID uuid.UUID) (*PurchaseResult, error)
	Cancel(ctx context.Context, caller, listingID uuid.UUID) (*TransitionResult, error)
	Expire(ctx context.Context, listingID uuid.UUID) (*TransitionResult, error)
}

type Deps struct {
	Listings       shared.ListingStore
	Log            shared.TransactionLog
	Funds          shared.FundsProvider
	Goods          shared.GoodsTransfer
	Reconciliation shared.ReconciliationSink
	Locks          *keylock.Coordinator
	Clock          clock.Clock
	Logger         *slog.Logger
}

type Policy struct {
	TaxRate            float64
	MaxDuration        time.Duration
	MaxActivePerSeller int
	// CommitTimeout bounds the steps that run after money has moved.
	CommitTimeout time.Duration
	RetryAttempts int
	RetryMin      time.Duration
	RetryMax      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		TaxRate:       0.05,
		MaxDuration:   7 * 24 * time.Hour,
		CommitTimeout: 15 * time.Second,
		RetryAttempts: 5,
		RetryMin:      50 * time.Millisecond,
		RetryMax:      2 * time.Second,
	}
}

type listingCommandsImpl struct {
	listings shared.ListingStore
	log      shared.TransactionLog
	funds    shared.FundsProvider
	goods    shared.GoodsTransfer
	recon    shared.ReconciliationSink
	locks    *keylock.Coordinator
	clock    clock.Clock
	logger   *slog.Logger
	policy   Policy
}

func NewListingCommands(deps Deps, policy Policy) ListingCommands {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Locks == nil {
		deps.Locks = keylock.NewCoordinator()
	}
	if policy.RetryAttempts < 1 {
		policy.RetryAttempts = 1
	}
	return &listingCommandsImpl{
		listings: deps.Listings,
		log:      deps.Log,
		funds:    deps.Funds,
		goods:    deps.Goods,
		recon:    deps.Reconciliation,
		locks:    deps.Locks,
		clock:    deps.Clock,
		logger:   deps.Logger,
		policy:   policy,
	}
}

func (uc *listingCommandsImpl) Create(ctx context.Context, in CreateListingInput) (*CreateListingResult, error) {
	if uc.policy.MaxDuration > 0 && in.Duration > uc.policy.MaxDuration {
		return nil, errs.Mark(errs.Wrapf(ErrDurationTooLong, "%s > %s", in.Duration, uc.policy.MaxDuration), errs.ErrInvalidListing)
	}
	good, err := listing.NewGood(in.GoodKind, in.Quantity, in.GoodData)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidListing)
	}
	l, err := listing.NewListing(listing.NewListingParams{
		Seller:       in.Seller,
		Good:         good,
		Price:        in.Price,
		BuyNowPrice:  in.BuyNowPrice,
		ReservePrice: in.ReservePrice,
		CreatedAt:    uc.clock.Now(),
		Duration:     in.Duration,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidListing)
	}

	// The seller lock keeps concurrent creates from slipping past the active cap.
	res, err := keylock.Do(ctx, uc.locks, sellerKey(in.Seller), func(ctx context.Context) (*CreateListingResult, error) {
		if err := uc.checkSellerCap(ctx, in.Seller); err != nil {
			return nil, err
		}
		return keylock.Do(ctx, uc.locks, listingKey(l.ID()), func(ctx context.Context) (*CreateListingResult, error) {
			if err := uc.listings.Insert(ctx, l); err != nil {
				return nil, errs.Mark(errs.Wrap(err, "insert listing"), errs.ErrPersistenceFailure)
			}
			return &CreateListingResult{
				Listing: l,
				Message: "Listed " + good.String() + " for " + uc.funds.Format(l.Price()) + ".",
			}, nil
		})
	})
	observe("create", OutcomeCommitted, err)
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "listing created",
		slog.String("listing_id", l.ID().String()),
		slog.String("seller_id", in.Seller.String()),
		slog.Int64("price_cents", l.Price().Cents()),
		slog.Time("end_at", l.EndAt()),
	)
	return res, nil
}

func (uc *listingCommandsImpl) checkSellerCap(ctx context.Context, seller uuid.UUID) error {
	if uc.policy.MaxActivePerSeller <= 0 {
		return nil
	}
	n, err := uc.listings.CountActiveBySeller(ctx, seller)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "count active listings"), errs.ErrPersistenceFailure)
	}
	if n >= uc.policy.MaxActivePerSeller {
		return errs.Wrapf(errs.ErrListingLimitReached, "%d active", n)
	}
	return nil
}

// load re-reads the listing inside the lock. Nothing read before the lock is trusted.
func (uc *listingCommandsImpl) load(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrNotFound, "listing %s", id)
		}
		return nil, errs.Mark(errs.Wrap(err, "load listing"), errs.ErrPersistenceFailure)
	}
	return l, nil
}

func listingKey(id uuid.UUID) string { return "listing:" + id.String() }
func sellerKey(id uuid.UUID) string  { return "seller:" + id.String() }
