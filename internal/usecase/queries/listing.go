package queries

//go:generate mockgen -source=listing.go -destination=../../../tests/mock/queries/mock_listing.go -package=queriesmock

import (
	"context"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidQuery = errs.New("invalid query")

type ActiveListingsQuery struct {
	Seller        *uuid.UUID
	Kind          string
	MaxPriceCents *int64
	Sort          shared.SortOrder
	Limit         int
	Offset        int
}

type ListingQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ListingView, error)
	ListActive(ctx context.Context, q ActiveListingsQuery) ([]*ListingView, error)
	ListBySeller(ctx context.Context, seller uuid.UUID, includeInactive bool, limit, offset int) ([]*ListingView, error)
}

type listingQueriesImpl struct {
	store shared.ListingStore
}

func NewListingQueries(store shared.ListingStore) ListingQueries {
	return &listingQueriesImpl{store: store}
}

func (q *listingQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	l, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrNotFound, "listing %s", id)
		}
		return nil, errs.Mark(errs.Wrap(err, "get listing"), errs.ErrPersistenceFailure)
	}
	return NewListingView(l), nil
}

func (q *listingQueriesImpl) ListActive(ctx context.Context, in ActiveListingsQuery) ([]*ListingView, error) {
	sort := in.Sort
	if sort == "" {
		sort = shared.SortEndingSoon
	}
	if !sort.IsValid() {
		return nil, errs.Wrapf(ErrInvalidQuery, "unknown sort %q", in.Sort)
	}
	if in.Offset < 0 {
		return nil, errs.Wrap(ErrInvalidQuery, "offset cannot be negative")
	}

	filter := shared.ActiveFilter{Seller: in.Seller, Kind: in.Kind}
	if in.MaxPriceCents != nil {
		if *in.MaxPriceCents <= 0 {
			return nil, errs.Wrap(ErrInvalidQuery, "max price must be positive")
		}
		m := listing.NewMoney(*in.MaxPriceCents)
		filter.MaxPrice = &m
	}

	items, err := q.store.FindActive(ctx, filter, sort, shared.Page{Limit: ValidateLimit(in.Limit), Offset: in.Offset})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list active listings"), errs.ErrPersistenceFailure)
	}
	return NewListingViews(items), nil
}

func (q *listingQueriesImpl) ListBySeller(ctx context.Context, seller uuid.UUID, includeInactive bool, limit, offset int) ([]*ListingView, error) {
	if offset < 0 {
		return nil, errs.Wrap(ErrInvalidQuery, "offset cannot be negative")
	}
	items, err := q.store.FindBySeller(ctx, seller, includeInactive, shared.Page{Limit: ValidateLimit(limit), Offset: offset})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list seller listings"), errs.ErrPersistenceFailure)
	}
	return NewListingViews(items), nil
}

func NewListingViews(items []*listing.Listing) []*ListingView {
	views := make([]*ListingView, 0, len(items))
	for _, l := range items {
		views = append(views, NewListingView(l))
	}
	return views
}
