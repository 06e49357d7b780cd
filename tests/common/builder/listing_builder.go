//go:build unit || e2e

package builder

import (
	"time"

	"auction-house/internal/domain/listing"
	reqdto "auction-house/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	Seller       uuid.UUID
	GoodKind     string
	Quantity     int
	GoodData     []byte
	Price        int64
	BuyNowPrice  *int64
	ReservePrice *int64
	CreatedAt    time.Time
	Duration     time.Duration
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		Seller:    uuid.New(),
		GoodKind:  "diamond_sword",
		Quantity:  1,
		GoodData:  []byte(`{"enchantments":["sharpness:5"]}`),
		Price:     10_000,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  24 * time.Hour,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) BuildGood() (listing.Good, error) {
	return listing.NewGood(b.GoodKind, b.Quantity, b.GoodData)
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	good, err := b.BuildGood()
	if err != nil {
		return nil, err
	}
	return listing.NewListing(listing.NewListingParams{
		Seller:       b.Seller,
		Good:         good,
		Price:        b.Price,
		BuyNowPrice:  b.BuyNowPrice,
		ReservePrice: b.ReservePrice,
		CreatedAt:    b.CreatedAt,
		Duration:     b.Duration,
	})
}

// MustBuild panics on invalid input; tests use it for fixtures they know are valid.
func (b *ListingBuilder) MustBuild() *listing.Listing {
	l, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return l
}

// BuildInState reconstructs a listing already in the given state and version.
func (b *ListingBuilder) BuildInState(status listing.Status, version int64) *listing.Listing {
	l := b.MustBuild()
	return listing.Reconstruct(listing.ReconstructParams{
		ID:           l.ID(),
		Seller:       l.Seller(),
		Good:         l.Good(),
		Price:        l.Price().Cents(),
		BuyNowPrice:  b.BuyNowPrice,
		ReservePrice: b.ReservePrice,
		CreatedAt:    l.CreatedAt(),
		EndAt:        l.EndAt(),
		Status:       status,
		Version:      version,
		UpdatedAt:    l.UpdatedAt(),
	})
}

// Restate copies l under a forced status and version, bypassing the state machine.
func Restate(l *listing.Listing, status listing.Status, version int64) *listing.Listing {
	var buyNow, reserve *int64
	if m := l.BuyNowPrice(); m != nil {
		c := m.Cents()
		buyNow = &c
	}
	if m := l.ReservePrice(); m != nil {
		c := m.Cents()
		reserve = &c
	}
	return listing.Reconstruct(listing.ReconstructParams{
		ID:           l.ID(),
		Seller:       l.Seller(),
		Good:         l.Good(),
		Price:        l.Price().Cents(),
		BuyNowPrice:  buyNow,
		ReservePrice: reserve,
		CreatedAt:    l.CreatedAt(),
		EndAt:        l.EndAt(),
		Status:       status,
		Version:      version,
		Buyer:        l.Buyer(),
		UpdatedAt:    l.UpdatedAt(),
	})
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Good: reqdto.GoodRequest{
			Kind:     b.GoodKind,
			Quantity: b.Quantity,
			Data:     b.GoodData,
		},
		Price:        b.Price,
		BuyNowPrice:  b.BuyNowPrice,
		ReservePrice: b.ReservePrice,
		Duration:     b.Duration.String(),
	}
}

func (b *ListingBuilder) WithSeller(seller uuid.UUID) *ListingBuilder {
	b.Seller = seller
	return b
}

func (b *ListingBuilder) WithPrice(cents int64) *ListingBuilder {
	b.Price = cents
	return b
}

func (b *ListingBuilder) WithBuyNowPrice(cents int64) *ListingBuilder {
	b.BuyNowPrice = &cents
	return b
}

func (b *ListingBuilder) WithReservePrice(cents int64) *ListingBuilder {
	b.ReservePrice = &cents
	return b
}

func (b *ListingBuilder) WithGood(kind string, quantity int) *ListingBuilder {
	b.GoodKind = kind
	b.Quantity = quantity
	return b
}

func (b *ListingBuilder) WithCreatedAt(t time.Time) *ListingBuilder {
	b.CreatedAt = t
	return b
}

func (b *ListingBuilder) WithDuration(d time.Duration) *ListingBuilder {
	b.Duration = d
	return b
}
