package listing

import (
	"time"

	"auction-house/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveDuration = errs.New("listing duration must be positive")
	ErrInvalidBuyNowPrice  = errs.New("buy-now price must be positive and not below the price")
	ErrInvalidReservePrice = errs.New("reserve price must be positive and not above the buy-now price")
	ErrMissingSeller       = errs.New("seller is required")
	ErrTransitionRejected  = errs.New("listing is not active")
)

type Listing struct {
	id           uuid.UUID
	seller       uuid.UUID
	good         Good
	price        Money
	buyNowPrice  *Money
	reservePrice *Money
	createdAt    time.Time
	endAt        time.Time
	status       Status
	version      int64
	buyer        *uuid.UUID
	updatedAt    time.Time
}

type NewListingParams struct {
	Seller       uuid.UUID
	Good         Good
	Price        int64
	BuyNowPrice  *int64
	ReservePrice *int64
	CreatedAt    time.Time
	Duration     time.Duration
}

func NewListing(p NewListingParams) (*Listing, error) {
	if p.Seller == uuid.Nil {
		return nil, ErrMissingSeller
	}
	if p.Good.IsZero() {
		return nil, ErrEmptyGood
	}
	price, err := NewPositiveMoney(p.Price)
	if err != nil {
		return nil, err
	}
	if p.Duration <= 0 {
		return nil, ErrNonPositiveDuration
	}

	var buyNow *Money
	if p.BuyNowPrice != nil {
		if *p.BuyNowPrice <= 0 || *p.BuyNowPrice < p.Price {
			return nil, ErrInvalidBuyNowPrice
		}
		m := NewMoney(*p.BuyNowPrice)
		buyNow = &m
	}

	var reserve *Money
	if p.ReservePrice != nil {
		if *p.ReservePrice <= 0 || (buyNow != nil && *p.ReservePrice > buyNow.Cents()) {
			return nil, ErrInvalidReservePrice
		}
		m := NewMoney(*p.ReservePrice)
		reserve = &m
	}

	return &Listing{
		id:           uuid.New(),
		seller:       p.Seller,
		good:         p.Good,
		price:        price,
		buyNowPrice:  buyNow,
		reservePrice: reserve,
		createdAt:    p.CreatedAt,
		endAt:        p.CreatedAt.Add(p.Duration),
		status:       StatusActive,
		version:      1,
		updatedAt:    p.CreatedAt,
	}, nil
}

type ReconstructParams struct {
	ID           uuid.UUID
	Seller       uuid.UUID
	Good         Good
	Price        int64
	BuyNowPrice  *int64
	ReservePrice *int64
	CreatedAt    time.Time
	EndAt        time.Time
	Status       Status
	Version      int64
	Buyer        *uuid.UUID
	UpdatedAt    time.Time
}

// Reconstruct rebuilds a persisted listing without validation.
func Reconstruct(p ReconstructParams) *Listing {
	l := &Listing{
		id:        p.ID,
		seller:    p.Seller,
		good:      p.Good,
		price:     NewMoney(p.Price),
		createdAt: p.CreatedAt,
		endAt:     p.EndAt,
		status:    p.Status,
		version:   p.Version,
		updatedAt: p.UpdatedAt,
	}
	if p.BuyNowPrice != nil {
		m := NewMoney(*p.BuyNowPrice)
		l.buyNowPrice = &m
	}
	if p.ReservePrice != nil {
		m := NewMoney(*p.ReservePrice)
		l.reservePrice = &m
	}
	if p.Buyer != nil {
		b := *p.Buyer
		l.buyer = &b
	}
	return l
}

func (l *Listing) ID() uuid.UUID        { return l.id }
func (l *Listing) Seller() uuid.UUID    { return l.seller }
func (l *Listing) Good() Good           { return l.good }
func (l *Listing) Price() Money         { return l.price }
func (l *Listing) BuyNowPrice() *Money  { return copyMoney(l.buyNowPrice) }
func (l *Listing) ReservePrice() *Money { return copyMoney(l.reservePrice) }
func (l *Listing) CreatedAt() time.Time { return l.createdAt }
func (l *Listing) EndAt() time.Time     { return l.endAt }
func (l *Listing) Status() Status       { return l.status }
func (l *Listing) Version() int64       { return l.version }
func (l *Listing) UpdatedAt() time.Time { return l.updatedAt }
func (l *Listing) IsActive() bool       { return l.status == StatusActive }

func (l *Listing) IsSeller(id uuid.UUID) bool {
	return l.seller == id
}

func (l *Listing) Buyer() *uuid.UUID {
	if l.buyer == nil {
		return nil
	}
	b := *l.buyer
	return &b
}

// IsExpiredAt reports whether the listing's end time has been reached.
func (l *Listing) IsExpiredAt(now time.Time) bool {
	return !l.endAt.After(now)
}

// MarkSold returns the sold successor of l. l itself is left untouched.
func (l *Listing) MarkSold(buyer uuid.UUID, at time.Time) (*Listing, error) {
	next, err := l.transition(StatusSold, at)
	if err != nil {
		return nil, err
	}
	next.buyer = &buyer
	return next, nil
}

func (l *Listing) MarkCancelled(at time.Time) (*Listing, error) {
	return l.transition(StatusCancelled, at)
}

func (l *Listing) MarkExpired(at time.Time) (*Listing, error) {
	return l.transition(StatusExpired, at)
}

func (l *Listing) transition(to Status, at time.Time) (*Listing, error) {
	if !l.status.CanTransitionTo(to) {
		return nil, errs.Wrapf(ErrTransitionRejected, "%s -> %s", l.status, to)
	}
	next := *l
	next.status = to
	next.version = l.version + 1
	next.updatedAt = at
	return &next, nil
}

func copyMoney(m *Money) *Money {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
