package queries

import (
	"encoding/json"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"

	"github.com/google/uuid"
)

// ListingView represents read-optimized listing data
type ListingView struct {
	ID                uuid.UUID       `json:"id"`
	SellerID          uuid.UUID       `json:"seller_id"`
	GoodKind          string          `json:"good_kind"`
	Quantity          int             `json:"quantity"`
	GoodData          json.RawMessage `json:"good_data,omitempty"`
	PriceCents        int64           `json:"price_cents"`
	BuyNowPriceCents  *int64          `json:"buy_now_price_cents,omitempty"`
	ReservePriceCents *int64          `json:"reserve_price_cents,omitempty"`
	Status            string          `json:"status"`
	Version           int64           `json:"version"`
	BuyerID           *uuid.UUID      `json:"buyer_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	EndAt             time.Time       `json:"end_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// RecordView is one line of an actor's trade history
type RecordView struct {
	ID             uuid.UUID  `json:"id"`
	ListingID      uuid.UUID  `json:"listing_id"`
	SellerID       uuid.UUID  `json:"seller_id"`
	Kind           string     `json:"kind"`
	CounterpartyID *uuid.UUID `json:"counterparty_id,omitempty"`
	AmountCents    *int64     `json:"amount_cents,omitempty"`
	Detail         string     `json:"detail"`
	Timestamp      time.Time  `json:"timestamp"`
}

type BalanceView struct {
	ActorID      uuid.UUID `json:"actor_id"`
	BalanceCents int64     `json:"balance_cents"`
	Formatted    string    `json:"formatted"`
}

func NewListingView(l *listing.Listing) *ListingView {
	v := &ListingView{
		ID:         l.ID(),
		SellerID:   l.Seller(),
		GoodKind:   l.Good().Kind(),
		Quantity:   l.Good().Quantity(),
		GoodData:   l.Good().Data(),
		PriceCents: l.Price().Cents(),
		Status:     l.Status().String(),
		Version:    l.Version(),
		BuyerID:    l.Buyer(),
		CreatedAt:  l.CreatedAt(),
		EndAt:      l.EndAt(),
		UpdatedAt:  l.UpdatedAt(),
	}
	if m := l.BuyNowPrice(); m != nil {
		c := m.Cents()
		v.BuyNowPriceCents = &c
	}
	if m := l.ReservePrice(); m != nil {
		c := m.Cents()
		v.ReservePriceCents = &c
	}
	return v
}

func NewRecordView(r *transaction.Record) *RecordView {
	v := &RecordView{
		ID:             r.ID(),
		ListingID:      r.ListingID(),
		SellerID:       r.Seller(),
		Kind:           r.Kind().String(),
		CounterpartyID: r.Counterparty(),
		Detail:         r.Detail(),
		Timestamp:      r.Timestamp(),
	}
	if m := r.Amount(); m != nil {
		c := m.Cents()
		v.AmountCents = &c
	}
	return v
}
