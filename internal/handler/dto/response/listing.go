package response

import (
	"encoding/json"
	"time"

	"auction-house/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Timestamps leave the API as unix seconds.
var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: time.Time{},
		DstType: int64(0),
		Fn: func(src any) (any, error) {
			return src.(time.Time).Unix(), nil
		},
	}},
}

type ListingResponse struct {
	ID                uuid.UUID       `json:"id"`
	SellerID          uuid.UUID       `json:"seller_id"`
	GoodKind          string          `json:"good_kind"`
	Quantity          int             `json:"quantity"`
	GoodData          json.RawMessage `json:"good_data,omitempty" swaggertype:"object"`
	PriceCents        int64           `json:"price_cents"`
	BuyNowPriceCents  *int64          `json:"buy_now_price_cents,omitempty"`
	ReservePriceCents *int64          `json:"reserve_price_cents,omitempty"`
	Status            string          `json:"status"`
	Version           int64           `json:"version"`
	BuyerID           *uuid.UUID      `json:"buyer_id,omitempty"`
	CreatedAt         int64           `json:"created_at"`
	EndAt             int64           `json:"end_at"`
	UpdatedAt         int64           `json:"updated_at"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	if v == nil {
		return nil
	}
	var res ListingResponse
	if err := copier.CopyWithOption(&res, v, copyOpts); err != nil {
		panic(err) // the converter set covers every field type
	}
	return &res
}

func FromListingViews(items []*queries.ListingView) []*ListingResponse {
	res := make([]*ListingResponse, len(items))
	for i, it := range items {
		res[i] = FromListingView(it)
	}
	return res
}

type ListingListResponse struct {
	Listings []*ListingResponse `json:"listings"`
}

type RecordResponse struct {
	ID             uuid.UUID  `json:"id"`
	ListingID      uuid.UUID  `json:"listing_id"`
	SellerID       uuid.UUID  `json:"seller_id"`
	Kind           string     `json:"kind"`
	CounterpartyID *uuid.UUID `json:"counterparty_id,omitempty"`
	AmountCents    *int64     `json:"amount_cents,omitempty"`
	Detail         string     `json:"detail"`
	Timestamp      int64      `json:"timestamp"`
}

func FromRecordView(v *queries.RecordView) *RecordResponse {
	if v == nil {
		return nil
	}
	var res RecordResponse
	if err := copier.CopyWithOption(&res, v, copyOpts); err != nil {
		panic(err)
	}
	return &res
}

type HistoryResponse struct {
	Records    []*RecordResponse `json:"records"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromHistory(items []*queries.RecordView, next *queries.Cursor) *HistoryResponse {
	res := &HistoryResponse{Records: make([]*RecordResponse, len(items))}
	for i, it := range items {
		res.Records[i] = FromRecordView(it)
	}
	if next != nil {
		res.NextCursor = next.Before
	}
	return res
}

type BalanceResponse struct {
	ActorID      uuid.UUID `json:"actor_id"`
	BalanceCents int64     `json:"balance_cents"`
	Formatted    string    `json:"formatted"`
}

func FromBalanceView(v *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{ActorID: v.ActorID, BalanceCents: v.BalanceCents, Formatted: v.Formatted}
}
