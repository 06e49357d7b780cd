package request

import (
	"encoding/json"
	"time"

	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/commands"

	"github.com/google/uuid"
)

var errInvalidDuration = errs.New("duration must be a positive Go duration such as 24h or 90m")

type GoodRequest struct {
	Kind     string          `json:"kind" binding:"required,max=64"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Data     json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

type CreateListingRequest struct {
	Good         GoodRequest `json:"good" binding:"required"`
	Price        int64       `json:"price" binding:"required,min=1"`
	BuyNowPrice  *int64      `json:"buy_now_price,omitempty" binding:"omitempty,min=1"`
	ReservePrice *int64      `json:"reserve_price,omitempty" binding:"omitempty,min=1"`
	Duration     string      `json:"duration" binding:"required" example:"24h"`
}

func (r *CreateListingRequest) ToInput(seller uuid.UUID) (commands.CreateListingInput, error) {
	d, err := time.ParseDuration(r.Duration)
	if err != nil || d <= 0 {
		return commands.CreateListingInput{}, errs.Wrapf(errInvalidDuration, "got %q", r.Duration)
	}
	return commands.CreateListingInput{
		Seller:       seller,
		GoodKind:     r.Good.Kind,
		Quantity:     r.Good.Quantity,
		GoodData:     r.Good.Data,
		Price:        r.Price,
		BuyNowPrice:  r.BuyNowPrice,
		ReservePrice: r.ReservePrice,
		Duration:     d,
	}, nil
}

// ListActiveQuery binds the query string of GET /listings.
type ListActiveQuery struct {
	Seller   string `form:"seller"`
	Kind     string `form:"kind"`
	MaxPrice *int64 `form:"max_price"`
	Sort     string `form:"sort"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset" binding:"min=0"`
}

type SellerListingsQuery struct {
	IncludeInactive bool `form:"include_inactive"`
	Limit           int  `form:"limit"`
	Offset          int  `form:"offset" binding:"min=0"`
}

type HistoryQuery struct {
	Before string `form:"before"`
	Limit  int    `form:"limit"`
}
