package response

import (
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/queries"
	"auction-house/internal/usecase/shared"
)

const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
)

type CreateListingResponse struct {
	Listing *ListingResponse `json:"listing"`
	Message string           `json:"message"`
}

func FromCreateResult(r *commands.CreateListingResult) *CreateListingResponse {
	return &CreateListingResponse{
		Listing: FromListingView(queries.NewListingView(r.Listing)),
		Message: r.Message,
	}
}

// CommandResponse is returned by purchase and cancel. Outcome is "conflict"
// when settlement ran but the final write lost to a concurrent writer.
type CommandResponse struct {
	Outcome           string           `json:"outcome"`
	Message           string           `json:"message"`
	Listing           *ListingResponse `json:"listing"`
	Record            *RecordResponse  `json:"record,omitempty"`
	Delivery          string           `json:"delivery,omitempty"`
	SellerAmountCents *int64           `json:"seller_amount_cents,omitempty"`
}

func FromPurchaseResult(r *commands.PurchaseResult) *CommandResponse {
	res := fromOutcome(r.Outcome, r.Message, r.Delivery)
	res.Listing = FromListingView(queries.NewListingView(r.Listing))
	if r.Record != nil {
		res.Record = FromRecordView(queries.NewRecordView(r.Record))
	}
	amount := r.SellerAmount.Cents()
	res.SellerAmountCents = &amount
	return res
}

func FromTransitionResult(r *commands.TransitionResult) *CommandResponse {
	res := fromOutcome(r.Outcome, r.Message, r.Delivery)
	res.Listing = FromListingView(queries.NewListingView(r.Listing))
	if r.Record != nil {
		res.Record = FromRecordView(queries.NewRecordView(r.Record))
	}
	return res
}

func fromOutcome(o commands.Outcome, msg string, delivery shared.DeliveryMode) *CommandResponse {
	res := &CommandResponse{Outcome: OutcomeCommitted, Message: msg, Delivery: string(delivery)}
	if o == commands.OutcomeVersionConflict {
		res.Outcome = OutcomeConflict
	}
	return res
}
