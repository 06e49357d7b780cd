package commands

import (
	"context"
	"fmt"
	"log/slog"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/keylock"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

func (uc *listingCommandsImpl) Purchase(ctx context.Context, buyer, listingID uuid.UUID) (*PurchaseResult, error) {
	res, err := keylock.Do(ctx, uc.locks, listingKey(listingID), func(ctx context.Context) (*PurchaseResult, error) {
		return uc.purchase(ctx, buyer, listingID)
	})
	outcome := OutcomeCommitted
	if res != nil {
		outcome = res.Outcome
	}
	observe("purchase", outcome, err)
	return res, err
}

func (uc *listingCommandsImpl) purchase(ctx context.Context, buyer, listingID uuid.UUID) (*PurchaseResult, error) {
	current, err := uc.load(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, errs.Wrapf(errs.ErrNotActive, "listing is %s", current.Status())
	}
	if current.IsExpiredAt(uc.clock.Now()) {
		return nil, errs.Mark(ErrListingEnded, errs.ErrNotActive)
	}
	if current.IsSeller(buyer) {
		return nil, errs.ErrSelfTradeRejected
	}

	price := current.Price()
	log := uc.logger.With(
		slog.String("listing_id", listingID.String()),
		slog.String("buyer_id", buyer.String()),
		slog.String("seller_id", current.Seller().String()),
	)

	// Withdraw is the last point where the purchase can be abandoned without side effects.
	ok, err := uc.funds.Withdraw(ctx, buyer, price)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "withdraw from buyer"), errs.ErrPersistenceFailure)
	}
	if !ok {
		return nil, errs.Wrapf(errs.ErrInsufficientFunds, "price %s", uc.funds.Format(price))
	}

	commitCtx, cancel := uc.commitContext(ctx)
	defer cancel()

	sellerAmount := price.AfterTax(uc.policy.TaxRate)
	if sellerAmount.IsPositive() {
		if err := uc.funds.Deposit(commitCtx, current.Seller(), sellerAmount); err != nil {
			return nil, uc.refundBuyer(commitCtx, log, current, buyer, err)
		}
	}

	mode, err := uc.deliver(commitCtx, buyer, current.Good(), shared.ReasonPurchased)
	if err != nil {
		log.ErrorContext(commitCtx, "goods delivery to buyer failed", slog.String("error", err.Error()))
		uc.escalate(commitCtx, shared.ReconciliationEvent{
			Kind:      shared.ReconDeliveryFailed,
			ListingID: listingID,
			Actor:     buyer,
			Amount:    &price,
			Detail: map[string]any{
				"good":  current.Good().String(),
				"error": err.Error(),
			},
		})
	}

	next, err := current.MarkSold(buyer, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrNotActive)
	}

	swapped, err := uc.swap(commitCtx, next, current.Version())
	if err != nil {
		uc.escalate(commitCtx, uc.casLostEvent(commitCtx, current, buyer, sellerAmount, err))
		return nil, errs.Mark(errs.Wrap(err, "commit sold listing"), errs.ErrPersistenceFailure)
	}
	if !swapped {
		// Funds and goods already moved and cannot be taken back safely, so the
		// loss is escalated instead of rolled back.
		log.ErrorContext(commitCtx, "purchase lost the version race after settlement",
			slog.Int64("expected_version", current.Version()))
		uc.escalate(commitCtx, uc.casLostEvent(commitCtx, current, buyer, sellerAmount, nil))
		return &PurchaseResult{
			Outcome:      OutcomeVersionConflict,
			Listing:      current,
			SellerAmount: sellerAmount,
			Delivery:     mode,
			Message:      "The listing changed while your purchase was processed. Staff have been notified.",
		}, nil
	}

	rec, err := transaction.NewSoldRecord(next, fmt.Sprintf("sold for %s, seller received %s",
		uc.funds.Format(price), uc.funds.Format(sellerAmount)))
	if err == nil {
		err = uc.writeRecord(commitCtx, rec)
	}
	if err != nil {
		rec = nil
		uc.escalateMissingRecord(commitCtx, next, err)
	}

	log.InfoContext(ctx, "listing sold",
		slog.Int64("price_cents", price.Cents()),
		slog.Int64("seller_amount_cents", sellerAmount.Cents()),
		slog.String("delivery", string(mode)),
	)

	return &PurchaseResult{
		Outcome:      OutcomeCommitted,
		Listing:      next,
		Record:       rec,
		SellerAmount: sellerAmount,
		Delivery:     mode,
		Message:      purchaseMessage(current.Good(), uc.funds.Format(price), mode),
	}, nil
}

// refundBuyer compensates the withdrawal after the seller could not be paid.
func (uc *listingCommandsImpl) refundBuyer(ctx context.Context, log *slog.Logger, l *listing.Listing, buyer uuid.UUID, payoutErr error) error {
	price := l.Price()
	refundErr := uc.retry(ctx, "refund buyer", func(ctx context.Context) error {
		return uc.funds.Deposit(ctx, buyer, price)
	})
	if refundErr == nil {
		compensated("refunded")
		log.WarnContext(ctx, "seller payout failed, buyer refunded", slog.String("error", payoutErr.Error()))
		return errs.Mark(errs.Wrap(payoutErr, "deposit to seller"), errs.ErrSellerPayoutFailed)
	}

	compensated("failed")
	log.ErrorContext(ctx, "buyer refund failed after seller payout failure",
		slog.String("payout_error", payoutErr.Error()),
		slog.String("refund_error", refundErr.Error()),
	)
	uc.escalate(ctx, shared.ReconciliationEvent{
		Kind:      shared.ReconCompensationFailed,
		ListingID: l.ID(),
		Actor:     buyer,
		Amount:    &price,
		Detail: map[string]any{
			"seller":       l.Seller().String(),
			"payout_error": payoutErr.Error(),
			"refund_error": refundErr.Error(),
		},
	})
	return errs.Mark(multierr.Combine(payoutErr, refundErr), errs.ErrCompensationFailure)
}

func (uc *listingCommandsImpl) casLostEvent(ctx context.Context, l *listing.Listing, buyer uuid.UUID, sellerAmount listing.Money, cause error) shared.ReconciliationEvent {
	price := l.Price()
	detail := map[string]any{
		"seller":           l.Seller().String(),
		"seller_amount":    sellerAmount.Cents(),
		"expected_version": l.Version(),
	}
	if cause != nil {
		detail["error"] = cause.Error()
	}
	if latest, err := uc.listings.FindByID(ctx, l.ID()); err == nil {
		detail["observed_status"] = latest.Status().String()
		detail["observed_version"] = latest.Version()
		if b := latest.Buyer(); b != nil {
			detail["observed_buyer"] = b.String()
		}
	}
	return shared.ReconciliationEvent{
		Kind:      shared.ReconPurchaseCASLost,
		ListingID: l.ID(),
		Actor:     buyer,
		Amount:    &price,
		Detail:    detail,
	}
}

func purchaseMessage(good listing.Good, price string, mode shared.DeliveryMode) string {
	msg := "Bought " + good.String() + " for " + price + "."
	switch mode {
	case shared.DeliveryDirect:
		return msg + " It is in your inventory."
	case shared.DeliveryDeferred:
		return msg + " Your inventory is full, it was sent to your mailbox."
	default:
		return msg + " Delivery is delayed, staff have been notified."
	}
}
