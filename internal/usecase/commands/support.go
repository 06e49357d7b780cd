package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/metrics"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"
	"go.uber.org/multierr"
)

var errorLabels = []struct {
	target error
	label  string
}{
	{errs.ErrNotFound, "not_found"},
	{errs.ErrNotActive, "not_active"},
	{errs.ErrUnauthorized, "unauthorized"},
	{errs.ErrSelfTradeRejected, "self_trade"},
	{errs.ErrInsufficientFunds, "insufficient_funds"},
	{errs.ErrInvalidListing, "invalid_listing"},
	{errs.ErrListingLimitReached, "limit_reached"},
	{errs.ErrSellerPayoutFailed, "payout_failed"},
	{errs.ErrCompensationFailure, "compensation_failed"},
	{errs.ErrShuttingDown, "shutting_down"},
	{errs.ErrPersistenceFailure, "persistence_failure"},
	{ErrNotYetExpired, "not_expired"},
}

func observe(op string, outcome Outcome, err error) {
	label := string(outcome)
	if err != nil {
		label = "error"
		for _, l := range errorLabels {
			if errors.Is(err, l.target) {
				label = l.label
				break
			}
		}
	}
	metrics.Operations.WithLabelValues(op, label).Inc()
}

func compensated(result string) {
	metrics.Compensations.WithLabelValues(result).Inc()
}

// commitContext detaches from the caller's cancellation. Once money has moved the
// workflow runs to the end, bounded only by CommitTimeout.
func (uc *listingCommandsImpl) commitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), uc.policy.CommitTimeout)
}

// retry runs fn until it succeeds, the attempts run out or ctx is done.
func (uc *listingCommandsImpl) retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := &backoff.Backoff{
		Min:    uc.policy.RetryMin,
		Max:    uc.policy.RetryMax,
		Factor: 2,
		Jitter: true,
	}
	var err error
	for attempt := 1; attempt <= uc.policy.RetryAttempts; attempt++ {
		lastErr := fn(ctx)
		if lastErr == nil {
			return nil
		}
		err = lastErr
		if attempt == uc.policy.RetryAttempts {
			break
		}
		wait := b.Duration()
		uc.logger.WarnContext(ctx, "retrying "+op,
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.String("error", lastErr.Error()),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return multierr.Append(err, ctx.Err())
		case <-timer.C:
		}
	}
	return errs.Wrapf(err, "%s failed after %d attempts", op, uc.policy.RetryAttempts)
}

// escalate hands an inconsistency to the reconciliation sink. It never fails the
// workflow: a sink error is logged with the full event.
func (uc *listingCommandsImpl) escalate(ctx context.Context, ev shared.ReconciliationEvent) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = uc.clock.Now()
	}
	metrics.ReconciliationEvents.WithLabelValues(string(ev.Kind)).Inc()
	if uc.recon == nil {
		uc.logger.ErrorContext(ctx, "reconciliation required", eventAttrs(ev)...)
		return
	}
	if err := uc.recon.Escalate(ctx, ev); err != nil {
		attrs := append(eventAttrs(ev), slog.String("sink_error", err.Error()))
		uc.logger.ErrorContext(ctx, "reconciliation sink rejected event", attrs...)
	}
}

func eventAttrs(ev shared.ReconciliationEvent) []any {
	attrs := []any{
		slog.String("event_id", ev.ID.String()),
		slog.String("kind", string(ev.Kind)),
		slog.String("listing_id", ev.ListingID.String()),
		slog.String("actor_id", ev.Actor.String()),
		slog.Any("detail", ev.Detail),
	}
	if ev.Amount != nil {
		attrs = append(attrs, slog.Int64("amount_cents", ev.Amount.Cents()))
	}
	return attrs
}

func (uc *listingCommandsImpl) deliver(ctx context.Context, to uuid.UUID, good listing.Good, reason shared.DeliveryReason) (shared.DeliveryMode, error) {
	var mode shared.DeliveryMode
	err := uc.retry(ctx, "deliver goods", func(ctx context.Context) error {
		m, err := uc.goods.GiveOrDefer(ctx, to, good, reason)
		if err != nil {
			return err
		}
		mode = m
		return nil
	})
	return mode, err
}

// swap retries only transport errors. A version mismatch is an answer, not a failure.
func (uc *listingCommandsImpl) swap(ctx context.Context, next *listing.Listing, expected int64) (bool, error) {
	var swapped, uncertain bool
	err := uc.retry(ctx, "update listing", func(ctx context.Context) error {
		ok, err := uc.listings.UpdateIfVersionMatches(ctx, next, expected)
		if err != nil {
			uncertain = true
			return err
		}
		swapped = ok
		return nil
	})
	if swapped || !uncertain {
		return swapped, err
	}

	// A failed attempt may still have committed before its reply was lost, in
	// which case a later attempt sees its own write as a version mismatch.
	stored, readErr := uc.listings.FindByID(ctx, next.ID())
	if readErr != nil || !sameWrite(stored, next) {
		return false, err
	}
	uc.logger.WarnContext(ctx, "listing update confirmed by re-read after a transport error",
		slog.String("listing_id", next.ID().String()),
		slog.Int64("version", next.Version()),
	)
	return true, nil
}

func sameWrite(stored, next *listing.Listing) bool {
	if stored.Version() != next.Version() || stored.Status() != next.Status() {
		return false
	}
	a, b := stored.Buyer(), next.Buyer()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (uc *listingCommandsImpl) writeRecord(ctx context.Context, rec *transaction.Record) error {
	return uc.retry(ctx, "write transaction record", func(ctx context.Context) error {
		return uc.log.Record(ctx, rec)
	})
}

func (uc *listingCommandsImpl) escalateMissingRecord(ctx context.Context, l *listing.Listing, cause error) {
	actor := l.Seller()
	if b := l.Buyer(); b != nil {
		actor = *b
	}
	price := l.Price()
	uc.escalate(ctx, shared.ReconciliationEvent{
		Kind:      shared.ReconRecordMissing,
		ListingID: l.ID(),
		Actor:     actor,
		Amount:    &price,
		Detail: map[string]any{
			"status": l.Status().String(),
			"error":  cause.Error(),
		},
	})
}
