package commands

import (
	"context"
	"log/slog"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/keylock"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

// transition describes one way an active listing ends with its goods going back
// to the seller.
type transition struct {
	op     string
	reason shared.DeliveryReason
	check  func(l *listing.Listing, now time.Time) error
	mark   func(l *listing.Listing, at time.Time) (*listing.Listing, error)
	record func(l *listing.Listing) (*transaction.Record, error)
	done   string
}

func (uc *listingCommandsImpl) Cancel(ctx context.Context, caller, listingID uuid.UUID) (*TransitionResult, error) {
	return uc.runTransition(ctx, listingID, transition{
		op:     "cancel",
		reason: shared.ReasonCancelled,
		check: func(l *listing.Listing, _ time.Time) error {
			if !l.IsSeller(caller) {
				return errs.ErrUnauthorized
			}
			if !l.IsActive() {
				return errs.Wrapf(errs.ErrNotActive, "listing is %s", l.Status())
			}
			return nil
		},
		mark: (*listing.Listing).MarkCancelled,
		record: func(l *listing.Listing) (*transaction.Record, error) {
			return transaction.NewCancelledRecord(l, "cancelled by seller")
		},
		done: "Listing cancelled.",
	})
}

func (uc *listingCommandsImpl) Expire(ctx context.Context, listingID uuid.UUID) (*TransitionResult, error) {
	return uc.runTransition(ctx, listingID, transition{
		op:     "expire",
		reason: shared.ReasonExpired,
		check: func(l *listing.Listing, now time.Time) error {
			if !l.IsActive() {
				return errs.Wrapf(errs.ErrNotActive, "listing is %s", l.Status())
			}
			if !l.IsExpiredAt(now) {
				return errs.Wrapf(ErrNotYetExpired, "ends at %s", l.EndAt().Format(time.RFC3339))
			}
			return nil
		},
		mark: (*listing.Listing).MarkExpired,
		record: func(l *listing.Listing) (*transaction.Record, error) {
			return transaction.NewExpiredRecord(l, "expired without a sale")
		},
		done: "Listing expired.",
	})
}

func (uc *listingCommandsImpl) runTransition(ctx context.Context, listingID uuid.UUID, t transition) (*TransitionResult, error) {
	res, err := keylock.Do(ctx, uc.locks, listingKey(listingID), func(ctx context.Context) (*TransitionResult, error) {
		current, err := uc.load(ctx, listingID)
		if err != nil {
			return nil, err
		}
		if err := t.check(current, uc.clock.Now()); err != nil {
			return nil, err
		}

		log := uc.logger.With(
			slog.String("listing_id", listingID.String()),
			slog.String("seller_id", current.Seller().String()),
			slog.String("operation", t.op),
		)

		// Returning the goods comes first. If it fails nothing has changed yet.
		mode, err := uc.goods.GiveOrDefer(ctx, current.Seller(), current.Good(), t.reason)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "return goods to seller"), errs.ErrPersistenceFailure)
		}

		commitCtx, cancel := uc.commitContext(ctx)
		defer cancel()

		next, err := t.mark(current, uc.clock.Now())
		if err != nil {
			return nil, errs.Mark(err, errs.ErrNotActive)
		}
		swapped, err := uc.swap(commitCtx, next, current.Version())
		if err != nil || !swapped {
			detail := map[string]any{
				"good":             current.Good().String(),
				"delivery":         string(mode),
				"expected_version": current.Version(),
				"target_status":    next.Status().String(),
			}
			if err != nil {
				detail["error"] = err.Error()
			}
			log.ErrorContext(commitCtx, "transition lost the version race after goods were returned")
			uc.escalate(commitCtx, shared.ReconciliationEvent{
				Kind:      shared.ReconTransitionCASLost,
				ListingID: listingID,
				Actor:     current.Seller(),
				Detail:    detail,
			})
			if err != nil {
				return nil, errs.Mark(errs.Wrapf(err, "commit %s", t.op), errs.ErrPersistenceFailure)
			}
			return &TransitionResult{
				Outcome:  OutcomeVersionConflict,
				Listing:  current,
				Delivery: mode,
				Message:  "The listing changed concurrently. Staff have been notified.",
			}, nil
		}

		rec, err := t.record(next)
		if err == nil {
			err = uc.writeRecord(commitCtx, rec)
		}
		if err != nil {
			rec = nil
			uc.escalateMissingRecord(commitCtx, next, err)
		}

		log.InfoContext(ctx, "listing "+next.Status().String(), slog.String("delivery", string(mode)))

		msg := t.done + " Your goods were returned to your inventory."
		if mode == shared.DeliveryDeferred {
			msg = t.done + " Your inventory is full, the goods were sent to your mailbox."
		}
		return &TransitionResult{
			Outcome:  OutcomeCommitted,
			Listing:  next,
			Record:   rec,
			Delivery: mode,
			Message:  msg,
		}, nil
	})

	outcome := OutcomeCommitted
	if res != nil {
		outcome = res.Outcome
	}
	observe(t.op, outcome, err)
	return res, err
}
