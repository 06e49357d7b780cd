package memory

import (
	"context"
	"log/slog"
	"sync"

	"auction-house/internal/usecase/shared"
)

type ReconciliationLog struct {
	mu     sync.Mutex
	events []shared.ReconciliationEvent
	logger *slog.Logger
}

func NewReconciliationLog(logger *slog.Logger) *ReconciliationLog {
	return &ReconciliationLog{logger: logger}
}

func (r *ReconciliationLog) Escalate(ctx context.Context, event shared.ReconciliationEvent) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.ErrorContext(ctx, "reconciliation required",
			slog.String("kind", string(event.Kind)),
			slog.String("listing_id", event.ListingID.String()),
			slog.String("actor_id", event.Actor.String()),
			slog.Any("detail", event.Detail),
		)
	}
	return nil
}

func (r *ReconciliationLog) Events() []shared.ReconciliationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.ReconciliationEvent(nil), r.events...)
}
