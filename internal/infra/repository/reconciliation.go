package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"auction-house/internal/infra"
	"auction-house/internal/infra/db"
	"auction-house/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReconciliationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReconciliationRepository(dbtx db.DBTX, logger *slog.Logger) *ReconciliationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationRepository{db: dbtx, logger: logger}
}

func (r *ReconciliationRepository) Escalate(ctx context.Context, ev shared.ReconciliationEvent) error {
	detail, err := json.Marshal(ev.Detail)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "encode reconciliation detail", err)
	}
	if ev.Detail == nil {
		detail = []byte("{}")
	}
	amount := pgtype.Int8{}
	if ev.Amount != nil {
		amount = pgtype.Int8{Int64: ev.Amount.Cents(), Valid: true}
	}

	_, err = r.db.Exec(ctx, `INSERT INTO reconciliation_events
		(id, kind, listing_id, actor_id, amount_cents, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, string(ev.Kind), ev.ListingID, ev.Actor, amount, string(detail), ev.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "insert reconciliation event", err)
	}
	r.logger.ErrorContext(ctx, "reconciliation required",
		slog.String("event_id", ev.ID.String()),
		slog.String("kind", string(ev.Kind)),
		slog.String("listing_id", ev.ListingID.String()),
	)
	return nil
}
