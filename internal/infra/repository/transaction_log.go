package repository

import (
	"context"
	"log/slog"
	"time"

	"auction-house/internal/domain/transaction"
	"auction-house/internal/infra"
	"auction-house/internal/infra/db"
	"auction-house/internal/pkg/pgconv"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TransactionLogRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewTransactionLogRepository(dbtx db.DBTX, logger *slog.Logger) *TransactionLogRepository {
	return &TransactionLogRepository{db: dbtx, logger: logger}
}

// Record keeps the first record per listing; a repeated write is a no-op.
func (r *TransactionLogRepository) Record(ctx context.Context, rec *transaction.Record) error {
	_, err := r.db.Exec(ctx, `INSERT INTO transaction_records
		(id, listing_id, seller_id, kind, counterparty_id, amount_cents, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (listing_id) DO NOTHING`,
		rec.ID(), rec.ListingID(), rec.Seller(), rec.Kind().String(),
		pgconv.UUIDPtrToPgtype(rec.Counterparty()), moneyPtr(rec.Amount()), rec.Detail(), rec.Timestamp(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "insert transaction record", err)
	}
	return nil
}

func (r *TransactionLogRepository) History(ctx context.Context, actor uuid.UUID, page shared.HistoryPage) ([]*transaction.Record, error) {
	args := []any{actor}
	query := `SELECT id, listing_id, seller_id, kind, counterparty_id, amount_cents, detail, occurred_at
		FROM transaction_records
		WHERE (seller_id = $1 OR counterparty_id = $1)`
	if page.HasCursor() {
		args = append(args, page.BeforeTime, page.BeforeID)
		query += ` AND (occurred_at, id) < ($2, $3)`
	}
	query += ` ORDER BY occurred_at DESC, id DESC` + paging(shared.Page{Limit: page.Limit}, &args)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "load history", err)
	}
	defer rows.Close()

	out := make([]*transaction.Record, 0)
	for rows.Next() {
		var (
			id, listingID, seller uuid.UUID
			kind, detail          string
			counterparty          pgtype.UUID
			amount                pgtype.Int8
			at                    time.Time
		)
		if err := rows.Scan(&id, &listingID, &seller, &kind, &counterparty, &amount, &detail, &at); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "scan history", err)
		}
		out = append(out, transaction.Reconstruct(transaction.ReconstructParams{
			ID:           id,
			ListingID:    listingID,
			Seller:       seller,
			Kind:         transaction.Kind(kind),
			Counterparty: pgconv.UUIDPtrFromPgtype(counterparty),
			AmountCents:  pgconv.Int64PtrFromPgtype(amount),
			Detail:       detail,
			Timestamp:    at.UTC(),
		}))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "load history", err)
	}
	return out, nil
}
