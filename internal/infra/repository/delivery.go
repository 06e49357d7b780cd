package repository

import (
	"context"
	"log/slog"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra"
	"auction-house/internal/infra/db"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

type DeliveryRepository struct {
	tx              *db.TxRunner
	defaultCapacity int
	logger          *slog.Logger
}

func NewDeliveryRepository(tx *db.TxRunner, defaultCapacity int, logger *slog.Logger) *DeliveryRepository {
	return &DeliveryRepository{tx: tx, defaultCapacity: defaultCapacity, logger: logger}
}

// GiveOrDefer checks capacity and inserts in one serializable transaction, so two
// concurrent deliveries cannot both take the last free slot.
func (r *DeliveryRepository) GiveOrDefer(ctx context.Context, actor uuid.UUID, good listing.Good, reason shared.DeliveryReason) (shared.DeliveryMode, error) {
	var mode shared.DeliveryMode
	err := r.tx.Serializable(ctx, func(ctx context.Context, tx db.DBTX) error {
		var capacity, held int
		err := tx.QueryRow(ctx, `SELECT
			COALESCE((SELECT capacity FROM inventories WHERE actor_id = $1), $2),
			(SELECT count(*) FROM inventory_items WHERE actor_id = $1)`,
			actor, r.defaultCapacity,
		).Scan(&capacity, &held)
		if err != nil {
			return err
		}

		if held < capacity {
			_, err = tx.Exec(ctx, `INSERT INTO inventory_items (id, actor_id, good_kind, quantity, good_data)
				VALUES ($1, $2, $3, $4, $5)`,
				uuid.New(), actor, good.Kind(), good.Quantity(), nullableJSON(good.Data()))
			mode = shared.DeliveryDirect
		} else {
			_, err = tx.Exec(ctx, `INSERT INTO mailbox_items (id, actor_id, good_kind, quantity, good_data, reason)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New(), actor, good.Kind(), good.Quantity(), nullableJSON(good.Data()), string(reason))
			mode = shared.DeliveryDeferred
		}
		return err
	})
	if err != nil {
		return "", infra.WrapRepoErr(r.logger, infra.KindDBFailure, "deliver goods", err)
	}
	return mode, nil
}
