package repository

import (
	"context"
	"log/slog"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra"
	"auction-house/internal/infra/db"
	"auction-house/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// WalletRepository keeps balances in the wallets table. Every movement is a
// single statement, so no transaction spans two actors.
type WalletRepository struct {
	db       db.DBTX
	currency string
	logger   *slog.Logger
}

func NewWalletRepository(dbtx db.DBTX, currency string, logger *slog.Logger) *WalletRepository {
	return &WalletRepository{db: dbtx, currency: currency, logger: logger}
}

func (r *WalletRepository) Withdraw(ctx context.Context, actor uuid.UUID, amount listing.Money) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE wallets
		SET balance_cents = balance_cents - $2, updated_at = now()
		WHERE actor_id = $1 AND balance_cents >= $2`,
		actor, amount.Cents(),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "withdraw", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WalletRepository) Deposit(ctx context.Context, actor uuid.UUID, amount listing.Money) error {
	_, err := r.db.Exec(ctx, `INSERT INTO wallets (actor_id, balance_cents) VALUES ($1, $2)
		ON CONFLICT (actor_id) DO UPDATE
		SET balance_cents = wallets.balance_cents + EXCLUDED.balance_cents, updated_at = now()`,
		actor, amount.Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "deposit", err)
	}
	return nil
}

// Balance reports zero for actors that never held money.
func (r *WalletRepository) Balance(ctx context.Context, actor uuid.UUID) (listing.Money, error) {
	var cents int64
	err := r.db.QueryRow(ctx, `SELECT balance_cents FROM wallets WHERE actor_id = $1`, actor).Scan(&cents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return listing.NewMoney(0), nil
		}
		return listing.Money{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "load balance", err)
	}
	return listing.NewMoney(cents), nil
}

func (r *WalletRepository) Format(amount listing.Money) string {
	if r.currency == "" {
		return amount.String()
	}
	return amount.String() + " " + r.currency
}
