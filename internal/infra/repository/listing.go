package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra"
	"auction-house/internal/infra/db"
	"auction-house/internal/pkg/pgconv"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listingColumns = `id, seller_id, good_kind, good_quantity, good_data, price_cents, buy_now_cents,
	reserve_cents, status, version, buyer_id, created_at, end_at, updated_at`

type ListingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewListingRepository(dbtx db.DBTX, logger *slog.Logger) *ListingRepository {
	return &ListingRepository{db: dbtx, logger: logger}
}

func (r *ListingRepository) Insert(ctx context.Context, l *listing.Listing) error {
	_, err := r.db.Exec(ctx, `INSERT INTO listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		l.ID(), l.Seller(), l.Good().Kind(), l.Good().Quantity(), nullableJSON(l.Good().Data()),
		l.Price().Cents(), moneyPtr(l.BuyNowPrice()), moneyPtr(l.ReservePrice()),
		l.Status().String(), l.Version(), pgconv.UUIDPtrToPgtype(l.Buyer()),
		l.CreatedAt(), l.EndAt(), l.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "insert listing", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "listing not found")
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "find listing", err)
	}
	return l, nil
}

func (r *ListingRepository) FindActive(ctx context.Context, filter shared.ActiveFilter, sort shared.SortOrder, page shared.Page) ([]*listing.Listing, error) {
	where := []string{"status = 'active'"}
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Seller != nil {
		add("seller_id = $%d", *filter.Seller)
	}
	if filter.Kind != "" {
		add("good_kind = $%d", filter.Kind)
	}
	if filter.MaxPrice != nil {
		add("price_cents <= $%d", filter.MaxPrice.Cents())
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + orderBy(sort) + paging(page, &args)
	return r.queryListings(ctx, "find active listings", query, args...)
}

func (r *ListingRepository) FindBySeller(ctx context.Context, seller uuid.UUID, includeInactive bool, page shared.Page) ([]*listing.Listing, error) {
	args := []any{seller}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE seller_id = $1`
	if !includeInactive {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY ` + orderBy(shared.SortNewest) + paging(page, &args)
	return r.queryListings(ctx, "find seller listings", query, args...)
}

func (r *ListingRepository) FindExpiredUpTo(ctx context.Context, now time.Time, limit int) ([]*listing.Listing, error) {
	args := []any{now}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = 'active' AND end_at <= $1
		ORDER BY ` + orderBy(shared.SortEndingSoon) + paging(shared.Page{Limit: limit}, &args)
	return r.queryListings(ctx, "find expired listings", query, args...)
}

func (r *ListingRepository) CountActiveBySeller(ctx context.Context, seller uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM listings WHERE seller_id = $1 AND status = 'active'`, seller).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "count active listings", err)
	}
	return n, nil
}

// UpdateIfVersionMatches is a single conditional UPDATE. Zero affected rows
// means another writer got there first or the listing is already terminal.
func (r *ListingRepository) UpdateIfVersionMatches(ctx context.Context, l *listing.Listing, expectedVersion int64) (bool, error) {
	if l.Version() != expectedVersion+1 {
		return false, infra.NewRepoErr(infra.KindDBFailure, "listing version must advance by exactly one")
	}
	tag, err := r.db.Exec(ctx, `UPDATE listings
		SET status = $3, version = $4, buyer_id = $5, updated_at = $6
		WHERE id = $1 AND version = $2 AND status = 'active'`,
		l.ID(), expectedVersion, l.Status().String(), l.Version(), pgconv.UUIDPtrToPgtype(l.Buyer()), l.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindOf(err), "update listing", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ListingRepository) queryListings(ctx context.Context, op, query string, args ...any) ([]*listing.Listing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, op, err)
	}
	defer rows.Close()

	out := make([]*listing.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, op, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, op, err)
	}
	return out, nil
}

func scanListing(row pgx.Row) (*listing.Listing, error) {
	var (
		id, seller       uuid.UUID
		kind, status     string
		quantity         int
		data             []byte
		price, version   int64
		buyNow, reserve  pgtype.Int8
		buyer            pgtype.UUID
		createdAt, endAt time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &seller, &kind, &quantity, &data, &price, &buyNow, &reserve,
		&status, &version, &buyer, &createdAt, &endAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := listing.NewStatus(status)
	if err != nil {
		return nil, err
	}
	return listing.Reconstruct(listing.ReconstructParams{
		ID:           id,
		Seller:       seller,
		Good:         listing.ReconstructGood(kind, quantity, data),
		Price:        price,
		BuyNowPrice:  pgconv.Int64PtrFromPgtype(buyNow),
		ReservePrice: pgconv.Int64PtrFromPgtype(reserve),
		CreatedAt:    createdAt.UTC(),
		EndAt:        endAt.UTC(),
		Status:       st,
		Version:      version,
		Buyer:        pgconv.UUIDPtrFromPgtype(buyer),
		UpdatedAt:    updatedAt.UTC(),
	}), nil
}

// orderBy mirrors the in-memory comparator, with id as the tiebreaker.
func orderBy(sort shared.SortOrder) string {
	switch sort {
	case shared.SortNewest:
		return "created_at DESC, id"
	case shared.SortPriceAsc:
		return "price_cents ASC, id"
	case shared.SortPriceDesc:
		return "price_cents DESC, id"
	default:
		return "end_at ASC, id"
	}
}

func paging(page shared.Page, args *[]any) string {
	var sb strings.Builder
	if page.Limit > 0 {
		*args = append(*args, page.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(*args))
	}
	if page.Offset > 0 {
		*args = append(*args, page.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(*args))
	}
	return sb.String()
}

func moneyPtr(m *listing.Money) pgtype.Int8 {
	if m == nil {
		return pgtype.Int8{}
	}
	c := m.Cents()
	return pgconv.Int64PtrToPgtype(&c)
}

// nullableJSON stores an empty payload as NULL rather than an invalid jsonb value.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
