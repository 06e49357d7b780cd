package transaction

import (
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/pkg/errs"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSold      Kind = "sold"
	KindCancelled Kind = "cancelled"
	KindExpired   Kind = "expired"
)

var ErrNotTerminal = errs.New("record requires a listing in a matching terminal state")

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	return k == KindSold || k == KindCancelled || k == KindExpired
}

// Record is the append-only log entry written once a listing reaches a terminal state.
type Record struct {
	id           uuid.UUID
	listingID    uuid.UUID
	seller       uuid.UUID
	kind         Kind
	counterparty *uuid.UUID
	amount       *listing.Money
	detail       string
	timestamp    time.Time
}

// NewSoldRecord describes a sale. Amount is what the buyer paid.
func NewSoldRecord(l *listing.Listing, detail string) (*Record, error) {
	if l.Status() != listing.StatusSold || l.Buyer() == nil {
		return nil, ErrNotTerminal
	}
	price := l.Price()
	return newRecord(l, KindSold, l.Buyer(), &price, detail), nil
}

func NewCancelledRecord(l *listing.Listing, detail string) (*Record, error) {
	if l.Status() != listing.StatusCancelled {
		return nil, ErrNotTerminal
	}
	return newRecord(l, KindCancelled, nil, nil, detail), nil
}

func NewExpiredRecord(l *listing.Listing, detail string) (*Record, error) {
	if l.Status() != listing.StatusExpired {
		return nil, ErrNotTerminal
	}
	return newRecord(l, KindExpired, nil, nil, detail), nil
}

func newRecord(l *listing.Listing, kind Kind, counterparty *uuid.UUID, amount *listing.Money, detail string) *Record {
	return &Record{
		id:           uuid.New(),
		listingID:    l.ID(),
		seller:       l.Seller(),
		kind:         kind,
		counterparty: counterparty,
		amount:       amount,
		detail:       detail,
		// History cursors carry microseconds, so records never hold finer precision.
		timestamp:    l.UpdatedAt().Truncate(time.Microsecond),
	}
}

type ReconstructParams struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	Seller       uuid.UUID
	Kind         Kind
	Counterparty *uuid.UUID
	AmountCents  *int64
	Detail       string
	Timestamp    time.Time
}

func Reconstruct(p ReconstructParams) *Record {
	r := &Record{
		id:           p.ID,
		listingID:    p.ListingID,
		seller:       p.Seller,
		kind:         p.Kind,
		counterparty: p.Counterparty,
		detail:       p.Detail,
		timestamp:    p.Timestamp,
	}
	if p.AmountCents != nil {
		m := listing.NewMoney(*p.AmountCents)
		r.amount = &m
	}
	return r
}

func (r *Record) ID() uuid.UUID            { return r.id }
func (r *Record) ListingID() uuid.UUID     { return r.listingID }
func (r *Record) Seller() uuid.UUID        { return r.seller }
func (r *Record) Kind() Kind               { return r.kind }
func (r *Record) Counterparty() *uuid.UUID { return r.counterparty }
func (r *Record) Amount() *listing.Money   { return r.amount }
func (r *Record) Detail() string           { return r.detail }
func (r *Record) Timestamp() time.Time     { return r.timestamp }
