package shared

import (
	"time"

	"auction-house/internal/domain/listing"

	"github.com/google/uuid"
)

// DeliveryMode says how goods reached their recipient.
type DeliveryMode string

const (
	DeliveryDirect   DeliveryMode = "direct"
	DeliveryDeferred DeliveryMode = "deferred"
)

// DeliveryReason is attached to deferred goods so the recipient knows where they came from.
type DeliveryReason string

const (
	ReasonPurchased DeliveryReason = "purchased"
	ReasonCancelled DeliveryReason = "cancelled"
	ReasonExpired   DeliveryReason = "expired"
)

type SortOrder string

const (
	SortEndingSoon SortOrder = "ending_soon"
	SortNewest     SortOrder = "newest"
	SortPriceAsc   SortOrder = "price_asc"
	SortPriceDesc  SortOrder = "price_desc"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortEndingSoon, SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	default:
		return false
	}
}

type ActiveFilter struct {
	Seller   *uuid.UUID
	Kind     string
	MaxPrice *listing.Money
}

type Page struct {
	Limit  int
	Offset int
}

// HistoryPage is a keyset page over records ordered by (timestamp, id) descending.
type HistoryPage struct {
	BeforeTime time.Time
	BeforeID   uuid.UUID
	Limit      int
}

func (p HistoryPage) HasCursor() bool {
	return !p.BeforeTime.IsZero()
}

type ReconciliationKind string

const (
	ReconCompensationFailed ReconciliationKind = "compensation_failed"
	ReconDeliveryFailed     ReconciliationKind = "delivery_failed"
	ReconPurchaseCASLost    ReconciliationKind = "purchase_cas_lost"
	ReconTransitionCASLost  ReconciliationKind = "transition_cas_lost"
	ReconRecordMissing      ReconciliationKind = "record_missing"
)

// ReconciliationEvent is a state an operator has to resolve by hand because the
// engine could not restore consistency on its own.
type ReconciliationEvent struct {
	ID        uuid.UUID
	Kind      ReconciliationKind
	ListingID uuid.UUID
	Actor     uuid.UUID
	Amount    *listing.Money
	Detail    map[string]any
	CreatedAt time.Time
}
