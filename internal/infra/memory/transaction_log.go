package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"auction-house/internal/domain/transaction"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

type TransactionLog struct {
	mu        sync.RWMutex
	records   []*transaction.Record
	byListing map[uuid.UUID]*transaction.Record
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{byListing: make(map[uuid.UUID]*transaction.Record)}
}

func (t *TransactionLog) Record(_ context.Context, r *transaction.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byListing[r.ListingID()]; exists {
		return nil
	}
	t.byListing[r.ListingID()] = r
	t.records = append(t.records, r)
	return nil
}

func (t *TransactionLog) History(_ context.Context, actor uuid.UUID, page shared.HistoryPage) ([]*transaction.Record, error) {
	t.mu.RLock()
	out := make([]*transaction.Record, 0)
	for _, r := range t.records {
		involved := r.Seller() == actor || (r.Counterparty() != nil && *r.Counterparty() == actor)
		if involved && before(r, page) {
			out = append(out, r)
		}
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b *transaction.Record) int {
		if c := b.Timestamp().Compare(a.Timestamp()); c != 0 {
			return c
		}
		return cmp.Compare(b.ID().String(), a.ID().String())
	})
	if page.Limit > 0 && len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

// ForListing returns the record written for a listing, if any.
func (t *TransactionLog) ForListing(id uuid.UUID) (*transaction.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.byListing[id]
	return r, ok
}

func (t *TransactionLog) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

func before(r *transaction.Record, page shared.HistoryPage) bool {
	if !page.HasCursor() {
		return true
	}
	if r.Timestamp().Equal(page.BeforeTime) {
		return r.ID().String() < page.BeforeID.String()
	}
	return r.Timestamp().Before(page.BeforeTime)
}
