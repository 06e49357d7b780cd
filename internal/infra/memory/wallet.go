package memory

import (
	"context"
	"sync"

	"auction-house/internal/domain/listing"

	"github.com/google/uuid"
)

type Wallet struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int64
	currency string
}

func NewWallet(currency string) *Wallet {
	return &Wallet{balances: make(map[uuid.UUID]int64), currency: currency}
}

// Seed sets an actor's balance outright.
func (w *Wallet) Seed(actor uuid.UUID, amount listing.Money) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[actor] = amount.Cents()
}

func (w *Wallet) Withdraw(_ context.Context, actor uuid.UUID, amount listing.Money) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.balances[actor] < amount.Cents() {
		return false, nil
	}
	w.balances[actor] -= amount.Cents()
	return true, nil
}

func (w *Wallet) Deposit(_ context.Context, actor uuid.UUID, amount listing.Money) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[actor] += amount.Cents()
	return nil
}

func (w *Wallet) Balance(_ context.Context, actor uuid.UUID) (listing.Money, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return listing.NewMoney(w.balances[actor]), nil
}

func (w *Wallet) Format(amount listing.Money) string {
	return formatMoney(amount, w.currency)
}

// Total is the sum of all balances. Money only moves between actors or to the
// tax sink, so tests use it to check conservation.
func (w *Wallet) Total() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	var sum int64
	for _, b := range w.balances {
		sum += b
	}
	return sum
}

func formatMoney(amount listing.Money, currency string) string {
	if currency == "" {
		return amount.String()
	}
	return amount.String() + " " + currency
}
