package memory

import (
	"context"
	"sync"

	"auction-house/internal/domain/listing"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

type DeferredItem struct {
	Good   listing.Good
	Reason shared.DeliveryReason
}

// Delivery places goods into a bounded per-actor inventory and falls back to a
// mailbox once the inventory is full.
type Delivery struct {
	mu          sync.Mutex
	capacity    int
	inventories map[uuid.UUID][]listing.Good
	mailboxes   map[uuid.UUID][]DeferredItem
}

func NewDelivery(capacity int) *Delivery {
	return &Delivery{
		capacity:    capacity,
		inventories: make(map[uuid.UUID][]listing.Good),
		mailboxes:   make(map[uuid.UUID][]DeferredItem),
	}
}

func (d *Delivery) GiveOrDefer(_ context.Context, actor uuid.UUID, good listing.Good, reason shared.DeliveryReason) (shared.DeliveryMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.inventories[actor]) < d.capacity {
		d.inventories[actor] = append(d.inventories[actor], good)
		return shared.DeliveryDirect, nil
	}
	d.mailboxes[actor] = append(d.mailboxes[actor], DeferredItem{Good: good, Reason: reason})
	return shared.DeliveryDeferred, nil
}

func (d *Delivery) Inventory(actor uuid.UUID) []listing.Good {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]listing.Good(nil), d.inventories[actor]...)
}

func (d *Delivery) Mailbox(actor uuid.UUID) []DeferredItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DeferredItem(nil), d.mailboxes[actor]...)
}

// Delivered counts every good handed out, directly or deferred.
func (d *Delivery) Delivered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, inv := range d.inventories {
		n += len(inv)
	}
	for _, mb := range d.mailboxes {
		n += len(mb)
	}
	return n
}
